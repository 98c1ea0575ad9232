package engine

import (
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity/junction"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity/road"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/config"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/randengine"
)

var log = logrus.WithField("module", "engine")

// Engine 模拟引擎
// 功能：构建网格路网，按tick同步推进（信控→放行→聚合→物理→入网注入），
// 累计离网吞吐量，对外提供只读快照
// 说明：单线程、同步、由外部调度器驱动，Step之间调用Snapshot不会观察到半应用状态；
// 多个引擎实例完全独立（各自持有道路/路口与随机数流）
type Engine struct {
	rc        *config.RuntimeConfig
	generator *randengine.Engine

	roadManager     entity.IRoadManager
	junctionManager entity.IJunctionManager
	roads           []entity.IRoad     // 按ID升序
	junctions       []entity.IJunction // 按ID升序
	entryRoads      []entity.IRoad     // 入网道路，按ID升序

	inflow  []float64 // 每tick聚合缓冲，按道路ID索引
	outflow []float64

	step       int32   // tick计数
	throughput float64 // 累计离网吞吐量，单调不减
}

// New 创建模拟引擎
// 功能：校验配置、构建网格路网并完成全部接线
// 参数：c-配置，generator-随机数引擎（显式注入，保证运行可复现；
// 多实例对照时可用相同种子分别构造）
// 返回：初始化完成的引擎实例，配置非法时返回error
func New(c config.Config, generator *randengine.Engine) (*Engine, error) {
	rc, err := config.NewRuntimeConfig(c)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		rc:        rc,
		generator: generator,
	}

	roadManager := road.NewManager(e)
	junctionManager := junction.NewManager(e)
	e.roadManager = roadManager
	e.junctionManager = junctionManager

	roadBases, junctionBases := buildGrid(rc)
	roadManager.Init(roadBases)
	junctionManager.Init(junctionBases, roadManager)

	e.roads = roadManager.Roads()
	e.junctions = junctionManager.Junctions()
	e.entryRoads = lo.Filter(e.roads, func(r entity.IRoad, _ int) bool { return r.IsEntry() })
	e.inflow = make([]float64, len(e.roads))
	e.outflow = make([]float64, len(e.roads))

	log.Debugf("engine: %dx%d grid, %d junctions, %d roads (%d entries), mode %s",
		rc.Grid.Rows, rc.Grid.Cols, len(e.junctions), len(e.roads), len(e.entryRoads), rc.Mode())
	return e, nil
}

// RuntimeConfig 获取运行时配置（实现entity.ITaskContext）
func (e *Engine) RuntimeConfig() *config.RuntimeConfig {
	return e.rc
}

// RoadManager 获取道路管理器（实现entity.ITaskContext）
func (e *Engine) RoadManager() entity.IRoadManager {
	return e.roadManager
}

// JunctionManager 获取路口管理器（实现entity.ITaskContext）
func (e *Engine) JunctionManager() entity.IJunctionManager {
	return e.junctionManager
}

// Generator 获取随机数引擎（实现entity.ITaskContext）
func (e *Engine) Generator() *randengine.Engine {
	return e.generator
}

// Step 推进一个tick
// 功能：同步执行一次完整的模拟步，顺序固定：
// 1. 所有路口计时并执行切相规则
// 2. 所有路口计算绿灯轴放行，收集全部转移
// 3. 按道路ID聚合流入/流出总量，离网转移计入累计吞吐量
//    （每条道路每tick至多作为一次来源、一次目的地，聚合与顺序无关）
// 4. 对所有道路应用聚合后的ApplyFlow，一次同步物理推进
// 5. 对所有入网道路做随机注入（在物理之后，注入车辆下一tick起可见）
// 6. tick计数+1
func (e *Engine) Step() {
	// 1. 信控
	for _, j := range e.junctions {
		j.UpdateSignal()
	}

	// 2. 放行
	transfers := make([]entity.Transfer, 0, 2*len(e.junctions))
	for _, j := range e.junctions {
		transfers = append(transfers, j.RouteFlow()...)
	}

	// 3. 聚合
	for i := range e.inflow {
		e.inflow[i] = 0
		e.outflow[i] = 0
	}
	for _, t := range transfers {
		e.outflow[t.Source] += t.Amount
		if t.Dest == entity.ExitDest {
			e.throughput += t.Amount
		} else {
			e.inflow[t.Dest] += t.Amount
		}
	}

	// 4. 物理
	for _, r := range e.roads {
		r.ApplyFlow(e.inflow[r.ID()], e.outflow[r.ID()])
	}

	// 5. 入网注入
	for _, r := range e.entryRoads {
		r.SpawnEntry(e.generator)
	}

	// 6. 计数
	e.step++
}

// Tick 获取当前tick计数
func (e *Engine) Tick() int32 {
	return e.step
}

// Throughput 获取累计离网吞吐量
func (e *Engine) Throughput() float64 {
	return e.throughput
}
