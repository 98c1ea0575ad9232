package road

import (
	"fmt"

	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/randengine"
)

// Road 道路实体（元胞传输链路）
// 功能：持有从上游到下游排列的元胞密度序列，计算发送/接收能力，
// 每tick同步推进一次元胞物理
// 不变量：每tick结束后所有元胞密度均处于[0, MaxDensity]内
type Road struct {
	ctx entity.ITaskContext

	id       int32
	from     int32            // 上游路口ID
	to       int32            // 下游路口ID
	dir      entity.Direction // 行驶方向
	boundary bool             // 紧邻网格外缘
	entry    bool             // 入网道路（边界道路且上游无反向来路）

	cells []float64 // 元胞密度，下标0为最上游
	buf   []float64 // 推进时的冻结快照缓冲，避免每tick分配
}

// newRoad 创建并初始化一个新的Road实例
// 功能：根据构造数据创建Road对象，元胞数由运行时配置决定，初始密度全为0
func newRoad(ctx entity.ITaskContext, base entity.RoadBase) *Road {
	n := ctx.RuntimeConfig().Road.Cells
	return &Road{
		ctx:      ctx,
		id:       base.ID,
		from:     base.From,
		to:       base.To,
		dir:      base.Dir,
		boundary: base.Boundary,
		entry:    base.Entry,
		cells:    make([]float64, n),
		buf:      make([]float64, n),
	}
}

func (r *Road) String() string {
	return fmt.Sprintf("Road %d: %d->%d (%v)", r.id, r.from, r.to, r.dir)
}

// ID 获取道路ID
func (r *Road) ID() int32 {
	return r.id
}

// From 获取上游路口ID
func (r *Road) From() int32 {
	return r.from
}

// To 获取下游路口ID
func (r *Road) To() int32 {
	return r.to
}

// Dir 获取行驶方向
func (r *Road) Dir() entity.Direction {
	return r.dir
}

// IsBoundary 是否为边界道路
func (r *Road) IsBoundary() bool {
	return r.boundary
}

// IsEntry 是否为入网道路
func (r *Road) IsEntry() bool {
	return r.entry
}

// Length 获取道路长度（元胞数×元胞长度），供渲染方布局使用
func (r *Road) Length() float64 {
	rc := r.ctx.RuntimeConfig().Road
	return float64(rc.Cells) * rc.CellLength
}

// Demand 计算发送能力
// 功能：本tick可以离开本道路驶向下游路口的密度量
// 算法说明：min(波速×最下游元胞密度, 密度上限)
func (r *Road) Demand() float64 {
	rc := r.ctx.RuntimeConfig().Road
	return min(rc.WaveSpeed*r.cells[len(r.cells)-1], rc.MaxDensity)
}

// Supply 计算接收能力
// 功能：本tick可以从上游路口进入本道路的密度量
// 算法说明：max(0, 密度上限−最上游元胞密度)
func (r *Road) Supply() float64 {
	rc := r.ctx.RuntimeConfig().Road
	return max(0, rc.MaxDensity-r.cells[0])
}

// TotalCars 全部元胞密度之和
func (r *Road) TotalCars() float64 {
	total := 0.0
	for _, c := range r.cells {
		total += c
	}
	return total
}

// QueuedLoad 计算排队负载
// 功能：统计密度严格超过排队阈值的元胞的密度之和，
// 近似表示道路上拥堵/停驶而非自由流动的部分
func (r *Road) QueuedLoad() float64 {
	threshold := r.ctx.RuntimeConfig().Road.QueueThreshold
	queued := 0.0
	for _, c := range r.cells {
		if c > threshold {
			queued += c
		}
	}
	return queued
}

// ApplyFlow 应用本tick的边界流量并推进内部元胞
// 功能：(a)末元胞扣除流出量（下限0），(b)首元胞加上流入量，
// (c)以边界调整后的密度为冻结快照，从下游向上游逐对推进内部车流
// 参数：inflow-本tick流入量（不超过Supply），outflow-本tick流出量（不超过Demand）
// 算法说明：
// 1. 相邻元胞对(i, i+1)的通量 = min(快照密度[i], 密度上限−快照密度[i+1])
// 2. 所有通量均基于同一冻结快照计算，与更新顺序无关，
//    对应元胞传输模型中所有元胞同时推进的定义
// 3. 结果保证任何元胞不超过密度上限也不为负
func (r *Road) ApplyFlow(inflow, outflow float64) {
	maxDensity := r.ctx.RuntimeConfig().Road.MaxDensity
	last := len(r.cells) - 1
	r.cells[last] = max(0, r.cells[last]-outflow)
	r.cells[0] += inflow
	// 冻结快照
	copy(r.buf, r.cells)
	for i := 0; i < last; i++ {
		flux := min(r.buf[i], maxDensity-r.buf[i+1])
		if flux <= 0 {
			continue
		}
		r.cells[i] -= flux
		r.cells[i+1] += flux
	}
}

// SpawnEntry 入网道路的随机注入
// 功能：首元胞密度低于注入空间阈值时，以配置的入网概率向首元胞注入固定密度块
// 参数：generator-随机数引擎（由引擎注入，保证运行可复现）
// 返回：本tick是否发生注入
// 说明：在物理推进之后调用，注入的车辆从下一tick起参与流动
func (r *Road) SpawnEntry(generator *randengine.Engine) bool {
	rc := r.ctx.RuntimeConfig()
	if r.cells[0] >= rc.Entry.SpawnSpace {
		return false
	}
	if !generator.PTrue(rc.Grid.EntryProbability) {
		return false
	}
	r.cells[0] += rc.Entry.SpawnAmount
	return true
}

// Cells 获取元胞密度的独立拷贝
// 说明：修改返回值不影响道路内部状态
func (r *Road) Cells() []float64 {
	return utils.CopyFloats(r.cells)
}
