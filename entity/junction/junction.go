package junction

import (
	"fmt"

	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/config"
)

// pressureFloor 压力分量的下限
// 说明：防止零/负压力在信控比较中产生退化或不稳定的结果
const pressureFloor = 0.1

// Junction 路口实体
// 功能：持有按方位索引的来路/去路槽位与信号灯控制器，
// 计算两轴压力并对当前绿灯轴执行直行放行
type Junction struct {
	ctx entity.ITaskContext

	id  int32
	row int32 // 网格行
	col int32 // 网格列

	inRoads  [entity.DirectionCount]entity.IRoad // 各方位来路，nil表示缺失（网格边缘）
	outRoads [entity.DirectionCount]entity.IRoad // 各方位去路，nil表示缺失

	trafficLight ITrafficLight // 信号灯模块
}

// newJunction 创建并初始化一个新的Junction实例
// 功能：根据构造数据创建Junction对象，解析道路槽位并按信控模式创建信号灯
// 参数：ctx-任务上下文，base-Junction构造数据，roadManager-道路管理器
// 返回：初始化完成的Junction实例
// 说明：方位上没有道路是网格边缘的正常情况，对应槽位保持nil
func newJunction(ctx entity.ITaskContext, base entity.JunctionBase, roadManager entity.IRoadManager) *Junction {
	j := &Junction{
		ctx: ctx,
		id:  base.ID,
		row: base.Row,
		col: base.Col,
	}
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		if id := base.InRoadIDs[d]; id != entity.NoRoad {
			j.inRoads[d] = roadManager.Get(id)
		}
		if id := base.OutRoadIDs[d]; id != entity.NoRoad {
			j.outRoads[d] = roadManager.Get(id)
		}
	}

	// 信号灯初始化逻辑
	signal := ctx.RuntimeConfig().Signal
	switch signal.Mode {
	case config.ModeFixed:
		j.trafficLight = trafficlight.NewFixedCycleTrafficLight(j.id, signal.FixedCycle)
	case config.ModeMaxPressure:
		j.trafficLight = trafficlight.NewMaxPressureTrafficLight(j.id, j, signal.MinGreen, signal.MaxRed)
	default:
		log.Panicf("junction %d: unknown signal mode %q", j.id, signal.Mode)
	}
	return j
}

func (j *Junction) String() string {
	return fmt.Sprintf("Junction %d (%d,%d)", j.id, j.row, j.col)
}

// ID 获取路口ID
func (j *Junction) ID() int32 {
	return j.id
}

// Row 获取网格行
func (j *Junction) Row() int32 {
	return j.row
}

// Col 获取网格列
func (j *Junction) Col() int32 {
	return j.col
}

// Phase 获取当前放行轴
func (j *Junction) Phase() entity.Axis {
	return j.trafficLight.Phase()
}

// PhaseTimer 获取距上次切相的tick数
func (j *Junction) PhaseTimer() int32 {
	return j.trafficLight.Timer()
}

// InRoad 获取指定方位的来路，缺失返回nil
func (j *Junction) InRoad(dir entity.Direction) entity.IRoad {
	return j.inRoads[dir]
}

// OutRoad 获取指定方位的去路，缺失返回nil
func (j *Junction) OutRoad(dir entity.Direction) entity.IRoad {
	return j.outRoads[dir]
}

// Pressure 计算两轴压力
// 功能：返回(南北向压力, 东西向压力)，用于最大压力信控的切相决策
// 算法说明：
// 1. 某轴压力 = 该轴两方位来路的排队负载之和 − 0.5×对应去路的总密度之和
// 2. 去路负载按负压力计入，避免切向已经饱和的下游
// 3. 每个分量以0.1为下限
func (j *Junction) Pressure() (float64, float64) {
	ns := j.axisPressure(entity.DirectionNorth, entity.DirectionSouth)
	ew := j.axisPressure(entity.DirectionEast, entity.DirectionWest)
	return ns, ew
}

// axisPressure 计算单轴压力
// 说明：来自a/b方位的车流直行驶向对面方位，因此对向去路即本轴的下游
func (j *Junction) axisPressure(a, b entity.Direction) float64 {
	p := 0.0
	for _, d := range [2]entity.Direction{a, b} {
		if in := j.inRoads[d]; in != nil {
			p += in.QueuedLoad()
		}
		if out := j.outRoads[d.Opposite()]; out != nil {
			p -= 0.5 * out.TotalCars()
		}
	}
	return max(p, pressureFloor)
}

// UpdateSignal 更新阶段，推进信号灯状态
// 说明：每tick在放行计算之前调用一次
func (j *Junction) UpdateSignal() {
	j.trafficLight.Update()
}

// RouteFlow 计算当前绿灯轴的直行放行
// 功能：对绿灯轴的每条来路，将其发送能力路由到正对的去路
// 返回：(来源道路, 目的地, 转移量)三元组列表，目的地为ExitDest表示直接离开路网
// 算法说明：
// 1. 放行轴为南北时处理北/南来路，东西时处理东/西来路
// 2. 正对去路存在：转移量 = min(来路Demand, 去路Supply)
// 3. 正对去路缺失（网格边缘）：来路Demand直接离开路网，不受任何下游接收能力限制
// 4. 仅当转移量严格为正时产生转移
func (j *Junction) RouteFlow() []entity.Transfer {
	var greenDirs [2]entity.Direction
	if j.Phase() == entity.AxisNS {
		greenDirs = [2]entity.Direction{entity.DirectionNorth, entity.DirectionSouth}
	} else {
		greenDirs = [2]entity.Direction{entity.DirectionEast, entity.DirectionWest}
	}

	transfers := make([]entity.Transfer, 0, 2)
	for _, d := range greenDirs {
		in := j.inRoads[d]
		if in == nil {
			continue
		}
		amount := in.Demand()
		dest := entity.ExitDest
		if out := j.outRoads[d.Opposite()]; out != nil {
			amount = min(amount, out.Supply())
			dest = out.ID()
		}
		if amount > 0 {
			transfers = append(transfers, entity.Transfer{
				Source: in.ID(),
				Dest:   dest,
				Amount: amount,
			})
		}
	}
	return transfers
}
