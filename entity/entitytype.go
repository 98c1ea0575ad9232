package entity

import (
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/randengine"
)

// Direction 路口的方位（道路接入路口的一侧）
// 说明：作为路口4槽位数组的下标使用，避免map查缺的歧义
type Direction int32

const (
	DirectionNorth Direction = iota // 北
	DirectionSouth                  // 南
	DirectionEast                   // 东
	DirectionWest                   // 西

	DirectionCount // 方位总数，仅用于数组长度
)

// Opposite 获取正对的方位
// 说明：直行路由时，来自某一侧的车流驶向正对一侧
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionNorth:
		return DirectionSouth
	case DirectionSouth:
		return DirectionNorth
	case DirectionEast:
		return DirectionWest
	default:
		return DirectionEast
	}
}

// Axis 获取方位所属的信控轴
func (d Direction) Axis() Axis {
	if d == DirectionNorth || d == DirectionSouth {
		return AxisNS
	}
	return AxisEW
}

func (d Direction) String() string {
	switch d {
	case DirectionNorth:
		return "N"
	case DirectionSouth:
		return "S"
	case DirectionEast:
		return "E"
	default:
		return "W"
	}
}

// Axis 信控相位轴（两相位信控，南北向或东西向放行）
type Axis int32

const (
	AxisNS Axis = iota // 南北向放行
	AxisEW             // 东西向放行
)

// Other 获取另一个相位轴
func (a Axis) Other() Axis {
	if a == AxisNS {
		return AxisEW
	}
	return AxisNS
}

func (a Axis) String() string {
	if a == AxisNS {
		return "NS"
	}
	return "EW"
}

// NoRoad 路口槽位中表示没有道路的ID
const NoRoad int32 = -1

// ExitDest Transfer中表示车流离开路网的目的地ID
const ExitDest int32 = -1

// Transfer 一次路口放行产生的车流转移
// 说明：每tick每条道路至多作为一次来源、一次目的地出现
type Transfer struct {
	Source int32   // 来源道路ID
	Dest   int32   // 目的道路ID，ExitDest表示直接离开路网
	Amount float64 // 转移的密度量（严格为正）
}

// RoadBase 道路构造数据
// 说明：替代输入数据，由引擎的网格构建器生成
type RoadBase struct {
	ID       int32     // 道路ID（与管理器内数组下标一致）
	From     int32     // 上游路口ID
	To       int32     // 下游路口ID
	Dir      Direction // 行驶方向
	Boundary bool      // 是否为边界道路（紧邻网格外缘）
	Entry    bool      // 是否为入网道路（边界道路且上游无反向来路）
}

// JunctionBase 路口构造数据
type JunctionBase struct {
	ID         int32                 // 路口ID
	Row        int32                 // 网格行
	Col        int32                 // 网格列
	InRoadIDs  [DirectionCount]int32 // 各方位的来路ID，NoRoad表示缺失
	OutRoadIDs [DirectionCount]int32 // 各方位的去路ID，NoRoad表示缺失
}

// IRoad 道路实体接口（元胞传输链路）
type IRoad interface {
	ID() int32
	From() int32        // 上游路口ID
	To() int32          // 下游路口ID
	Dir() Direction     // 行驶方向
	IsBoundary() bool   // 是否为边界道路
	IsEntry() bool      // 是否为入网道路
	Length() float64    // 道路长度（元胞数×元胞长度）
	Demand() float64    // 发送能力
	Supply() float64    // 接收能力
	TotalCars() float64 // 全部元胞密度之和
	QueuedLoad() float64
	ApplyFlow(inflow, outflow float64)            // 应用本tick的边界流量并推进内部元胞
	SpawnEntry(generator *randengine.Engine) bool // 入网道路的随机注入
	Cells() []float64                             // 元胞密度的独立拷贝
}

// IJunction 路口实体接口（信控与车流路由）
type IJunction interface {
	ID() int32
	Row() int32
	Col() int32
	Phase() Axis                        // 当前放行轴
	PhaseTimer() int32                  // 距上次切相的tick数
	Pressure() (ns float64, ew float64) // 两轴的压力（下限0.1）
	UpdateSignal()                      // 每tick一次：计时并执行切相规则
	RouteFlow() []Transfer              // 当前绿灯轴的直行放行
	InRoad(dir Direction) IRoad         // 指定方位的来路，缺失返回nil
	OutRoad(dir Direction) IRoad        // 指定方位的去路，缺失返回nil
}

// IPressureSource 压力查询接口
// 说明：依赖倒置，最大压力信控通过该接口读取所属路口的压力
type IPressureSource interface {
	Pressure() (ns float64, ew float64)
}
