package engine

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
)

// RoadSnapshot 道路的只读快照
type RoadSnapshot struct {
	ID         int32     `json:"id" bson:"id"`
	From       int32     `json:"from" bson:"from"` // 上游路口ID
	To         int32     `json:"to" bson:"to"`     // 下游路口ID
	Dir        string    `json:"dir" bson:"dir"`
	Length     float64   `json:"length" bson:"length"` // 道路长度（米），供渲染方布局
	Cells      []float64 `json:"cells" bson:"cells"`   // 元胞密度的独立拷贝
	TotalCars  float64   `json:"total_cars" bson:"total_cars"`
	QueuedLoad float64   `json:"queued_load" bson:"queued_load"`
	Boundary   bool      `json:"boundary" bson:"boundary"`
}

// JunctionSnapshot 路口的只读快照
type JunctionSnapshot struct {
	ID    int32  `json:"id" bson:"id"`
	Row   int32  `json:"row" bson:"row"`
	Col   int32  `json:"col" bson:"col"`
	Phase string `json:"phase" bson:"phase"` // 当前放行轴（NS|EW）
}

// Snapshot 引擎状态的只读快照
// 说明：渲染、图表等协作方只消费该结构，修改快照不影响引擎内部状态
type Snapshot struct {
	Step        int32              `json:"step" bson:"step"`
	TotalCars   float64            `json:"total_cars" bson:"total_cars"`     // 全网总密度
	TotalQueued float64            `json:"total_queued" bson:"total_queued"` // 全网总排队负载
	Throughput  float64            `json:"throughput" bson:"throughput"`     // 累计离网吞吐量
	Roads       []RoadSnapshot     `json:"roads" bson:"roads"`
	Junctions   []JunctionSnapshot `json:"junctions" bson:"junctions"`
}

// Snapshot 生成当前状态的只读快照
// 功能：导出所有道路（含元胞密度拷贝）、所有路口与聚合统计量
// 说明：所有切片均为独立拷贝，Step之间调用不会观察到半应用的更新
func (e *Engine) Snapshot() *Snapshot {
	return &Snapshot{
		Step:        e.step,
		TotalCars:   lo.SumBy(e.roads, func(r entity.IRoad) float64 { return r.TotalCars() }),
		TotalQueued: lo.SumBy(e.roads, func(r entity.IRoad) float64 { return r.QueuedLoad() }),
		Throughput:  e.throughput,
		Roads: lo.Map(e.roads, func(r entity.IRoad, _ int) RoadSnapshot {
			return RoadSnapshot{
				ID:         r.ID(),
				From:       r.From(),
				To:         r.To(),
				Dir:        r.Dir().String(),
				Length:     r.Length(),
				Cells:      r.Cells(),
				TotalCars:  r.TotalCars(),
				QueuedLoad: r.QueuedLoad(),
				Boundary:   r.IsBoundary(),
			}
		}),
		Junctions: lo.Map(e.junctions, func(j entity.IJunction, _ int) JunctionSnapshot {
			return JunctionSnapshot{
				ID:    j.ID(),
				Row:   j.Row(),
				Col:   j.Col(),
				Phase: j.Phase().String(),
			}
		}),
	}
}
