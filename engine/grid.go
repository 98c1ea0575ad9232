package engine

import (
	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/config"
)

// buildGrid 构建矩形网格路网的构造数据
// 功能：创建rows×cols个路口，并为每对水平/垂直相邻的路口创建两条方向相反的单行道
// 返回：道路与路口的构造数据列表（均按ID升序）
// 算法说明：
// 1. 路口ID = 行×列数 + 列
// 2. 道路接入槽位：上游路口的去路槽位为行驶方向，下游路口的来路槽位为行驶方向的对面
//    （如东向道路从上游的东侧驶出，从下游的西侧驶入）
// 3. 边界标记：上游路口位于道路来向一侧的网格外缘
//    （如起于第0列的东向道路、起于最后一列的西向道路）
// 4. 入网标记：边界道路且上游路口没有反向来路，车辆由此进入路网
func buildGrid(rc *config.RuntimeConfig) ([]entity.RoadBase, []entity.JunctionBase) {
	rows, cols := rc.Grid.Rows, rc.Grid.Cols
	junctions := make([]entity.JunctionBase, rows*cols)
	jid := func(row, col int32) int32 { return row*cols + col }
	for row := int32(0); row < rows; row++ {
		for col := int32(0); col < cols; col++ {
			id := jid(row, col)
			j := entity.JunctionBase{ID: id, Row: row, Col: col}
			for d := entity.Direction(0); d < entity.DirectionCount; d++ {
				j.InRoadIDs[d] = entity.NoRoad
				j.OutRoadIDs[d] = entity.NoRoad
			}
			junctions[id] = j
		}
	}

	roads := make([]entity.RoadBase, 0, 2*(rows*(cols-1)+cols*(rows-1)))
	addRoad := func(from, to int32, dir entity.Direction) {
		base := entity.RoadBase{
			ID:       int32(len(roads)),
			From:     from,
			To:       to,
			Dir:      dir,
			Boundary: onEdgeBehind(rc, junctions[from], dir),
		}
		junctions[from].OutRoadIDs[dir] = base.ID
		junctions[to].InRoadIDs[dir.Opposite()] = base.ID
		roads = append(roads, base)
	}
	for row := int32(0); row < rows; row++ {
		for col := int32(0); col+1 < cols; col++ {
			addRoad(jid(row, col), jid(row, col+1), entity.DirectionEast)
			addRoad(jid(row, col+1), jid(row, col), entity.DirectionWest)
		}
	}
	for row := int32(0); row+1 < rows; row++ {
		for col := int32(0); col < cols; col++ {
			addRoad(jid(row, col), jid(row+1, col), entity.DirectionSouth)
			addRoad(jid(row+1, col), jid(row, col), entity.DirectionNorth)
		}
	}

	// 入网标记需要在全部槽位接线后判定
	for i := range roads {
		r := &roads[i]
		r.Entry = r.Boundary && junctions[r.From].InRoadIDs[r.Dir.Opposite()] == entity.NoRoad
	}
	return roads, junctions
}

// onEdgeBehind 判断路口是否位于道路来向一侧的网格外缘
func onEdgeBehind(rc *config.RuntimeConfig, j entity.JunctionBase, dir entity.Direction) bool {
	switch dir {
	case entity.DirectionEast:
		return j.Col == 0
	case entity.DirectionWest:
		return j.Col == rc.Grid.Cols-1
	case entity.DirectionSouth:
		return j.Row == 0
	default: // 北向
		return j.Row == rc.Grid.Rows-1
	}
}
