package junction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity/junction"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity/road"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/config"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/randengine"
)

type testCtx struct {
	rc          *config.RuntimeConfig
	roadManager entity.IRoadManager
}

func (c *testCtx) RuntimeConfig() *config.RuntimeConfig     { return c.rc }
func (c *testCtx) RoadManager() entity.IRoadManager         { return c.roadManager }
func (c *testCtx) JunctionManager() entity.IJunctionManager { return nil }
func (c *testCtx) Generator() *randengine.Engine            { return nil }

func noRoads() (in, out [entity.DirectionCount]int32) {
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		in[d] = entity.NoRoad
		out[d] = entity.NoRoad
	}
	return
}

// buildColumn 搭建一个三路口竖列：0 --road0--> 1 --road1--> 2（均为南向道路）
func buildColumn(t *testing.T, mutate func(*config.Config)) (*testCtx, *road.RoadManager, *junction.JunctionManager) {
	c := config.Config{
		Grid:   config.Grid{Rows: 3, Cols: 1, EntryProbability: 0},
		Road:   config.Road{Cells: 10, MaxDensity: 7, WaveSpeed: 1, QueueThreshold: 2},
		Signal: config.Signal{Mode: config.ModeFixed, FixedCycle: 100},
	}
	if mutate != nil {
		mutate(&c)
	}
	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)
	ctx := &testCtx{rc: rc}

	roadManager := road.NewManager(ctx)
	roadManager.Init([]entity.RoadBase{
		{ID: 0, From: 0, To: 1, Dir: entity.DirectionSouth, Boundary: true, Entry: true},
		{ID: 1, From: 1, To: 2, Dir: entity.DirectionSouth},
	})
	ctx.roadManager = roadManager

	junctionManager := junction.NewManager(ctx)
	bases := make([]entity.JunctionBase, 3)
	for i := range bases {
		in, out := noRoads()
		bases[i] = entity.JunctionBase{ID: int32(i), Row: int32(i), Col: 0, InRoadIDs: in, OutRoadIDs: out}
	}
	bases[0].OutRoadIDs[entity.DirectionSouth] = 0
	bases[1].InRoadIDs[entity.DirectionNorth] = 0
	bases[1].OutRoadIDs[entity.DirectionSouth] = 1
	bases[2].InRoadIDs[entity.DirectionNorth] = 1
	junctionManager.Init(bases, roadManager)

	return ctx, roadManager, junctionManager
}

// fillToEnd 向道路注入密度块并推进，直到密度块到达最下游元胞
func fillToEnd(r entity.IRoad, amount float64) {
	r.ApplyFlow(amount, 0)
	cells := r.Cells()
	for i := 0; i+2 < len(cells); i++ {
		r.ApplyFlow(0, 0)
	}
}

func TestPressureFloor(t *testing.T) {
	_, _, jm := buildColumn(t, nil)
	// 空路网下所有压力分量取下限0.1
	for _, j := range jm.Junctions() {
		ns, ew := j.Pressure()
		assert.Equal(t, 0.1, ns)
		assert.Equal(t, 0.1, ew)
	}
}

func TestPressure(t *testing.T) {
	_, rm, jm := buildColumn(t, nil)
	fillToEnd(rm.Get(0), 7)

	// 来路排队7，去路空
	ns, ew := jm.Get(1).Pressure()
	assert.InDelta(t, 7.0, ns, 1e-9)
	assert.Equal(t, 0.1, ew)

	// 路口0只有去路（总密度7），负压力取下限
	ns, ew = jm.Get(0).Pressure()
	assert.Equal(t, 0.1, ns)
	assert.Equal(t, 0.1, ew)
}

func TestRouteFlowStraightThrough(t *testing.T) {
	_, rm, jm := buildColumn(t, nil)
	src, dst := rm.Get(0), rm.Get(1)
	fillToEnd(src, 7)
	require.InDelta(t, 7.0, src.Demand(), 1e-9)

	// 发送7、接收7，恰好转移7（场景：10元胞道路，末元胞密度7，下游全空）
	transfers := jm.Get(1).RouteFlow()
	require.Len(t, transfers, 1)
	assert.Equal(t, int32(0), transfers[0].Source)
	assert.Equal(t, int32(1), transfers[0].Dest)
	assert.InDelta(t, 7.0, transfers[0].Amount, 1e-9)

	src.ApplyFlow(0, transfers[0].Amount)
	dst.ApplyFlow(transfers[0].Amount, 0)
	assert.InDelta(t, 0.0, src.TotalCars(), 1e-9)
	assert.InDelta(t, 7.0, dst.TotalCars(), 1e-9)
}

func TestRouteFlowExit(t *testing.T) {
	_, rm, jm := buildColumn(t, nil)
	fillToEnd(rm.Get(1), 7)

	// 去路缺失（网格边缘）：发送能力直接离网，不受下游接收能力限制
	transfers := jm.Get(2).RouteFlow()
	require.Len(t, transfers, 1)
	assert.Equal(t, int32(1), transfers[0].Source)
	assert.Equal(t, entity.ExitDest, transfers[0].Dest)
	assert.InDelta(t, 7.0, transfers[0].Amount, 1e-9)
}

func TestRouteFlowSupplyLimited(t *testing.T) {
	_, rm, jm := buildColumn(t, nil)
	src, dst := rm.Get(0), rm.Get(1)
	fillToEnd(src, 7)
	// 灌满下游道路，接收能力归零
	for i := 0; i < 100; i++ {
		dst.ApplyFlow(dst.Supply(), 0)
	}
	require.Equal(t, 0.0, dst.Supply())

	// 转移量不为正时不产生转移
	assert.Empty(t, jm.Get(1).RouteFlow())
}

func TestRouteFlowRedAxis(t *testing.T) {
	_, rm, jm := buildColumn(t, func(c *config.Config) {
		c.Signal.FixedCycle = 1
	})
	fillToEnd(rm.Get(0), 7)

	// 切到东西向放行后，南北向来路不放行；东西向没有道路则无转移
	j := jm.Get(1)
	j.UpdateSignal()
	require.Equal(t, entity.AxisEW, j.Phase())
	assert.Empty(t, j.RouteFlow())
}

func TestMissingDirections(t *testing.T) {
	_, _, jm := buildColumn(t, nil)
	// 缺失方位一律视为“没有道路”，不报错
	j := jm.Get(0)
	assert.Nil(t, j.InRoad(entity.DirectionNorth))
	assert.Nil(t, j.OutRoad(entity.DirectionEast))
	assert.Empty(t, j.RouteFlow())

	_, err := jm.GetOrError(99)
	assert.Error(t, err)
	assert.Panics(t, func() { jm.Get(99) })
}

func TestPhaseTimerResetOnlyOnChange(t *testing.T) {
	_, _, jm := buildColumn(t, func(c *config.Config) {
		c.Signal.FixedCycle = 4
	})
	j := jm.Get(1)
	last := j.Phase()
	for i := 0; i < 20; i++ {
		prevTimer := j.PhaseTimer()
		j.UpdateSignal()
		if j.Phase() != last {
			assert.Equal(t, int32(0), j.PhaseTimer())
			last = j.Phase()
		} else {
			assert.Equal(t, prevTimer+1, j.PhaseTimer())
		}
	}
}
