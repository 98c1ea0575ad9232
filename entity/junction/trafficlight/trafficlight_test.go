package trafficlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity/junction/trafficlight"
)

type stubSource struct {
	ns, ew float64
}

func (s *stubSource) Pressure() (float64, float64) {
	return s.ns, s.ew
}

func TestFixedCycle(t *testing.T) {
	l := trafficlight.NewFixedCycleTrafficLight(0, 6)
	assert.Equal(t, entity.AxisNS, l.Phase())

	// 与交通状态无关，每6tick无条件切换
	for i := 0; i < 5; i++ {
		l.Update()
		assert.Equal(t, entity.AxisNS, l.Phase())
	}
	l.Update()
	assert.Equal(t, entity.AxisEW, l.Phase())
	assert.Equal(t, int32(0), l.Timer())

	for i := 0; i < 6; i++ {
		l.Update()
	}
	assert.Equal(t, entity.AxisNS, l.Phase())
}

func TestFixedCycleInvalid(t *testing.T) {
	assert.Panics(t, func() { trafficlight.NewFixedCycleTrafficLight(0, 0) })
}

func TestMaxPressureMinGreen(t *testing.T) {
	source := &stubSource{ns: 0.1, ew: 100}
	l := trafficlight.NewMaxPressureTrafficLight(0, source, 5, 30)

	// 最小绿灯时长内即使对向压力更大也不切相
	for i := 0; i < 4; i++ {
		l.Update()
		assert.Equal(t, entity.AxisNS, l.Phase())
	}
	l.Update()
	assert.Equal(t, entity.AxisEW, l.Phase())
	assert.Equal(t, int32(0), l.Timer())
}

func TestMaxPressureMaxRed(t *testing.T) {
	// 压力始终偏向当前相位，仍必须在最大红灯时长前切相
	source := &stubSource{ns: 100, ew: 0.1}
	l := trafficlight.NewMaxPressureTrafficLight(0, source, 5, 30)

	for i := 0; i < 29; i++ {
		l.Update()
		assert.Equal(t, entity.AxisNS, l.Phase())
	}
	l.Update()
	assert.Equal(t, entity.AxisEW, l.Phase())
	assert.Equal(t, int32(0), l.Timer())
}

func TestMaxPressureStrictComparison(t *testing.T) {
	// 压力相等时不切相，直到防饿死阈值
	source := &stubSource{ns: 1, ew: 1}
	l := trafficlight.NewMaxPressureTrafficLight(0, source, 5, 30)

	for i := 0; i < 29; i++ {
		l.Update()
		assert.Equal(t, entity.AxisNS, l.Phase())
	}
	l.Update()
	assert.Equal(t, entity.AxisEW, l.Phase())
}

func TestMaxPressureSwitchBack(t *testing.T) {
	source := &stubSource{ns: 5, ew: 1}
	l := trafficlight.NewMaxPressureTrafficLight(0, source, 5, 30)

	// 先强制切到EW，再在最小绿灯后切回压力更大的NS
	for i := 0; i < 30; i++ {
		l.Update()
	}
	assert.Equal(t, entity.AxisEW, l.Phase())
	for i := 0; i < 5; i++ {
		assert.Equal(t, entity.AxisEW, l.Phase())
		l.Update()
	}
	assert.Equal(t, entity.AxisNS, l.Phase())
}

func TestMaxPressureInvalid(t *testing.T) {
	source := &stubSource{}
	assert.Panics(t, func() { trafficlight.NewMaxPressureTrafficLight(0, source, 0, 30) })
	assert.Panics(t, func() { trafficlight.NewMaxPressureTrafficLight(0, source, 10, 5) })
}
