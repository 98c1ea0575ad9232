// 提供固定周期信号灯控制算法
// 与交通状态无关，每经过固定tick数无条件切换放行轴
package trafficlight

import (
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
)

var log = logrus.WithField("module", "trafficlight")

// fixedTrafficLight 固定周期信号灯控制器
// 功能：按照配置的周期长度无条件切换放行轴，计时器在切相时清零
type fixedTrafficLight struct {
	junctionID int32 // 所属junction ID
	cycle      int32 // 切换周期（tick）

	phase entity.Axis // 当前放行轴，初始为南北向
	timer int32       // 距上次切相的tick数
}

// NewFixedCycleTrafficLight 创建固定周期信号灯控制器
// 参数：junctionID-路口ID，cycle-切换周期tick数
// 返回：初始化完成的固定周期信号灯控制器实例
func NewFixedCycleTrafficLight(junctionID int32, cycle int32) *fixedTrafficLight {
	if cycle < 1 {
		log.Panicf("junction %d: fixed cycle must be positive, got %d", junctionID, cycle)
	}
	return &fixedTrafficLight{
		junctionID: junctionID,
		cycle:      cycle,
		phase:      entity.AxisNS,
	}
}

// Update 更新阶段，执行固定周期切相
// 说明：计时器先+1，到达周期即切相并清零，与压力等交通状态完全无关
func (l *fixedTrafficLight) Update() {
	l.timer++
	if l.timer >= l.cycle {
		l.phase = l.phase.Other()
		l.timer = 0
	}
}

// Phase 获取当前放行轴
func (l *fixedTrafficLight) Phase() entity.Axis {
	return l.phase
}

// Timer 获取距上次切相的tick数
func (l *fixedTrafficLight) Timer() int32 {
	return l.timer
}
