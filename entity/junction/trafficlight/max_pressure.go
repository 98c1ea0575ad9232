// 提供Max Pressure信号灯控制算法
// 不按固定顺序切换，而是在满足最小绿灯时长后比较两轴压力，
// 切换到压力更大的放行轴；到达最大红灯时长则无条件切换（防饿死）
package trafficlight

import (
	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
)

// mpTrafficLight 最大压力信号灯控制器
// 功能：实现基于最大压力算法的自适应信号灯控制，根据道路压力动态选择放行轴
type mpTrafficLight struct {
	junctionID int32                  // 所属junction ID
	source     entity.IPressureSource // 压力来源（所属路口）
	minGreen   int32                  // 最小绿灯时长（tick）
	maxRed     int32                  // 最大红灯时长（tick），防饿死
	phase      entity.Axis            // 当前放行轴，初始为南北向
	timer      int32                  // 距上次切相的tick数
}

// NewMaxPressureTrafficLight 创建Max Pressure算法信号灯控制器
// 参数：junctionID-路口ID，source-压力来源，minGreen/maxRed-切相时长约束
// 返回：初始化完成的最大压力信号灯控制器实例
func NewMaxPressureTrafficLight(junctionID int32, source entity.IPressureSource, minGreen, maxRed int32) *mpTrafficLight {
	if minGreen < 1 || maxRed < minGreen {
		log.Panicf("junction %d: require 1 <= min green <= max red, got %d/%d", junctionID, minGreen, maxRed)
	}
	return &mpTrafficLight{
		junctionID: junctionID,
		source:     source,
		minGreen:   minGreen,
		maxRed:     maxRed,
		phase:      entity.AxisNS,
	}
}

// Update 更新阶段，执行最大压力算法的核心逻辑
// 算法说明：
// 1. 计时器+1
// 2. 到达最大红灯时长：无条件切相（防饿死），计时器清零
// 3. 未到最小绿灯时长：不切相
// 4. 否则比较两轴压力，对向轴压力严格更大才切相
func (l *mpTrafficLight) Update() {
	l.timer++
	if l.timer >= l.maxRed {
		l.phase = l.phase.Other()
		l.timer = 0
		return
	}
	if l.timer < l.minGreen {
		return
	}
	ns, ew := l.source.Pressure()
	if (l.phase == entity.AxisNS && ew > ns) || (l.phase == entity.AxisEW && ns > ew) {
		l.phase = l.phase.Other()
		l.timer = 0
	}
}

// Phase 获取当前放行轴
func (l *mpTrafficLight) Phase() entity.Axis {
	return l.phase
}

// Timer 获取距上次切相的tick数
func (l *mpTrafficLight) Timer() int32 {
	return l.timer
}
