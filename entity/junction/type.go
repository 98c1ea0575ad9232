package junction

import (
	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
)

// 依赖倒置，表达junction对信号灯实现的接口需求

// ITrafficLight 信号灯接口
type ITrafficLight interface {
	Phase() entity.Axis // 当前放行轴
	Timer() int32       // 距上次切相的tick数
	Update()            // 每tick调用一次：计时并执行切相规则
}
