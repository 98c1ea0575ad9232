package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/gridsim-oss/utils/config"
)

// Clock 模拟时钟管理器
// 功能：维护运行窗口[START_STEP, END_STEP)与当前步数，供运行循环推进与输出进度
type Clock struct {
	START_STEP int32 // 起始步
	END_STEP   int32 // 结束步，模拟区间[START, END)

	Step int32 // 当前步数
}

// New 根据配置创建新的时钟实例
// 参数：stepConfig-控制步配置，包含起始步与总步数
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		START_STEP: stepConfig.Start,
		END_STEP:   stepConfig.Start + stepConfig.Total,
	}
	c.Init()
	return c
}

// Init 初始化时钟状态
// 说明：重置当前步数为起始步
func (c *Clock) Init() {
	c.Step = c.START_STEP
}

// Done 检查运行窗口是否已经走完
func (c *Clock) Done() bool {
	return c.Step >= c.END_STEP
}

// String 获取时钟的字符串表示
// 返回：格式化的进度字符串（step X/Y）
func (c *Clock) String() string {
	return fmt.Sprintf("step %d/%d", c.Step, c.END_STEP)
}
