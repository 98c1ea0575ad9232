package entity

import (
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/config"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/randengine"
)

// ITaskContext 模拟上下文接口
// 说明：由引擎实现，向各实体提供配置与随机数引擎
type ITaskContext interface {
	RuntimeConfig() *config.RuntimeConfig
	RoadManager() IRoadManager
	JunctionManager() IJunctionManager
	Generator() *randengine.Engine
}
