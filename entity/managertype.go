package entity

// Manager依赖倒置

// entity/road/manager.go的依赖倒置
type IRoadManager interface {
	Init(bases []RoadBase) // 初始化

	// 输入Road ID，查找Road，如果不存在则panic
	Get(id int32) IRoad
	// 输入Road ID，查找Road，如果不存在则返回error
	GetOrError(id int32) (IRoad, error)
	// 全部道路，按ID升序
	Roads() []IRoad
}

// entity/junction/manager.go的依赖倒置
type IJunctionManager interface {
	Init(bases []JunctionBase, roadManager IRoadManager) // 初始化

	// 输入Junction ID，查找Junction，如果不存在则panic
	Get(id int32) IJunction
	// 输入Junction ID，查找Junction，如果不存在则返回error
	GetOrError(id int32) (IJunction, error)
	// 全部路口，按ID升序
	Junctions() []IJunction
}
