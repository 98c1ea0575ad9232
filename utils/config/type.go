package config

// 信控模式
const (
	ModeFixed       = "fixed"        // 固定周期信控
	ModeMaxPressure = "max_pressure" // 最大压力自适应信控
)

// Grid 路网网格配置
// 功能：定义矩形信控路口网格的规模与入网需求
type Grid struct {
	Rows             int32   `yaml:"rows"`              // 网格行数（>=1）
	Cols             int32   `yaml:"cols"`              // 网格列数（>=1）
	EntryProbability float64 `yaml:"entry_probability"` // 每tick入网概率（[0,1]）
	Seed             uint64  `yaml:"seed,omitempty"`    // 随机数种子
}

// Road 道路物理参数（元胞传输模型）
// 说明：所有道路共享同一组参数，零值项在NewRuntimeConfig中填充默认值
type Road struct {
	CellLength     float64 `yaml:"cell_length,omitempty"`     // 元胞长度（米，仅用于输出道路长度）
	Cells          int32   `yaml:"cells,omitempty"`           // 每条道路的元胞数
	MaxDensity     float64 `yaml:"max_density,omitempty"`     // 元胞密度上限
	WaveSpeed      float64 `yaml:"wave_speed,omitempty"`      // 波速（发送能力系数）
	QueueThreshold float64 `yaml:"queue_threshold,omitempty"` // 排队判定密度阈值
}

// Signal 信控参数
type Signal struct {
	Mode       string `yaml:"mode"`                  // 信控模式（fixed|max_pressure）
	MinGreen   int32  `yaml:"min_green,omitempty"`   // 最大压力法最小绿灯tick数
	MaxRed     int32  `yaml:"max_red,omitempty"`     // 最大压力法最大红灯tick数（防饿死）
	FixedCycle int32  `yaml:"fixed_cycle,omitempty"` // 固定信控的切换周期tick数
}

// Entry 入网注入参数
type Entry struct {
	SpawnSpace  float64 `yaml:"spawn_space,omitempty"`  // 首元胞密度低于该值时才允许注入
	SpawnAmount float64 `yaml:"spawn_amount,omitempty"` // 单次注入的密度量
}

// ControlStep 指定模拟tick范围的配置项
type ControlStep struct {
	Start int32 `yaml:"start,omitempty"` // 开始tick
	Total int32 `yaml:"total"`           // 总tick数
}

// Control 模拟器控制配置
type Control struct {
	Step    ControlStep `yaml:"step"`
	Compare bool        `yaml:"compare,omitempty"` // 对照模式：以相同种子同时运行fixed与max_pressure
}

// Output 模拟结果输出配置（MongoDB）
// 说明：URI为空则禁用输出
type Output struct {
	URI      string  `yaml:"uri,omitempty"`      // MongoDB连接字符串
	DB       string  `yaml:"db,omitempty"`       // 数据库名
	Col      string  `yaml:"col,omitempty"`      // 集合名（实际集合为{job}.{col}）
	Interval int32   `yaml:"interval,omitempty"` // 输出间隔tick数
	Roads    []int32 `yaml:"roads,omitempty"`    // 输出元胞明细的道路ID列表（为空则只输出统计量）
}

// Config YAML配置文件的根结构
type Config struct {
	Grid    Grid    `yaml:"grid"`             // 路网网格
	Road    Road    `yaml:"road,omitempty"`   // 道路物理参数
	Signal  Signal  `yaml:"signal"`           // 信控参数
	Entry   Entry   `yaml:"entry,omitempty"`  // 入网注入参数
	Control Control `yaml:"control"`          // 模拟过程控制
	Output  Output  `yaml:"output,omitempty"` // 结果输出
}
