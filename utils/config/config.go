package config

import "fmt"

// 零值配置项的默认值
const (
	defaultCellLength     = 50.0
	defaultCells          = 10
	defaultMaxDensity     = 4.0
	defaultWaveSpeed      = 1.0
	defaultQueueThreshold = 2.0
	defaultMinGreen       = 5
	defaultMaxRed         = 30
	defaultFixedCycle     = 10
	defaultSpawnSpace     = 2.0
	defaultSpawnAmount    = 2.0
)

// RuntimeConfig 运行时配置
// 功能：存储模拟运行时的配置信息，包含填充默认值并通过校验后的各项参数
// 说明：将YAML配置转换为运行时可用的配置对象
type RuntimeConfig struct {
	All    Config // 全部配置
	Grid   Grid   // 路网网格
	Road   Road   // 道路物理参数
	Signal Signal // 信控参数
	Entry  Entry  // 入网注入参数
	C      Control
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：填充默认值、校验配置合法性
// 参数：config-原始配置对象
// 返回：运行时配置指针，配置非法时返回error
// 说明：构造期即失败（fail fast），模拟开始后不再产生配置错误
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	rc := &RuntimeConfig{}

	rc.All = config
	rc.Grid = config.Grid
	rc.Road = withRoadDefaults(config.Road)
	rc.Signal = withSignalDefaults(config.Signal)
	rc.Entry = withEntryDefaults(config.Entry)
	rc.C = config.Control

	if rc.Grid.Rows < 1 || rc.Grid.Cols < 1 {
		return nil, fmt.Errorf("grid size must be at least 1x1, got %dx%d", rc.Grid.Rows, rc.Grid.Cols)
	}
	if rc.Grid.EntryProbability < 0 || rc.Grid.EntryProbability > 1 {
		return nil, fmt.Errorf("entry probability must be in [0,1], got %f", rc.Grid.EntryProbability)
	}
	if rc.Road.Cells < 1 {
		return nil, fmt.Errorf("road must have at least 1 cell, got %d", rc.Road.Cells)
	}
	if rc.Road.CellLength <= 0 || rc.Road.MaxDensity <= 0 || rc.Road.WaveSpeed <= 0 {
		return nil, fmt.Errorf("cell length, max density and wave speed must be positive, got %f/%f/%f",
			rc.Road.CellLength, rc.Road.MaxDensity, rc.Road.WaveSpeed)
	}
	if rc.Road.QueueThreshold < 0 {
		return nil, fmt.Errorf("queue threshold must be non-negative, got %f", rc.Road.QueueThreshold)
	}
	switch rc.Signal.Mode {
	case ModeFixed, ModeMaxPressure:
	default:
		return nil, fmt.Errorf("signal mode must be %s or %s, got %q", ModeFixed, ModeMaxPressure, rc.Signal.Mode)
	}
	if rc.Signal.FixedCycle < 1 {
		return nil, fmt.Errorf("fixed cycle must be at least 1 tick, got %d", rc.Signal.FixedCycle)
	}
	if rc.Signal.MinGreen < 1 || rc.Signal.MaxRed < rc.Signal.MinGreen {
		return nil, fmt.Errorf("require 1 <= min green <= max red, got %d/%d", rc.Signal.MinGreen, rc.Signal.MaxRed)
	}
	if rc.Entry.SpawnSpace < 0 || rc.Entry.SpawnAmount <= 0 {
		return nil, fmt.Errorf("spawn space must be non-negative and spawn amount positive, got %f/%f",
			rc.Entry.SpawnSpace, rc.Entry.SpawnAmount)
	}
	// 注入后首元胞密度必须仍在[0, MaxDensity]内
	if rc.Entry.SpawnSpace+rc.Entry.SpawnAmount > rc.Road.MaxDensity {
		return nil, fmt.Errorf("spawn space + spawn amount must not exceed max density, got %f+%f > %f",
			rc.Entry.SpawnSpace, rc.Entry.SpawnAmount, rc.Road.MaxDensity)
	}
	if rc.C.Step.Total < 0 {
		return nil, fmt.Errorf("total steps must be non-negative, got %d", rc.C.Step.Total)
	}

	return rc, nil
}

// Mode 获取当前信控模式
func (rc *RuntimeConfig) Mode() string {
	return rc.Signal.Mode
}

func withRoadDefaults(r Road) Road {
	if r.CellLength == 0 {
		r.CellLength = defaultCellLength
	}
	if r.Cells == 0 {
		r.Cells = defaultCells
	}
	if r.MaxDensity == 0 {
		r.MaxDensity = defaultMaxDensity
	}
	if r.WaveSpeed == 0 {
		r.WaveSpeed = defaultWaveSpeed
	}
	if r.QueueThreshold == 0 {
		r.QueueThreshold = defaultQueueThreshold
	}
	return r
}

func withSignalDefaults(s Signal) Signal {
	if s.MinGreen == 0 {
		s.MinGreen = defaultMinGreen
	}
	if s.MaxRed == 0 {
		s.MaxRed = defaultMaxRed
	}
	if s.FixedCycle == 0 {
		s.FixedCycle = defaultFixedCycle
	}
	return s
}

func withEntryDefaults(e Entry) Entry {
	if e.SpawnSpace == 0 {
		e.SpawnSpace = defaultSpawnSpace
	}
	if e.SpawnAmount == 0 {
		e.SpawnAmount = defaultSpawnAmount
	}
	return e
}
