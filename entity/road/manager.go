package road

import (
	"fmt"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
)

var log = logrus.WithField("module", "road")

// RoadManager Road管理器
// 功能：管理所有Road实体，提供创建、查找等功能
type RoadManager struct {
	ctx entity.ITaskContext

	data  map[int32]*Road
	roads []*Road
}

// NewManager 创建Road管理器实例
// 功能：初始化Road管理器，创建内部数据结构
// 参数：ctx-任务上下文
// 返回：新创建的Road管理器实例
func NewManager(ctx entity.ITaskContext) *RoadManager {
	return &RoadManager{
		ctx:   ctx,
		data:  make(map[int32]*Road),
		roads: make([]*Road, 0),
	}
}

// Init 初始化所有Road
// 功能：根据网格构建器产生的构造数据初始化所有Road对象，建立ID映射关系
// 参数：bases-Road构造数据列表（按ID升序）
// 说明：使用并行处理提高初始化效率，parallel.GoMap保持输入顺序
func (m *RoadManager) Init(bases []entity.RoadBase) {
	m.roads = parallel.GoMap(bases, func(base entity.RoadBase) *Road {
		return newRoad(m.ctx, base)
	})
	m.data = lo.SliceToMap(m.roads, func(r *Road) (int32, *Road) {
		return r.id, r
	})
}

// Get 根据ID获取Road实例
// 功能：通过Road ID查找对应的Road对象，如果不存在则panic
// 参数：id-Road的唯一标识符
// 返回：对应的Road实例，如果不存在则panic
func (m *RoadManager) Get(id int32) entity.IRoad {
	if road, ok := m.data[id]; !ok {
		log.Panicf("no id %d in road data", id)
		return nil
	} else {
		return road
	}
}

// GetOrError 根据ID获取Road实例（带错误处理）
// 功能：通过Road ID查找对应的Road对象，如果不存在则返回错误
// 参数：id-Road的唯一标识符
// 返回：Road实例和错误信息，如果不存在则返回nil和错误
func (m *RoadManager) GetOrError(id int32) (entity.IRoad, error) {
	if road, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in road data", id)
	} else {
		return road, nil
	}
}

// Roads 获取全部道路（按ID升序）
// 说明：引擎每tick按该顺序遍历道路，保证运行可复现
func (m *RoadManager) Roads() []entity.IRoad {
	return lo.Map(m.roads, func(r *Road, _ int) entity.IRoad { return r })
}
