package junction

import (
	"fmt"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridsim-oss/entity"
)

var log = logrus.WithField("module", "junction")

// JunctionManager Junction管理器
// 功能：管理所有Junction实体，提供创建、查找等功能
type JunctionManager struct {
	ctx entity.ITaskContext

	data      map[int32]*Junction
	junctions []*Junction
}

// NewManager 创建Junction管理器实例
// 功能：初始化Junction管理器，创建内部数据结构
// 参数：ctx-任务上下文
// 返回：新创建的Junction管理器实例
func NewManager(ctx entity.ITaskContext) *JunctionManager {
	return &JunctionManager{
		ctx:       ctx,
		data:      make(map[int32]*Junction),
		junctions: make([]*Junction, 0),
	}
}

// Init 初始化所有Junction及其信控
// 功能：根据网格构建器产生的构造数据初始化所有Junction对象，建立ID映射关系
// 参数：bases-Junction构造数据列表（按ID升序），roadManager-道路管理器
// 说明：使用并行处理提高初始化效率，需在RoadManager初始化之后调用
func (m *JunctionManager) Init(bases []entity.JunctionBase, roadManager entity.IRoadManager) {
	m.junctions = parallel.GoMap(bases, func(base entity.JunctionBase) *Junction {
		return newJunction(m.ctx, base, roadManager)
	})
	m.data = lo.SliceToMap(m.junctions, func(j *Junction) (int32, *Junction) {
		return j.id, j
	})
}

// Get 根据ID获取Junction实例
// 功能：通过Junction ID查找对应的Junction对象，如果不存在则panic
// 参数：id-Junction的唯一标识符
// 返回：对应的Junction实例，如果不存在则panic
func (m *JunctionManager) Get(id int32) entity.IJunction {
	if junction, ok := m.data[id]; !ok {
		log.Panicf("no id %d in junction data", id)
		return nil
	} else {
		return junction
	}
}

// GetOrError 根据ID获取Junction实例（带错误处理）
// 功能：通过Junction ID查找对应的Junction对象，如果不存在则返回错误
// 参数：id-Junction的唯一标识符
// 返回：Junction实例和错误信息，如果不存在则返回nil和错误
func (m *JunctionManager) GetOrError(id int32) (entity.IJunction, error) {
	if junction, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in junction data", id)
	} else {
		return junction, nil
	}
}

// Junctions 获取全部路口（按ID升序）
// 说明：引擎每tick按该顺序遍历路口，保证运行可复现
func (m *JunctionManager) Junctions() []entity.IJunction {
	return lo.Map(m.junctions, func(j *Junction, _ int) entity.IJunction { return j })
}
