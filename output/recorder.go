// 模拟结果输出到MongoDB
// 按配置的间隔将各引擎的聚合统计量（以及可选的道路元胞明细）写入集合，
// 供外部的图表/回放协作方消费
package output

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridsim-oss/engine"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var log = logrus.WithField("module", "output")

const connectTimeout = 10 * time.Second

// record 单条输出文档
type record struct {
	Label       string                `bson:"label"` // 运行标签（信控模式），对照模式下区分两个引擎
	Step        int32                 `bson:"step"`
	TotalCars   float64               `bson:"total_cars"`
	TotalQueued float64               `bson:"total_queued"`
	Throughput  float64               `bson:"throughput"`
	Roads       []engine.RoadSnapshot `bson:"roads,omitempty"` // 按配置过滤的道路明细
}

// Recorder MongoDB输出器
// 功能：将模拟统计量写入{job}.{col}集合
type Recorder struct {
	client  *mongo.Client
	coll    *mongo.Collection
	roadIDs []int32 // 输出明细的道路ID列表，为空则只输出统计量
	warned  bool    // 未知道路ID只告警一次
}

// NewRecorder 创建MongoDB输出器
// 功能：连接MongoDB并定位输出集合
// 参数：c-输出配置，job-模拟任务名（作为集合名前缀）
// 返回：输出器实例；URI为空时输出被禁用，返回(nil, nil)
func NewRecorder(c config.Output, job string) (*Recorder, error) {
	if c.URI == "" {
		return nil, nil
	}
	db := c.DB
	if db == "" {
		db = "gridsim"
	}
	col := c.Col
	if col == "" {
		col = "stats"
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.URI))
	if err != nil {
		return nil, fmt.Errorf("output: connect to mongodb failed: %w", err)
	}
	return &Recorder{
		client:  client,
		coll:    client.Database(db).Collection(fmt.Sprintf("%s.%s", job, col)),
		roadIDs: c.Roads,
	}, nil
}

// Record 写入一条快照记录
// 参数：label-运行标签（信控模式），snap-引擎快照
// 说明：配置了道路ID列表时附带对应道路的元胞明细，列表中不存在的ID只告警一次
func (r *Recorder) Record(ctx context.Context, label string, snap *engine.Snapshot) error {
	doc := record{
		Label:       label,
		Step:        snap.Step,
		TotalCars:   snap.TotalCars,
		TotalQueued: snap.TotalQueued,
		Throughput:  snap.Throughput,
	}
	if len(r.roadIDs) > 0 {
		dataMap := lo.SliceToMap(snap.Roads, func(rs engine.RoadSnapshot) (int32, engine.RoadSnapshot) {
			return rs.ID, rs
		})
		okData, failedIDs := utils.Find(dataMap, snap.Roads, r.roadIDs)
		if len(failedIDs) > 0 && !r.warned {
			log.Warnf("output: unknown road ids in output.roads: %v", failedIDs)
			r.warned = true
		}
		doc.Roads = okData
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("output: insert record failed: %w", err)
	}
	return nil
}

// Close 断开MongoDB连接
func (r *Recorder) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return r.client.Disconnect(ctx)
}
