package main

import (
	"context"
	"encoding/base64"
	"flag"
	"os"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridsim-oss/clock"
	"github.com/tsinghua-fib-lab/gridsim-oss/engine"
	"github.com/tsinghua-fib-lab/gridsim-oss/output"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/config"
	"github.com/tsinghua-fib-lab/gridsim-oss/utils/randengine"
	"gopkg.in/yaml.v2"
)

var (
	// 模拟任务名，用于输出的数据库集合名前缀
	job = flag.String("job", "job0", "the name of the whole simulation task")
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 心跳日志间隔tick数
	heartbeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔tick数")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "gridsim")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	var c config.Config
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	} else {
		log.Panic("config file or config data must be specified")
	}
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		log.Panicf("config file load err: %v", err)
	}
	log.Infof("%+v", c)

	// 对照模式下以相同种子构造两种信控的引擎，两个实例完全独立
	modes := []string{c.Signal.Mode}
	if c.Control.Compare {
		modes = []string{config.ModeFixed, config.ModeMaxPressure}
	}
	engines := make([]*engine.Engine, 0, len(modes))
	for _, mode := range modes {
		cfg := c
		cfg.Signal.Mode = mode
		e, err := engine.New(cfg, randengine.New(c.Grid.Seed))
		if err != nil {
			log.Panicf("engine init err: %v", err)
		}
		engines = append(engines, e)
	}

	recorder, err := output.NewRecorder(c.Output, *job)
	if err != nil {
		log.Panicf("output init err: %v", err)
	}
	if recorder != nil {
		defer recorder.Close()
	}
	outputInterval := c.Output.Interval
	if outputInterval < 1 {
		outputInterval = 1
	}

	// 运行循环：外部调度器按自己的节奏推进引擎，这里即全速推进
	clk := clock.New(c.Control.Step)
	for ; !clk.Done(); clk.Step++ {
		for _, e := range engines {
			e.Step()
		}
		if (clk.Step+1)%int32(*heartbeatInterval) == 0 {
			for i, e := range engines {
				snap := e.Snapshot()
				log.Infof("%v [%s] cars=%.1f queued=%.1f throughput=%.1f",
					clk, modes[i], snap.TotalCars, snap.TotalQueued, snap.Throughput)
			}
		}
		if recorder != nil && (clk.Step+1)%outputInterval == 0 {
			for i, e := range engines {
				if err := recorder.Record(context.Background(), modes[i], e.Snapshot()); err != nil {
					log.Errorf("output record err: %v", err)
				}
			}
		}
	}

	// 结束统计
	for i, e := range engines {
		snap := e.Snapshot()
		log.Infof("done [%s] steps=%d cars=%.1f queued=%.1f throughput=%.1f",
			modes[i], snap.Step, snap.TotalCars, snap.TotalQueued, snap.Throughput)
	}
}
