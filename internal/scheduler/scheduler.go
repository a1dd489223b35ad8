package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rlwrld/newsclip/internal/pipeline"
)

// Scheduler 按 cron 表达式周期性地执行一轮流水线。
// 单轮失败只记录日志，进程保持运行等待下一轮。
type Scheduler struct {
	cron *cron.Cron
	pipe *pipeline.Pipeline
}

func New(spec string, pipe *pipeline.Pipeline) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, pipe: pipe}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 启动后先跑一轮，不必等到下一个整点
	const startupDelay = 5 * time.Second
	time.AfterFunc(startupDelay, s.runOnce)
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	if err := s.pipe.Run(context.Background()); err != nil {
		log.Printf("clip run failed: %v", err)
	}
}
