package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rlwrld/newsclip/internal/config"
	"github.com/rlwrld/newsclip/internal/pipeline"
	"github.com/rlwrld/newsclip/internal/scheduler"
)

// 常驻模式：按 CRON_SPEC 周期性执行采集，适合没有外部定时器的部署环境
func main() {
	cfg := config.Load()

	p, err := pipeline.Build(cfg)
	if err != nil {
		log.Fatalf("init pipeline failed: %v", err)
	}

	s, err := scheduler.New(cfg.CronSpec, p)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()
	log.Printf("watch mode started, cron=%s", cfg.CronSpec)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	s.Stop()
}
