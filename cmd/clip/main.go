package main

import (
	"context"
	"log"

	"github.com/rlwrld/newsclip/internal/config"
	"github.com/rlwrld/newsclip/internal/pipeline"
)

// 单次执行入口：跑一轮完整的采集与渲染后退出。
// 配置错误或产物写入失败以非零码退出，单个来源抓取失败不影响退出码。
func main() {
	cfg := config.Load()

	p, err := pipeline.Build(cfg)
	if err != nil {
		log.Fatalf("init pipeline failed: %v", err)
	}

	if err := p.Run(context.Background()); err != nil {
		log.Fatalf("clip run failed: %v", err)
	}
}
