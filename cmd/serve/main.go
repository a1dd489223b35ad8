package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/rlwrld/newsclip/internal/api"
	"github.com/rlwrld/newsclip/internal/config"
)

// 本地预览产物目录：线上发布交给外部静态托管，这里只是开发时看效果用
func main() {
	cfg := config.Load()

	r := gin.Default()
	api.NewServer(cfg.OutputDir).RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("preview server listening on %s (dir=%s)", addr, cfg.OutputDir)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
