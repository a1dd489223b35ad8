package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server 是产物目录的本地预览服务，正式发布由外部静态托管负责
type Server struct {
	outputDir string
}

func NewServer(outputDir string) *Server {
	return &Server{outputDir: outputDir}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	// 其余路径直接映射到产物目录（index.html / data.json）
	fs := http.FileServer(http.Dir(s.outputDir))
	r.NoRoute(gin.WrapH(fs))
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
