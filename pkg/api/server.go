package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// shutdownTimeout 优雅关闭的等待上限
const shutdownTimeout = 5 * time.Second

// Server 渲染接口的HTTP服务
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// NewServer 创建 gin 服务，port 为空时监听 8080
func NewServer(port string, readTimeout, writeTimeout time.Duration) *Server {
	if port == "" {
		port = "8080"
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:         ":" + port,
			Handler:      engine,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
	}
}

// SetupRoutes 注册健康检查与 /api/v1 下的 wrapped 路由
func (s *Server) SetupRoutes(h *Handlers) {
	s.engine.GET("/health", h.HealthCheck)
	s.engine.GET("/ready", h.ReadinessCheck)

	v1 := s.engine.Group("/api/v1")

	users := v1.Group("/users/:userId")
	users.GET("/wrapped", h.GetLatestWrapped)
	users.GET("/wrapped/view", h.ViewWrapped)

	wrapped := v1.Group("/wrapped")
	wrapped.GET("/images/:storageId", h.GetImage)
	wrapped.GET("/templates/:design", h.PreviewTemplate)
}

// Handler 返回路由，便于测试
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run 监听直到 ctx 结束，然后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("API服务器启动在 %s\n", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("正在关闭服务器...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("服务器已关闭")
	return nil
}
