package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"DailyWrapped/pkg/api"
	"DailyWrapped/pkg/app"
	"DailyWrapped/pkg/config"
	"DailyWrapped/pkg/messaging"
	"DailyWrapped/pkg/model"
)

func main() {
	log.Println("启动API服务...")

	// 加载配置
	cfg, err := config.Resolve()
	if err != nil {
		log.Fatalf("加载配置失败: %v\n", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("初始化依赖失败: %v\n", err)
	}
	defer a.Close()

	cache, err := api.NewRenderCache(cfg.API.CacheMaxItems)
	if err != nil {
		log.Fatalf("创建渲染缓存失败: %v\n", err)
	}
	defer cache.Close()

	handlers := api.NewHandlers(a.Records, a.Images, a.Monitor, cache, a.Ready)

	// 订阅生成事件，预先渲染没有图片的记录
	if a.NATS != nil {
		err := messaging.SubscribeWrappedEvents(a.NATS, cfg.App.Name+"-api-prewarm", func(event model.WrappedEvent) error {
			return handlers.Prewarm(context.Background(), event)
		})
		if err != nil {
			log.Printf("订阅wrapped事件失败: %v\n", err)
		}
	}

	// 创建并启动服务器
	server := api.NewServer(cfg.API.Port, cfg.API.ReadTimeout, cfg.API.WriteTimeout)
	server.SetupRoutes(handlers)

	// 收到中断信号后优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Printf("API服务异常退出: %v\n", err)
	}
}
