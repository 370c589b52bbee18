package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DailyWrapped/pkg/app"
	"DailyWrapped/pkg/config"
	"DailyWrapped/pkg/scheduler"
)

func main() {
	log.Println("启动每日wrapped生成服务...")

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

	sched := scheduler.NewScheduler(a.Service(), a.Monitor, scheduler.Options{
		Location:     a.Location,
		GenerateSpec: cfg.Scheduler.GenerateSpec,
		CleanupSpec:  cfg.Scheduler.CleanupSpec,
		JobTimeout:   2 * time.Hour,
	})
	if err := sched.Start(); err != nil {
		log.Fatalf("启动调度器失败: %v\n", err)
	}

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("正在关闭生成服务...")
	sched.Stop()
}
