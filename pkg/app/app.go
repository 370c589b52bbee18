// Package app 根据配置组装存储、图片生成、消息和生成服务，供各个命令共用
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"DailyWrapped/pkg/api"
	"DailyWrapped/pkg/config"
	"DailyWrapped/pkg/database"
	"DailyWrapped/pkg/imagegen"
	"DailyWrapped/pkg/messaging"
	"DailyWrapped/pkg/model"
	"DailyWrapped/pkg/monitor"
	"DailyWrapped/pkg/repository"
	"DailyWrapped/pkg/storage/sqlite"
	"DailyWrapped/pkg/wrapped"
)

// RecordStore 记录的读写
type RecordStore interface {
	wrapped.RecordStore
	api.RecordReader
	ListWrapped(ctx context.Context) ([]*model.WrappedRecord, error)
}

// ImageStore 图片的读写与清理
type ImageStore interface {
	imagegen.BlobStore
	api.ImageReader
	wrapped.BlobSweeper
}

// UsageStore 用量的读写
type UsageStore interface {
	wrapped.StatsSource
	SaveUsage(ctx context.Context, msg *model.UsageMessage) error
}

// App 组装好的依赖
type App struct {
	Config   *config.Config
	Location *time.Location
	Usage    UsageStore
	Records  RecordStore
	Images   ImageStore
	Monitor  *monitor.Monitor
	NATS     *messaging.NATSClient

	db      *database.Postgres
	closers []func() error
}

// New 按配置创建依赖，NATS 不可用时降级为不发布事件
func New(cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Location: loc,
		Monitor: monitor.NewMonitor(func(component, status, message string) {
			log.Printf("组件告警: %s 状态变为 %s: %s\n", component, status, message)
		}),
	}
	for _, c := range []string{monitor.ComponentBatch, monitor.ComponentSweep, monitor.ComponentImagen} {
		a.Monitor.RegisterComponent(c)
	}

	var memory *repository.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err := database.NewPostgres(cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
		a.Usage = db.Usage()
		a.Records = db.Wrapped()
	default:
		log.Println("使用内存存储，数据不会持久化")
		memory = repository.NewRepository()
		a.Usage = memory
		a.Records = memory
	}

	switch {
	case cfg.Blob.Driver == "sqlite":
		blobs, err := sqlite.New(cfg.Blob.SQLitePath)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, blobs.Close)
		a.Images = blobs
	case cfg.Blob.Driver == "postgres" && a.db != nil:
		a.Images = a.db.Images()
	default:
		if memory == nil {
			memory = repository.NewRepository()
		}
		a.Images = memory
	}

	if cfg.NATS.Enabled {
		nc, err := messaging.NewNATSClient(cfg.NATS.URL)
		if err != nil {
			log.Printf("连接NATS失败，生成事件不会发布: %v\n", err)
		} else {
			a.NATS = nc
			a.closers = append(a.closers, nc.Close)
		}
	}

	return a, nil
}

// ImageGenerator 创建图片生成适配器，未配置 API key 时始终降级
func (a *App) ImageGenerator() *imagegen.Generator {
	var client imagegen.ImageClient
	if a.Config.Imagen.APIKey != "" {
		client = imagegen.NewImagenClient(
			a.Config.Imagen.BaseURL,
			a.Config.Imagen.APIKey,
			a.Config.Imagen.Model,
			a.Config.Imagen.Timeout,
			a.Config.Imagen.RequestsPerMinute,
		)
	} else {
		log.Println("警告: 未配置 GOOGLE_AI_API_KEY，将只使用模板渲染")
	}
	return imagegen.NewGenerator(client, a.Images, a.Monitor)
}

// Service 创建生成服务
func (a *App) Service() *wrapped.Service {
	opts := wrapped.Options{
		Location:  a.Location,
		Window:    a.Config.Wrapped.Window,
		Retention: a.Config.Wrapped.Retention,
		Blobs:     a.Images,
	}
	if a.NATS != nil {
		opts.Notifier = messaging.NewWrappedNotifier(a.NATS)
	}
	return wrapped.NewService(a.Usage, a.Records, a.ImageGenerator(), opts)
}

// Ready 检查数据库与已启用的 NATS 是否可用
func (a *App) Ready(ctx context.Context) error {
	if a.db != nil {
		if err := a.db.Ping(); err != nil {
			return fmt.Errorf("%w: 数据库不可用: %v", api.ErrNotReady, err)
		}
	}
	if a.Config.NATS.Enabled && (a.NATS == nil || !a.NATS.IsConnected()) {
		return fmt.Errorf("%w: NATS未连接", api.ErrNotReady)
	}
	return nil
}

// Close 按创建的逆序释放资源
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("关闭资源失败: %v\n", err)
		}
	}
	a.closers = nil
}
