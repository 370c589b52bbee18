// Package imagegen 调用外部文生图接口生成 wrapped 图片，任何失败都降级为模板渲染
package imagegen

import (
	"context"
	"log"

	"DailyWrapped/pkg/model"
)

// ImageClient 文生图接口
type ImageClient interface {
	Generate(ctx context.Context, prompt string) (*Image, error)
}

// BlobStore 图片二进制存储
type BlobStore interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
}

// HealthReporter 上报组件健康状态
type HealthReporter interface {
	UpdateStatus(component, status, message string)
}

// Result 生成结果：Available(存储ID) 或 Unavailable
type Result struct {
	storageID string
}

// Available 图片已生成并存储
func Available(storageID string) Result {
	return Result{storageID: storageID}
}

// Unavailable 图片不可用，渲染时使用模板
func Unavailable() Result {
	return Result{}
}

// StorageID 返回存储ID以及是否可用
func (r Result) StorageID() (string, bool) {
	return r.storageID, r.storageID != ""
}

// Generator 图片生成适配器
type Generator struct {
	client ImageClient
	blobs  BlobStore
	health HealthReporter
}

// NewGenerator 创建图片生成适配器，client 为 nil 表示未配置
func NewGenerator(client ImageClient, blobs BlobStore, health HealthReporter) *Generator {
	return &Generator{
		client: client,
		blobs:  blobs,
		health: health,
	}
}

// GenerateWrappedImage 生成并存储 wrapped 图片，从不返回错误
func (g *Generator) GenerateWrappedImage(ctx context.Context, designIndex int, stats model.WrappedStats, date string) Result {
	if g.client == nil {
		log.Println("图片生成未配置，使用模板渲染")
		g.report("unhealthy", ErrMissingAPIKey.Error())
		return Unavailable()
	}

	prompt := BuildPrompt(designIndex, stats, date)

	image, err := g.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("生成wrapped图片失败: 设计=%d, 日期=%s, 错误=%v\n", designIndex, date, err)
		g.report("degraded", err.Error())
		return Unavailable()
	}

	storageID, err := g.blobs.Store(ctx, image.Data, image.ContentType)
	if err != nil {
		log.Printf("存储wrapped图片失败: %v\n", err)
		g.report("degraded", err.Error())
		return Unavailable()
	}

	g.report("healthy", "")
	return Available(storageID)
}

func (g *Generator) report(status, message string) {
	if g.health != nil {
		g.health.UpdateStatus("imagen", status, message)
	}
}
