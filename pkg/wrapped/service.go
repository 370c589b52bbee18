// Package wrapped 负责每日 wrapped 的生成：单用户编排、批量扇出和过期清理
package wrapped

import (
	"context"
	"fmt"
	"log"
	"time"

	"DailyWrapped/pkg/imagegen"
	"DailyWrapped/pkg/model"
)

// DateLayout wrapped 日期格式
const DateLayout = "2006-01-02"

// StatsSource 用量统计查询
type StatsSource interface {
	GetStats(ctx context.Context, userID string, windowStart time.Time) (model.WrappedStats, error)
	GetActiveUsers(ctx context.Context, cutoff time.Time) ([]string, error)
}

// RecordStore wrapped 记录存储
type RecordStore interface {
	CreateWrappedRecord(ctx context.Context, record *model.WrappedRecord) error
	ExistsForDate(ctx context.Context, userID, date string) (bool, error)
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// ImageGenerator 图片生成适配器
type ImageGenerator interface {
	GenerateWrappedImage(ctx context.Context, designIndex int, stats model.WrappedStats, date string) imagegen.Result
}

// Notifier 记录生成后的通知
type Notifier interface {
	NotifyGenerated(ctx context.Context, record *model.WrappedRecord) error
}

// BlobSweeper 清理过期图片
type BlobSweeper interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Outcome 单用户生成结果
type Outcome string

const (
	OutcomeGenerated  Outcome = "generated"
	OutcomeNoActivity Outcome = "no_activity"
	OutcomeExists     Outcome = "exists"
)

// Options 服务参数
type Options struct {
	Location  *time.Location
	Window    time.Duration
	Retention time.Duration
	Now       func() time.Time
	Notifier  Notifier
	// Blobs 非空时图片与记录使用相同的保留期
	Blobs BlobSweeper
}

// Service wrapped 生成服务
type Service struct {
	stats     StatsSource
	store     RecordStore
	images    ImageGenerator
	notifier  Notifier
	blobs     BlobSweeper
	loc       *time.Location
	window    time.Duration
	retention time.Duration
	now       func() time.Time
}

// NewService 创建生成服务
func NewService(stats StatsSource, store RecordStore, images ImageGenerator, opts Options) *Service {
	s := &Service{
		stats:     stats,
		store:     store,
		images:    images,
		notifier:  opts.Notifier,
		blobs:     opts.Blobs,
		loc:       opts.Location,
		window:    opts.Window,
		retention: opts.Retention,
		now:       opts.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.window <= 0 {
		s.window = 24 * time.Hour
	}
	if s.retention <= 0 {
		s.retention = 24 * time.Hour
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// DesignIndexFor 设计编号只取决于当天是几号
func DesignIndexFor(t time.Time) int {
	return t.Day() % model.DesignCount
}

// DateFor 返回 t 在 loc 时区的日期串
func DateFor(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// GenerateForUser 为单个用户生成当天的 wrapped
func (s *Service) GenerateForUser(ctx context.Context, userID string) (Outcome, error) {
	now := s.now()
	local := now.In(s.loc)
	date := local.Format(DateLayout)
	designIndex := DesignIndexFor(local)

	exists, err := s.store.ExistsForDate(ctx, userID, date)
	if err != nil {
		return "", fmt.Errorf("查询已有wrapped失败: %w", err)
	}
	if exists {
		log.Printf("跳过用户 %s: %s 的wrapped已存在\n", userID, date)
		return OutcomeExists, nil
	}

	stats, err := s.stats.GetStats(ctx, userID, now.Add(-s.window))
	if err != nil {
		return "", fmt.Errorf("获取用量统计失败: %w", err)
	}

	// 窗口内没有任何用量，不生成
	if !stats.HasActivity() {
		log.Printf("跳过用户 %s: 无活动\n", userID)
		return OutcomeNoActivity, nil
	}

	result := s.images.GenerateWrappedImage(ctx, designIndex, stats, date)

	record := &model.WrappedRecord{
		UserID:      userID,
		Date:        date,
		DesignIndex: designIndex,
		Stats:       stats,
		CreatedAt:   now,
	}
	if storageID, ok := result.StorageID(); ok {
		record.ImageStorageID = &storageID
	}

	if err := s.store.CreateWrappedRecord(ctx, record); err != nil {
		return "", fmt.Errorf("保存wrapped记录失败: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyGenerated(ctx, record); err != nil {
			log.Printf("发布wrapped事件失败: %v\n", err)
		}
	}

	log.Printf("已生成wrapped: 用户=%s, 设计=%d, 图片=%t\n", userID, designIndex, record.HasImage())
	return OutcomeGenerated, nil
}

// DeleteExpired 删除超过保留期的记录
func (s *Service) DeleteExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	deleted, err := s.store.DeleteExpired(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("清理过期wrapped失败: %w", err)
	}
	if deleted > 0 {
		log.Printf("已清理%d条过期wrapped\n", deleted)
	}

	// 图片清理失败不影响记录清理结果
	if s.blobs != nil {
		images, err := s.blobs.DeleteBefore(ctx, cutoff)
		if err != nil {
			log.Printf("清理过期图片失败: %v\n", err)
		} else if images > 0 {
			log.Printf("已清理%d张过期图片\n", images)
		}
	}
	return deleted, nil
}
