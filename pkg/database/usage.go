// pkg/database/usage.go
package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"DailyWrapped/pkg/model"
)

type UsageDB struct {
	db *gorm.DB
}

func (p *Postgres) Usage() *UsageDB {
	return &UsageDB{db: p.db}
}

func (u *UsageDB) SaveUsage(ctx context.Context, msg *model.UsageMessage) error {
	if msg.TotalTokens == 0 {
		msg.TotalTokens = msg.PromptTokens + msg.CompletionTokens
	}
	return u.db.WithContext(ctx).Create(msg).Error
}

type usageTotals struct {
	TotalTokens      int64
	PromptTokens     int64
	CompletionTokens int64
	TotalMessages    int64
	Cost             float64
}

type groupTotal struct {
	Name   string
	Tokens int64
}

// GetStats 汇总 windowStart 之后的用量
func (u *UsageDB) GetStats(ctx context.Context, userID string, windowStart time.Time) (model.WrappedStats, error) {
	var totals usageTotals
	err := u.db.WithContext(ctx).Model(&model.UsageMessage{}).
		Select("COALESCE(SUM(total_tokens), 0) AS total_tokens, " +
			"COALESCE(SUM(prompt_tokens), 0) AS prompt_tokens, " +
			"COALESCE(SUM(completion_tokens), 0) AS completion_tokens, " +
			"COUNT(*) AS total_messages, " +
			"COALESCE(SUM(cost), 0) AS cost").
		Where("user_id = ? AND created_at >= ?", userID, windowStart).
		Scan(&totals).Error
	if err != nil {
		return model.WrappedStats{}, fmt.Errorf("汇总用量失败: %w", err)
	}

	stats := model.WrappedStats{
		TotalTokens:      totals.TotalTokens,
		PromptTokens:     totals.PromptTokens,
		CompletionTokens: totals.CompletionTokens,
		TotalMessages:    totals.TotalMessages,
		Cost:             totals.Cost,
	}
	if !stats.HasActivity() {
		return stats, nil
	}

	models, err := u.topBy(ctx, "model", userID, windowStart)
	if err != nil {
		return model.WrappedStats{}, err
	}
	for _, g := range models {
		stats.TopModels = append(stats.TopModels, model.ModelUsage{Model: g.Name, Tokens: g.Tokens})
	}

	providers, err := u.topBy(ctx, "provider", userID, windowStart)
	if err != nil {
		return model.WrappedStats{}, err
	}
	for _, g := range providers {
		stats.TopProviders = append(stats.TopProviders, model.ProviderUsage{Provider: g.Name, Tokens: g.Tokens})
	}

	return stats, nil
}

// topBy 按列分组取用量前几名，column 只能是内部常量
func (u *UsageDB) topBy(ctx context.Context, column, userID string, windowStart time.Time) ([]groupTotal, error) {
	var groups []groupTotal
	err := u.db.WithContext(ctx).Model(&model.UsageMessage{}).
		Select(column+" AS name, SUM(total_tokens) AS tokens").
		Where("user_id = ? AND created_at >= ? AND "+column+" <> ''", userID, windowStart).
		Group(column).
		Order("tokens DESC, name ASC").
		Limit(model.TopUsageLimit).
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("按%s汇总用量失败: %w", column, err)
	}
	return groups, nil
}

// GetActiveUsers 返回 cutoff 之后有消息的用户
func (u *UsageDB) GetActiveUsers(ctx context.Context, cutoff time.Time) ([]string, error) {
	var users []string
	err := u.db.WithContext(ctx).Model(&model.UsageMessage{}).
		Distinct("user_id").
		Where("created_at >= ?", cutoff).
		Order("user_id").
		Pluck("user_id", &users).Error
	if err != nil {
		return nil, fmt.Errorf("查询活跃用户失败: %w", err)
	}
	return users, nil
}
