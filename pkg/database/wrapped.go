// pkg/database/wrapped.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"DailyWrapped/pkg/model"
)

type WrappedDB struct {
	db *gorm.DB
}

func (p *Postgres) Wrapped() *WrappedDB {
	return &WrappedDB{db: p.db}
}

func (w *WrappedDB) CreateWrappedRecord(ctx context.Context, record *model.WrappedRecord) error {
	if err := w.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("保存wrapped记录失败: %w", err)
	}
	return nil
}

func (w *WrappedDB) ExistsForDate(ctx context.Context, userID, date string) (bool, error) {
	var count int64
	err := w.db.WithContext(ctx).Model(&model.WrappedRecord{}).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询wrapped记录失败: %w", err)
	}
	return count > 0, nil
}

// DeleteExpired 删除 cutoff 之前创建的记录，返回删除条数
func (w *WrappedDB) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := w.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.WrappedRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("删除过期wrapped失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// GetLatestWrapped 没有记录时返回 nil, nil
func (w *WrappedDB) GetLatestWrapped(ctx context.Context, userID string) (*model.WrappedRecord, error) {
	var record model.WrappedRecord
	err := w.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("获取wrapped记录失败: %w", err)
	}
	return &record, nil
}

func (w *WrappedDB) ListWrapped(ctx context.Context) ([]*model.WrappedRecord, error) {
	var records []*model.WrappedRecord
	err := w.db.WithContext(ctx).Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("获取wrapped列表失败: %w", err)
	}
	return records, nil
}
