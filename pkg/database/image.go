// pkg/database/image.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"DailyWrapped/pkg/model"
)

type ImageDB struct {
	db *gorm.DB
}

func (p *Postgres) Images() *ImageDB {
	return &ImageDB{db: p.db}
}

// Store 保存图片，返回存储ID
func (i *ImageDB) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	img := &model.StoredImage{
		ContentType: contentType,
		Data:        data,
		Size:        len(data),
	}
	if err := i.db.WithContext(ctx).Create(img).Error; err != nil {
		return "", fmt.Errorf("保存图片失败: %w", err)
	}
	return img.ID, nil
}

// GetImage 不存在时返回 nil, nil
func (i *ImageDB) GetImage(ctx context.Context, id string) (*model.StoredImage, error) {
	var img model.StoredImage
	err := i.db.WithContext(ctx).First(&img, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("获取图片失败: %w", err)
	}
	return &img, nil
}

// DeleteBefore 删除 cutoff 之前保存的图片
func (i *ImageDB) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := i.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.StoredImage{})
	if result.Error != nil {
		return 0, fmt.Errorf("删除过期图片失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}
