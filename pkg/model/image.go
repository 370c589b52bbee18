// pkg/model/image.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoredImage 生成图片的二进制内容
type StoredImage struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ContentType string    `gorm:"type:varchar(50);not null" json:"content_type"`
	Data        []byte    `gorm:"type:bytea;not null" json:"-"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (s *StoredImage) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName 表名
func (StoredImage) TableName() string {
	return "wrapped_images"
}
