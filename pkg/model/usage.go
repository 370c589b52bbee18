// pkg/model/usage.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsageMessage CLI 同步上来的单条消息用量，统计聚合的数据源
type UsageMessage struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"not null;index:idx_usage_user_created,priority:1" json:"user_id"`
	SessionID        string    `gorm:"index" json:"session_id"`
	Source           string    `gorm:"type:varchar(30)" json:"source"` // opencode, claude-code, factory-droid
	Model            string    `gorm:"type:varchar(100)" json:"model"`
	Provider         string    `gorm:"type:varchar(50)" json:"provider"`
	PromptTokens     int64     `gorm:"default:0" json:"prompt_tokens"`
	CompletionTokens int64     `gorm:"default:0" json:"completion_tokens"`
	TotalTokens      int64     `gorm:"default:0" json:"total_tokens"`
	Cost             float64   `gorm:"type:decimal(12,6);default:0" json:"cost"`
	CreatedAt        time.Time `gorm:"index:idx_usage_user_created,priority:2;index" json:"created_at"`
}

func (u *UsageMessage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName 表名
func (UsageMessage) TableName() string {
	return "usage_messages"
}
