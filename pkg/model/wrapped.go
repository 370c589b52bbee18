// pkg/model/wrapped.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DesignCount 可选视觉模板数量
const DesignCount = 10

// TopUsageLimit 统计中保留的模型/提供商数量
const TopUsageLimit = 5

// ModelUsage 模型用量
type ModelUsage struct {
	Model  string `json:"model"`
	Tokens int64  `json:"tokens"`
}

// ProviderUsage 提供商用量
type ProviderUsage struct {
	Provider string `json:"provider"`
	Tokens   int64  `json:"tokens"`
}

// WrappedStats 统计窗口内的用量快照
type WrappedStats struct {
	TotalTokens      int64           `json:"totalTokens"`
	PromptTokens     int64           `json:"promptTokens"`
	CompletionTokens int64           `json:"completionTokens"`
	TotalMessages    int64           `json:"totalMessages"`
	Cost             float64         `json:"cost"`
	TopModels        []ModelUsage    `json:"topModels"`
	TopProviders     []ProviderUsage `json:"topProviders"`
}

// HasActivity 窗口内是否有任何用量
func (s WrappedStats) HasActivity() bool {
	return s.TotalTokens != 0 || s.TotalMessages != 0
}

// TopModel 返回用量最高的模型名，没有时返回空串
func (s WrappedStats) TopModel() string {
	if len(s.TopModels) == 0 {
		return ""
	}
	return s.TopModels[0].Model
}

// Value 实现 driver.Valuer，以 jsonb 存储
func (s WrappedStats) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("序列化统计数据失败: %w", err)
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner
func (s *WrappedStats) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*s = WrappedStats{}
		return nil
	default:
		return fmt.Errorf("无法解析统计数据类型: %T", value)
	}
	return json.Unmarshal(data, s)
}

// WrappedRecord 每个用户每天一条的 wrapped 记录，创建后不再修改
type WrappedRecord struct {
	ID             string       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string       `gorm:"not null;index:idx_wrapped_user_date,priority:1" json:"userId"`
	Date           string       `gorm:"type:varchar(10);not null;index:idx_wrapped_user_date,priority:2" json:"date"` // YYYY-MM-DD，太平洋时间
	DesignIndex    int          `gorm:"not null" json:"designIndex"`
	ImageStorageID *string      `gorm:"type:uuid" json:"imageStorageId,omitempty"`
	Stats          WrappedStats `gorm:"type:jsonb;not null" json:"stats"`
	CreatedAt      time.Time    `gorm:"index" json:"createdAt"`
}

func (w *WrappedRecord) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

// TableName 表名
func (WrappedRecord) TableName() string {
	return "wrapped_records"
}

// HasImage 是否有已存储的生成图片
func (w *WrappedRecord) HasImage() bool {
	return w.ImageStorageID != nil && *w.ImageStorageID != ""
}
