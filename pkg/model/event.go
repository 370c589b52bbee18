// pkg/model/event.go
package model

import "time"

// WrappedEvent 记录生成后发布的事件
type WrappedEvent struct {
	RecordID    string    `json:"record_id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"`
	DesignIndex int       `json:"design_index"`
	HasImage    bool      `json:"has_image"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewWrappedEvent 由记录构造事件
func NewWrappedEvent(record *WrappedRecord) WrappedEvent {
	return WrappedEvent{
		RecordID:    record.ID,
		UserID:      record.UserID,
		Date:        record.Date,
		DesignIndex: record.DesignIndex,
		HasImage:    record.HasImage(),
		CreatedAt:   record.CreatedAt,
	}
}
