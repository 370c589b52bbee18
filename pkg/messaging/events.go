package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"DailyWrapped/pkg/model"
)

// Publisher 消息发布
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Subscriber 消息订阅
type Subscriber interface {
	Subscribe(streamName, consumerName, filterSubject string, handler MessageHandler) error
}

// WrappedNotifier 把生成的记录发布为 wrapped.generated 事件
type WrappedNotifier struct {
	publisher Publisher
}

// NewWrappedNotifier 创建事件通知器
func NewWrappedNotifier(publisher Publisher) *WrappedNotifier {
	return &WrappedNotifier{publisher: publisher}
}

// NotifyGenerated 发布记录生成事件
func (n *WrappedNotifier) NotifyGenerated(ctx context.Context, record *model.WrappedRecord) error {
	return n.publisher.Publish(ctx, SubjectWrappedGenerated, model.NewWrappedEvent(record))
}

// DecodeWrappedEvent 解析 wrapped.generated 消息
func DecodeWrappedEvent(data []byte) (model.WrappedEvent, error) {
	var event model.WrappedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return event, fmt.Errorf("解析wrapped事件失败: %w", err)
	}
	if event.RecordID == "" || event.UserID == "" {
		return event, fmt.Errorf("wrapped事件缺少记录或用户ID")
	}
	return event, nil
}

// SubscribeWrappedEvents 订阅 wrapped.generated 事件
func SubscribeWrappedEvents(sub Subscriber, consumerName string, handle func(model.WrappedEvent) error) error {
	return sub.Subscribe(WrappedStream, consumerName, SubjectWrappedGenerated, func(data []byte) error {
		event, err := DecodeWrappedEvent(data)
		if err != nil {
			return err
		}
		return handle(event)
	})
}
