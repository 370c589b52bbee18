// pkg/messaging/nats.go
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// WrappedStream wrapped 事件流
	WrappedStream = "WRAPPED_STREAM"
	// SubjectWrappedGenerated 记录生成后发布的主题
	SubjectWrappedGenerated = "wrapped.generated"
)

// wrappedStreamConfig 事件只需保留到记录过期
var wrappedStreamConfig = jetstream.StreamConfig{
	Name:        WrappedStream,
	Subjects:    []string{"wrapped.*"},
	Description: "wrapped 生成事件",
	Retention:   jetstream.LimitsPolicy,
	MaxMsgs:     100000,
	MaxBytes:    50 * 1024 * 1024,
	MaxAge:      24 * time.Hour,
}

// MessageHandler 消息处理函数，返回错误时消息会被 Nak 重投
type MessageHandler func(data []byte) error

// NATSClient JetStream 客户端
type NATSClient struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	consumers []string
	wg        sync.WaitGroup
}

// NewNATSClient 连接 NATS 并确保 wrapped 事件流存在
func NewNATSClient(url string) (*NATSClient, error) {
	conn, err := nats.Connect(url, connectOptions()...)
	if err != nil {
		return nil, fmt.Errorf("连接NATS失败: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建JetStream失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &NATSClient{conn: conn, js: js, ctx: ctx, cancel: cancel}

	if _, err := js.CreateOrUpdateStream(ctx, wrappedStreamConfig); err != nil {
		log.Printf("警告: 创建Stream %s 失败: %v", WrappedStream, err)
	}
	return c, nil
}

func connectOptions() []nats.Option {
	return []nats.Option{
		nats.Name("daily-wrapped"),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS连接断开: %v", err)
			}
		}),
		nats.ReconnectHandler(func(conn *nats.Conn) {
			log.Printf("NATS已重连: %s", conn.ConnectedUrl())
		}),
	}
}

// Publish 发布到指定主题，非 []byte/string 的数据按 JSON 编码
func (c *NATSClient) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := encode(data)
	if err != nil {
		return err
	}

	ack, err := c.js.Publish(ctx, subject, payload)
	if err != nil {
		return fmt.Errorf("发布消息到 %s 失败: %w", subject, err)
	}
	log.Printf("已发布 %s: stream=%s seq=%d", subject, ack.Stream, ack.Sequence)
	return nil
}

func encode(data interface{}) ([]byte, error) {
	switch v := data.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("序列化数据失败: %w", err)
	}
	return payload, nil
}

// Subscribe 创建持久消费者并在后台拉取消息
func (c *NATSClient) Subscribe(streamName, consumerName, filterSubject string, handler MessageHandler) error {
	consumer, err := c.js.CreateOrUpdateConsumer(c.ctx, streamName, jetstream.ConsumerConfig{
		Durable:       consumerName,
		FilterSubject: filterSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverNewPolicy,
	})
	if err != nil {
		return fmt.Errorf("创建消费者 %s 失败: %w", consumerName, err)
	}

	iter, err := consumer.Messages(jetstream.PullMaxMessages(10))
	if err != nil {
		return fmt.Errorf("获取 %s 消息迭代器失败: %w", consumerName, err)
	}

	c.mu.Lock()
	c.consumers = append(c.consumers, consumerName)
	c.mu.Unlock()

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		iter.Stop()
	}()
	go func() {
		defer c.wg.Done()
		c.consume(iter, consumerName, handler)
	}()

	log.Printf("已订阅 %s (Stream: %s, Consumer: %s)", filterSubject, streamName, consumerName)
	return nil
}

func (c *NATSClient) consume(iter jetstream.MessagesContext, consumerName string, handler MessageHandler) {
	for {
		msg, err := iter.Next()
		if errors.Is(err, jetstream.ErrMsgIteratorClosed) {
			return
		}
		if err != nil {
			log.Printf("消费者 %s 拉取消息失败: %v", consumerName, err)
			time.Sleep(time.Second)
			continue
		}

		if err := safeHandle(handler, msg.Data()); err != nil {
			log.Printf("消费者 %s 处理消息失败: %v", consumerName, err)
			_ = msg.Nak()
			continue
		}
		_ = msg.Ack()
	}
}

// safeHandle 处理函数 panic 时转为错误，消费循环继续
func safeHandle(handler MessageHandler, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("处理消息异常: %v", r)
		}
	}()
	return handler(data)
}

// IsConnected 检查连接状态
func (c *NATSClient) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Close 停止所有消费者并关闭连接
func (c *NATSClient) Close() error {
	c.cancel()
	c.wg.Wait()

	c.mu.Lock()
	log.Printf("NATS消费者已停止: %v", c.consumers)
	c.consumers = nil
	c.mu.Unlock()

	c.conn.Close()
	return nil
}
