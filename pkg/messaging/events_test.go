package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"DailyWrapped/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	subject string
	payload []byte
	err     error
}

func (c *capturePublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	if c.err != nil {
		return c.err
	}
	payload, err := encode(data)
	if err != nil {
		return err
	}
	c.subject = subject
	c.payload = payload
	return nil
}

type captureSubscriber struct {
	stream, consumer, subject string
	handler                   MessageHandler
}

func (c *captureSubscriber) Subscribe(streamName, consumerName, filterSubject string, handler MessageHandler) error {
	c.stream, c.consumer, c.subject, c.handler = streamName, consumerName, filterSubject, handler
	return nil
}

func testRecord() *model.WrappedRecord {
	storageID := "img-1"
	return &model.WrappedRecord{
		ID:             "rec-1",
		UserID:         "u1",
		Date:           "2024-03-15",
		DesignIndex:    5,
		ImageStorageID: &storageID,
		CreatedAt:      time.Date(2024, 3, 15, 16, 30, 0, 0, time.UTC),
	}
}

func TestNotifyGeneratedRoundTrip(t *testing.T) {
	pub := &capturePublisher{}
	require.NoError(t, NewWrappedNotifier(pub).NotifyGenerated(context.Background(), testRecord()))
	assert.Equal(t, SubjectWrappedGenerated, pub.subject)

	event, err := DecodeWrappedEvent(pub.payload)
	require.NoError(t, err)
	assert.Equal(t, "rec-1", event.RecordID)
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, 5, event.DesignIndex)
	assert.True(t, event.HasImage)
}

func TestNotifyGeneratedPropagatesError(t *testing.T) {
	pub := &capturePublisher{err: errors.New("no responders")}
	assert.Error(t, NewWrappedNotifier(pub).NotifyGenerated(context.Background(), testRecord()))
}

func TestDecodeWrappedEventRejectsBadPayload(t *testing.T) {
	_, err := DecodeWrappedEvent([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeWrappedEvent([]byte(`{"user_id":"u1"}`))
	assert.Error(t, err)
}

func TestSubscribeWrappedEvents(t *testing.T) {
	sub := &captureSubscriber{}
	var got []model.WrappedEvent
	require.NoError(t, SubscribeWrappedEvents(sub, "api-prewarm", func(e model.WrappedEvent) error {
		got = append(got, e)
		return nil
	}))

	assert.Equal(t, WrappedStream, sub.stream)
	assert.Equal(t, "api-prewarm", sub.consumer)
	assert.Equal(t, SubjectWrappedGenerated, sub.subject)

	pub := &capturePublisher{}
	require.NoError(t, NewWrappedNotifier(pub).NotifyGenerated(context.Background(), testRecord()))
	require.NoError(t, sub.handler(pub.payload))
	require.Len(t, got, 1)
	assert.Equal(t, "rec-1", got[0].RecordID)

	assert.Error(t, sub.handler([]byte("{}")))
}

func TestEncode(t *testing.T) {
	b, err := encode("hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)

	b, err = encode([]byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	_, err = encode(make(chan int))
	assert.Error(t, err)
}

func TestSafeHandleRecoversPanic(t *testing.T) {
	err := safeHandle(func([]byte) error { panic("boom") }, nil)
	assert.Error(t, err)

	assert.NoError(t, safeHandle(func([]byte) error { return nil }, nil))
}
