package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMessage struct {
	Value string `json:"value"`
}

func TestInMemoryQueue_PublishThenConsume(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	// Publishing before any consumer exists must not fail; the topic is
	// created lazily and buffers the message.
	require.NoError(t, q.Publish("events", testMessage{Value: "first"}))
	require.NoError(t, q.Publish("events", testMessage{Value: "second"}))

	received := make(chan testMessage, 2)
	go func() {
		_ = q.Consume("events", func(message []byte) error {
			var msg testMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				return err
			}
			received <- msg

			return nil
		})
	}()

	assert.Equal(t, "first", waitFor(t, received).Value)
	assert.Equal(t, "second", waitFor(t, received).Value)
}

func TestInMemoryQueue_HandlerErrorDoesNotStopConsuming(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	require.NoError(t, q.Publish("events", testMessage{Value: "broken"}))
	require.NoError(t, q.Publish("events", testMessage{Value: "fine"}))

	received := make(chan testMessage, 1)
	go func() {
		_ = q.Consume("events", func(message []byte) error {
			var msg testMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				return err
			}
			if msg.Value == "broken" {
				return assert.AnError
			}
			received <- msg

			return nil
		})
	}()

	assert.Equal(t, "fine", waitFor(t, received).Value)
}

func TestInMemoryQueue_CloseEndsConsume(t *testing.T) {
	q := NewInMemoryQueue()

	done := make(chan error, 1)
	go func() {
		done <- q.Consume("events", func([]byte) error { return nil })
	}()

	// Give the consumer a moment to attach before tearing down.
	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consume loop did not stop after close")
	}
}

func TestInMemoryQueue_PublishAfterCloseReturnsError(t *testing.T) {
	q := NewInMemoryQueue()

	// Warm the topic up so the channel exists and is closed by Close.
	require.NoError(t, q.Publish("events", testMessage{Value: "before"}))
	q.Close()

	err := q.Publish("events", testMessage{Value: "after"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueueClosed)

	// Same for a topic the queue has never seen.
	err = q.Publish("fresh-topic", testMessage{Value: "after"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestInMemoryQueue_ConsumeAfterCloseReturnsError(t *testing.T) {
	q := NewInMemoryQueue()
	q.Close()

	// A topic first seen after Close must not create a fresh channel that
	// would leave this consumer blocked forever.
	err := q.Consume("fresh-topic", func([]byte) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestInMemoryQueue_PublishUnmarshalableMessage(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	err := q.Publish("events", func() {})
	assert.Error(t, err)
}

func TestInMemoryQueue_FullTopicRejectsPublish(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	for i := 0; i < topicBuffer; i++ {
		require.NoError(t, q.Publish("events", testMessage{Value: "x"}))
	}

	err := q.Publish("events", testMessage{Value: "overflow"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTopicFull)
}

func waitFor(t *testing.T, ch chan testMessage) testMessage {
	t.Helper()

	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return testMessage{}
	}
}
