package queue

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/pkg/errors"
)

const topicBuffer = 256

var (
	ErrTopicFull   = errors.New("topic buffer full")
	ErrQueueClosed = errors.New("queue closed")
)

// InMemoryQueue is an in-process implementation of Queue. Topics are created
// lazily on first publish or consume, so publishers never race consumers at
// startup.
type InMemoryQueue struct {
	mu     sync.Mutex
	topics map[string]chan []byte
	closed bool
}

// NewInMemoryQueue creates a new InMemoryQueue.
func NewInMemoryQueue() Queue {
	return &InMemoryQueue{
		topics: make(map[string]chan []byte),
	}
}

func (q *InMemoryQueue) topic(name string) (chan []byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrQueueClosed
	}

	ch, ok := q.topics[name]
	if !ok {
		ch = make(chan []byte, topicBuffer)
		q.topics[name] = ch
	}

	return ch, nil
}

// Publish marshals the message and enqueues it on the topic. Publishing
// never blocks; a full topic returns ErrTopicFull and a closed queue
// returns ErrQueueClosed. The enqueue happens under the queue mutex so a
// concurrent Close can never close the channel mid-send.
func (q *InMemoryQueue) Publish(topic string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return errors.Wrap(err, "marshal queue message")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return errors.Wrapf(ErrQueueClosed, "topic %s", topic)
	}

	ch, ok := q.topics[topic]
	if !ok {
		ch = make(chan []byte, topicBuffer)
		q.topics[topic] = ch
	}

	select {
	case ch <- payload:
		return nil
	default:
		return errors.Wrapf(ErrTopicFull, "topic %s", topic)
	}
}

// Consume reads messages from the topic until the queue is closed, passing
// each to the handler. Handler errors are logged and do not stop the loop.
// Consuming a topic on an already closed queue returns ErrQueueClosed.
func (q *InMemoryQueue) Consume(topic string, handler Handler) error {
	ch, err := q.topic(topic)
	if err != nil {
		return err
	}

	for message := range ch {
		if err := handler(message); err != nil {
			log.Printf("queue: handler error on topic %s: %v", topic, err)
		}
	}

	return nil
}

// Close shuts every topic down, ending all Consume loops.
func (q *InMemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true

	for _, ch := range q.topics {
		close(ch)
	}
}
