package queue

// Handler processes one raw message from a topic.
type Handler func(message []byte) error

// Queue is a minimal topic pub/sub used for entity-change events.
type Queue interface {
	Publish(topic string, message interface{}) error
	Consume(topic string, handler Handler) error
	Close()
}
