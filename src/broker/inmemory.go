package broker

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned when publishing to a closed broker.
var ErrClosed = errors.New("broker is closed")

// InMemoryBroker keeps published messages in memory, per topic.
type InMemoryBroker struct {
	mu       sync.Mutex
	messages map[string][]Message
	closed   bool
}

// NewInMemoryBroker creates a new InMemoryBroker instance.
func NewInMemoryBroker() *InMemoryBroker {
	return &InMemoryBroker{
		messages: make(map[string][]Message),
	}
}

// Publish records the message under its topic.
func (b *InMemoryBroker) Publish(ctx context.Context, topic string, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	b.messages[topic] = append(b.messages[topic], Message{Topic: topic, Key: key, Value: value})
	return nil
}

// Messages returns a copy of the messages published to topic, oldest first.
func (b *InMemoryBroker) Messages(topic string) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Message, len(b.messages[topic]))
	copy(out, b.messages[topic])
	return out
}

// Close marks the broker closed.
func (b *InMemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
