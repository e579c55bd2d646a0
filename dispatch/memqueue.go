package dispatch

import (
	"context"
	"sync"
)

const memQueueCapacity = 64

// MemQueue is an in-process QueueService used when no broker is configured.
// Jobs survive only as long as the process does; that loss window is the
// accepted tradeoff of running without AMQP.
type MemQueue struct {
	mu     sync.Mutex
	topics map[string]chan []byte
	closed bool
}

func NewMemQueue() *MemQueue {
	return &MemQueue{
		topics: make(map[string]chan []byte),
	}
}

func (q *MemQueue) topic(name string) chan []byte {
	q.mu.Lock()
	defer q.mu.Unlock()

	ch, ok := q.topics[name]
	if !ok {
		ch = make(chan []byte, memQueueCapacity)
		q.topics[name] = ch
	}

	return ch
}

func (q *MemQueue) Publish(ctx context.Context, topic string, body []byte) error {
	select {
	case q.topic(topic) <- body:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemQueue) Consume(ctx context.Context, topic string) (<-chan []byte, error) {
	ch := q.topic(topic)
	messages := make(chan []byte)

	go func() {
		defer close(messages)

		for {
			select {
			case <-ctx.Done():
				return
			case body, ok := <-ch:
				if !ok {
					return
				}
				messages <- body
			}
		}
	}()

	return messages, nil
}

func (q *MemQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true

	for _, ch := range q.topics {
		close(ch)
	}

	return nil
}
