package visiontech

import "context"

// QueueService carries dispatch jobs between the request path and the
// background worker. Publish must not block on delivery work.
type QueueService interface {
	Publish(ctx context.Context, topic string, body []byte) error
	Consume(ctx context.Context, topic string) (<-chan []byte, error)
	Close() error
}
