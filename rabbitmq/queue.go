package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueService is the AMQP-backed dispatch queue. Queues are declared
// durable so a published job survives a broker restart.
type QueueService struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewQueueService(url string) (*QueueService, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	return &QueueService{
		conn: conn,
		ch:   ch,
	}, nil
}

func (s *QueueService) declare(topic string) (amqp.Queue, error) {
	return s.ch.QueueDeclare(
		topic,
		true,
		false,
		false,
		false,
		nil,
	)
}

func (s *QueueService) Publish(ctx context.Context, topic string, body []byte) error {
	q, err := s.declare(topic)
	if err != nil {
		return err
	}

	return s.ch.PublishWithContext(ctx,
		"",
		q.Name,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

func (s *QueueService) Consume(ctx context.Context, topic string) (<-chan []byte, error) {
	q, err := s.declare(topic)
	if err != nil {
		return nil, err
	}

	deliveries, err := s.ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	messages := make(chan []byte)

	go func() {
		defer close(messages)

		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				messages <- d.Body
			}
		}
	}()

	return messages, nil
}

func (s *QueueService) Close() error {
	if err := s.ch.Close(); err != nil {
		return err
	}

	return s.conn.Close()
}
