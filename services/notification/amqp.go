package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobboard/models"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher là phần của amqp.Channel mà AMQPSink cần
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSink đẩy notification vào RabbitMQ cho các consumer phía sau (email, push...)
type AMQPSink struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel Publisher
	queue   string
}

// DialAMQP kết nối RabbitMQ và khai báo queue durable
func DialAMQP(url, queue string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &AMQPSink{conn: conn, channel: ch, queue: q.Name}, nil
}

// NewAMQPSink dùng một publisher có sẵn
func NewAMQPSink(p Publisher, queue string) *AMQPSink {
	return &AMQPSink{channel: p, queue: queue}
}

func (s *AMQPSink) Deliver(ctx context.Context, n *models.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp.Channel không an toàn khi publish đồng thời
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.channel.PublishWithContext(
		ctx,
		"",      // exchange
		s.queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    n.CreatedAt,
			Type:         string(n.Type),
			Body:         body,
		},
	)
}

func (s *AMQPSink) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
