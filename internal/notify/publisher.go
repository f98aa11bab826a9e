package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joshua-takyi/booking-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel used for publishing.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Connection interface {
	Channel() (Channel, error)
	Close() error
}

type Dialer func(url string) (Connection, error)

type amqpConnection struct {
	*amqp.Connection
}

func (c amqpConnection) Channel() (Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// DialAMQP opens a real broker connection.
func DialAMQP(url string) (Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return amqpConnection{conn}, nil
}

// RabbitPublisher sends booking notifications to one durable queue. A new
// broker connection is opened and closed for every message.
type RabbitPublisher struct {
	url   string
	queue string
	dial  Dialer
}

func NewRabbitPublisher(url, queue string) *RabbitPublisher {
	return NewRabbitPublisherWithDialer(url, queue, DialAMQP)
}

func NewRabbitPublisherWithDialer(url, queue string, dial Dialer) *RabbitPublisher {
	return &RabbitPublisher{url: url, queue: queue, dial: dial}
}

func (p *RabbitPublisher) Queue() string {
	return p.queue
}

func (p *RabbitPublisher) PublishBooking(ctx context.Context, n models.BookingNotification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	return nil
}
