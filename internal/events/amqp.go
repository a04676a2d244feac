package events

import (
	"context"       // Publish deadlines
	"encoding/json" // Event encoding
	"fmt"           // Error wrapping

	amqp "github.com/rabbitmq/amqp091-go" // RabbitMQ client
)

// AMQPPublisher publishes to a durable topic exchange
type AMQPPublisher struct {
	conn     *amqp.Connection // Broker connection
	ch       *amqp.Channel    // Publishing channel
	exchange string           // Topic exchange name
}

// NewAMQPPublisher dials the broker and declares the exchange
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url) // Connect to RabbitMQ
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	// Durable topic exchange, so consumers bind by routing key
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// PublishJSON sends v as a persistent JSON message under key
func (p *AMQPPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v) // Encode the event
	if err != nil {
		return err // Unencodable payload
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json", // JSON body
		DeliveryMode: amqp.Persistent,    // Survive broker restarts
		Body:         b,                  // Encoded event
	})
}

// Close releases the channel and the connection
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
