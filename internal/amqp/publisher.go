// Package amqp fans newly created notifications out to RabbitMQ so other
// services (push, email) can deliver them.
package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/rohitdhavare/my-expenses-tracker/internal/config"
	"github.com/rohitdhavare/my-expenses-tracker/internal/logger"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// channel is the subset of *amqp091.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher publishes notification events to a durable direct exchange.
type Publisher struct {
	conn       *amqp091.Connection
	channel    channel
	exchange   string
	routingKey string
}

// NewPublisher dials url and declares the exchange.
func NewPublisher(cfg config.AMQPConfig) (*Publisher, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, channel: ch, exchange: cfg.Exchange, routingKey: cfg.RoutingKey}, nil
}

// PublishNotification publishes n as a persistent JSON message.
func (p *Publisher) PublishNotification(ctx context.Context, n *models.Notification) error {
	body, err := NewNotificationMessage(n).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    n.ID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	logger.Get().Debugw("Published notification",
		"notification_id", n.ID,
		"user_id", n.UserID,
		"exchange", p.exchange,
	)
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
