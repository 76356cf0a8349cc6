package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
)

// Binding describes where a consumer queue gets its messages from.
type Binding struct {
	Exchange   string
	Queue      string
	RoutingKey string
}

type Consumer struct {
	binding Binding
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

func NewConsumer(url string, b Binding, log *zap.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(b.Exchange, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	q, err := ch.QueueDeclare(b.Queue, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	if err := ch.QueueBind(q.Name, b.RoutingKey, b.Exchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq queue bind: %w", err)
	}

	return &Consumer{binding: b, conn: conn, channel: ch, logger: logger.OrNop(log).Named("rabbitmq")}, nil
}

func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(
		c.binding.Queue,
		"",    // consumer tag
		false, // manual ack after processing
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}

	c.logger.Info("consuming", zap.String("queue", c.binding.Queue), zap.String("routing_key", c.binding.RoutingKey))
	return msgs, nil
}

func (c *Consumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
