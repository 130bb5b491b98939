package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes budget alerts as JSON messages to a durable queue.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel channel
	queue   string
}

// NewAMQPPublisher connects to the broker and declares the queue.
func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to message broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring queue %s: %w", queue, err)
	}

	return &AMQPPublisher{
		conn:    conn,
		channel: ch,
		queue:   q.Name,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, alert BudgetAlert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	err = p.channel.Publish(
		"", // default exchange, routes by queue name
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing budget alert: %w", err)
	}

	log.Ctx(ctx).Debug().Str("queue", p.queue).Str("budget", alert.BudgetID.String()).Msg("published budget alert")
	return nil
}

// Close releases the channel and the connection.
func (p *AMQPPublisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}

	return err
}
