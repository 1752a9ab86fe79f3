package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher publishes ledger events to a durable RabbitMQ topic exchange.
// Every call goes through the circuit breaker so a downed broker fails fast.
type EventPublisher struct {
	url      string
	exchange string
	cb       *CircuitBreaker
	dial     func(url string) (*amqp.Connection, error)
}

func NewEventPublisher(url, exchange string, cb *CircuitBreaker) *EventPublisher {
	return &EventPublisher{url: url, exchange: exchange, cb: cb, dial: amqp.Dial}
}

// Enabled is false when no broker URL is configured.
func (p *EventPublisher) Enabled() bool { return p != nil && p.url != "" }

// Breaker exposes the circuit breaker state for the health endpoint.
func (p *EventPublisher) Breaker() *CircuitBreaker { return p.cb }

// Publish marshals payload as JSON and publishes it with routingKey
// (e.g. "points.assigned"). Messages are persistent.
func (p *EventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	if !p.Enabled() {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("events: marshal: %w", err)
	}
	return p.cb.Execute(ctx, func(ctx context.Context) error {
		return p.publish(ctx, routingKey, body)
	})
}

func (p *EventPublisher) publish(ctx context.Context, routingKey string, body []byte) error {
	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("events: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("events: channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // kind
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	); err != nil {
		return fmt.Errorf("events: exchange declare: %w", err)
	}

	return ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
