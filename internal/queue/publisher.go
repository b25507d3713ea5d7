package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	heartbeat   = 10 * time.Second
	locale      = "en_US"
	dialTimeout = 30 * time.Second
)

// Publisher sends SeatConfirmationEvents to a durable RabbitMQ queue.  Each
// publish opens its own connection so a broker outage never leaves a broken
// connection behind for the next request.
type Publisher struct {
	url   string
	queue string
}

// NewPublisher returns a Publisher for the broker at url.  An empty queue
// name selects ConfirmationQueue.
func NewPublisher(url, queue string) *Publisher {
	if queue == "" {
		queue = ConfirmationQueue
	}
	return &Publisher{url: url, queue: queue}
}

// dialConfig bounds the TCP connect and the AMQP handshake by ctx.  The
// connection clears the deadline itself once the handshake completes.
func dialConfig(ctx context.Context) amqp.Config {
	return amqp.Config{
		Heartbeat: heartbeat,
		Locale:    locale,
		Dial: func(network, addr string) (net.Conn, error) {
			d := net.Dialer{Timeout: dialTimeout}
			conn, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			deadline, ok := ctx.Deadline()
			if !ok {
				deadline = time.Now().Add(dialTimeout)
			}
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
			return conn, nil
		},
	}
}

// PublishSeatConfirmation publishes ev as a persistent JSON message.  The
// whole exchange, dial included, is bounded by ctx.  Errors are returned,
// not logged; the caller decides whether they matter.
func (p *Publisher) PublishSeatConfirmation(ctx context.Context, ev SeatConfirmationEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.DialConfig(p.url, dialConfig(ctx))
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Declaring is idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
