// Package broker wraps the shared NATS connection used for all
// service-to-service messaging: inbound command subjects, fire-and-forget
// notification topics, and brokered request/reply calls.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

var (
	// ErrTimeout is returned when a request/reply call does not complete
	// within the configured timeout.
	ErrTimeout = errors.New("broker request timed out")

	// ErrUnavailable is returned when no service is listening on the
	// requested subject.
	ErrUnavailable = errors.New("no responder on subject")
)

// Conn is a thin wrapper over a NATS connection with JSON payloads and a
// bounded request timeout.
type Conn struct {
	nc             *nats.Conn
	requestTimeout time.Duration
	logger         *slog.Logger
}

// Connect dials the broker. The caller owns the connection and should
// Drain it on shutdown.
func Connect(url string, requestTimeout time.Duration, logger *slog.Logger) (*Conn, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to broker at %s: %w", url, err)
	}
	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Second
	}
	return &Conn{nc: nc, requestTimeout: requestTimeout, logger: logger}, nil
}

// Emit publishes a fire-and-forget message. Delivery is best-effort; the
// broker acknowledges nothing and Emit never waits.
func (c *Conn) Emit(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload for %s: %w", subject, err)
	}
	if err := c.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	return nil
}

// Request performs a brokered request/reply call and decodes the response
// into reply. The call is bounded by the connection's request timeout (or
// the context deadline, whichever is sooner) and fails with ErrTimeout or
// ErrUnavailable accordingly.
func (c *Conn) Request(ctx context.Context, subject string, payload, reply any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload for %s: %w", subject, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	msg, err := c.nc.RequestWithContext(ctx, subject, data)
	switch {
	case errors.Is(err, nats.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrTimeout, subject)
	case errors.Is(err, nats.ErrNoResponders):
		return fmt.Errorf("%w: %s", ErrUnavailable, subject)
	case err != nil:
		return fmt.Errorf("request to %s: %w", subject, err)
	}

	if reply == nil {
		return nil
	}
	if err := json.Unmarshal(msg.Data, reply); err != nil {
		return fmt.Errorf("decoding reply from %s: %w", subject, err)
	}
	return nil
}

// QueueSubscribe registers a handler on a subject within a queue group,
// so horizontally scaled instances split the command load.
func (c *Conn) QueueSubscribe(subject, queue string, handler nats.MsgHandler) (*nats.Subscription, error) {
	sub, err := c.nc.QueueSubscribe(subject, queue, handler)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	return sub, nil
}

// Drain flushes buffered messages and unsubscribes, then closes the
// connection. Used on graceful shutdown.
func (c *Conn) Drain() error {
	return c.nc.Drain()
}
