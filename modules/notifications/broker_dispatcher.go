package notifications

import (
	"context"
	"log/slog"

	"github.com/MohammadDAlil0/scase-food-go/internal/platform/broker"
)

// BrokerDispatcher emits notifications over the shared broker.
type BrokerDispatcher struct {
	conn   *broker.Conn
	logger *slog.Logger
}

func NewBrokerDispatcher(conn *broker.Conn, logger *slog.Logger) *BrokerDispatcher {
	return &BrokerDispatcher{
		conn:   conn,
		logger: logger.With("module", "notifications"),
	}
}

// Emit publishes the notification. Failures are logged and dropped.
func (d *BrokerDispatcher) Emit(ctx context.Context, topic string, n Notification) {
	if err := d.conn.Emit(topic, n); err != nil {
		d.logger.WarnContext(ctx, "dropping notification",
			slog.String("topic", topic),
			slog.String("title", n.Title),
			slog.Any("error", err))
	}
}

// Compile-time interface check.
var _ Dispatcher = (*BrokerDispatcher)(nil)
