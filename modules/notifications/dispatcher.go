// Package notifications provides the fire-and-forget notification
// dispatcher used by the user and order lifecycle components. It is the
// only path by which domain transitions reach the notification subsystem.
package notifications

import "context"

// Topics the notification subsystem listens on.
const (
	// TopicAdmins notifies every administrator, e.g. about a signup
	// pending approval.
	TopicAdmins = "notification.admins"
	// TopicBroadcast notifies every user, e.g. about a new order
	// opportunity when a contributor goes on duty.
	TopicBroadcast = "notification.broadcast"
	// TopicUser notifies a single user; Notification.UserID is required.
	TopicUser = "notification.user"
)

// Notification is the payload shape for all notification topics.
type Notification struct {
	UserID      string `json:"userId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Dispatcher emits domain notifications, best-effort. Implementations must
// never block on or propagate delivery failures: a lost notification is
// acceptable, a failed primary operation is not. Callers emit only after
// their state mutation has committed.
type Dispatcher interface {
	Emit(ctx context.Context, topic string, n Notification)
}
