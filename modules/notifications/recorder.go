package notifications

import (
	"context"
	"sync"
)

// Recorded pairs a notification with the topic it was emitted on.
type Recorded struct {
	Topic        string
	Notification Notification
}

// Recorder is a Dispatcher that captures emissions for assertions in
// tests. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	recorded []Recorded
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(ctx context.Context, topic string, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, Recorded{Topic: topic, Notification: n})
}

// Emitted returns a copy of everything emitted so far.
func (r *Recorder) Emitted() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.recorded))
	copy(out, r.recorded)
	return out
}

// Compile-time interface check.
var _ Dispatcher = (*Recorder)(nil)
