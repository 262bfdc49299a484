package transaction

import (
	"context"
	"sync"
)

// SerialScope is a Scope that serializes all transactions behind a single
// mutex. It pairs with the in-memory repositories: every Execute body runs
// in full isolation, which is exactly the guarantee the Spanner scope gives
// per row set. Useful for tests and local development.
type SerialScope struct {
	mu sync.Mutex
}

func NewSerialScope() *SerialScope {
	return &SerialScope{}
}

func (s *SerialScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Compile-time interface check.
var _ Scope = (*SerialScope)(nil)
