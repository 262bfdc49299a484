// Package spanner provides Cloud Spanner client initialization and
// transaction scopes backed by Spanner read-write transactions.
package spanner

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// NewClient creates a new Spanner client for the given database path
// (projects/<p>/instances/<i>/databases/<d>).
// The caller is responsible for closing the client when done.
func NewClient(ctx context.Context, dsn string) (*spanner.Client, error) {
	client, err := spanner.NewClient(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create spanner client: %w", err)
	}
	return client, nil
}
