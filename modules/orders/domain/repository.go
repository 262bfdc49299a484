package domain

import (
	"context"

	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// OrderRepository defines persistence operations for orders.
// This is a port - defined in domain, implemented in infrastructure.
type OrderRepository interface {
	// Save persists an order (create or update).
	Save(ctx context.Context, order *Order) error

	// FindByID retrieves an order by ID.
	// Returns ErrOrderNotFound if the order doesn't exist.
	FindByID(ctx context.Context, id types.OrderID) (*Order, error)

	// ListByCreator retrieves all orders placed by the given user.
	ListByCreator(ctx context.Context, createdBy types.UserID) ([]*Order, error)

	// CompleteMatching transitions every PAIED order with the given
	// contributor and contribution snapshot to DONE, returning the number
	// of orders affected. The update is a single atomic statement and
	// participates in the caller's transaction.
	CompleteMatching(ctx context.Context, contributor types.UserID, snapshot int64) (int64, error)
}
