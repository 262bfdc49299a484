// Package commands contains write use cases for the orders module.
package commands

import (
	"context"
	"fmt"

	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// ContributorDirectory is the slice of the users module the order
// lifecycle needs: resolving a contributor and observing their current
// contribution counter. Fails with the users module's not-found error
// when the contributor doesn't exist.
type ContributorDirectory interface {
	ContributionCount(ctx context.Context, id types.UserID) (int64, error)
}

// CreateOrderCommand represents a user asking an on-duty contributor to
// carry their order.
type CreateOrderCommand struct {
	CreatedBy     string
	ContributorID string
	Description   string
}

type CreateOrderHandler struct {
	repo         domain.OrderRepository
	contributors ContributorDirectory
}

func NewCreateOrderHandler(repo domain.OrderRepository, contributors ContributorDirectory) *CreateOrderHandler {
	return &CreateOrderHandler{
		repo:         repo,
		contributors: contributors,
	}
}

// Handle executes the create order use case. The contributor's counter is
// read here, once, and frozen into the order.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	createdBy, err := types.ParseUserID(cmd.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("invalid creator ID: %w", err)
	}
	contributorID, err := types.ParseUserID(cmd.ContributorID)
	if err != nil {
		return nil, fmt.Errorf("invalid contributor ID: %w", err)
	}

	snapshot, err := h.contributors.ContributionCount(ctx, contributorID)
	if err != nil {
		return nil, fmt.Errorf("resolving contributor: %w", err)
	}

	order := domain.NewOrder(createdBy, contributorID, cmd.Description, snapshot)

	if err := h.repo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("saving order: %w", err)
	}
	return order, nil
}
