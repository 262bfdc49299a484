package commands

import (
	"context"
	"fmt"

	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/transaction"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// PricedItem is one priced line of an order, as the pricing service
// reports it.
type PricedItem struct {
	Name  string
	Price types.Money
}

// PricingService prices the food items of an order over the broker.
// Fails with domain.ErrPricingTimeout or domain.ErrPricingUnavailable
// when the request/reply call does not complete.
type PricingService interface {
	PricedItems(ctx context.Context, orderID types.OrderID) ([]PricedItem, error)
}

// SubmitOrderCommand sends an order for pricing.
type SubmitOrderCommand struct {
	OrderID string
}

type SubmitOrderHandler struct {
	repo       domain.OrderRepository
	pricing    PricingService
	txScope    transaction.Scope
	dispatcher notifications.Dispatcher
}

func NewSubmitOrderHandler(
	repo domain.OrderRepository,
	pricing PricingService,
	txScope transaction.Scope,
	dispatcher notifications.Dispatcher,
) *SubmitOrderHandler {
	return &SubmitOrderHandler{
		repo:       repo,
		pricing:    pricing,
		txScope:    txScope,
		dispatcher: dispatcher,
	}
}

// Handle executes the submit order use case.
//
// The pricing call happens before and outside the transaction - it is a
// brokered request with a bounded timeout and must not hold row locks nor
// be retried by the transaction runner. When it fails, the order has not
// been touched and the caller may retry. Only once the priced total is in
// hand does the transaction reload the order and write the total, which
// also serializes concurrent submits on the same order.
func (h *SubmitOrderHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*domain.Order, error) {
	orderID, err := types.ParseOrderID(cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID: %w", err)
	}

	// Resolve first so a missing order fails before the broker round trip.
	if _, err := h.repo.FindByID(ctx, orderID); err != nil {
		return nil, fmt.Errorf("finding order: %w", err)
	}

	items, err := h.pricing.PricedItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var total types.Money
	for _, item := range items {
		total, err = total.Add(item.Price)
		if err != nil {
			return nil, fmt.Errorf("summing priced items: %w", err)
		}
	}

	order, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (*domain.Order, error) {
		order, err := h.repo.FindByID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("finding order: %w", err)
		}
		if err := order.SetTotal(total); err != nil {
			return nil, err
		}
		if err := h.repo.Save(ctx, order); err != nil {
			return nil, fmt.Errorf("saving order: %w", err)
		}
		return order, nil
	})
	if err != nil {
		return nil, err
	}

	h.dispatcher.Emit(ctx, notifications.TopicUser, notifications.Notification{
		UserID:      order.CreatedBy().String(),
		Title:       "Your Order Was Submitted Successfully",
		Description: "Tell your stomach to wait, your order is in the queue",
	})

	return order, nil
}
