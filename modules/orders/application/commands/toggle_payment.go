package commands

import (
	"context"
	"fmt"

	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/transaction"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// TogglePaymentCommand flips an order between paid and unpaid.
// This is the administrative correction channel; DONE orders are refused.
type TogglePaymentCommand struct {
	OrderID string
}

type TogglePaymentHandler struct {
	repo       domain.OrderRepository
	txScope    transaction.Scope
	dispatcher notifications.Dispatcher
}

func NewTogglePaymentHandler(repo domain.OrderRepository, txScope transaction.Scope, dispatcher notifications.Dispatcher) *TogglePaymentHandler {
	return &TogglePaymentHandler{
		repo:       repo,
		txScope:    txScope,
		dispatcher: dispatcher,
	}
}

// Handle executes the payment toggle use case.
func (h *TogglePaymentHandler) Handle(ctx context.Context, cmd TogglePaymentCommand) (*domain.Order, error) {
	orderID, err := types.ParseOrderID(cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID: %w", err)
	}

	order, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (*domain.Order, error) {
		order, err := h.repo.FindByID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("finding order: %w", err)
		}
		if err := order.TogglePayment(); err != nil {
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

	if order.IsPaid() {
		h.dispatcher.Emit(ctx, notifications.TopicUser, notifications.Notification{
			UserID:      order.CreatedBy().String(),
			Title:       "Thank You For Your Money",
			Description: "Payment received, your stomach matters more than your wallet",
		})
	}

	return order, nil
}
