package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/transaction"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

// ShiftOrders is the slice of the order store the shift state machine
// needs: the atomic bulk completion of a contributor's paid orders.
// Implemented by the orders module's repository.
type ShiftOrders interface {
	// CompleteMatching marks every PAIED order whose contributor and
	// contribution snapshot match as DONE, returning how many matched.
	// Must run inside the caller's transaction.
	CompleteMatching(ctx context.Context, contributor types.UserID, snapshot int64) (int64, error)
}

// ChangeStatusCommand toggles the caller between idle and on duty.
// CallBackAt is only meaningful when going on duty; the zero time asks
// for the default delay.
type ChangeStatusCommand struct {
	UserID     string
	CallBackAt time.Time
}

// ChangeStatusHandler runs the contributor shift state machine.
type ChangeStatusHandler struct {
	repo       domain.UserRepository
	orders     ShiftOrders
	txScope    transaction.Scope
	dispatcher notifications.Dispatcher
}

func NewChangeStatusHandler(
	repo domain.UserRepository,
	orders ShiftOrders,
	txScope transaction.Scope,
	dispatcher notifications.Dispatcher,
) *ChangeStatusHandler {
	return &ChangeStatusHandler{
		repo:       repo,
		orders:     orders,
		txScope:    txScope,
		dispatcher: dispatcher,
	}
}

// Handle toggles the user's contributor status.
//
// The whole transition is one transaction: reload the user (never trust the
// caller's stale copy), flip the status, and when going idle, complete all
// paid orders matching the current counter snapshot and credit at most one
// contribution - only if at least one order matched. Two racing toggles on
// the same user therefore can never both observe the same state or credit
// the same shift twice.
func (h *ChangeStatusHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) (*domain.User, error) {
	userID, err := types.ParseUserID(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	var wentOnDuty bool
	user, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (*domain.User, error) {
		user, err := h.repo.FindByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("finding user: %w", err)
		}

		if user.IsOnDuty() {
			matched, err := h.orders.CompleteMatching(ctx, user.ID(), user.Contributions())
			if err != nil {
				return nil, fmt.Errorf("completing shift orders: %w", err)
			}
			// At least one real paid order has to back the shift,
			// otherwise the counter stays put.
			if err := user.EndShift(matched > 0); err != nil {
				return nil, err
			}
			wentOnDuty = false
		} else {
			if err := user.StartShift(cmd.CallBackAt); err != nil {
				return nil, err
			}
			wentOnDuty = true
		}

		if err := h.repo.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("saving user: %w", err)
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}

	// Emit only after the transition is durably committed.
	if wentOnDuty {
		h.dispatcher.Emit(ctx, notifications.TopicBroadcast, notifications.Notification{
			Title:       "New Order",
			Description: "Are you hungry? Someone is taking orders right now",
		})
	}

	return user, nil
}
