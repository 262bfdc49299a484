package commands

import (
	"context"
	"fmt"

	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/transaction"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

// ChangeRoleCommand represents an admin changing a user's role.
// Authorization happens upstream; the engine trusts the caller's role.
type ChangeRoleCommand struct {
	UserID string
	Role   string
}

// ChangeRoleHandler handles the ChangeRoleCommand.
type ChangeRoleHandler struct {
	repo       domain.UserRepository
	txScope    transaction.Scope
	dispatcher notifications.Dispatcher
}

func NewChangeRoleHandler(repo domain.UserRepository, txScope transaction.Scope, dispatcher notifications.Dispatcher) *ChangeRoleHandler {
	return &ChangeRoleHandler{
		repo:       repo,
		txScope:    txScope,
		dispatcher: dispatcher,
	}
}

// Handle executes the change role use case. The reload-mutate-save runs in
// one transaction so a racing shift toggle cannot be clobbered by the
// whole-row save.
func (h *ChangeRoleHandler) Handle(ctx context.Context, cmd ChangeRoleCommand) (*domain.User, error) {
	userID, err := types.ParseUserID(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	user, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (*domain.User, error) {
		user, err := h.repo.FindByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("finding user: %w", err)
		}

		if err := user.ChangeRole(domain.Role(cmd.Role)); err != nil {
			return nil, err
		}

		if err := h.repo.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("saving user: %w", err)
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}

	h.dispatcher.Emit(ctx, notifications.TopicUser, notifications.Notification{
		UserID:      user.ID().String(),
		Title:       "Role Changed",
		Description: "Your role has been changed",
	})

	return user, nil
}
