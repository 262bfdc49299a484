package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/transaction"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/application/commands"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/infrastructure/persistence"
)

func TestChangeRoleHandler_Handle_Success(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	recorder := notifications.NewRecorder()
	handler := commands.NewChangeRoleHandler(repo, transaction.NewSerialScope(), recorder)
	user := signupTestUser(t, repo, "carol@example.com")

	updated, err := handler.Handle(context.Background(), commands.ChangeRoleCommand{
		UserID: user.ID().String(),
		Role:   "ADMIN",
	})
	if err != nil {
		t.Fatalf("failed to change role: %v", err)
	}

	if updated.Role() != domain.RoleAdmin {
		t.Errorf("expected role 'ADMIN', got '%s'", updated.Role())
	}

	emitted := recorder.Emitted()
	if len(emitted) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(emitted))
	}
	if emitted[0].Topic != notifications.TopicUser {
		t.Errorf("expected user topic, got '%s'", emitted[0].Topic)
	}
	if emitted[0].Notification.UserID != user.ID().String() {
		t.Errorf("expected notification for %s, got '%s'", user.ID(), emitted[0].Notification.UserID)
	}
}

func TestChangeRoleHandler_Handle_InvalidRole(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	recorder := notifications.NewRecorder()
	handler := commands.NewChangeRoleHandler(repo, transaction.NewSerialScope(), recorder)
	user := signupTestUser(t, repo, "carol@example.com")

	_, err := handler.Handle(context.Background(), commands.ChangeRoleCommand{
		UserID: user.ID().String(),
		Role:   "OVERLORD",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
	if len(recorder.Emitted()) != 0 {
		t.Error("expected no notification for a failed role change")
	}
}

func TestChangeRoleHandler_Handle_InvalidID(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	handler := commands.NewChangeRoleHandler(repo, transaction.NewSerialScope(), notifications.NewRecorder())

	_, err := handler.Handle(context.Background(), commands.ChangeRoleCommand{
		UserID: "not-a-uuid",
		Role:   "ADMIN",
	})
	if !errors.Is(err, types.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}
