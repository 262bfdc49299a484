package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/application/commands"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/infrastructure/persistence"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/transaction"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

func TestTogglePaymentHandler_Handle_PayAndRevert(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	order := storedTestOrder(t, repo)
	recorder := notifications.NewRecorder()
	handler := commands.NewTogglePaymentHandler(repo, transaction.NewSerialScope(), recorder)

	paid, err := handler.Handle(context.Background(), commands.TogglePaymentCommand{OrderID: order.ID().String()})
	if err != nil {
		t.Fatalf("failed to toggle payment: %v", err)
	}
	if paid.Status() != domain.StatusPaid {
		t.Errorf("expected status 'PAIED', got '%s'", paid.Status())
	}

	emitted := recorder.Emitted()
	if len(emitted) != 1 {
		t.Fatalf("expected 1 notification after paying, got %d", len(emitted))
	}
	if emitted[0].Topic != notifications.TopicUser {
		t.Errorf("expected user topic, got '%s'", emitted[0].Topic)
	}

	reverted, err := handler.Handle(context.Background(), commands.TogglePaymentCommand{OrderID: order.ID().String()})
	if err != nil {
		t.Fatalf("failed to toggle payment back: %v", err)
	}
	if reverted.Status() != domain.StatusUnpaid {
		t.Errorf("expected status 'UNPAIED', got '%s'", reverted.Status())
	}
	// Reverting a payment is a correction, not something to thank for.
	if len(recorder.Emitted()) != 1 {
		t.Errorf("expected no notification for the revert, got %d total", len(recorder.Emitted()))
	}
}

func TestTogglePaymentHandler_Handle_CompletedOrder(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	order := storedTestOrder(t, repo)
	order.TogglePayment()
	if err := order.Complete(); err != nil {
		t.Fatalf("failed to complete order: %v", err)
	}
	handler := commands.NewTogglePaymentHandler(repo, transaction.NewSerialScope(), notifications.NewRecorder())

	_, err := handler.Handle(context.Background(), commands.TogglePaymentCommand{OrderID: order.ID().String()})
	if !errors.Is(err, domain.ErrOrderCompleted) {
		t.Errorf("expected ErrOrderCompleted, got %v", err)
	}
}

func TestTogglePaymentHandler_Handle_UnknownOrder(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	handler := commands.NewTogglePaymentHandler(repo, transaction.NewSerialScope(), notifications.NewRecorder())

	_, err := handler.Handle(context.Background(), commands.TogglePaymentCommand{OrderID: types.NewOrderID().String()})
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
