package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MohammadDAlil0/scase-food-go/modules/orders/application/commands"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/infrastructure/persistence"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// --- Test doubles ---

// stubDirectory returns a fixed contribution count per user id.
type stubDirectory struct {
	counts map[string]int64
	err    error
}

func (s *stubDirectory) ContributionCount(ctx context.Context, id types.UserID) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	count, ok := s.counts[id.String()]
	if !ok {
		return 0, errors.New("unknown contributor")
	}
	return count, nil
}

// stubPricing replies with fixed priced items, or fails.
type stubPricing struct {
	items []commands.PricedItem
	err   error
	calls int
}

func (s *stubPricing) PricedItems(ctx context.Context, orderID types.OrderID) ([]commands.PricedItem, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func mustMoney(t *testing.T, amount int64, currency string) types.Money {
	t.Helper()
	m, err := types.NewMoney(amount, currency)
	if err != nil {
		t.Fatalf("failed to create money: %v", err)
	}
	return m
}

// --- Tests ---

func TestCreateOrderHandler_Handle_SnapshotsCounter(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	createdBy := types.NewUserID()
	contributor := types.NewUserID()
	directory := &stubDirectory{counts: map[string]int64{contributor.String(): 4}}
	handler := commands.NewCreateOrderHandler(repo, directory)

	order, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
		CreatedBy:     createdBy.String(),
		ContributorID: contributor.String(),
		Description:   "shawarma wrap",
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	if order.ContributionSnapshot() != 4 {
		t.Errorf("expected snapshot 4, got %d", order.ContributionSnapshot())
	}
	if order.Status() != domain.StatusUnpaid {
		t.Errorf("expected status 'UNPAIED', got '%s'", order.Status())
	}

	// The snapshot is frozen at creation: a later counter change must not
	// leak into the stored order.
	directory.counts[contributor.String()] = 9
	stored, err := repo.FindByID(context.Background(), order.ID())
	if err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if stored.ContributionSnapshot() != 4 {
		t.Errorf("expected stored snapshot 4, got %d", stored.ContributionSnapshot())
	}
}

func TestCreateOrderHandler_Handle_UnknownContributor(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	directory := &stubDirectory{counts: map[string]int64{}}
	handler := commands.NewCreateOrderHandler(repo, directory)

	_, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
		CreatedBy:     types.NewUserID().String(),
		ContributorID: types.NewUserID().String(),
	})
	if err == nil {
		t.Fatal("expected an error for an unknown contributor")
	}
}

func TestCreateOrderHandler_Handle_InvalidIDs(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	handler := commands.NewCreateOrderHandler(repo, &stubDirectory{})

	tests := []struct {
		name string
		cmd  commands.CreateOrderCommand
	}{
		{"bad creator", commands.CreateOrderCommand{CreatedBy: "nope", ContributorID: types.NewUserID().String()}},
		{"bad contributor", commands.CreateOrderCommand{CreatedBy: types.NewUserID().String(), ContributorID: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tt.cmd)
			if !errors.Is(err, types.ErrInvalidID) {
				t.Errorf("expected ErrInvalidID, got %v", err)
			}
		})
	}
}
