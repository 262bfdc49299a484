package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	ordersdomain "github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	orderspersistence "github.com/MohammadDAlil0/scase-food-go/modules/orders/infrastructure/persistence"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/transaction"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/application/commands"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/infrastructure/persistence"
)

type changeStatusFixture struct {
	users    *persistence.InMemoryRepository
	orders   *orderspersistence.InMemoryRepository
	recorder *notifications.Recorder
	handler  *commands.ChangeStatusHandler
}

func newChangeStatusFixture() *changeStatusFixture {
	users := persistence.NewInMemoryRepository()
	orders := orderspersistence.NewInMemoryRepository()
	recorder := notifications.NewRecorder()
	handler := commands.NewChangeStatusHandler(users, orders, transaction.NewSerialScope(), recorder)
	return &changeStatusFixture{
		users:    users,
		orders:   orders,
		recorder: recorder,
		handler:  handler,
	}
}

// paidOrderFor stores a paid order carried by the contributor at their
// current counter value.
func (f *changeStatusFixture) paidOrderFor(t *testing.T, contributor *domain.User) *ordersdomain.Order {
	t.Helper()

	order := ordersdomain.NewOrder(
		contributor.ID(), contributor.ID(), "group lunch", contributor.Contributions(),
	)
	if err := order.TogglePayment(); err != nil {
		t.Fatalf("failed to pay order: %v", err)
	}
	if err := f.orders.Save(context.Background(), order); err != nil {
		t.Fatalf("failed to save order: %v", err)
	}
	return order
}

func TestChangeStatusHandler_Handle_GoOnDuty(t *testing.T) {
	f := newChangeStatusFixture()
	user := signupTestUser(t, f.users, "carol@example.com")
	before := time.Now().UTC()

	updated, err := f.handler.Handle(context.Background(), commands.ChangeStatusCommand{
		UserID: user.ID().String(),
	})
	if err != nil {
		t.Fatalf("failed to go on duty: %v", err)
	}

	if updated.Status() != domain.StatusOngoing {
		t.Errorf("expected status 'ONGOING', got '%s'", updated.Status())
	}
	want := before.Add(domain.DefaultCallBackDelay)
	if updated.CallBackAt().Before(want) || updated.CallBackAt().After(want.Add(time.Second)) {
		t.Errorf("expected default call-back around %v, got %v", want, updated.CallBackAt())
	}

	emitted := f.recorder.Emitted()
	if len(emitted) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(emitted))
	}
	if emitted[0].Topic != notifications.TopicBroadcast {
		t.Errorf("expected broadcast topic, got '%s'", emitted[0].Topic)
	}
}

func TestChangeStatusHandler_Handle_ExplicitCallBack(t *testing.T) {
	f := newChangeStatusFixture()
	user := signupTestUser(t, f.users, "carol@example.com")
	callBackAt := time.Now().UTC().Add(time.Hour)

	updated, err := f.handler.Handle(context.Background(), commands.ChangeStatusCommand{
		UserID:     user.ID().String(),
		CallBackAt: callBackAt,
	})
	if err != nil {
		t.Fatalf("failed to go on duty: %v", err)
	}

	if !updated.CallBackAt().Equal(callBackAt) {
		t.Errorf("expected call-back %v, got %v", callBackAt, updated.CallBackAt())
	}
}

func TestChangeStatusHandler_Handle_EndShiftWithoutOrders(t *testing.T) {
	f := newChangeStatusFixture()
	user := signupTestUser(t, f.users, "carol@example.com")

	if _, err := f.handler.Handle(context.Background(), commands.ChangeStatusCommand{UserID: user.ID().String()}); err != nil {
		t.Fatalf("failed to go on duty: %v", err)
	}

	updated, err := f.handler.Handle(context.Background(), commands.ChangeStatusCommand{UserID: user.ID().String()})
	if err != nil {
		t.Fatalf("failed to end shift: %v", err)
	}

	if updated.Status() != domain.StatusIdle {
		t.Errorf("expected status 'IDLE', got '%s'", updated.Status())
	}
	// No paid order backed the shift, so no credit.
	if updated.Contributions() != 0 {
		t.Errorf("expected 0 contributions, got %d", updated.Contributions())
	}

	emitted := f.recorder.Emitted()
	for _, e := range emitted[1:] {
		if e.Topic == notifications.TopicBroadcast {
			t.Error("ending a shift must not broadcast")
		}
	}
}

func TestChangeStatusHandler_Handle_EndShiftCompletesOrdersAndCredits(t *testing.T) {
	f := newChangeStatusFixture()
	user := signupTestUser(t, f.users, "carol@example.com")

	// Three paid orders against the same counter snapshot.
	carried := []*ordersdomain.Order{
		f.paidOrderFor(t, user),
		f.paidOrderFor(t, user),
		f.paidOrderFor(t, user),
	}
	// An unpaid order must survive the shift end untouched.
	unpaid := ordersdomain.NewOrder(user.ID(), user.ID(), "late straggler", user.Contributions())
	if err := f.orders.Save(context.Background(), unpaid); err != nil {
		t.Fatalf("failed to save order: %v", err)
	}

	if _, err := f.handler.Handle(context.Background(), commands.ChangeStatusCommand{UserID: user.ID().String()}); err != nil {
		t.Fatalf("failed to go on duty: %v", err)
	}
	updated, err := f.handler.Handle(context.Background(), commands.ChangeStatusCommand{UserID: user.ID().String()})
	if err != nil {
		t.Fatalf("failed to end shift: %v", err)
	}

	// Many completed orders, exactly one credit.
	if updated.Contributions() != 1 {
		t.Errorf("expected 1 contribution, got %d", updated.Contributions())
	}

	for _, order := range carried {
		stored, err := f.orders.FindByID(context.Background(), order.ID())
		if err != nil {
			t.Fatalf("failed to reload order: %v", err)
		}
		if stored.Status() != ordersdomain.StatusDone {
			t.Errorf("expected order %s to be 'DONE', got '%s'", order.ID(), stored.Status())
		}
	}

	stored, err := f.orders.FindByID(context.Background(), unpaid.ID())
	if err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if stored.Status() != ordersdomain.StatusUnpaid {
		t.Errorf("expected unpaid order to stay 'UNPAIED', got '%s'", stored.Status())
	}
}

func TestChangeStatusHandler_Handle_StaleSnapshotNotCompleted(t *testing.T) {
	f := newChangeStatusFixture()
	user := signupTestUser(t, f.users, "carol@example.com")

	// A paid order frozen at a snapshot the counter has since moved past.
	stale := ordersdomain.NewOrder(user.ID(), user.ID(), "old group lunch", user.Contributions()+5)
	if err := stale.TogglePayment(); err != nil {
		t.Fatalf("failed to pay order: %v", err)
	}
	if err := f.orders.Save(context.Background(), stale); err != nil {
		t.Fatalf("failed to save order: %v", err)
	}

	if _, err := f.handler.Handle(context.Background(), commands.ChangeStatusCommand{UserID: user.ID().String()}); err != nil {
		t.Fatalf("failed to go on duty: %v", err)
	}
	updated, err := f.handler.Handle(context.Background(), commands.ChangeStatusCommand{UserID: user.ID().String()})
	if err != nil {
		t.Fatalf("failed to end shift: %v", err)
	}

	if updated.Contributions() != 0 {
		t.Errorf("expected no credit for a mismatched snapshot, got %d", updated.Contributions())
	}
	stored, _ := f.orders.FindByID(context.Background(), stale.ID())
	if stored.Status() != ordersdomain.StatusPaid {
		t.Errorf("expected stale order to stay 'PAIED', got '%s'", stored.Status())
	}
}

func TestChangeStatusHandler_Handle_UnknownUser(t *testing.T) {
	f := newChangeStatusFixture()

	_, err := f.handler.Handle(context.Background(), commands.ChangeStatusCommand{
		UserID: "0b1e0f9e-8c1a-4f4d-9d7e-000000000000",
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestChangeStatusHandler_Handle_ConcurrentToggles(t *testing.T) {
	// Two racing toggles on the same user must serialize: one starts the
	// shift, the other ends it (or fails), and the counter advances at
	// most once.
	f := newChangeStatusFixture()
	user := signupTestUser(t, f.users, "carol@example.com")
	f.paidOrderFor(t, user)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.handler.Handle(context.Background(), commands.ChangeStatusCommand{
				UserID: user.ID().String(),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
	}

	final, err := f.users.FindByID(context.Background(), user.ID())
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	// Both toggles succeeded, so the user went on duty and straight back.
	if final.Status() != domain.StatusIdle {
		t.Errorf("expected status 'IDLE' after both toggles, got '%s'", final.Status())
	}
	if final.Contributions() > 1 {
		t.Errorf("expected at most one credit, got %d", final.Contributions())
	}
}
