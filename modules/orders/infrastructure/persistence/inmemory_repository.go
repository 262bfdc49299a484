// Package persistence implements repository interfaces for orders.
package persistence

import (
	"context"
	"sync"

	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// InMemoryRepository implements OrderRepository using in-memory storage.
// Useful for testing and development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	order  []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *InMemoryRepository) Save(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := order.ID().String()
	if _, exists := r.orders[key]; !exists {
		r.order = append(r.order, key)
	}
	r.orders[key] = order
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id types.OrderID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id.String()]
	if !exists {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *InMemoryRepository) ListByCreator(ctx context.Context, createdBy types.UserID) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Order
	for _, key := range r.order {
		if r.orders[key].CreatedBy().Equals(createdBy) {
			matched = append(matched, r.orders[key])
		}
	}
	return matched, nil
}

func (r *InMemoryRepository) CompleteMatching(ctx context.Context, contributor types.UserID, snapshot int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var affected int64
	for _, key := range r.order {
		o := r.orders[key]
		if !o.ContributorID().Equals(contributor) || o.ContributionSnapshot() != snapshot || !o.IsPaid() {
			continue
		}
		if err := o.Complete(); err != nil {
			return affected, err
		}
		affected++
	}
	return affected, nil
}

// Compile-time interface check.
var _ domain.OrderRepository = (*InMemoryRepository)(nil)
