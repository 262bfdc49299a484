// Package persistence implements repository interfaces using specific
// storage backends. This is the outermost layer - it implements ports
// defined in the domain layer.
package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

// InMemoryRepository implements UserRepository using in-memory storage.
// Useful for testing and development. Insertion order is preserved so
// listings stay deterministic.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users: make(map[string]*domain.User),
	}
}

func (r *InMemoryRepository) Save(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := user.ID().String()
	if _, exists := r.users[key]; !exists {
		r.order = append(r.order, key)
	}
	r.users[key] = user
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id types.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id.String()]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.order {
		if r.users[key].Email().Equals(email) {
			return r.users[key], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryRepository) Exists(ctx context.Context, email domain.Email) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email().Equals(email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter = filter.Normalize()

	var matched []*domain.User
	for _, key := range r.order {
		if filter.Matches(r.users[key]) {
			matched = append(matched, r.users[key])
		}
	}

	offset := filter.Offset()
	if offset >= len(matched) {
		return []*domain.User{}, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *InMemoryRepository) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.User
	for _, key := range r.order {
		if r.users[key].Status() == status {
			matched = append(matched, r.users[key])
		}
	}
	return matched, nil
}

func (r *InMemoryRepository) ListByContributions(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ranked := make([]*domain.User, 0, len(r.users))
	for _, key := range r.order {
		ranked = append(ranked, r.users[key])
	}
	// Stable: ties keep insertion order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Contributions() > ranked[j].Contributions()
	})
	return ranked, nil
}

// Compile-time interface check.
var _ domain.UserRepository = (*InMemoryRepository)(nil)
