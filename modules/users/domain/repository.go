package domain

import (
	"context"

	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// Filter narrows a user listing to an explicit, enumerated set of fields.
// Zero-valued fields are ignored. Callers cannot filter on arbitrary
// columns; unknown fields are dropped at the transport edge.
type Filter struct {
	Username string
	Email    string
	Role     Role
	Status   Status

	// Pagination. Page is 1-based; both fall back to defaults when unset.
	Page  int
	Limit int
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Normalize returns the filter with pagination defaults applied.
func (f Filter) Normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}
	return f
}

// Offset converts the 1-based page into a row offset.
func (f Filter) Offset() int {
	f = f.Normalize()
	return (f.Page - 1) * f.Limit
}

// Matches reports whether a user satisfies every set field of the filter.
func (f Filter) Matches(u *User) bool {
	if f.Username != "" && u.Username().String() != f.Username {
		return false
	}
	if f.Email != "" && u.Email().String() != f.Email {
		return false
	}
	if f.Role != "" && u.Role() != f.Role {
		return false
	}
	if f.Status != "" && u.Status() != f.Status {
		return false
	}
	return true
}

// UserRepository defines the persistence interface for users.
// This is a port - defined in domain, implemented in infrastructure.
type UserRepository interface {
	// Save persists a user (create or update).
	Save(ctx context.Context, user *User) error

	// FindByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user doesn't exist.
	FindByID(ctx context.Context, id types.UserID) (*User, error)

	// FindByEmail retrieves a user by email, credential included.
	// Returns ErrUserNotFound if the user doesn't exist.
	FindByEmail(ctx context.Context, email Email) (*User, error)

	// Exists checks if a user with the given email exists.
	Exists(ctx context.Context, email Email) (bool, error)

	// List retrieves users matching the filter, paginated.
	List(ctx context.Context, filter Filter) ([]*User, error)

	// ListByStatus retrieves all users with the given contributor status.
	ListByStatus(ctx context.Context, status Status) ([]*User, error)

	// ListByContributions retrieves all users ordered by contribution
	// count, highest first.
	ListByContributions(ctx context.Context) ([]*User, error)
}
