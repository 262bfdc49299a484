// Package domain contains the business entities and rules for users.
// This is the innermost layer - it has no dependencies on outer layers.
package domain

import (
	"time"

	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// DefaultCallBackDelay is how far in the future the call-back timestamp is
// set when a contributor goes on duty without naming a time.
const DefaultCallBackDelay = 20 * time.Minute

// User is the aggregate root for the user bounded context.
// It owns the contributor shift state machine and the contribution counter.
type User struct {
	id            types.UserID
	username      Username
	email         Email
	role          Role
	credential    Credential
	status        Status
	callBackAt    time.Time
	contributions int64
	createdAt     time.Time
	updatedAt     time.Time
}

// NewUser creates a new User with validated inputs.
// Fresh users start idle with zero contributions; an unset role defaults
// to the lowest privilege.
func NewUser(username Username, email Email, role Role, credential Credential) (*User, error) {
	if credential.IsZero() {
		return nil, ErrPasswordRequired
	}
	if role == "" {
		role = RoleGhost
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	now := time.Now().UTC()
	return &User{
		id:            types.NewUserID(),
		username:      username,
		email:         email,
		role:          role,
		credential:    credential,
		status:        StatusIdle,
		contributions: 0,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstitute recreates a User from persistence.
// Used by repositories to rebuild aggregates from stored data.
func Reconstitute(
	id types.UserID,
	username Username,
	email Email,
	role Role,
	credential Credential,
	status Status,
	callBackAt time.Time,
	contributions int64,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:            id,
		username:      username,
		email:         email,
		role:          role,
		credential:    credential,
		status:        status,
		callBackAt:    callBackAt,
		contributions: contributions,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Getters - expose state without allowing direct mutation

func (u *User) ID() types.UserID       { return u.id }
func (u *User) Username() Username     { return u.username }
func (u *User) Email() Email           { return u.email }
func (u *User) Role() Role             { return u.role }
func (u *User) Credential() Credential { return u.credential }
func (u *User) Status() Status         { return u.status }
func (u *User) CallBackAt() time.Time  { return u.callBackAt }
func (u *User) Contributions() int64   { return u.contributions }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) UpdatedAt() time.Time   { return u.updatedAt }

// Business methods - encapsulate business rules

// ChangeRole sets the user's role. Admin-only; authorization happens
// upstream at the gateway.
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	u.role = role
	u.updatedAt = time.Now().UTC()
	return nil
}

// StartShift flips an idle user to on duty. callBackAt names when the
// contributor expects to place the group order; the zero time means
// "now plus the default delay".
func (u *User) StartShift(callBackAt time.Time) error {
	if u.status == StatusOngoing {
		return ErrAlreadyOnDuty
	}
	if callBackAt.IsZero() {
		callBackAt = time.Now().UTC().Add(DefaultCallBackDelay)
	}
	u.status = StatusOngoing
	u.callBackAt = callBackAt
	u.updatedAt = time.Now().UTC()
	return nil
}

// EndShift flips an on-duty user back to idle. When credited is true the
// contribution counter advances by exactly one, regardless of how many
// orders the shift completed. The caller must only credit when at least
// one paid order matched the counter snapshot - that is the anti-fraud
// gate against contributions with no real order behind them.
func (u *User) EndShift(credited bool) error {
	if u.status != StatusOngoing {
		return ErrNotOnDuty
	}
	u.status = StatusIdle
	if credited {
		u.contributions++
	}
	u.updatedAt = time.Now().UTC()
	return nil
}

// IsOnDuty reports whether the user is currently an active contributor.
func (u *User) IsOnDuty() bool {
	return u.status == StatusOngoing
}

// VerifyPassword reports whether plaintext matches the stored credential.
func (u *User) VerifyPassword(plaintext string) bool {
	return u.credential.Verify(plaintext)
}
