package domain

import (
	"regexp"
	"strings"
)

// Email is a value object representing a validated email address.
// Value objects are immutable and compared by value.
type Email struct {
	value string
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NewEmail creates a validated Email value object.
func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return Email{}, ErrEmailRequired
	}
	if len(value) > 64 || !emailRegex.MatchString(value) {
		return Email{}, ErrEmailInvalid
	}
	return Email{value: value}, nil
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// Username is a value object for the display name a user signs up with.
type Username struct {
	value string
}

// NewUsername creates a validated Username value object.
func NewUsername(value string) (Username, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Username{}, ErrUsernameRequired
	}
	if len(value) > 64 {
		return Username{}, ErrUsernameLength
	}
	return Username{value: value}, nil
}

func (n Username) String() string { return n.value }
func (n Username) IsZero() bool   { return n.value == "" }

// Role represents a user's privilege level.
type Role string

const (
	// RoleGhost is the default role for freshly signed-up users awaiting
	// admin approval.
	RoleGhost Role = "GHOST"
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleGhost, RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Status represents a user's contributor status.
// A user in StatusOngoing is "on duty": available to place orders on
// behalf of others.
type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusOngoing Status = "ONGOING"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusOngoing:
		return true
	default:
		return false
	}
}
