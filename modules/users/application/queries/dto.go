// Package queries contains read-only use cases for the users module.
package queries

import (
	"time"

	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

// UserDTO is the outbound representation of a user.
// The credential digest is deliberately absent - it never leaves the module.
type UserDTO struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	CallBackAt    *time.Time `json:"callBackAt,omitempty"`
	Contributions int64      `json:"numberOfContributions"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewUserDTO maps a domain user to its outbound shape.
func NewUserDTO(user *domain.User) *UserDTO {
	dto := &UserDTO{
		ID:            user.ID().String(),
		Username:      user.Username().String(),
		Email:         user.Email().String(),
		Role:          user.Role().String(),
		Status:        user.Status().String(),
		Contributions: user.Contributions(),
		CreatedAt:     user.CreatedAt(),
		UpdatedAt:     user.UpdatedAt(),
	}
	if !user.CallBackAt().IsZero() {
		t := user.CallBackAt()
		dto.CallBackAt = &t
	}
	return dto
}

func toUserDTOs(users []*domain.User) []*UserDTO {
	dtos := make([]*UserDTO, len(users))
	for i, user := range users {
		dtos[i] = NewUserDTO(user)
	}
	return dtos
}
