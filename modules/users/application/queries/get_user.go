package queries

import (
	"context"
	"fmt"

	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

// GetUserQuery resolves a single user by ID.
type GetUserQuery struct {
	UserID string
}

// GetUserHandler handles GetUserQuery.
type GetUserHandler struct {
	repo domain.UserRepository
}

func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query.
func (h *GetUserHandler) Handle(ctx context.Context, query GetUserQuery) (*UserDTO, error) {
	userID, err := types.ParseUserID(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	user, err := h.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewUserDTO(user), nil
}
