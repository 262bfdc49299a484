package queries

import (
	"context"

	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

// ActiveContributorsHandler lists every user currently on duty.
type ActiveContributorsHandler struct {
	repo domain.UserRepository
}

func NewActiveContributorsHandler(repo domain.UserRepository) *ActiveContributorsHandler {
	return &ActiveContributorsHandler{repo: repo}
}

func (h *ActiveContributorsHandler) Handle(ctx context.Context) ([]*UserDTO, error) {
	users, err := h.repo.ListByStatus(ctx, domain.StatusOngoing)
	if err != nil {
		return nil, err
	}
	return toUserDTOs(users), nil
}

// TopContributorsHandler lists all users ranked by contribution count,
// highest first. Ties keep the store's order.
type TopContributorsHandler struct {
	repo domain.UserRepository
}

func NewTopContributorsHandler(repo domain.UserRepository) *TopContributorsHandler {
	return &TopContributorsHandler{repo: repo}
}

func (h *TopContributorsHandler) Handle(ctx context.Context) ([]*UserDTO, error) {
	users, err := h.repo.ListByContributions(ctx)
	if err != nil {
		return nil, err
	}
	return toUserDTOs(users), nil
}
