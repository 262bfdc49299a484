package queries

import (
	"context"

	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

// ListUsersQuery represents a filtered, paginated user listing.
// Filter fields are an enumerated set; unknown fields from callers are
// dropped at the transport edge.
type ListUsersQuery struct {
	Username string
	Email    string
	Role     string
	Status   string
	Page     int
	Limit    int
}

// ListUsersHandler handles ListUsersQuery.
type ListUsersHandler struct {
	repo domain.UserRepository
}

func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query.
func (h *ListUsersHandler) Handle(ctx context.Context, query ListUsersQuery) ([]*UserDTO, error) {
	filter := domain.Filter{
		Username: query.Username,
		Email:    query.Email,
		Role:     domain.Role(query.Role),
		Status:   domain.Status(query.Status),
		Page:     query.Page,
		Limit:    query.Limit,
	}.Normalize()

	users, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toUserDTOs(users), nil
}
