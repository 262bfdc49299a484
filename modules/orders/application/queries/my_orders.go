// Package queries contains read-only use cases for the orders module.
package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// OrderDTO is the outbound representation of an order.
// Field names stay aligned with what the gateway and siblings expect.
type OrderDTO struct {
	ID                   string    `json:"id"`
	CreatedBy            string    `json:"createdBy"`
	ContributorID        string    `json:"contributorId"`
	ContributionSnapshot int64     `json:"numberOfContribution"`
	Description          string    `json:"description,omitempty"`
	TotalPrice           *int64    `json:"totalPrice,omitempty"`
	Currency             string    `json:"currency,omitempty"`
	Status               string    `json:"statusOfOrder"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// NewOrderDTO maps a domain order to its outbound shape. An unpriced
// order carries no totalPrice rather than a misleading zero.
func NewOrderDTO(order *domain.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:                   order.ID().String(),
		CreatedBy:            order.CreatedBy().String(),
		ContributorID:        order.ContributorID().String(),
		ContributionSnapshot: order.ContributionSnapshot(),
		Description:          order.Description(),
		Status:               order.Status().String(),
		CreatedAt:            order.CreatedAt(),
		UpdatedAt:            order.UpdatedAt(),
	}
	if !order.TotalPrice().IsZero() {
		amount := order.TotalPrice().Amount()
		dto.TotalPrice = &amount
		dto.Currency = order.TotalPrice().Currency()
	}
	return dto
}

// MyOrdersQuery lists the orders a user has placed.
type MyOrdersQuery struct {
	UserID string
}

// MyOrdersHandler handles MyOrdersQuery.
type MyOrdersHandler struct {
	repo domain.OrderRepository
}

func NewMyOrdersHandler(repo domain.OrderRepository) *MyOrdersHandler {
	return &MyOrdersHandler{repo: repo}
}

// Handle executes the my orders query.
func (h *MyOrdersHandler) Handle(ctx context.Context, query MyOrdersQuery) ([]*OrderDTO, error) {
	userID, err := types.ParseUserID(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	orders, err := h.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*OrderDTO, len(orders))
	for i, order := range orders {
		dtos[i] = NewOrderDTO(order)
	}
	return dtos, nil
}
