// Package messaging exposes the orders module on the broker.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/MohammadDAlil0/scase-food-go/internal/platform/broker"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/application/commands"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/application/queries"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	usersdomain "github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

// Command subjects served by the orders module.
const (
	SubjectCreate        = "orders.create"
	SubjectSubmit        = "orders.submit"
	SubjectTogglePayment = "orders.togglePayment"
	SubjectMine          = "orders.mine"
)

// QueueGroup splits command load across scaled instances.
const QueueGroup = "user-service"

// Handler handles broker commands for the orders module.
type Handler struct {
	createOrder   *commands.CreateOrderHandler
	submitOrder   *commands.SubmitOrderHandler
	togglePayment *commands.TogglePaymentHandler
	myOrders      *queries.MyOrdersHandler
	logger        *slog.Logger
}

func NewHandler(
	createOrder *commands.CreateOrderHandler,
	submitOrder *commands.SubmitOrderHandler,
	togglePayment *commands.TogglePaymentHandler,
	myOrders *queries.MyOrdersHandler,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		createOrder:   createOrder,
		submitOrder:   submitOrder,
		togglePayment: togglePayment,
		myOrders:      myOrders,
		logger:        logger,
	}
}

// Register subscribes every order command subject on the connection.
func (h *Handler) Register(conn *broker.Conn) error {
	subjects := map[string]nats.MsgHandler{
		SubjectCreate:        h.handleCreate,
		SubjectSubmit:        h.handleSubmit,
		SubjectTogglePayment: h.handleTogglePayment,
		SubjectMine:          h.handleMine,
	}
	for subject, handler := range subjects {
		if _, err := conn.QueueSubscribe(subject, QueueGroup, handler); err != nil {
			return err
		}
	}
	return nil
}

// Request/Response DTOs

type createOrderRequest struct {
	CreatedBy     string `json:"createdBy"`
	ContributorID string `json:"contributorId"`
	Description   string `json:"description,omitempty"`
}

type orderIDRequest struct {
	OrderID string `json:"orderId"`
}

type myOrdersRequest struct {
	UserID string `json:"userId"`
}

type submitOrderResponse struct {
	Order *queries.OrderDTO `json:"order"`
}

// Handlers

func (h *Handler) handleCreate(msg *nats.Msg) {
	var req createOrderRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondError(msg, broker.CodeValidation, err)
		return
	}

	order, err := h.createOrder.Handle(context.Background(), commands.CreateOrderCommand{
		CreatedBy:     req.CreatedBy,
		ContributorID: req.ContributorID,
		Description:   req.Description,
	})
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, queries.NewOrderDTO(order))
}

func (h *Handler) handleSubmit(msg *nats.Msg) {
	var req orderIDRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondError(msg, broker.CodeValidation, err)
		return
	}

	order, err := h.submitOrder.Handle(context.Background(), commands.SubmitOrderCommand{OrderID: req.OrderID})
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, submitOrderResponse{Order: queries.NewOrderDTO(order)})
}

func (h *Handler) handleTogglePayment(msg *nats.Msg) {
	var req orderIDRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondError(msg, broker.CodeValidation, err)
		return
	}

	order, err := h.togglePayment.Handle(context.Background(), commands.TogglePaymentCommand{OrderID: req.OrderID})
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, queries.NewOrderDTO(order))
}

func (h *Handler) handleMine(msg *nats.Msg) {
	var req myOrdersRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondError(msg, broker.CodeValidation, err)
		return
	}

	orders, err := h.myOrders.Handle(context.Background(), queries.MyOrdersQuery{UserID: req.UserID})
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, orders)
}

func (h *Handler) respond(msg *nats.Msg, v any) {
	if err := broker.Respond(msg, v); err != nil {
		h.logger.Error("failed to reply", slog.String("subject", msg.Subject), slog.Any("error", err))
	}
}

func (h *Handler) respondError(msg *nats.Msg, code string, cause error) {
	if err := broker.RespondError(msg, code, cause); err != nil {
		h.logger.Error("failed to reply with error", slog.String("subject", msg.Subject), slog.Any("error", err))
	}
}

// errorCode maps order-module failures onto reply codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, usersdomain.ErrUserNotFound):
		return broker.CodeNotFound
	case errors.Is(err, domain.ErrPricingTimeout):
		return broker.CodeUpstreamTimeout
	case errors.Is(err, domain.ErrPricingUnavailable):
		return broker.CodeUpstreamUnavailable
	case errors.Is(err, domain.ErrOrderCompleted), errors.Is(err, types.ErrInvalidID):
		return broker.CodeValidation
	default:
		return broker.CodeInternal
	}
}
