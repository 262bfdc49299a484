// Package orders provides the order lifecycle: creation against an on-duty
// contributor, pricing via the broker, and payment toggling.
// This file defines the module's public API.
package orders

import (
	"log/slog"

	"github.com/MohammadDAlil0/scase-food-go/internal/platform/broker"
	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/application/commands"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/application/queries"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/infrastructure/messaging"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/transaction"
)

// Module is the public API for the orders bounded context.
// External communication: broker command subjects (Register).
type Module interface {
	// Register subscribes the module's command subjects on the broker.
	Register(conn *broker.Conn) error
}

// Config holds the module configuration.
type Config struct {
	Repository   domain.OrderRepository
	Contributors commands.ContributorDirectory
	Pricing      commands.PricingService
	TxScope      transaction.Scope
	Dispatcher   notifications.Dispatcher
	Logger       *slog.Logger
}

// module implements the Module interface.
type module struct {
	handler *messaging.Handler
}

// New creates a new orders module with all dependencies wired.
func New(cfg Config) Module {
	createOrderHandler := commands.NewCreateOrderHandler(cfg.Repository, cfg.Contributors)
	submitOrderHandler := commands.NewSubmitOrderHandler(cfg.Repository, cfg.Pricing, cfg.TxScope, cfg.Dispatcher)
	togglePaymentHandler := commands.NewTogglePaymentHandler(cfg.Repository, cfg.TxScope, cfg.Dispatcher)

	myOrdersHandler := queries.NewMyOrdersHandler(cfg.Repository)

	handler := messaging.NewHandler(
		createOrderHandler,
		submitOrderHandler,
		togglePaymentHandler,
		myOrdersHandler,
		cfg.Logger,
	)

	return &module{handler: handler}
}

func (m *module) Register(conn *broker.Conn) error {
	return m.handler.Register(conn)
}
