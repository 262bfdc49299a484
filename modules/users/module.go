// Package users provides user accounts, authentication, and the
// contributor shift state machine.
// This file defines the module's public API - the single interface
// that other modules use to interact with the users bounded context.
package users

import (
	"context"
	"log/slog"

	"github.com/MohammadDAlil0/scase-food-go/internal/platform/broker"
	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/transaction"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/application/commands"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/application/queries"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/infrastructure/messaging"
)

// Module is the public API for the users bounded context.
// External communication: broker command subjects (Register).
// Cross-module communication: ContributionCount, consumed by orders.
type Module interface {
	// Register subscribes the module's command subjects on the broker.
	Register(conn *broker.Conn) error

	// ContributionCount resolves a user and returns their current
	// contribution counter. Fails with domain.ErrUserNotFound when the
	// user doesn't exist.
	ContributionCount(ctx context.Context, id types.UserID) (int64, error)
}

// Config holds the module configuration.
type Config struct {
	Repository domain.UserRepository
	Orders     commands.ShiftOrders
	TxScope    transaction.Scope
	Tokens     commands.TokenIssuer
	Dispatcher notifications.Dispatcher
	Logger     *slog.Logger
}

// module implements the Module interface.
type module struct {
	repository domain.UserRepository
	handler    *messaging.Handler
}

// New creates a new users module with all dependencies wired.
func New(cfg Config) Module {
	signupHandler := commands.NewSignupHandler(cfg.Repository, cfg.Tokens, cfg.Dispatcher)
	loginHandler := commands.NewLoginHandler(cfg.Repository, cfg.Tokens)
	changeRoleHandler := commands.NewChangeRoleHandler(cfg.Repository, cfg.TxScope, cfg.Dispatcher)
	changeStatusHandler := commands.NewChangeStatusHandler(cfg.Repository, cfg.Orders, cfg.TxScope, cfg.Dispatcher)

	getUserHandler := queries.NewGetUserHandler(cfg.Repository)
	listUsersHandler := queries.NewListUsersHandler(cfg.Repository)
	activeContributorsHandler := queries.NewActiveContributorsHandler(cfg.Repository)
	topContributorsHandler := queries.NewTopContributorsHandler(cfg.Repository)

	handler := messaging.NewHandler(
		signupHandler,
		loginHandler,
		changeRoleHandler,
		changeStatusHandler,
		getUserHandler,
		listUsersHandler,
		activeContributorsHandler,
		topContributorsHandler,
		cfg.Logger,
	)

	return &module{
		repository: cfg.Repository,
		handler:    handler,
	}
}

func (m *module) Register(conn *broker.Conn) error {
	return m.handler.Register(conn)
}

func (m *module) ContributionCount(ctx context.Context, id types.UserID) (int64, error) {
	user, err := m.repository.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return user.Contributions(), nil
}
