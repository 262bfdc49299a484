// Package main is the entry point for the food ordering service.
// It wires together all modules and serves their command subjects on
// the broker.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MohammadDAlil0/scase-food-go/internal/platform/broker"
	"github.com/MohammadDAlil0/scase-food-go/internal/platform/config"
	"github.com/MohammadDAlil0/scase-food-go/internal/platform/spanner"
	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders"
	orderspersistence "github.com/MohammadDAlil0/scase-food-go/modules/orders/infrastructure/persistence"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/infrastructure/pricing"
	"github.com/MohammadDAlil0/scase-food-go/modules/users"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/infrastructure/persistence"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/infrastructure/token"
)

func main() {
	// Initialize logger
	slogOptions := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	slogJsonHandler := slog.NewJSONHandler(os.Stdout, slogOptions)
	logger := slog.New(slogJsonHandler)
	slog.SetDefault(logger)

	logger.Info("starting food ordering service")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDSN())
	if err != nil {
		logger.Error("failed to create spanner client", slog.Any("error", err))
		os.Exit(1)
	}
	defer spannerClient.Close()

	logger.Info("connected to spanner", slog.String("dsn", cfg.SpannerDSN()))

	// Initialize broker connection (commands, notifications, pricing)
	conn, err := broker.Connect(cfg.Broker.URL, cfg.Broker.RequestTimeout, logger)
	if err != nil {
		logger.Error("failed to connect to broker", slog.Any("error", err))
		os.Exit(1)
	}
	defer conn.Drain()

	logger.Info("connected to broker", slog.String("url", cfg.Broker.URL))

	// Initialize platform pieces shared by the modules
	dispatcher := notifications.NewBrokerDispatcher(conn, logger)
	txScope := spanner.NewReadWriteTransactionScope(spannerClient)
	issuer := token.NewIssuer(token.Config{
		Secret:    cfg.Token.Secret,
		ExpiresIn: cfg.Token.ExpiresIn,
	})

	// Initialize repositories
	usersRepo := persistence.NewSpannerRepository(spannerClient)
	ordersRepo := orderspersistence.NewSpannerRepository(spannerClient)

	// Initialize modules. The shift state machine completes orders through
	// the orders repository; order creation reads the contributor counter
	// through the users module's public API.
	usersModule := users.New(users.Config{
		Repository: usersRepo,
		Orders:     ordersRepo,
		TxScope:    txScope,
		Tokens:     issuer,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	ordersModule := orders.New(orders.Config{
		Repository:   ordersRepo,
		Contributors: usersModule,
		Pricing:      pricing.NewClient(conn),
		TxScope:      txScope,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := usersModule.Register(conn); err != nil {
			return err
		}
		if err := ordersModule.Register(conn); err != nil {
			return err
		}
		logger.Info("command subjects registered")
		<-ctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("shutting down, draining broker connection")
}
