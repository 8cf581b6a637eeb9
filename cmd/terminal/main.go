package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/puntotecno/terminal/internal/catalog"
	"github.com/puntotecno/terminal/internal/customers"
	"github.com/puntotecno/terminal/internal/inventory"
	"github.com/puntotecno/terminal/internal/notify"
	"github.com/puntotecno/terminal/internal/orders"
	"github.com/puntotecno/terminal/internal/sales"
	"github.com/puntotecno/terminal/internal/session"
	"github.com/puntotecno/terminal/pkg/config"
	"github.com/puntotecno/terminal/pkg/logger"
	"github.com/puntotecno/terminal/pkg/metrics"
	"github.com/puntotecno/terminal/pkg/redisstore"
	"github.com/puntotecno/terminal/pkg/rest"
	"go.uber.org/multierr"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "terminal"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "terminal",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var cleanup []func() error
	defer func() {
		var errs error
		for i := len(cleanup) - 1; i >= 0; i-- {
			errs = multierr.Append(errs, cleanup[i]())
		}
		if errs != nil {
			logg.Error(context.Background(), "error during shutdown", errs)
		}
	}()

	store, closer, err := buildSessionStore(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap session store", err)
		os.Exit(1)
	}
	if closer != nil {
		cleanup = append(cleanup, closer)
	}

	requestMetrics := metrics.NewRequestMetrics(prometheus.DefaultRegisterer)
	api, err := rest.New(cfg.API, logg, requestMetrics, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to build api client", err)
		os.Exit(1)
	}

	guard, err := session.NewGuard(api, store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build session guard", err)
		os.Exit(1)
	}
	authed := guard.AuthedClient()

	salesSvc, err := sales.NewService(authed, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build sales service", err)
		os.Exit(1)
	}
	ordersSvc, err := orders.NewService(authed, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build orders service", err)
		os.Exit(1)
	}
	customersSvc, err := customers.NewService(authed, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build customers service", err)
		os.Exit(1)
	}
	inventorySvc, err := inventory.NewService(authed, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build inventory service", err)
		os.Exit(1)
	}
	workflow, err := orders.NewWorkflow(ordersSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to build order workflow", err)
		os.Exit(1)
	}

	cache, err := catalog.New(cfg.Catalog, inventorySvc, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open catalog cache", err)
		os.Exit(1)
	}
	cleanup = append(cleanup, cache.Close)

	app := NewApp(AppParams{
		Config:    cfg,
		Logger:    logg,
		Guard:     guard,
		Sales:     salesSvc,
		Orders:    ordersSvc,
		Workflow:  workflow,
		Customers: customersSvc,
		Inventory: inventorySvc,
		Catalog:   cache,
		Notifier:  notify.New(cfg.Notify),
		In:        os.Stdin,
		Out:       os.Stdout,
	})

	if err := app.Run(context.Background()); err != nil {
		logg.Error(context.Background(), "terminal stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildSessionStore(cfg *config.Config, logg *logger.Logger) (session.Store, func() error, error) {
	if cfg.Session.Backend == "redis" {
		client, err := redisstore.New(context.Background(), cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store, err := session.NewRedisStore(client, cfg.Session.TerminalID)
		if err != nil {
			return nil, client.Close, err
		}
		logg.Info(context.Background(), "using shared redis session store")
		return store, client.Close, nil
	}
	store, err := session.NewFileStore(cfg.Session.Path)
	if err != nil {
		return nil, nil, err
	}
	return store, nil, nil
}
