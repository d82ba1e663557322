package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/erp-portal/internal/bootstrap"
	"github.com/jhoicas/erp-portal/internal/interfaces/cli"
	"github.com/jhoicas/erp-portal/pkg/config"
	"github.com/jhoicas/erp-portal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	closeStores := func() {}
	build := func() (*cli.Deps, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("cargar configuración: %w", err)
		}
		// portalctl es un perfil local: memoria no sobrevive entre invocaciones.
		if cfg.Session.Driver == config.SessionDriverMemory {
			cfg.Session.Driver = config.SessionDriverFile
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

		stores, closeFn, err := bootstrap.OpenStores(ctx, cfg.Session, log)
		if err != nil {
			return nil, err
		}
		closeStores = closeFn

		ucs := bootstrap.NewUseCases(bootstrap.NewBackend(cfg.Backend), stores, bootstrap.Contact(cfg.Support), log)
		return &cli.Deps{
			Auth:         ucs.Auth,
			Portal:       ucs.Portal,
			Bookings:     ucs.Bookings,
			Resolver:     ucs.Resolver,
			Stores:       stores,
			Log:          log,
			PollInterval: cfg.Lifecycle.PollInterval(),
		}, nil
	}

	err := cli.NewRootCmd(build).ExecuteContext(ctx)
	closeStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
