// Package bootstrap arma las dependencias compartidas por el gateway y portalctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-portal/internal/application/admin"
	"github.com/jhoicas/erp-portal/internal/application/auth"
	"github.com/jhoicas/erp-portal/internal/application/entitlement"
	"github.com/jhoicas/erp-portal/internal/application/ports"
	"github.com/jhoicas/erp-portal/internal/application/portal"
	"github.com/jhoicas/erp-portal/internal/application/presenter"
	"github.com/jhoicas/erp-portal/internal/domain/repository"
	"github.com/jhoicas/erp-portal/internal/infrastructure/backend"
	"github.com/jhoicas/erp-portal/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-portal/internal/infrastructure/sessionstore"
	"github.com/jhoicas/erp-portal/pkg/config"
	"github.com/jhoicas/erp-portal/pkg/logger"
)

// OpenStores abre el almacén de sesiones del driver configurado.
// close libera conexiones; nunca es nil.
func OpenStores(ctx context.Context, cfg config.SessionConfig, log *logger.Logger) (repository.ProfileStores, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case config.SessionDriverMemory, "":
		return sessionstore.NewMemory(), noop, nil
	case config.SessionDriverFile:
		fs, err := sessionstore.NewFile(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case config.SessionDriverRedis:
		client, err := sessionstore.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("driver", cfg.Driver).Msg("sesiones en Redis")
		return sessionstore.NewRedis(client), func() { _ = client.Close() }, nil
	case config.SessionDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolConfig{})
		if err != nil {
			return nil, noop, err
		}
		repo := postgres.NewSessionRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		log.Info().Str("driver", cfg.Driver).Msg("sesiones en PostgreSQL")
		return repo, pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("SESSION_DRIVER desconocido: %q", cfg.Driver)
	}
}

// UseCases casos de uso del portal.
type UseCases struct {
	Backend  ports.Backend
	Auth     *auth.AuthUseCase
	Resolver *entitlement.Resolver
	Portal   *portal.PortalUseCase
	Bookings *admin.BookingUseCase
}

// NewBackend cliente del backend REST con el timeout configurado.
func NewBackend(cfg config.BackendConfig) *backend.Client {
	return backend.NewClient(cfg.BaseURL, cfg.Timeout())
}

// Contact canales de soporte para los overlays.
func Contact(cfg config.SupportConfig) presenter.Contact {
	return presenter.Contact{Email: cfg.Email, Phone: cfg.Phone, WhatsApp: cfg.WhatsApp}
}

// NewUseCases arma los casos de uso sobre el backend y el almacén dados.
func NewUseCases(be ports.Backend, stores repository.ProfileStores, contact presenter.Contact, log *logger.Logger) *UseCases {
	authUC := auth.NewAuthUseCase(stores, be, log)
	resolver := entitlement.NewResolver(be, log)
	return &UseCases{
		Backend:  be,
		Auth:     authUC,
		Resolver: resolver,
		Portal:   portal.NewPortalUseCase(authUC, resolver, contact, log),
		Bookings: admin.NewBookingUseCase(be, log),
	}
}
