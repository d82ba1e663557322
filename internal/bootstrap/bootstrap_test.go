package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-portal/internal/application/ports/portstest"
	"github.com/jhoicas/erp-portal/internal/bootstrap"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/infrastructure/sessionstore"
	"github.com/jhoicas/erp-portal/pkg/config"
	"github.com/jhoicas/erp-portal/pkg/logger"
)

func roundTrip(t *testing.T, cfg config.SessionConfig) {
	t.Helper()
	ctx := context.Background()
	stores, closeFn, err := bootstrap.OpenStores(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()

	s := entity.NewPrimarySession("tok", "", entity.User{ID: "u1"})
	require.NoError(t, stores.Profile("p1").Save(ctx, s))
	got, ok := stores.Profile("p1").Load(ctx, entity.NamespacePrimary)
	require.True(t, ok)
	assert.True(t, got.SameAs(s))
}

func TestOpenStores_Drivers(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		roundTrip(t, config.SessionConfig{Driver: config.SessionDriverMemory})
	})
	t.Run("file", func(t *testing.T) {
		roundTrip(t, config.SessionConfig{Driver: config.SessionDriverFile, Dir: filepath.Join(t.TempDir(), "s")})
	})
	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		roundTrip(t, config.SessionConfig{Driver: config.SessionDriverRedis, RedisURL: mr.Addr()})
	})
}

func TestOpenStores_DriverDesconocido(t *testing.T) {
	_, closeFn, err := bootstrap.OpenStores(context.Background(), config.SessionConfig{Driver: "mongo"}, logger.Nop())
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}

func TestNewUseCases(t *testing.T) {
	ucs := bootstrap.NewUseCases(portstest.New(), sessionstore.NewMemory(),
		bootstrap.Contact(config.SupportConfig{Email: "help@acme.com"}), logger.Nop())
	require.NotNil(t, ucs.Auth)
	require.NotNil(t, ucs.Portal)
	require.NotNil(t, ucs.Bookings)
	assert.Equal(t, "help@acme.com", ucs.Portal.Contact().Email)
}
