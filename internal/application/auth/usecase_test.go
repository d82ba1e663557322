package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-portal/internal/application/auth"
	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/ports/portstest"
	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/infrastructure/sessionstore"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*auth.AuthUseCase, *portstest.Backend, *sessionstore.Memory) {
	t.Helper()
	be := portstest.New().Seed(now, "active", 30*24*time.Hour, 2*time.Hour)
	stores := sessionstore.NewMemory()
	uc := auth.NewAuthUseCase(stores, be, nil).WithClock(func() time.Time { return now })
	return uc, be, stores
}

func TestLogin_DestinoPorIdentidad(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	res, err := uc.Login(ctx, "p1", dto.PortalLoginRequest{Identifier: "root@pos-erp.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, entity.IdentitySuperAdmin, res.Session.Identity)
	assert.Equal(t, access.PathAdminDashboard, res.Redirect)

	res, err = uc.Login(ctx, "p2", dto.PortalLoginRequest{Identifier: "  owner@acme.com ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, entity.IdentityTenantUser, res.Session.Identity)
	assert.Equal(t, access.PathCustomerDashboard, res.Redirect)
}

func TestLogin_ReemplazaSesionPrimaria(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, "p1", dto.PortalLoginRequest{Identifier: "owner@acme.com", Password: "secret"})
	require.NoError(t, err)
	_, err = uc.Login(ctx, "p1", dto.PortalLoginRequest{Identifier: "cashier", Password: "secret"})
	require.NoError(t, err)

	s, err := uc.Current(ctx, "p1", access.FamilyCustomer)
	require.NoError(t, err)
	assert.Equal(t, portstest.CustomRoleToken, s.AccessToken)
}

func TestLogin_CredencialesInvalidasNoPersiste(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, "p1", dto.PortalLoginRequest{Identifier: "owner@acme.com", Password: "otra"})
	require.ErrorIs(t, err, domain.ErrAuth)

	primary, demo := uc.Sessions(ctx, "p1")
	assert.Nil(t, primary)
	assert.Nil(t, demo)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.Login(context.Background(), "p1", dto.PortalLoginRequest{Identifier: " ", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.DemoLogin(context.Background(), "p1", dto.PortalDemoLoginRequest{Username: "demo_user"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDemoLogin_NamespaceSeparado(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, "p1", dto.PortalLoginRequest{Identifier: "owner@acme.com", Password: "secret"})
	require.NoError(t, err)
	res, err := uc.DemoLogin(ctx, "p1", dto.PortalDemoLoginRequest{Username: "demo_user", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, entity.NamespaceDemo, res.Session.Namespace)
	assert.Equal(t, "Demo", res.Session.User.Name)

	primary, demo := uc.Sessions(ctx, "p1")
	require.NotNil(t, primary)
	require.NotNil(t, demo)
	assert.Equal(t, portstest.TenantToken, primary.AccessToken)
	assert.Equal(t, portstest.DemoToken, demo.AccessToken)

	// El dashboard de cliente prefiere la sesión primaria; el portal demo solo acepta la demo.
	s, err := uc.Current(ctx, "p1", access.FamilyCustomer)
	require.NoError(t, err)
	assert.Equal(t, entity.NamespacePrimary, s.Namespace)
	s, err = uc.Current(ctx, "p1", access.FamilyDemo)
	require.NoError(t, err)
	assert.Equal(t, entity.NamespaceDemo, s.Namespace)
}

func TestDemoLogin_CuentaVencidaSeRechaza(t *testing.T) {
	be := portstest.New().Seed(now, "active", 30*24*time.Hour, -time.Minute)
	stores := sessionstore.NewMemory()
	uc := auth.NewAuthUseCase(stores, be, nil).WithClock(func() time.Time { return now })

	_, err := uc.DemoLogin(context.Background(), "p1", dto.PortalDemoLoginRequest{Username: "demo_user", Password: "secret"})
	require.ErrorIs(t, err, domain.ErrExpiryForcedLogout)
	_, ok := stores.Profile("p1").Load(context.Background(), entity.NamespaceDemo)
	assert.False(t, ok)
}

func TestLogout_LimpiaAunqueElBackendFalle(t *testing.T) {
	uc, be, _ := setup(t)
	ctx := context.Background()
	be.LogoutErr = &domain.APIError{Status: 503, Kind: domain.ErrTransient}

	_, err := uc.Login(ctx, "p1", dto.PortalLoginRequest{Identifier: "owner@acme.com", Password: "secret"})
	require.NoError(t, err)
	_, err = uc.DemoLogin(ctx, "p1", dto.PortalDemoLoginRequest{Username: "demo_user", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, "p1"))
	assert.Equal(t, int32(1), be.LogoutCalls.Load())

	_, err = uc.Current(ctx, "p1", access.FamilyCustomer)
	assert.ErrorIs(t, err, domain.ErrNoSession)
	_, err = uc.Current(ctx, "p1", access.FamilyDemo)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestLogout_SinSesionNoLlamaAlBackend(t *testing.T) {
	uc, be, _ := setup(t)
	require.NoError(t, uc.Logout(context.Background(), "p1"))
	assert.Zero(t, be.LogoutCalls.Load())
}

func TestInvalidate_SoloElNamespaceDeLaSesion(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	_, err := uc.Login(ctx, "p1", dto.PortalLoginRequest{Identifier: "owner@acme.com", Password: "secret"})
	require.NoError(t, err)
	res, err := uc.DemoLogin(ctx, "p1", dto.PortalDemoLoginRequest{Username: "demo_user", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, uc.Invalidate(ctx, "p1", res.Session, errors.New("demo vencida")))
	primary, demo := uc.Sessions(ctx, "p1")
	assert.NotNil(t, primary)
	assert.Nil(t, demo)
}
