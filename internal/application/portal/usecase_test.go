package portal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-portal/internal/application/auth"
	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/entitlement"
	"github.com/jhoicas/erp-portal/internal/application/portal"
	"github.com/jhoicas/erp-portal/internal/application/ports/portstest"
	"github.com/jhoicas/erp-portal/internal/application/presenter"
	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/lifecycle"
	"github.com/jhoicas/erp-portal/internal/infrastructure/sessionstore"
	"github.com/jhoicas/erp-portal/pkg/jwt"
)

const day = 24 * time.Hour

type fixture struct {
	uc     *portal.PortalUseCase
	auth   *auth.AuthUseCase
	be     *portstest.Backend
	stores *sessionstore.Memory
	clock  *time.Time
}

func newFixture(t *testing.T, status string, expiresIn, demoIn time.Duration) *fixture {
	t.Helper()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	f := &fixture{be: portstest.New().Seed(now, status, expiresIn, demoIn), stores: sessionstore.NewMemory(), clock: &now}
	clk := func() time.Time { return *f.clock }
	f.auth = auth.NewAuthUseCase(f.stores, f.be, nil).WithClock(clk)
	resolver := entitlement.NewResolver(f.be, nil).WithClock(clk)
	contact := presenter.Contact{Email: "support@pos-erp.com"}
	f.uc = portal.NewPortalUseCase(f.auth, resolver, contact, nil).WithClock(clk)
	return f
}

func (f *fixture) login(t *testing.T, identifier string) {
	t.Helper()
	_, err := f.auth.Login(context.Background(), "p1", dto.PortalLoginRequest{Identifier: identifier, Password: "secret"})
	require.NoError(t, err)
}

func (f *fixture) demo(t *testing.T) {
	t.Helper()
	_, err := f.auth.DemoLogin(context.Background(), "p1", dto.PortalDemoLoginRequest{Username: "demo_user", Password: "secret"})
	require.NoError(t, err)
}

func TestGate_SinSesionVaAlLogin(t *testing.T) {
	f := newFixture(t, "active", 30*day, time.Hour)
	ctx := context.Background()

	g := f.uc.Gate(ctx, "p1", "/customer/dashboard/pos")
	assert.Equal(t, string(access.StateUnauthenticated), g.State)
	assert.Equal(t, access.PathCustomerLogin, g.Redirect)

	g = f.uc.Gate(ctx, "p1", "/admin/bookings")
	assert.Equal(t, access.PathAdminLogin, g.Redirect)

	g = f.uc.Gate(ctx, "p1", "/checkout/business")
	assert.True(t, g.Render)
	assert.Equal(t, string(access.StatePublic), g.State)
}

func TestGate_ModulosDelPlan(t *testing.T) {
	f := newFixture(t, "active", 30*day, time.Hour)
	f.login(t, "owner@acme.com")
	ctx := context.Background()

	assert.True(t, f.uc.Gate(ctx, "p1", "/customer/dashboard/pos").Render)
	assert.True(t, f.uc.Gate(ctx, "p1", "/customer/dashboard/settings").Render)

	g := f.uc.Gate(ctx, "p1", "/customer/dashboard/hr")
	assert.Equal(t, string(access.StateNotFound), g.State)
	assert.Equal(t, access.PathCustomerDashboard, g.Redirect)

	g = f.uc.Gate(ctx, "p1", "/admin")
	assert.Equal(t, string(access.StateRedirect), g.State)
	assert.Equal(t, access.PathCustomerDashboard, g.Redirect)
}

func TestGate_SuperAdminAlDashboardDeCliente(t *testing.T) {
	f := newFixture(t, "active", 30*day, time.Hour)
	f.login(t, "root@pos-erp.com")

	g := f.uc.Gate(context.Background(), "p1", "/customer/dashboard")
	assert.Equal(t, string(access.StateRedirect), g.State)
	assert.Equal(t, access.PathAdminDashboard, g.Redirect)
	assert.Zero(t, f.be.SubscriptionCalls.Load())
}

func TestGate_VencidaBloqueaConOverlay(t *testing.T) {
	f := newFixture(t, "active", -day, time.Hour)
	f.login(t, "owner@acme.com")

	g := f.uc.Gate(context.Background(), "p1", "/customer/dashboard/pos")
	assert.Equal(t, string(access.StateBlocked), g.State)
	assert.False(t, g.Render)
	require.NotNil(t, g.Overlay)
	assert.Equal(t, "Subscription Expired", g.Overlay.Headline)
}

func TestGate_401LimpiaSesion(t *testing.T) {
	f := newFixture(t, "active", 30*day, time.Hour)
	f.login(t, "owner@acme.com")
	delete(f.be.Subscriptions, portstest.TenantToken)

	g := f.uc.Gate(context.Background(), "p1", "/customer/dashboard")
	assert.Equal(t, string(access.StateUnauthenticated), g.State)
	assert.Equal(t, access.PathCustomerLogin, g.Redirect)

	primary, _ := f.auth.Sessions(context.Background(), "p1")
	assert.Nil(t, primary)
}

func TestGate_DemoVencida(t *testing.T) {
	f := newFixture(t, "active", 30*day, time.Hour)
	f.demo(t)
	ctx := context.Background()

	assert.True(t, f.uc.Gate(ctx, "p1", "/demo/portal").Render)

	*f.clock = f.clock.Add(time.Hour)
	g := f.uc.Gate(ctx, "p1", "/demo/portal")
	assert.Equal(t, string(access.StateUnauthenticated), g.State)
	assert.Equal(t, access.PathDemoLogin, g.Redirect)

	_, demo := f.auth.Sessions(ctx, "p1")
	assert.Nil(t, demo)
}

func TestGateYBanner_SuscripcionDemoNuncaBloquea(t *testing.T) {
	f := newFixture(t, "expired", -day, time.Hour)
	f.be.Subscriptions[portstest.TenantToken].IsDemo = true
	f.login(t, "owner@acme.com")
	ctx := context.Background()

	g := f.uc.Gate(ctx, "p1", "/customer/dashboard/pos")
	assert.Equal(t, string(access.StateAllowed), g.State)
	assert.True(t, g.Render)
	assert.Nil(t, g.Overlay)

	b, err := f.uc.Banner(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.LevelNone), b.Banner.Level)
	assert.False(t, b.Banner.Render)
	assert.Nil(t, b.Overlay)
}

func TestNavigation_RolPersonalizado(t *testing.T) {
	f := newFixture(t, "active", 30*day, time.Hour)
	f.login(t, "cashier")

	nav, err := f.uc.Navigation(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"pos"}, nav.Modules)
	assert.False(t, nav.Stale)
	require.Len(t, nav.Items, 3)
	assert.Equal(t, "pos", nav.Items[1].Key)
}

func TestNavigation_FalloDeCargaEsStale(t *testing.T) {
	f := newFixture(t, "active", 30*day, time.Hour)
	f.login(t, "owner@acme.com")
	f.be.SubscriptionErr = &domain.APIError{Status: 502, Kind: domain.ErrUpstream}

	nav, err := f.uc.Navigation(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, nav.Stale)
	assert.Equal(t, []string{"activity_logs", "settings"}, nav.Modules)
}

func TestNavigation_SuperAdminRedirige(t *testing.T) {
	f := newFixture(t, "active", 30*day, time.Hour)
	f.login(t, "root@pos-erp.com")

	_, err := f.uc.Navigation(context.Background(), "p1")
	var re *portal.RedirectError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, access.PathAdminDashboard, re.Redirect)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBanner_TenantCritico(t *testing.T) {
	f := newFixture(t, "active", 3*day, time.Hour)
	f.login(t, "owner@acme.com")

	out, err := f.uc.Banner(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "critical", out.Banner.Level)
	assert.Equal(t, "Subscription expires in 3 days!", out.Banner.Headline)
	assert.Nil(t, out.Overlay)
}

func TestBanner_SuspendidaConOverlay(t *testing.T) {
	f := newFixture(t, "suspended", 30*day, time.Hour)
	f.login(t, "owner@acme.com")

	out, err := f.uc.Banner(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, out.Overlay)
	assert.Equal(t, "suspended", out.Overlay.Kind)
}

func TestBanner_DemoCountdown(t *testing.T) {
	f := newFixture(t, "active", 30*day, 90*time.Minute)
	f.demo(t)
	ctx := context.Background()

	out, err := f.uc.Banner(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, presenter.LevelDemo, out.Banner.Level)
	assert.Equal(t, "1h 30m remaining", out.Banner.Subtext)
	assert.Zero(t, f.be.SubscriptionCalls.Load())

	*f.clock = f.clock.Add(2 * time.Hour)
	_, err = f.uc.Banner(ctx, "p1")
	var re *portal.RedirectError
	require.ErrorAs(t, err, &re)
	assert.ErrorIs(t, err, domain.ErrExpiryForcedLogout)
	assert.Equal(t, access.PathDemoLogin, re.Redirect)
}

func TestSubscription_Vista(t *testing.T) {
	f := newFixture(t, "trial", 10*day, time.Hour)
	f.login(t, "owner@acme.com")

	v, err := f.uc.Subscription(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Business", v.Package)
	assert.Equal(t, "trial", v.Status)
	assert.Equal(t, "Free Trial", v.Card.Title)
	assert.Equal(t, 10, v.Card.DaysRemaining)
	require.Len(t, v.Limits, 4)
	assert.Equal(t, "Users", v.Limits[0].Label)
	assert.Equal(t, "Unlimited", v.Limits[2].Text)
	assert.Equal(t, []string{"pos", "inventory", "sales", "activity_logs", "settings"}, v.Modules)
}

func TestSubscription_FalloDeCarga(t *testing.T) {
	f := newFixture(t, "active", 30*day, time.Hour)
	f.login(t, "owner@acme.com")
	f.be.SubscriptionErr = &domain.APIError{Status: 503, Kind: domain.ErrTransient}

	_, err := f.uc.Subscription(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrEntitlementFetch)
}

func TestSession_PrefierePrimaria(t *testing.T) {
	f := newFixture(t, "active", 30*day, time.Hour)
	ctx := context.Background()
	assert.False(t, f.uc.Session(ctx, "p1").Authenticated)

	f.demo(t)
	v := f.uc.Session(ctx, "p1")
	assert.Equal(t, string(entity.NamespaceDemo), v.Namespace)
	assert.NotNil(t, v.ExpiresAt)

	f.login(t, "owner@acme.com")
	v = f.uc.Session(ctx, "p1")
	assert.True(t, v.Authenticated)
	assert.Equal(t, string(entity.IdentityTenantUser), v.Identity)
	assert.Equal(t, "Acme", v.TenantName)
	assert.Equal(t, access.PathCustomerDashboard, v.Redirect)
}

func TestSessionView_ExpDelToken(t *testing.T) {
	tok, err := jwt.GenerateProfile("backend-secret", "u-1", "pos-erp", 2*time.Hour)
	require.NoError(t, err)

	v := portal.SessionView(entity.NewPrimarySession(tok, "r", entity.User{ID: "u-1", Role: entity.RoleAdmin}))
	require.NotNil(t, v.TokenExpires)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), v.TokenExpires.Time, time.Minute)

	opaque := portal.SessionView(entity.NewPrimarySession("opaque-token", "r", entity.User{ID: "u-1"}))
	assert.Nil(t, opaque.TokenExpires)
}
