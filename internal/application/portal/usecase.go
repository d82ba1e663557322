// Package portal compone sesión, entitlements, gate y presentadores en las vistas que
// consumen el gateway HTTP y el CLI.
package portal

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/erp-portal/internal/application/auth"
	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/entitlement"
	"github.com/jhoicas/erp-portal/internal/application/presenter"
	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/lifecycle"
	"github.com/jhoicas/erp-portal/pkg/jwt"
	"github.com/jhoicas/erp-portal/pkg/logger"
)

// RedirectError error global (401 o demo vencida) con el login al que hay que volver.
type RedirectError struct {
	Err      error
	Redirect string
}

func (e *RedirectError) Error() string { return e.Err.Error() }
func (e *RedirectError) Unwrap() error { return e.Err }

// PortalUseCase vistas del portal por perfil de navegador.
type PortalUseCase struct {
	sessions *auth.AuthUseCase
	resolver *entitlement.Resolver
	contact  presenter.Contact
	now      func() time.Time
	log      *logger.Logger
}

// NewPortalUseCase construye el caso de uso.
func NewPortalUseCase(sessions *auth.AuthUseCase, resolver *entitlement.Resolver, contact presenter.Contact, log *logger.Logger) *PortalUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PortalUseCase{sessions: sessions, resolver: resolver, contact: contact, now: time.Now, log: log.Component("portal")}
}

// WithClock reemplaza el reloj (tests).
func (uc *PortalUseCase) WithClock(now func() time.Time) *PortalUseCase {
	uc.now = now
	return uc
}

// Contact canales de soporte configurados.
func (uc *PortalUseCase) Contact() presenter.Contact { return uc.contact }

// loginFor login al que vuelve una sesión invalidada.
func loginFor(s entity.Session) string {
	if s.IsDemo() {
		return access.PathDemoLogin
	}
	return access.PathCustomerLogin
}

// customerSession sesión del dashboard de cliente; una demo vencida se limpia aquí.
func (uc *PortalUseCase) customerSession(ctx context.Context, profileID string) (entity.Session, error) {
	s, err := uc.sessions.Current(ctx, profileID, access.FamilyCustomer)
	if err != nil {
		return s, err
	}
	if err := uc.expireDemo(ctx, profileID, s); err != nil {
		return entity.Session{}, err
	}
	return s, nil
}

func (uc *PortalUseCase) expireDemo(ctx context.Context, profileID string, s entity.Session) error {
	exp, ok := s.DemoExpiresAt()
	if !ok || !lifecycle.DemoCountdown(exp, uc.now()).Expired {
		return nil
	}
	if err := uc.sessions.Invalidate(ctx, profileID, s, domain.ErrExpiryForcedLogout); err != nil {
		uc.log.Error().Err(err).Msg("no se pudo limpiar la demo vencida")
	}
	return &RedirectError{Err: domain.ErrExpiryForcedLogout, Redirect: access.PathDemoLogin}
}

// resolve snapshot de la sesión; un 401 limpia la sesión y termina en RedirectError.
func (uc *PortalUseCase) resolve(ctx context.Context, profileID string, s entity.Session) (entity.Snapshot, error) {
	snap := uc.resolver.Resolve(ctx, s)
	if errors.Is(snap.Err, domain.ErrAuth) {
		if err := uc.sessions.Invalidate(ctx, profileID, s, snap.Err); err != nil {
			uc.log.Error().Err(err).Msg("no se pudo limpiar la sesión rechazada")
		}
		return snap, &RedirectError{Err: domain.ErrAuth, Redirect: loginFor(s)}
	}
	return snap, nil
}

func (uc *PortalUseCase) lifecycleOf(snap entity.Snapshot) *lifecycle.State {
	if snap.Subscription == nil {
		return nil
	}
	st := lifecycle.EvaluateSubscription(*snap.Subscription, uc.now())
	return &st
}

// Session vista de la sesión que aplica al dashboard de cliente o, en su defecto, a la superficie admin.
func (uc *PortalUseCase) Session(ctx context.Context, profileID string) dto.SessionView {
	primary, demo := uc.sessions.Sessions(ctx, profileID)
	s := primary
	if s == nil {
		s = demo
	}
	if s == nil {
		return dto.SessionView{}
	}
	if err := uc.expireDemo(ctx, profileID, *s); err != nil {
		return dto.SessionView{Redirect: access.PathDemoLogin}
	}
	return SessionView(*s)
}

// SessionView sesión sin credenciales.
func SessionView(s entity.Session) dto.SessionView {
	var tokenExp *time.Time
	if exp, ok := jwt.ExpiresAt(s.AccessToken); ok {
		tokenExp = &exp
	}
	return dto.SessionView{
		Authenticated: true,
		Identity:      string(s.Identity),
		Namespace:     string(s.Namespace),
		Name:          s.User.Name,
		Email:         s.User.Email,
		Role:          s.User.Role,
		TenantID:      s.User.TenantID,
		TenantName:    s.User.TenantName,
		ExpiresAt:     dto.NewTimestamp(s.User.ExpiresAt),
		TokenExpires:  dto.NewTimestamp(tokenExp),
		Redirect:      access.LoginDestination(s),
	}
}

// Navigation pestañas visibles. Un fallo de carga deja solo los siempre activos (Stale).
func (uc *PortalUseCase) Navigation(ctx context.Context, profileID string) (dto.NavigationView, error) {
	s, err := uc.customerSession(ctx, profileID)
	if err != nil {
		return dto.NavigationView{}, err
	}
	if s.IsSuperAdmin() {
		return dto.NavigationView{}, &RedirectError{Err: domain.ErrForbidden, Redirect: access.PathAdminDashboard}
	}
	snap, err := uc.resolve(ctx, profileID, s)
	if err != nil {
		return dto.NavigationView{}, err
	}
	visible := entitlement.Visible(s, snap)
	return dto.NavigationView{
		Items:   presenter.Navigation(visible),
		Modules: presenter.ModuleKeys(visible),
		Stale:   snap.Failed(),
	}, nil
}

// Gate decisión del gate para path con la sesión del perfil.
func (uc *PortalUseCase) Gate(ctx context.Context, profileID, path string) dto.GateView {
	r := access.Match(path)
	primary, demo := uc.sessions.Sessions(ctx, profileID)
	in := access.Input{Session: access.SelectSession(r.Family, primary, demo)}

	if in.Session != nil && r.Family != access.FamilyPublic {
		if err := uc.expireDemo(ctx, profileID, *in.Session); err != nil {
			return dto.GateView{
				Path:     r.Path,
				State:    string(access.StateUnauthenticated),
				Redirect: access.PathDemoLogin,
			}
		}
	}

	if s := in.Session; s != nil && !s.IsSuperAdmin() && (r.Family == access.FamilyCustomer || r.Family == access.FamilyDemo) {
		snap := uc.resolver.Resolve(ctx, *s)
		in.Entitlements = entitlement.ForGate(*s, snap)
		in.Lifecycle = uc.lifecycleOf(snap)
	}

	d := access.Decide(path, in)
	if d.ClearSession && in.Session != nil {
		if err := uc.sessions.Invalidate(ctx, profileID, *in.Session, domain.ErrAuth); err != nil {
			uc.log.Error().Err(err).Msg("no se pudo limpiar la sesión rechazada")
		}
	}
	return dto.GateView{
		Path:     d.Route.Path,
		State:    string(d.State),
		Render:   d.Renders(),
		Redirect: d.Redirect,
		Overlay:  presenter.Overlay(d.Overlay, uc.contact),
	}
}

// Banner banner de la sesión: countdown para demo, vencimiento para tenant, más el overlay
// de bloqueo cuando corresponde.
func (uc *PortalUseCase) Banner(ctx context.Context, profileID string) (dto.BannerResponse, error) {
	s, err := uc.customerSession(ctx, profileID)
	if err != nil {
		return dto.BannerResponse{}, err
	}
	if s.IsSuperAdmin() {
		return dto.BannerResponse{Banner: dto.BannerView{Level: string(lifecycle.LevelNone)}}, nil
	}
	if exp, ok := s.DemoExpiresAt(); ok {
		return dto.BannerResponse{Banner: presenter.DemoBanner(lifecycle.DemoCountdown(exp, uc.now()))}, nil
	}

	snap, err := uc.resolve(ctx, profileID, s)
	if err != nil {
		return dto.BannerResponse{}, err
	}
	st := uc.lifecycleOf(snap)
	if st == nil {
		return dto.BannerResponse{Banner: dto.BannerView{Level: string(lifecycle.LevelNone)}}, nil
	}
	demo := lifecycle.DemoAccount(s, st)
	out := dto.BannerResponse{Banner: presenter.Banner(lifecycle.BannerLevel(*st, demo), *st)}
	if !demo {
		switch {
		case st.Expired:
			out.Overlay = presenter.ExpiredOverlay(uc.contact)
		case st.Suspended:
			out.Overlay = presenter.SuspendedOverlay(uc.contact)
		}
	}
	return out, nil
}

// Subscription tarjeta de estado, límites y módulos del plan.
func (uc *PortalUseCase) Subscription(ctx context.Context, profileID string) (dto.SubscriptionView, error) {
	s, err := uc.customerSession(ctx, profileID)
	if err != nil {
		return dto.SubscriptionView{}, err
	}
	if s.IsSuperAdmin() {
		return dto.SubscriptionView{}, &RedirectError{Err: domain.ErrForbidden, Redirect: access.PathAdminDashboard}
	}
	snap, err := uc.resolve(ctx, profileID, s)
	if err != nil {
		return dto.SubscriptionView{}, err
	}
	if snap.Failed() {
		return dto.SubscriptionView{}, snap.Err
	}
	if snap.Subscription == nil {
		return dto.SubscriptionView{}, domain.ErrEntitlementFetch
	}
	sub := snap.Subscription
	st := lifecycle.EvaluateSubscription(*sub, uc.now())
	return dto.SubscriptionView{
		Package:     sub.Package,
		Status:      string(sub.Status),
		CompanyName: sub.CompanyName,
		Card:        presenter.StatusCard(st, sub.Package, sub.ExpiryDate),
		Limits:      presenter.LimitLabels(sub.Limits),
		Modules:     presenter.ModuleKeys(entitlement.Visible(s, snap)),
	}, nil
}
