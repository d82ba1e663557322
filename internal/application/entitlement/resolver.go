package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/ports"
	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/pkg/logger"
)

// Resolver carga el snapshot de entitlements de una sesión. Llamadas concurrentes con el
// mismo token comparten un único GET /customer/subscription.
type Resolver struct {
	backend ports.Backend
	group   singleflight.Group
	now     func() time.Time
	log     *logger.Logger
}

// NewResolver construye el resolver.
func NewResolver(backend ports.Backend, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{backend: backend, now: time.Now, log: log.Component("entitlement")}
}

// WithClock reemplaza el reloj (tests).
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve nunca falla: un error queda en Snapshot.Err y los módulos se cierran a los siempre activos.
// Un super-admin no tiene suscripción de tenant; su snapshot es vacío y sin error.
func (r *Resolver) Resolve(ctx context.Context, s entity.Session) entity.Snapshot {
	if s.IsSuperAdmin() {
		return entity.Snapshot{EnabledModules: entity.NewModuleSet(), Limits: entity.Limits{}, FetchedAt: r.now()}
	}

	v, err, shared := r.group.Do(s.AccessToken, func() (any, error) {
		return r.backend.Subscription(ctx, s.AccessToken)
	})
	if shared {
		r.log.Debug().Str("user", s.User.ID).Msg("carga de suscripción compartida")
	}
	if err != nil {
		return r.failed(s, err)
	}
	resp, ok := v.(*dto.SubscriptionResponse)
	if !ok || resp == nil {
		return r.failed(s, fmt.Errorf("respuesta vacía"))
	}

	sub := dto.ToSubscription(*resp)
	enabled := entity.ModuleSetFromStrings(sub.EnabledModules)
	for _, m := range entity.AlwaysOn {
		enabled[m] = struct{}{}
	}
	return entity.Snapshot{
		EnabledModules: enabled,
		Limits:         sub.Limits,
		Subscription:   &sub,
		FetchedAt:      r.now(),
	}
}

func (r *Resolver) failed(s entity.Session, err error) entity.Snapshot {
	snap := entity.Snapshot{
		EnabledModules: entity.NewModuleSet(entity.AlwaysOn...),
		Limits:         entity.Limits{},
		FetchedAt:      r.now(),
	}
	if errors.Is(err, domain.ErrAuth) {
		snap.Err = err
		r.log.Info().Str("user", s.User.ID).Msg("token rechazado al cargar la suscripción")
		return snap
	}
	snap.Err = fmt.Errorf("%w: %w", domain.ErrEntitlementFetch, err)
	r.log.Warn().Err(err).Str("user", s.User.ID).Msg("no se pudo cargar la suscripción; módulos cerrados")
	return snap
}

// Visible módulos que la sesión puede ver con el snapshot dado.
func Visible(s entity.Session, snap entity.Snapshot) entity.ModuleSet {
	return access.VisibleModules(s, snap)
}

// ForGate adapta el snapshot a la entrada del gate.
func ForGate(s entity.Session, snap entity.Snapshot) *access.Entitlements {
	return &access.Entitlements{Visible: access.VisibleModules(s, snap), Err: snap.Err}
}
