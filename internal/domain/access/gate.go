// Package access decide, por ruta, si se renderiza, se redirige o se bloquea con overlay.
package access

import (
	"errors"

	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/lifecycle"
)

// State pantalla en la que queda el usuario.
type State string

const (
	StatePublic          State = "public"
	StateUnauthenticated State = "unauthenticated"
	StateLoading         State = "loading" // autenticado, snapshot en carga: nunca "acceso denegado"
	StateBlocked         State = "blocked"
	StateAllowed         State = "allowed"
	StateRedirect        State = "redirect"  // identidad de otra superficie
	StateNotFound        State = "not_found" // ruta inexistente o módulo no visible
)

// Overlay bloqueo a pantalla completa.
type Overlay string

const (
	OverlayNone      Overlay = ""
	OverlayExpired   Overlay = "expired"
	OverlaySuspended Overlay = "suspended"
)

// Entitlements lo que el gate necesita del resolver.
type Entitlements struct {
	Visible entity.ModuleSet
	Err     error
}

// Input sesión, entitlements y fase de suscripción vigentes para la ruta.
// Entitlements nil = aún cargando; Lifecycle nil = desconocido (no bloquea).
type Input struct {
	Session      *entity.Session
	Entitlements *Entitlements
	Lifecycle    *lifecycle.State
}

// Decision resultado del gate.
type Decision struct {
	State        State
	Route        Route
	Redirect     string
	Overlay      Overlay
	ClearSession bool // la sesión dejó de ser válida (401)
}

// Renders informa si la ruta pedida se renderiza tal cual.
func (d Decision) Renders() bool {
	return d.State == StateAllowed || d.State == StatePublic
}

// SelectSession sesión que aplica a una familia de rutas. El dashboard de cliente acepta
// la sesión primaria y, en su defecto, la demo; el portal demo solo la demo.
func SelectSession(f Family, primary, demo *entity.Session) *entity.Session {
	switch f {
	case FamilyAdmin:
		return primary
	case FamilyCustomer:
		if primary != nil {
			return primary
		}
		return demo
	case FamilyDemo:
		return demo
	default:
		return nil
	}
}

// Decide aplica la máquina de estados del gate a un path.
func Decide(path string, in Input) Decision {
	r := Match(path)
	d := Decision{Route: r}

	switch r.Family {
	case FamilyPublic:
		d.State = StatePublic
		return d
	case FamilyUnknown:
		d.State, d.Redirect = StateNotFound, PathHome
		return d
	}

	s := in.Session
	if s == nil {
		d.State, d.Redirect = StateUnauthenticated, LoginSurface(r.Family)
		return d
	}

	switch r.Family {
	case FamilyAdmin:
		if !s.IsSuperAdmin() {
			d.State, d.Redirect = StateRedirect, PathCustomerDashboard
			return d
		}
		d.State = StateAllowed
		return d
	case FamilyDemo:
		if !s.IsDemo() {
			d.State, d.Redirect = StateUnauthenticated, PathDemoLogin
			return d
		}
	case FamilyCustomer:
		if s.IsSuperAdmin() {
			d.State, d.Redirect = StateRedirect, PathAdminDashboard
			return d
		}
	}

	if in.Entitlements == nil {
		d.State = StateLoading
		return d
	}
	if errors.Is(in.Entitlements.Err, domain.ErrAuth) {
		d.State, d.ClearSession = StateUnauthenticated, true
		d.Redirect = PathCustomerLogin
		if s.IsDemo() {
			d.Redirect = PathDemoLogin
		}
		return d
	}

	if ov := blockingOverlay(*s, in.Lifecycle); ov != OverlayNone {
		d.State, d.Overlay = StateBlocked, ov
		return d
	}

	if r.Unknown || (r.Module != "" && !in.Entitlements.Visible.Has(r.Module)) {
		d.State, d.Redirect = StateNotFound, PathCustomerDashboard
		return d
	}
	d.State = StateAllowed
	return d
}

// blockingOverlay solo las cuentas no demo con vencimiento (o suspensión) confirmado se bloquean.
func blockingOverlay(s entity.Session, st *lifecycle.State) Overlay {
	if st == nil || lifecycle.DemoAccount(s, st) {
		return OverlayNone
	}
	switch {
	case st.Expired:
		return OverlayExpired
	case st.Suspended:
		return OverlaySuspended
	default:
		return OverlayNone
	}
}
