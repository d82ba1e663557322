package access

import (
	"strings"

	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

// Family familia de rutas; decide la superficie de login y la sesión que aplica.
type Family string

const (
	FamilyPublic   Family = "public"
	FamilyAdmin    Family = "admin"
	FamilyCustomer Family = "customer"
	FamilyDemo     Family = "demo"
	FamilyUnknown  Family = "unknown"
)

// Rutas fijas del front end.
const (
	PathHome              = "/"
	PathAdminLogin        = "/login"
	PathCustomerLogin     = "/customer/login"
	PathDemoLogin         = "/demo/login"
	PathDemoRequest       = "/demo/request"
	PathAdminDashboard    = "/admin"
	PathCustomerDashboard = "/customer/dashboard"
	PathDemoPortal        = "/demo/portal"
	PathSubscription      = "/customer/dashboard/subscription"
	checkoutPrefix        = "/checkout/"
)

// Route ruta ya clasificada.
type Route struct {
	Path    string
	Family  Family
	Module  entity.Module // "" = no requiere módulo
	Unknown bool          // subruta inexistente dentro de una familia conocida
}

// customerSubroutes subrutas del dashboard de cliente y el módulo que exigen.
var customerSubroutes = map[string]entity.Module{
	"":              "",
	"subscription":  "",
	"pos":           entity.ModulePOS,
	"inventory":     entity.ModuleInventory,
	"sales":         entity.ModuleSales,
	"purchase":      entity.ModulePurchase,
	"hr":            entity.ModuleHR,
	"accounting":    entity.ModuleAccounting,
	"manufacturing": entity.ModuleManufacturing,
	"assets":        entity.ModuleAssets,
	"activity":      entity.ModuleActivityLogs,
	"settings":      entity.ModuleSettings,
}

// ModulePath ruta del dashboard correspondiente a un módulo.
func ModulePath(m entity.Module) string {
	for seg, mod := range customerSubroutes {
		if mod == m && seg != "" && mod != "" {
			return PathCustomerDashboard + "/" + seg
		}
	}
	return PathCustomerDashboard
}

// Match clasifica un path (se ignoran query, fragmento y barra final).
func Match(raw string) Route {
	p := normalize(raw)
	switch p {
	case PathHome, PathAdminLogin, PathCustomerLogin, PathDemoLogin, PathDemoRequest:
		return Route{Path: p, Family: FamilyPublic}
	case PathDemoPortal:
		return Route{Path: p, Family: FamilyDemo}
	}
	if rest, ok := strings.CutPrefix(p, checkoutPrefix); ok && rest != "" && !strings.Contains(rest, "/") {
		return Route{Path: p, Family: FamilyPublic}
	}
	if p == PathAdminDashboard || strings.HasPrefix(p, PathAdminDashboard+"/") {
		return Route{Path: p, Family: FamilyAdmin}
	}
	if p == PathCustomerDashboard || strings.HasPrefix(p, PathCustomerDashboard+"/") {
		seg := strings.TrimPrefix(strings.TrimPrefix(p, PathCustomerDashboard), "/")
		if i := strings.IndexByte(seg, '/'); i >= 0 {
			seg = seg[:i]
		}
		mod, ok := customerSubroutes[seg]
		return Route{Path: p, Family: FamilyCustomer, Module: mod, Unknown: !ok}
	}
	return Route{Path: p, Family: FamilyUnknown, Unknown: true}
}

// LoginSurface pantalla de login de cada familia.
func LoginSurface(f Family) string {
	switch f {
	case FamilyAdmin:
		return PathAdminLogin
	case FamilyDemo:
		return PathDemoLogin
	default:
		return PathCustomerLogin
	}
}

// LoginDestination destino tras un login exitoso, sin importar qué formulario se usó:
// super-admin siempre a la superficie de administración, el resto al dashboard de cliente.
func LoginDestination(s entity.Session) string {
	if s.IsSuperAdmin() {
		return PathAdminDashboard
	}
	return PathCustomerDashboard
}

func normalize(raw string) string {
	p := raw
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSpace(p)
	if p == "" {
		return PathHome
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
