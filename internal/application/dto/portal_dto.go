package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP del portal.
type ErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// PortalLoginRequest entrada de POST /portal/auth/login.
type PortalLoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// PortalDemoLoginRequest entrada de POST /portal/auth/demo-login.
type PortalDemoLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionView sesión actual sin credenciales.
type SessionView struct {
	Authenticated bool       `json:"authenticated"`
	Identity      string     `json:"identity,omitempty"`
	Namespace     string     `json:"namespace,omitempty"`
	Name          string     `json:"name,omitempty"`
	Email         string     `json:"email,omitempty"`
	Role          string     `json:"role,omitempty"`
	TenantID      string     `json:"tenant_id,omitempty"`
	TenantName    string     `json:"tenant_name,omitempty"`
	ExpiresAt     *Timestamp `json:"expires_at,omitempty"`
	TokenExpires  *Timestamp `json:"token_expires_at,omitempty"` // exp del token del backend, si es JWT
	Redirect      string     `json:"redirect,omitempty"`
}

// NavItem pestaña del dashboard.
type NavItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavigationView pestañas visibles para la sesión.
type NavigationView struct {
	Items   []NavItem `json:"items"`
	Modules []string  `json:"modules"`
	Stale   bool      `json:"stale,omitempty"` // la carga de entitlements falló
}

// ActionView acción ofrecida por un banner u overlay.
type ActionView struct {
	Kind  string `json:"kind"` // logout, renew, link
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

// OverlayView overlay de bloqueo.
type OverlayView struct {
	Kind     string       `json:"kind"`
	Icon     string       `json:"icon"`
	Headline string       `json:"headline"`
	Body     string       `json:"body"`
	Contacts []ActionView `json:"contacts"`
	Actions  []ActionView `json:"actions"`
}

// GateView decisión del gate para un path.
type GateView struct {
	Path     string       `json:"path"`
	State    string       `json:"state"`
	Render   bool         `json:"render"`
	Redirect string       `json:"redirect,omitempty"`
	Overlay  *OverlayView `json:"overlay,omitempty"`
}

// BannerView descriptor de banner; Render=false significa no pintar nada.
type BannerView struct {
	Level          string `json:"level"`
	Render         bool   `json:"render"`
	UrgencyColor   string `json:"urgency_color,omitempty"`
	Icon           string `json:"icon,omitempty"`
	Headline       string `json:"headline,omitempty"`
	Subtext        string `json:"subtext,omitempty"`
	ShowRenew      bool   `json:"show_renew_action"`
	RenewPath      string `json:"renew_path,omitempty"`
	DaysRemaining  int    `json:"days_remaining,omitempty"`
	HoursRemaining int    `json:"hours_remaining,omitempty"`
	MinsRemaining  int    `json:"minutes_remaining,omitempty"`
}

// BannerResponse respuesta de GET /portal/banner.
type BannerResponse struct {
	Banner   BannerView   `json:"banner"`
	Overlay  *OverlayView `json:"overlay,omitempty"`
	Redirect string       `json:"redirect,omitempty"`
}

// StatusCardView tarjeta de estado de la página de suscripción.
type StatusCardView struct {
	Color         string     `json:"color"`
	Icon          string     `json:"icon"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DaysRemaining int        `json:"days_remaining"`
	ExpiryLabel   string     `json:"expiry_label,omitempty"`
	ExpiryDate    *Timestamp `json:"expiry_date,omitempty"`
}

// LimitView límite con etiqueta legible.
type LimitView struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Value int    `json:"value"`
	Text  string `json:"text"`
}

// SubscriptionView respuesta de GET /portal/subscription.
type SubscriptionView struct {
	Package     string         `json:"package"`
	Status      string         `json:"status"`
	CompanyName string         `json:"company_name,omitempty"`
	Card        StatusCardView `json:"card"`
	Limits      []LimitView    `json:"limits"`
	Modules     []string       `json:"modules"`
}

// BookingView solicitud de alta en listados de administración.
type BookingView struct {
	ID          string     `json:"id"`
	CompanyName string     `json:"company_name"`
	Email       string     `json:"email"`
	PackageName string     `json:"package_name,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
}

// PackageView plan publicado.
type PackageView struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	BillingCycle string          `json:"billing_cycle,omitempty"`
	TrialDays    int             `json:"trial_days,omitempty"`
	Modules      []string        `json:"modules"`
	Limits       []LimitView     `json:"limits,omitempty"`
}
