package dto

import "github.com/shopspring/decimal"

// Contrato de la API REST del POS + ERP que consume el portal.

// LoginRequest entrada de POST /auth/login. El backend lee el identificador en "email"
// (acepta usuario o email); se envía también como "identifier".
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// UserDTO descriptor de usuario devuelto por el backend.
type UserDTO struct {
	ID             string     `json:"id"`
	Name           string     `json:"name,omitempty"`
	FirstName      string     `json:"first_name,omitempty"`
	Email          string     `json:"email,omitempty"`
	Username       string     `json:"username,omitempty"`
	Role           string     `json:"role,omitempty"`
	AllowedModules []string   `json:"allowed_modules,omitempty"`
	TenantID       string     `json:"tenant_id,omitempty"`
	TenantName     string     `json:"tenant_name,omitempty"`
	IsSuperAdmin   bool       `json:"is_super_admin"`
	IsDemo         bool       `json:"is_demo,omitempty"`
	ExpiresAt      *Timestamp `json:"expires_at,omitempty"`
}

// LoginResponse salida de POST /auth/login.
type LoginResponse struct {
	Message      string  `json:"message,omitempty"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

// DemoLoginRequest entrada de POST /demo/login.
type DemoLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DemoLoginResponse salida de POST /demo/login (namespace de token separado).
type DemoLoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// SubscriptionResponse salida de GET /customer/subscription.
type SubscriptionResponse struct {
	Status         string             `json:"status"`
	Package        string             `json:"package"`
	StartDate      *Timestamp         `json:"start_date"`
	ExpiryDate     *Timestamp         `json:"expiry_date"`
	CreditDays     int                `json:"credit_days,omitempty"`
	EnabledModules []string           `json:"enabled_modules"`
	Limits         map[string]float64 `json:"limits"`
	IsDemo         bool               `json:"is_demo"`
	DemoExpiresAt  *Timestamp         `json:"demo_expires_at,omitempty"`
	CompanyName    string             `json:"company_name"`
	Email          string             `json:"email"`
}

// BackendError cuerpo de error del backend ({"error": ..., "message": ...}).
type BackendError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BookingDTO solicitud de alta tal como la lista el backend.
type BookingDTO struct {
	ID          string     `json:"id"`
	MongoID     string     `json:"_id,omitempty"`
	CompanyName string     `json:"company_name"`
	ContactName string     `json:"contact_name,omitempty"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	PackageID   string     `json:"package_id,omitempty"`
	PackageName string     `json:"package_name,omitempty"`
	Status      string     `json:"status"`
	TenantID    string     `json:"tenant_id,omitempty"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
}

// BookingListResponse salida de GET /admin/bookings.
type BookingListResponse struct {
	Bookings []BookingDTO `json:"bookings"`
}

// BookingStatusRequest entrada de PUT /admin/bookings/:id/status.
type BookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingRejectRequest entrada de POST /admin/bookings/:id/reject.
type BookingRejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

// PackageDTO plan publicado en GET /public/packages.
type PackageDTO struct {
	ID           string             `json:"id"`
	MongoID      string             `json:"_id,omitempty"`
	Name         string             `json:"name"`
	Price        decimal.Decimal    `json:"price"`
	BillingCycle string             `json:"billing_cycle,omitempty"`
	TrialDays    int                `json:"trial_days,omitempty"`
	Modules      []string           `json:"modules,omitempty"`
	Limits       map[string]float64 `json:"limits,omitempty"`
}

// PackageListResponse salida de GET /public/packages.
type PackageListResponse struct {
	Packages []PackageDTO `json:"packages"`
}
