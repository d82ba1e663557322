package entity

import "time"

// SubscriptionStatus fase de la licencia del tenant.
type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusExpired   SubscriptionStatus = "expired"
	StatusSuspended SubscriptionStatus = "suspended"
)

// Subscription respuesta de "mi suscripción" ya tipada.
type Subscription struct {
	Status         SubscriptionStatus
	Package        string
	StartDate      *time.Time
	ExpiryDate     *time.Time // nil = sin vencimiento
	CreditDays     int
	EnabledModules []string
	Limits         Limits
	IsDemo         bool
	DemoExpiresAt  *time.Time
	CompanyName    string
	Email          string
}
