package dto

import (
	"math"
	"strings"

	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

// ToUser convierte el descriptor del backend a entidad.
func ToUser(u UserDTO) entity.User {
	name := u.Name
	if name == "" {
		name = u.FirstName
	}
	return entity.User{
		ID:             u.ID,
		Name:           name,
		Email:          u.Email,
		Username:       u.Username,
		Role:           u.Role,
		AllowedModules: u.AllowedModules,
		TenantID:       u.TenantID,
		TenantName:     u.TenantName,
		IsSuperAdmin:   u.IsSuperAdmin,
		IsDemo:         u.IsDemo,
		ExpiresAt:      u.ExpiresAt.Ptr(),
	}
}

// FromUser convierte la entidad al descriptor persistido.
func FromUser(u entity.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Username:       u.Username,
		Role:           u.Role,
		AllowedModules: u.AllowedModules,
		TenantID:       u.TenantID,
		TenantName:     u.TenantName,
		IsSuperAdmin:   u.IsSuperAdmin,
		IsDemo:         u.IsDemo,
		ExpiresAt:      NewTimestamp(u.ExpiresAt),
	}
}

// ToSubscription tipa la respuesta de "mi suscripción".
func ToSubscription(r SubscriptionResponse) entity.Subscription {
	return entity.Subscription{
		Status:         entity.SubscriptionStatus(strings.ToLower(strings.TrimSpace(r.Status))),
		Package:        r.Package,
		StartDate:      r.StartDate.Ptr(),
		ExpiryDate:     r.ExpiryDate.Ptr(),
		CreditDays:     r.CreditDays,
		EnabledModules: r.EnabledModules,
		Limits:         ToLimits(r.Limits),
		IsDemo:         r.IsDemo,
		DemoExpiresAt:  r.DemoExpiresAt.Ptr(),
		CompanyName:    r.CompanyName,
		Email:          r.Email,
	}
}

// ToLimits normaliza las claves ("max_users" → "users") y redondea hacia abajo.
// Cualquier valor negativo se interpreta como ilimitado.
func ToLimits(raw map[string]float64) entity.Limits {
	out := make(entity.Limits, len(raw))
	for k, v := range raw {
		key := entity.LimitKind(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(k)), "max_"))
		if v < 0 {
			out[key] = entity.Unlimited
			continue
		}
		out[key] = int(math.Floor(v))
	}
	return out
}

// ToBooking convierte una solicitud de alta.
func ToBooking(b BookingDTO) entity.Booking {
	id := b.ID
	if id == "" {
		id = b.MongoID
	}
	out := entity.Booking{
		ID:          id,
		CompanyName: b.CompanyName,
		ContactName: b.ContactName,
		Email:       b.Email,
		Phone:       b.Phone,
		PackageID:   b.PackageID,
		PackageName: b.PackageName,
		Status:      entity.BookingStatus(b.Status),
		TenantID:    b.TenantID,
	}
	if b.CreatedAt != nil {
		out.CreatedAt = b.CreatedAt.Time
	}
	return out
}

// ToPackage convierte un plan publicado.
func ToPackage(p PackageDTO) entity.Package {
	id := p.ID
	if id == "" {
		id = p.MongoID
	}
	return entity.Package{
		ID:           id,
		Name:         p.Name,
		Price:        p.Price,
		BillingCycle: p.BillingCycle,
		TrialDays:    p.TrialDays,
		Modules:      p.Modules,
		Limits:       ToLimits(p.Limits),
	}
}
