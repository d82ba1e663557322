package portstest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-portal/internal/application/dto"
)

// Tokens y usuarios de los fixtures.
const (
	TenantToken     = "tenant-token"
	CustomRoleToken = "custom-token"
	AdminToken      = "admin-token"
	DemoToken       = "demo-token"
)

func ts(t time.Time) *dto.Timestamp { return &dto.Timestamp{Time: t} }

// Seed registra un super-admin, un admin de tenant, un rol personalizado y una demo
// que expira en demoIn, con la suscripción del tenant venciendo en expiresIn.
func (b *Backend) Seed(now time.Time, status string, expiresIn, demoIn time.Duration) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Logins["root@pos-erp.com"] = &dto.LoginResponse{
		AccessToken: AdminToken, RefreshToken: "admin-refresh",
		User: dto.UserDTO{ID: "u-root", Name: "Root", Email: "root@pos-erp.com", IsSuperAdmin: true},
	}
	b.Logins["owner@acme.com"] = &dto.LoginResponse{
		AccessToken: TenantToken, RefreshToken: "tenant-refresh",
		User: dto.UserDTO{ID: "u-owner", Name: "Owner", Email: "owner@acme.com", Role: "admin", TenantID: "t-acme", TenantName: "Acme"},
	}
	b.Logins["cashier"] = &dto.LoginResponse{
		AccessToken: CustomRoleToken, RefreshToken: "custom-refresh",
		User: dto.UserDTO{
			ID: "u-cashier", Name: "Cashier", Username: "cashier", Role: "cashier",
			AllowedModules: []string{"pos", "hr", "settings"}, TenantID: "t-acme", TenantName: "Acme",
		},
	}
	b.DemoLogins["demo_user"] = &dto.DemoLoginResponse{
		Token: DemoToken,
		User:  dto.UserDTO{ID: "u-demo", FirstName: "Demo", Username: "demo_user", IsDemo: true, ExpiresAt: ts(now.Add(demoIn))},
	}

	sub := &dto.SubscriptionResponse{
		Status:         status,
		Package:        "Business",
		StartDate:      ts(now.AddDate(0, -1, 0)),
		ExpiryDate:     ts(now.Add(expiresIn)),
		EnabledModules: []string{"pos", "inventory", "sales"},
		Limits:         map[string]float64{"max_users": 10, "max_branches": 2, "max_warehouses": -1, "max_monthly_transactions": 5000},
		CompanyName:    "Acme",
		Email:          "owner@acme.com",
	}
	b.Subscriptions[TenantToken] = sub
	b.Subscriptions[CustomRoleToken] = sub
	b.Subscriptions[DemoToken] = &dto.SubscriptionResponse{
		Status: "trial", Package: "Demo", IsDemo: true,
		ExpiryDate:     ts(now.Add(demoIn)),
		EnabledModules: []string{"pos", "inventory", "sales", "purchase", "hr", "accounting", "manufacturing", "assets"},
		Limits:         map[string]float64{"max_users": -1},
		DemoExpiresAt:  ts(now.Add(demoIn)),
	}
	b.Bookings = []dto.BookingDTO{
		{ID: "b-1", CompanyName: "Globex", Email: "ops@globex.com", PackageName: "Business", Status: "pending", CreatedAt: ts(now.AddDate(0, 0, -2))},
		{ID: "b-2", CompanyName: "Initech", Email: "it@initech.com", PackageName: "Starter", Status: "approved", TenantID: "t-initech"},
	}
	b.Packages = []dto.PackageDTO{
		{ID: "p-business", Name: "Business", Price: decimal.RequireFromString("49.99"), BillingCycle: "monthly", TrialDays: 14,
			Modules: []string{"pos", "inventory", "sales"}, Limits: map[string]float64{"max_users": 10, "max_monthly_transactions": 5000}},
	}
	return b
}
