package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-portal/internal/application/admin"
	"github.com/jhoicas/erp-portal/internal/application/auth"
	"github.com/jhoicas/erp-portal/internal/application/portal"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	PortalUC  *portal.PortalUseCase
	BookingUC *admin.BookingUseCase
	Profile   ProfileConfig
}

// Router registra las rutas del portal.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/portal", ProfileMiddleware(deps.Profile))

	// Auth y sesión
	authHandler := NewAuthHandler(deps.AuthUC, deps.PortalUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/demo-login", authHandler.DemoLogin)
	authGroup.Post("/logout", authHandler.Logout)
	api.Get("/session", authHandler.Session)

	// Vistas del dashboard
	portalHandler := NewPortalHandler(deps.PortalUC)
	api.Get("/navigation", portalHandler.Navigation)
	api.Get("/gate", portalHandler.Gate)
	api.Get("/banner", portalHandler.Banner)
	api.Get("/subscription", portalHandler.Subscription)

	// Planes (público)
	bookingHandler := NewBookingHandler(deps.BookingUC)
	api.Get("/packages", bookingHandler.Packages)

	// Administración (super-admin)
	adminGroup := api.Group("/admin", RequireSuperAdmin(deps.AuthUC))
	adminGroup.Get("/bookings", bookingHandler.List)
	adminGroup.Post("/bookings/:id/approve", bookingHandler.Approve)
	adminGroup.Post("/bookings/:id/reject", bookingHandler.Reject)
	adminGroup.Post("/bookings/:id/revert", bookingHandler.Revert)
}
