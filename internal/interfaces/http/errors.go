package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/portal"
	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/access"
)

// writeError traduce errores de dominio a HTTP con dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var re *portal.RedirectError
	if errors.As(err, &re) {
		return writeErrorRedirect(c, re.Err, re.Redirect)
	}
	return writeErrorRedirect(c, err, "")
}

func writeErrorRedirect(c *fiber.Ctx, err error, redirect string) error {
	status, body := classify(err)
	body.Redirect = redirect
	return c.Status(status).JSON(body)
}

func classify(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrExpiryForcedLogout):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "DEMO_EXPIRED", Message: "la cuenta demo expiró"}
	case errors.Is(err, domain.ErrAuth):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas o sesión expirada"}
	case errors.Is(err, domain.ErrNoSession):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "NO_SESSION", Message: "no hay sesión activa"}
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrEntitlementFetch):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "ENTITLEMENT_FETCH", Message: "no se pudo cargar la suscripción, reintente"}
	case errors.Is(err, domain.ErrTransient):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "TRANSIENT", Message: "backend no disponible, reintente"}
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPSTREAM", Message: "error del backend"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
}

// loginRedirect login al que vuelve el front end tras un error global.
func loginRedirect(err error) string {
	if errors.Is(err, domain.ErrExpiryForcedLogout) {
		return access.PathDemoLogin
	}
	return ""
}
