package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-portal/internal/application/auth"
	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/portal"
	"github.com/jhoicas/erp-portal/internal/domain/access"
)

// AuthHandler maneja login, demo-login, logout y la sesión actual.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	portal *portal.PortalUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, p *portal.PortalUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, portal: p}
}

// Login godoc
// @Summary      Iniciar sesión (super-admin o usuario de tenant)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PortalLoginRequest  true  "identifier (email o usuario), password"
// @Success      200   {object}  dto.SessionView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /portal/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.PortalLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Identifier == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "identifier y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), GetProfileID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(portal.SessionView(out.Session))
}

// DemoLogin godoc
// @Summary      Iniciar sesión demo
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PortalDemoLoginRequest  true  "username, password"
// @Success      200   {object}  dto.SessionView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /portal/auth/demo-login [post]
func (h *AuthHandler) DemoLogin(c *fiber.Ctx) error {
	var in dto.PortalDemoLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	out, err := h.uc.DemoLogin(c.Context(), GetProfileID(c), in)
	if err != nil {
		return writeErrorRedirect(c, err, loginRedirect(err))
	}
	return c.JSON(portal.SessionView(out.Session))
}

// Logout godoc
// @Summary      Cerrar sesión (limpia ambos namespaces)
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.SessionView
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /portal/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), GetProfileID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SessionView{Redirect: access.PathHome})
}

// Session godoc
// @Summary      Sesión actual del perfil
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.SessionView
// @Router       /portal/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(h.portal.Session(c.Context(), GetProfileID(c)))
}
