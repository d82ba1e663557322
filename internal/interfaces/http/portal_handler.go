package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/portal"
)

// PortalHandler vistas del dashboard: navegación, gate, banner y suscripción.
type PortalHandler struct {
	uc *portal.PortalUseCase
}

// NewPortalHandler construye el handler.
func NewPortalHandler(uc *portal.PortalUseCase) *PortalHandler {
	return &PortalHandler{uc: uc}
}

// Navigation godoc
// @Summary      Pestañas visibles del dashboard
// @Tags         portal
// @Produce      json
// @Success      200  {object}  dto.NavigationView
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /portal/navigation [get]
func (h *PortalHandler) Navigation(c *fiber.Ctx) error {
	out, err := h.uc.Navigation(c.Context(), GetProfileID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Gate godoc
// @Summary      Decisión del gate para una ruta del front end
// @Tags         portal
// @Produce      json
// @Param        path  query  string  true  "ruta, ej. /customer/dashboard/pos"
// @Success      200   {object}  dto.GateView
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /portal/gate [get]
func (h *PortalHandler) Gate(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "path es requerido"})
	}
	return c.JSON(h.uc.Gate(c.Context(), GetProfileID(c), path))
}

// Banner godoc
// @Summary      Banner de vencimiento o countdown demo, con overlay de bloqueo
// @Tags         portal
// @Produce      json
// @Success      200  {object}  dto.BannerResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /portal/banner [get]
func (h *PortalHandler) Banner(c *fiber.Ctx) error {
	out, err := h.uc.Banner(c.Context(), GetProfileID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Subscription godoc
// @Summary      Tarjeta de estado y límites del plan
// @Tags         portal
// @Produce      json
// @Success      200  {object}  dto.SubscriptionView
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /portal/subscription [get]
func (h *PortalHandler) Subscription(c *fiber.Ctx) error {
	out, err := h.uc.Subscription(c.Context(), GetProfileID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
