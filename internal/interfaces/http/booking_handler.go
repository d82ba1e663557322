package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-portal/internal/application/admin"
	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/presenter"
	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

// BookingHandler administración de solicitudes de alta (super-admin).
type BookingHandler struct {
	uc *admin.BookingUseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *admin.BookingUseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

func toBookingView(b entity.Booking) dto.BookingView {
	v := dto.BookingView{
		ID:          b.ID,
		CompanyName: b.CompanyName,
		Email:       b.Email,
		PackageName: b.PackageName,
		Status:      string(b.Status),
	}
	if !b.CreatedAt.IsZero() {
		v.CreatedAt = &dto.Timestamp{Time: b.CreatedAt}
	}
	return v
}

// List godoc
// @Summary      Listar solicitudes de alta
// @Tags         admin
// @Produce      json
// @Param        status  query  string  false  "pending, approved o rejected"
// @Success      200  {array}   dto.BookingView
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /portal/admin/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	s, _ := GetSession(c)
	status := entity.BookingStatus(c.Query("status"))
	switch status {
	case "", entity.BookingPending, entity.BookingApproved, entity.BookingRejected:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido"})
	}
	list, err := h.uc.List(c.Context(), s, status)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.BookingView, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingView(b))
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud (crea tenant y usuario)
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.BookingView
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /portal/admin/bookings/{id}/approve [post]
func (h *BookingHandler) Approve(c *fiber.Ctx) error {
	s, _ := GetSession(c)
	return h.respond(c, func() (entity.Booking, error) { return h.uc.Approve(c.Context(), s, c.Params("id")) })
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true   "ID de la solicitud"
// @Param        body  body  dto.BookingRejectRequest  false  "motivo"
// @Success      200  {object}  dto.BookingView
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /portal/admin/bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c *fiber.Ctx) error {
	s, _ := GetSession(c)
	var in dto.BookingRejectRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	return h.respond(c, func() (entity.Booking, error) { return h.uc.Reject(c.Context(), s, c.Params("id"), in.Reason) })
}

// Revert godoc
// @Summary      Revertir solicitud a pending
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.BookingView
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /portal/admin/bookings/{id}/revert [post]
func (h *BookingHandler) Revert(c *fiber.Ctx) error {
	s, _ := GetSession(c)
	return h.respond(c, func() (entity.Booking, error) { return h.uc.Revert(c.Context(), s, c.Params("id")) })
}

func (h *BookingHandler) respond(c *fiber.Ctx, fn func() (entity.Booking, error)) error {
	if c.Params("id") == "" {
		return writeError(c, domain.ErrValidation)
	}
	b, err := fn()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toBookingView(b))
}

// Packages godoc
// @Summary      Planes publicados
// @Tags         public
// @Produce      json
// @Success      200  {array}   dto.PackageView
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /portal/packages [get]
func (h *BookingHandler) Packages(c *fiber.Ctx) error {
	list, err := h.uc.Packages(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PackageView, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PackageView{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price,
			BillingCycle: p.BillingCycle,
			TrialDays:    p.TrialDays,
			Modules:      p.Modules,
			Limits:       presenter.LimitLabels(p.Limits),
		})
	}
	return c.JSON(out)
}
