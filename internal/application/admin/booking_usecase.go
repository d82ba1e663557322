package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/ports"
	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/pkg/logger"
)

// BookingUseCase administración de solicitudes de alta; solo para super-admin.
type BookingUseCase struct {
	backend ports.Backend
	log     *logger.Logger
}

// NewBookingUseCase construye el caso de uso.
func NewBookingUseCase(backend ports.Backend, log *logger.Logger) *BookingUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BookingUseCase{backend: backend, log: log.Component("bookings")}
}

func requireSuperAdmin(s entity.Session) error {
	if !s.IsSuperAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// List solicitudes de alta, opcionalmente filtradas por estado.
func (uc *BookingUseCase) List(ctx context.Context, s entity.Session, status entity.BookingStatus) ([]entity.Booking, error) {
	if err := requireSuperAdmin(s); err != nil {
		return nil, err
	}
	raw, err := uc.backend.ListBookings(ctx, s.AccessToken)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Booking, 0, len(raw))
	for _, b := range raw {
		bk := dto.ToBooking(b)
		if status != "" && bk.Status != status {
			continue
		}
		out = append(out, bk)
	}
	return out, nil
}

// Approve pending → approved (el backend crea tenant y usuario).
func (uc *BookingUseCase) Approve(ctx context.Context, s entity.Session, id string) (entity.Booking, error) {
	return uc.transition(ctx, s, id, entity.BookingApproved, func(token string) error {
		return uc.backend.ApproveBooking(ctx, token, id)
	})
}

// Reject pending → rejected.
func (uc *BookingUseCase) Reject(ctx context.Context, s entity.Session, id, reason string) (entity.Booking, error) {
	return uc.transition(ctx, s, id, entity.BookingRejected, func(token string) error {
		return uc.backend.RejectBooking(ctx, token, id, strings.TrimSpace(reason))
	})
}

// Revert approved|rejected → pending.
func (uc *BookingUseCase) Revert(ctx context.Context, s entity.Session, id string) (entity.Booking, error) {
	return uc.transition(ctx, s, id, entity.BookingPending, func(token string) error {
		return uc.backend.SetBookingStatus(ctx, token, id, string(entity.BookingPending))
	})
}

// transition valida la transición localmente antes de llamar al backend.
func (uc *BookingUseCase) transition(ctx context.Context, s entity.Session, id string, to entity.BookingStatus, call func(token string) error) (entity.Booking, error) {
	if err := requireSuperAdmin(s); err != nil {
		return entity.Booking{}, err
	}
	if strings.TrimSpace(id) == "" {
		return entity.Booking{}, domain.ErrValidation
	}
	bk, err := uc.find(ctx, s, id)
	if err != nil {
		return entity.Booking{}, err
	}
	if !bk.CanTransition(to) {
		return bk, fmt.Errorf("%w: %s → %s", domain.ErrConflict, bk.Status, to)
	}
	if err := call(s.AccessToken); err != nil {
		return bk, err
	}
	uc.log.Info().Str("booking", id).Str("from", string(bk.Status)).Str("to", string(to)).Msg("booking actualizado")
	bk.Status = to
	if to == entity.BookingPending {
		bk.TenantID = ""
	}
	return bk, nil
}

func (uc *BookingUseCase) find(ctx context.Context, s entity.Session, id string) (entity.Booking, error) {
	all, err := uc.List(ctx, s, "")
	if err != nil {
		return entity.Booking{}, err
	}
	for _, b := range all {
		if b.ID == id {
			return b, nil
		}
	}
	return entity.Booking{}, domain.ErrNotFound
}

// Packages planes publicados (no requiere sesión).
func (uc *BookingUseCase) Packages(ctx context.Context) ([]entity.Package, error) {
	raw, err := uc.backend.ListPackages(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []entity.Package{}, nil
		}
		return nil, err
	}
	out := make([]entity.Package, 0, len(raw))
	for _, p := range raw {
		out = append(out, dto.ToPackage(p))
	}
	return out, nil
}
