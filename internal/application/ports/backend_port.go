package ports

import (
	"context"

	"github.com/jhoicas/erp-portal/internal/application/dto"
)

// Backend contrato mínimo de la API REST del POS + ERP que usa el portal.
// Lo implementa infrastructure/backend.Client; los errores se desenvuelven a los
// sentinelas de domain (ErrAuth, ErrTransient, ErrUpstream, ...).
type Backend interface {
	Login(ctx context.Context, identifier, password string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, accessToken string) error
	DemoLogin(ctx context.Context, username, password string) (*dto.DemoLoginResponse, error)
	Subscription(ctx context.Context, accessToken string) (*dto.SubscriptionResponse, error)

	ListBookings(ctx context.Context, accessToken string) ([]dto.BookingDTO, error)
	ApproveBooking(ctx context.Context, accessToken, bookingID string) error
	RejectBooking(ctx context.Context, accessToken, bookingID, reason string) error
	SetBookingStatus(ctx context.Context, accessToken, bookingID, status string) error

	ListPackages(ctx context.Context) ([]dto.PackageDTO, error)
}
