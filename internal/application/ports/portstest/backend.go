// Package portstest provee un ports.Backend en memoria para tests.
package portstest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/ports"
	"github.com/jhoicas/erp-portal/internal/domain"
)

var _ ports.Backend = (*Backend)(nil)

// Backend fake configurable. Las respuestas se indexan por identificador o token.
type Backend struct {
	mu sync.Mutex

	Logins        map[string]*dto.LoginResponse     // identifier → respuesta
	DemoLogins    map[string]*dto.DemoLoginResponse // username → respuesta
	Subscriptions map[string]*dto.SubscriptionResponse
	// SubscriptionErr fuerza un error en toda carga de suscripción.
	SubscriptionErr error
	// SubscriptionGate si no es nil, Subscription espera a que se cierre.
	SubscriptionGate chan struct{}
	LogoutErr        error
	Bookings         []dto.BookingDTO
	BookingErr       error
	Packages         []dto.PackageDTO

	SubscriptionCalls atomic.Int32
	LogoutCalls       atomic.Int32
	Actions           []string // "approve:<id>", "reject:<id>:<reason>", "status:<id>:<status>"
}

// New fake vacío.
func New() *Backend {
	return &Backend{
		Logins:        map[string]*dto.LoginResponse{},
		DemoLogins:    map[string]*dto.DemoLoginResponse{},
		Subscriptions: map[string]*dto.SubscriptionResponse{},
	}
}

func (b *Backend) Login(_ context.Context, identifier, password string) (*dto.LoginResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.Logins[identifier]
	if !ok || password != "secret" {
		return nil, &domain.APIError{Status: 401, Code: "UNAUTHORIZED", Message: "Invalid credentials", Kind: domain.ErrAuth}
	}
	return r, nil
}

func (b *Backend) Logout(_ context.Context, _ string) error {
	b.LogoutCalls.Add(1)
	return b.LogoutErr
}

func (b *Backend) DemoLogin(_ context.Context, username, password string) (*dto.DemoLoginResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.DemoLogins[username]
	if !ok || password != "secret" {
		return nil, &domain.APIError{Status: 401, Code: "UNAUTHORIZED", Message: "Invalid credentials", Kind: domain.ErrAuth}
	}
	return r, nil
}

func (b *Backend) Subscription(ctx context.Context, token string) (*dto.SubscriptionResponse, error) {
	b.SubscriptionCalls.Add(1)
	if b.SubscriptionGate != nil {
		select {
		case <-b.SubscriptionGate:
		case <-ctx.Done():
			return nil, &domain.APIError{Message: ctx.Err().Error(), Kind: domain.ErrTransient}
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SubscriptionErr != nil {
		return nil, b.SubscriptionErr
	}
	r, ok := b.Subscriptions[token]
	if !ok {
		return nil, &domain.APIError{Status: 401, Code: "UNAUTHORIZED", Kind: domain.ErrAuth}
	}
	cp := *r
	return &cp, nil
}

func (b *Backend) ListBookings(_ context.Context, _ string) ([]dto.BookingDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.BookingErr != nil {
		return nil, b.BookingErr
	}
	return append([]dto.BookingDTO(nil), b.Bookings...), nil
}

func (b *Backend) setStatus(id, status string) {
	for i := range b.Bookings {
		if b.Bookings[i].ID == id {
			b.Bookings[i].Status = status
		}
	}
}

func (b *Backend) ApproveBooking(_ context.Context, _ string, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Actions = append(b.Actions, "approve:"+id)
	b.setStatus(id, "approved")
	return nil
}

func (b *Backend) RejectBooking(_ context.Context, _ string, id, reason string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Actions = append(b.Actions, "reject:"+id+":"+reason)
	b.setStatus(id, "rejected")
	return nil
}

func (b *Backend) SetBookingStatus(_ context.Context, _ string, id, status string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Actions = append(b.Actions, "status:"+id+":"+status)
	b.setStatus(id, status)
	return nil
}

func (b *Backend) ListPackages(_ context.Context) ([]dto.PackageDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.PackageDTO(nil), b.Packages...), nil
}

// ActionLog copia de las acciones registradas.
func (b *Backend) ActionLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.Actions...)
}
