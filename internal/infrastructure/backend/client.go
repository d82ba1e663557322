package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/ports"
	"github.com/jhoicas/erp-portal/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa ports.Backend.
var _ ports.Backend = (*Client)(nil)

// HeaderRequestID correlación de cada llamada con los logs del backend.
const HeaderRequestID = "X-Request-ID"

// Client adaptador REST de la API del POS + ERP sobre net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, transportes propios).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient construye el adaptador. baseURL incluye el prefijo /api.
// Todas las llamadas llevan timeout; un timeout es transitorio, nunca un error de auth.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Login POST /auth/login.
func (c *Client) Login(ctx context.Context, identifier, password string) (*dto.LoginResponse, error) {
	in := dto.LoginRequest{Identifier: identifier, Email: identifier, Password: password}
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &domain.APIError{Status: http.StatusOK, Message: "login sin access_token", Kind: domain.ErrUpstream}
	}
	return &out, nil
}

// Logout POST /auth/logout (best-effort: el llamador limpia la sesión local igual).
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", accessToken, nil, nil)
}

// DemoLogin POST /demo/login.
func (c *Client) DemoLogin(ctx context.Context, username, password string) (*dto.DemoLoginResponse, error) {
	var out dto.DemoLoginResponse
	if err := c.do(ctx, http.MethodPost, "/demo/login", "", dto.DemoLoginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &domain.APIError{Status: http.StatusOK, Message: "demo login sin token", Kind: domain.ErrUpstream}
	}
	return &out, nil
}

// Subscription GET /customer/subscription.
func (c *Client) Subscription(ctx context.Context, accessToken string) (*dto.SubscriptionResponse, error) {
	var out dto.SubscriptionResponse
	if err := c.do(ctx, http.MethodGet, "/customer/subscription", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBookings GET /admin/bookings.
func (c *Client) ListBookings(ctx context.Context, accessToken string) ([]dto.BookingDTO, error) {
	var out dto.BookingListResponse
	if err := c.do(ctx, http.MethodGet, "/admin/bookings", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

// ApproveBooking POST /admin/bookings/:id/approve.
func (c *Client) ApproveBooking(ctx context.Context, accessToken, bookingID string) error {
	return c.do(ctx, http.MethodPost, "/admin/bookings/"+url.PathEscape(bookingID)+"/approve", accessToken, struct{}{}, nil)
}

// RejectBooking POST /admin/bookings/:id/reject.
func (c *Client) RejectBooking(ctx context.Context, accessToken, bookingID, reason string) error {
	return c.do(ctx, http.MethodPost, "/admin/bookings/"+url.PathEscape(bookingID)+"/reject", accessToken,
		dto.BookingRejectRequest{Reason: reason}, nil)
}

// SetBookingStatus PUT /admin/bookings/:id/status (revertir a pending).
func (c *Client) SetBookingStatus(ctx context.Context, accessToken, bookingID, status string) error {
	return c.do(ctx, http.MethodPut, "/admin/bookings/"+url.PathEscape(bookingID)+"/status", accessToken,
		dto.BookingStatusRequest{Status: status}, nil)
}

// ListPackages GET /public/packages.
func (c *Client) ListPackages(ctx context.Context) ([]dto.PackageDTO, error) {
	var out dto.PackageListResponse
	if err := c.do(ctx, http.MethodGet, "/public/packages", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Packages, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &domain.APIError{Status: resp.StatusCode, Message: "leer respuesta: " + err.Error(), Kind: domain.ErrTransient}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.APIError{Status: resp.StatusCode, Message: "deserializar respuesta: " + err.Error(), Kind: domain.ErrUpstream}
	}
	return nil
}

// transportError timeouts, cancelaciones y fallos de red son transitorios.
func transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return &domain.APIError{Message: "timeout o cancelación: " + ctx.Err().Error(), Kind: domain.ErrTransient}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.APIError{Message: "timeout: " + err.Error(), Kind: domain.ErrTransient}
	}
	return &domain.APIError{Message: "llamada HTTP fallida: " + err.Error(), Kind: domain.ErrTransient}
}

func statusError(status int, raw []byte) error {
	var body dto.BackendError
	_ = json.Unmarshal(raw, &body)
	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	kind := domain.ErrUpstream
	code := "UPSTREAM"
	switch {
	case status == http.StatusUnauthorized:
		kind, code = domain.ErrAuth, "UNAUTHORIZED"
	case status == http.StatusForbidden:
		kind, code = domain.ErrForbidden, "FORBIDDEN"
	case status == http.StatusNotFound:
		kind, code = domain.ErrNotFound, "NOT_FOUND"
	case status == http.StatusConflict:
		kind, code = domain.ErrConflict, "CONFLICT"
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind, code = domain.ErrValidation, "VALIDATION"
	case status == http.StatusRequestTimeout || status == http.StatusTooManyRequests ||
		status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout:
		kind, code = domain.ErrTransient, "TRANSIENT"
	}
	return &domain.APIError{Status: status, Code: code, Message: msg, Kind: kind}
}
