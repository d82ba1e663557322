package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/infrastructure/backend"
)

func newServer(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL+"/api", 2*time.Second)
}

func TestLogin_EnviaIdentifierYEmail(t *testing.T) {
	var got map[string]string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		_, err := uuid.Parse(r.Header.Get(backend.HeaderRequestID))
		assert.NoError(t, err, "cada llamada lleva un X-Request-ID uuid")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok","access_token":"a","refresh_token":"r",
			"user":{"id":"u1","email":"owner@acme.com","role":"admin","tenant_id":"t1","is_super_admin":false}}`))
	})

	out, err := c.Login(context.Background(), "owner@acme.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a", out.AccessToken)
	assert.Equal(t, "t1", out.User.TenantID)
	assert.Equal(t, "owner@acme.com", got["identifier"])
	assert.Equal(t, "owner@acme.com", got["email"])
	assert.Equal(t, "secret", got["password"])
}

func TestSubscription_EnviaBearer(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status":"trial","package":"Business","expiry_date":"2026-10-20T00:00:00",
			"enabled_modules":["pos"],"limits":{"max_users":5},"is_demo":false}`))
	})
	out, err := c.Subscription(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "trial", out.Status)
	require.NotNil(t, out.ExpiryDate)
	assert.Equal(t, 20, out.ExpiryDate.Day())
	assert.Equal(t, float64(5), out.Limits["max_users"])
}

func TestErrores_MapeoPorStatus(t *testing.T) {
	cases := []struct {
		status int
		kind   error
	}{
		{http.StatusUnauthorized, domain.ErrAuth},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusBadRequest, domain.ErrValidation},
		{http.StatusUnprocessableEntity, domain.ErrValidation},
		{http.StatusConflict, domain.ErrConflict},
		{http.StatusServiceUnavailable, domain.ErrTransient},
		{http.StatusInternalServerError, domain.ErrUpstream},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"error":"boom"}`))
			})
			_, err := c.Subscription(context.Background(), "tok")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)

			var apiErr *domain.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, "boom", apiErr.Message)
		})
	}
}

func TestTimeout_EsTransitorioNoAuth(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := backend.NewClient(srv.URL, 50*time.Millisecond)
	_, err := c.Subscription(context.Background(), "tok")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.NotErrorIs(t, err, domain.ErrAuth)
	assert.True(t, domain.IsRetryable(err))
}

func TestTransporte_ServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := backend.NewClient(url, time.Second)
	err := c.Logout(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrTransient)
}

func TestLogin_SinAccessTokenEsUpstream(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	_, err := c.Login(context.Background(), "x", "y")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestBookings_RutasYCuerpos(t *testing.T) {
	type call struct{ method, path, body string }
	var calls []call
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b, _ := json.Marshal(body)
		calls = append(calls, call{r.Method, r.URL.Path, string(b)})
		if r.URL.Path == "/api/admin/bookings" {
			_, _ = w.Write([]byte(`{"bookings":[{"_id":"b1","company_name":"Globex","email":"a@b.c","status":"pending"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	ctx := context.Background()

	list, err := c.ListBookings(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b1", list[0].MongoID)

	require.NoError(t, c.ApproveBooking(ctx, "tok", "b1"))
	require.NoError(t, c.RejectBooking(ctx, "tok", "b1", "duplicado"))
	require.NoError(t, c.SetBookingStatus(ctx, "tok", "b1", "pending"))

	require.Len(t, calls, 4)
	assert.Equal(t, call{http.MethodPost, "/api/admin/bookings/b1/approve", "{}"}, calls[1])
	assert.Equal(t, call{http.MethodPost, "/api/admin/bookings/b1/reject", `{"reason":"duplicado"}`}, calls[2])
	assert.Equal(t, call{http.MethodPut, "/api/admin/bookings/b1/status", `{"status":"pending"}`}, calls[3])
}

func TestListPackages_PrecioDecimal(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"packages":[{"id":"p1","name":"Business","price":"49.99","billing_cycle":"monthly"}]}`))
	})
	list, err := c.ListPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "49.99", list[0].Price.StringFixed(2))
}
