package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	apphttp "github.com/jhoicas/erp-portal/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/erp-portal/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "erp-portal-test"
)

var testProfile = apphttp.ProfileConfig{Secret: testSecret, Issuer: testIssuer, TTL: time.Hour}

// buildProfileApp expone el profileID asignado por ProfileMiddleware.
func buildProfileApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", apphttp.ProfileMiddleware(testProfile), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"profile": apphttp.GetProfileID(c)})
	})
	return app
}

func profileCookie(resp *http.Response) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.ProfileCookie {
			return ck
		}
	}
	return nil
}

func whoami(t *testing.T, app *fiber.App, cookie string) (string, *http.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.ProfileCookie, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["profile"], resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProfileMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: sin cookie se emite un perfil nuevo con cookie HttpOnly.
func TestProfileMiddleware_EmitePerfilNuevo(t *testing.T) {
	profile, resp := whoami(t, buildProfileApp(), "")
	assert.NotEmpty(t, profile)

	ck := profileCookie(resp)
	require.NotNil(t, ck, "debe emitirse la cookie de perfil")
	assert.True(t, ck.HttpOnly)

	parsed, err := pkgjwt.ParseProfile(testSecret, ck.Value)
	require.NoError(t, err)
	assert.Equal(t, profile, parsed)
}

// Caso 2: una cookie válida conserva el perfil y no se reemite.
func TestProfileMiddleware_ReusaCookieValida(t *testing.T) {
	tok, err := pkgjwt.GenerateProfile(testSecret, "perfil-fijo", testIssuer, time.Hour)
	require.NoError(t, err)

	profile, resp := whoami(t, buildProfileApp(), tok)
	assert.Equal(t, "perfil-fijo", profile)
	assert.Nil(t, profileCookie(resp))
}

// Caso 3: cookie firmada con otro secreto o expirada → perfil nuevo.
func TestProfileMiddleware_CookieInvalidaSeReemplaza(t *testing.T) {
	forged, err := pkgjwt.GenerateProfile("otro-secret", "perfil-ajeno", testIssuer, time.Hour)
	require.NoError(t, err)
	profile, resp := whoami(t, buildProfileApp(), forged)
	assert.NotEqual(t, "perfil-ajeno", profile)
	assert.NotNil(t, profileCookie(resp))

	expired, err := pkgjwt.GenerateProfile(testSecret, "perfil-viejo", testIssuer, -time.Minute)
	require.NoError(t, err)
	profile, _ = whoami(t, buildProfileApp(), expired)
	assert.NotEqual(t, "perfil-viejo", profile)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireSuperAdmin
// ──────────────────────────────────────────────────────────────────────────────

type fakeLoader struct {
	session entity.Session
	err     error
}

func (f fakeLoader) Current(context.Context, string, access.Family) (entity.Session, error) {
	return f.session, f.err
}

func buildAdminApp(loader fakeLoader) *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		apphttp.ProfileMiddleware(testProfile),
		apphttp.RequireSuperAdmin(loader),
		func(c *fiber.Ctx) error {
			s, ok := apphttp.GetSession(c)
			return c.JSON(fiber.Map{"ok": ok, "user": s.User.ID})
		},
	)
	return app
}

func doAdmin(t *testing.T, app *fiber.App) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(body)
}

func TestRequireSuperAdmin_SuperAdminPasa(t *testing.T) {
	s := entity.NewPrimarySession("tok", "", entity.User{ID: "root", IsSuperAdmin: true})
	resp, body := doAdmin(t, buildAdminApp(fakeLoader{session: s}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"user":"root"`)
}

func TestRequireSuperAdmin_TenantRecibe403ConRedirect(t *testing.T) {
	s := entity.NewPrimarySession("tok", "", entity.User{ID: "u1", Role: "admin", TenantID: "t1"})
	resp, body := doAdmin(t, buildAdminApp(fakeLoader{session: s}))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "FORBIDDEN")
	assert.Contains(t, body, access.PathCustomerDashboard)
}

func TestRequireSuperAdmin_SinSesion401(t *testing.T) {
	resp, body := doAdmin(t, buildAdminApp(fakeLoader{err: domain.ErrNoSession}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "NO_SESSION")
}
