package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/pkg/jwt"
)

// ProfileCookie cookie que identifica el perfil de navegador.
const ProfileCookie = "portal_profile"

// Locals keys del perfil en Fiber.
const (
	LocalProfileID = "profile_id"
)

// ProfileConfig firma de la cookie de perfil.
type ProfileConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
	Secure bool
}

// ProfileMiddleware valida la cookie de perfil y deja el profileID en c.Locals.
// Sin cookie (o con una inválida o expirada) se emite un perfil nuevo.
func ProfileMiddleware(cfg ProfileConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := c.Cookies(ProfileCookie); raw != "" {
			if profileID, err := jwt.ParseProfile(cfg.Secret, raw); err == nil {
				c.Locals(LocalProfileID, profileID)
				return c.Next()
			}
		}
		profileID := uuid.NewString()
		token, err := jwt.GenerateProfile(cfg.Secret, profileID, cfg.Issuer, cfg.TTL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PROFILE_ERROR", Message: "no se pudo emitir el perfil"})
		}
		c.Cookie(&fiber.Cookie{
			Name:     ProfileCookie,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(cfg.TTL),
			HTTPOnly: true,
			Secure:   cfg.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(LocalProfileID, profileID)
		return c.Next()
	}
}

// GetProfileID devuelve el profileID del contexto (después de ProfileMiddleware).
func GetProfileID(c *fiber.Ctx) string {
	v := c.Locals(LocalProfileID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
