package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

// LocalSession key de la sesión admin ya validada.
const LocalSession = "session"

// sessionLoader contrato mínimo para cargar la sesión de un perfil.
// Lo implementa *auth.AuthUseCase.
type sessionLoader interface {
	Current(ctx context.Context, profileID string, f access.Family) (entity.Session, error)
}

// RequireSuperAdmin exige una sesión primaria de super-admin. Debe usarse DESPUÉS de ProfileMiddleware.
//   - 401 → no hay sesión primaria.
//   - 403 → la sesión es de un usuario de tenant (redirect al dashboard de cliente).
func RequireSuperAdmin(loader sessionLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := loader.Current(c.Context(), GetProfileID(c), access.FamilyAdmin)
		if err != nil {
			return writeError(c, err)
		}
		if !s.IsSuperAdmin() {
			return writeErrorRedirect(c, domain.ErrForbidden, access.PathCustomerDashboard)
		}
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// GetSession sesión validada por RequireSuperAdmin.
func GetSession(c *fiber.Ctx) (entity.Session, bool) {
	s, ok := c.Locals(LocalSession).(entity.Session)
	return s, ok
}
