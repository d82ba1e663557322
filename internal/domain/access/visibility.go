package access

import "github.com/jhoicas/erp-portal/internal/domain/entity"

// VisibleModules módulos efectivamente visibles para la sesión:
//   - super-admin: ninguno (usa la superficie de administración).
//   - rol admin o sin rol: módulos del tenant + siempre activos.
//   - rol personalizado: habilitados ∩ allowed_modules, nunca los siempre activos.
//
// Un snapshot fallido solo conserva los siempre activos, sujetos al rol.
func VisibleModules(s entity.Session, snap entity.Snapshot) entity.ModuleSet {
	if s.IsSuperAdmin() {
		return entity.NewModuleSet()
	}
	enabled := snap.EnabledModules
	if snap.Failed() || enabled == nil {
		enabled = entity.NewModuleSet(entity.AlwaysOn...)
	}
	if s.HasAdminRole() {
		out := entity.NewModuleSet(entity.AlwaysOn...)
		for m := range enabled {
			out[m] = struct{}{}
		}
		return out
	}
	allowed := entity.ModuleSetFromStrings(s.User.AllowedModules)
	out := enabled.Intersect(allowed)
	for _, m := range entity.AlwaysOn {
		delete(out, m)
	}
	return out
}
