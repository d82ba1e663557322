package repository

import (
	"context"

	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

// SessionStore define el puerto de persistencia de la sesión de un perfil de navegador (DIP).
// Las implementaciones viven en infrastructure/sessionstore.
type SessionStore interface {
	// Save reemplaza de forma atómica la sesión del namespace de s.
	Save(ctx context.Context, s entity.Session) error
	// Load devuelve la sesión del namespace o ok=false. Nunca falla: un registro
	// corrupto o inaccesible se trata como ausente.
	Load(ctx context.Context, ns entity.Namespace) (entity.Session, bool)
	// Clear elimina la sesión del namespace; idempotente.
	Clear(ctx context.Context, ns entity.Namespace) error
}

// ProfileStores entrega el SessionStore de cada perfil de navegador.
type ProfileStores interface {
	Profile(profileID string) SessionStore
}

// ClearAll limpia ambos namespaces; devuelve el primer error.
func ClearAll(ctx context.Context, store SessionStore) error {
	errPrimary := store.Clear(ctx, entity.NamespacePrimary)
	errDemo := store.Clear(ctx, entity.NamespaceDemo)
	if errPrimary != nil {
		return errPrimary
	}
	return errDemo
}
