package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/repository"
	"github.com/jhoicas/erp-portal/internal/infrastructure/sessionstore"
)

// SchemaSQL tabla de sesiones por perfil y namespace.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS portal_sessions (
	profile_id  TEXT        NOT NULL,
	namespace   TEXT        NOT NULL,
	payload     JSONB       NOT NULL,
	expires_at  TIMESTAMPTZ NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (profile_id, namespace)
)`

// querier subconjunto de pgxpool.Pool / pgx.Tx que usa el repositorio.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ repository.ProfileStores = (*SessionRepo)(nil)

// SessionRepo perfiles persistidos en PostgreSQL.
type SessionRepo struct {
	db  querier
	now func() time.Time
}

// NewSessionRepository construye el adaptador sobre el pool.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{db: pool, now: time.Now}
}

// EnsureSchema crea la tabla si no existe.
func (r *SessionRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("crear portal_sessions: %w", err)
	}
	return nil
}

// Profile implementa repository.ProfileStores.
func (r *SessionRepo) Profile(profileID string) repository.SessionStore {
	return &sessionProfile{repo: r, id: profileID}
}

type sessionProfile struct {
	repo *SessionRepo
	id   string
}

func (p *sessionProfile) Save(ctx context.Context, s entity.Session) error {
	raw, err := sessionstore.Encode(s)
	if err != nil {
		return err
	}
	var expiresAt *time.Time
	if exp, ok := s.DemoExpiresAt(); ok {
		expiresAt = &exp
	}
	query := `
		INSERT INTO portal_sessions (profile_id, namespace, payload, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile_id, namespace)
		DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`
	if _, err := p.repo.db.Exec(ctx, query, p.id, string(s.Namespace), raw, expiresAt, p.repo.now().UTC()); err != nil {
		return fmt.Errorf("upsert portal_sessions: %w", err)
	}
	return nil
}

// Load descarta filas demo ya vencidas como si no existieran.
func (p *sessionProfile) Load(ctx context.Context, ns entity.Namespace) (entity.Session, bool) {
	query := `
		SELECT payload, expires_at FROM portal_sessions
		WHERE profile_id = $1 AND namespace = $2`
	var raw []byte
	var expiresAt *time.Time
	if err := p.repo.db.QueryRow(ctx, query, p.id, string(ns)).Scan(&raw, &expiresAt); err != nil {
		return entity.Session{}, false
	}
	if expiresAt != nil && !expiresAt.After(p.repo.now()) {
		return entity.Session{}, false
	}
	s, err := sessionstore.Decode(ns, raw)
	if err != nil {
		return entity.Session{}, false
	}
	return s, true
}

func (p *sessionProfile) Clear(ctx context.Context, ns entity.Namespace) error {
	query := `DELETE FROM portal_sessions WHERE profile_id = $1 AND namespace = $2`
	if _, err := p.repo.db.Exec(ctx, query, p.id, string(ns)); err != nil {
		return fmt.Errorf("delete portal_sessions: %w", err)
	}
	return nil
}
