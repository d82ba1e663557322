package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/application/ports"
	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/repository"
	"github.com/jhoicas/erp-portal/pkg/logger"
)

// LoginResult sesión creada y destino al que debe navegar el front end.
type LoginResult struct {
	Session  entity.Session
	Redirect string
}

// AuthUseCase casos de uso de sesión: login, demo-login, logout y sesión actual.
type AuthUseCase struct {
	stores  repository.ProfileStores
	backend ports.Backend
	log     *logger.Logger
	now     func() time.Time
}

// NewAuthUseCase construye el caso de uso de sesión.
func NewAuthUseCase(stores repository.ProfileStores, backend ports.Backend, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{stores: stores, backend: backend, log: log.Component("auth"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// Login autentica contra el backend y reemplaza la sesión primaria del perfil.
// El destino depende de la identidad, no del formulario usado.
func (uc *AuthUseCase) Login(ctx context.Context, profileID string, in dto.PortalLoginRequest) (*LoginResult, error) {
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	resp, err := uc.backend.Login(ctx, identifier, in.Password)
	if err != nil {
		return nil, err
	}
	s := entity.NewPrimarySession(resp.AccessToken, resp.RefreshToken, dto.ToUser(resp.User))
	if err := uc.stores.Profile(profileID).Save(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("profile", profileID).Str("identity", string(s.Identity)).Msg("login")
	return &LoginResult{Session: s, Redirect: access.LoginDestination(s)}, nil
}

// DemoLogin autentica una cuenta demo y la guarda en su propio namespace.
// Una cuenta ya vencida se rechaza sin persistir nada.
func (uc *AuthUseCase) DemoLogin(ctx context.Context, profileID string, in dto.PortalDemoLoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	resp, err := uc.backend.DemoLogin(ctx, username, in.Password)
	if err != nil {
		return nil, err
	}
	s := entity.NewDemoSession(resp.Token, dto.ToUser(resp.User))
	if exp, ok := s.DemoExpiresAt(); ok && !exp.After(uc.now()) {
		return nil, domain.ErrExpiryForcedLogout
	}
	if err := uc.stores.Profile(profileID).Save(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("profile", profileID).Msg("demo login")
	return &LoginResult{Session: s, Redirect: access.LoginDestination(s)}, nil
}

// Logout avisa al backend (best-effort) y limpia siempre ambos namespaces.
// El token demo no tiene logout en el backend.
func (uc *AuthUseCase) Logout(ctx context.Context, profileID string) error {
	store := uc.stores.Profile(profileID)
	if s, ok := store.Load(ctx, entity.NamespacePrimary); ok && s.AccessToken != "" {
		if err := uc.backend.Logout(ctx, s.AccessToken); err != nil {
			uc.log.Warn().Err(err).Str("profile", profileID).Msg("logout en backend falló; se limpia la sesión local")
		}
	}
	return repository.ClearAll(ctx, store)
}

// Sessions sesiones persistidas del perfil (nil = ausente).
func (uc *AuthUseCase) Sessions(ctx context.Context, profileID string) (primary, demo *entity.Session) {
	store := uc.stores.Profile(profileID)
	if s, ok := store.Load(ctx, entity.NamespacePrimary); ok {
		primary = &s
	}
	if s, ok := store.Load(ctx, entity.NamespaceDemo); ok {
		demo = &s
	}
	return primary, demo
}

// Current sesión que aplica a la familia de rutas; ErrNoSession si no hay ninguna.
func (uc *AuthUseCase) Current(ctx context.Context, profileID string, f access.Family) (entity.Session, error) {
	primary, demo := uc.Sessions(ctx, profileID)
	if s := access.SelectSession(f, primary, demo); s != nil {
		return *s, nil
	}
	return entity.Session{}, domain.ErrNoSession
}

// Invalidate limpia la sesión tras un 401 o un vencimiento de demo.
func (uc *AuthUseCase) Invalidate(ctx context.Context, profileID string, s entity.Session, cause error) error {
	uc.log.Info().Str("profile", profileID).Str("namespace", string(s.Namespace)).Err(cause).Msg("sesión invalidada")
	return uc.stores.Profile(profileID).Clear(ctx, s.Namespace)
}
