package entity

import "time"

// Identity variante de quién usa el portal. Se resuelve una vez al iniciar sesión
// y el resto del código hace switch sobre ella.
type Identity string

const (
	IdentitySuperAdmin Identity = "super_admin"
	IdentityTenantUser Identity = "tenant_user"
	IdentityDemoUser   Identity = "demo_user"
)

// Namespace grupo de credenciales persistidas. Las sesiones demo nunca se mezclan con la primaria.
type Namespace string

const (
	NamespacePrimary Namespace = "primary"
	NamespaceDemo    Namespace = "demo"
)

// Roles conocidos del tenant; cualquier otro valor es un rol personalizado.
const (
	RoleAdmin = "admin"
)

// User descriptor del usuario devuelto por el backend al iniciar sesión.
type User struct {
	ID             string
	Name           string
	Email          string
	Username       string
	Role           string   // "" en cuentas legacy
	AllowedModules []string // solo roles personalizados
	TenantID       string
	TenantName     string
	IsSuperAdmin   bool
	IsDemo         bool
	ExpiresAt      *time.Time // solo demo
}

// Session sesión activa de un perfil de navegador.
type Session struct {
	Identity     Identity
	Namespace    Namespace
	AccessToken  string // access_token (primaria) o demo_token (demo)
	RefreshToken string // vacío en demo
	User         User
}

// ResolveIdentity decide la variante a partir del descriptor y del namespace de origen.
func ResolveIdentity(u User, ns Namespace) Identity {
	switch {
	case u.IsSuperAdmin:
		return IdentitySuperAdmin
	case ns == NamespaceDemo || u.IsDemo:
		return IdentityDemoUser
	default:
		return IdentityTenantUser
	}
}

// NewPrimarySession construye una sesión primaria (super-admin o usuario de tenant).
func NewPrimarySession(accessToken, refreshToken string, u User) Session {
	return Session{
		Identity:     ResolveIdentity(u, NamespacePrimary),
		Namespace:    NamespacePrimary,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         u,
	}
}

// NewDemoSession construye una sesión demo con su propio token.
func NewDemoSession(demoToken string, u User) Session {
	u.IsDemo = true
	u.IsSuperAdmin = false
	return Session{
		Identity:    IdentityDemoUser,
		Namespace:   NamespaceDemo,
		AccessToken: demoToken,
		User:        u,
	}
}

// IsDemo informa si la sesión es demo.
func (s Session) IsDemo() bool { return s.Identity == IdentityDemoUser }

// IsSuperAdmin informa si la sesión es de super-admin.
func (s Session) IsSuperAdmin() bool { return s.Identity == IdentitySuperAdmin }

// HasAdminRole true para rol admin o sin rol (cuentas legacy y demo).
func (s Session) HasAdminRole() bool {
	return s.User.Role == "" || s.User.Role == RoleAdmin
}

// DemoExpiresAt momento de expiración de la cuenta demo.
func (s Session) DemoExpiresAt() (time.Time, bool) {
	if !s.IsDemo() || s.User.ExpiresAt == nil {
		return time.Time{}, false
	}
	return *s.User.ExpiresAt, true
}

// SameAs compara identidad y token; sirve para detectar cambio de sesión.
func (s Session) SameAs(o Session) bool {
	return s.Namespace == o.Namespace && s.AccessToken == o.AccessToken && s.User.ID == o.User.ID
}
