package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del portal (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Backend   BackendConfig
	Session   SessionConfig
	Lifecycle LifecycleConfig
	Support   SupportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP del portal.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string // vacío = sin /docs
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig apunta a la API REST del POS + ERP.
type BackendConfig struct {
	BaseURL        string // ej. http://localhost:5000/api
	TimeoutSeconds int
}

// Timeout devuelve el timeout de red de cada llamada al backend.
func (c BackendConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Drivers de almacenamiento de sesión soportados.
const (
	SessionDriverMemory   = "memory"
	SessionDriverFile     = "file"
	SessionDriverRedis    = "redis"
	SessionDriverPostgres = "postgres"
)

// SessionConfig define dónde se guardan las sesiones de cada perfil de navegador.
type SessionConfig struct {
	Driver          string // memory, file, redis, postgres
	Dir             string // driver file
	RedisURL        string // driver redis: redis://... o host:port
	DatabaseURL     string // driver postgres
	ProfileSecret   string // firma de la cookie portal_profile
	ProfileTTLHours int
}

// ProfileTTL duración de la cookie de perfil.
func (c SessionConfig) ProfileTTL() time.Duration {
	if c.ProfileTTLHours <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.ProfileTTLHours) * time.Hour
}

// LifecycleConfig cadencia de reevaluación de suscripción y countdown demo.
type LifecycleConfig struct {
	PollSeconds int
}

// PollInterval intervalo del monitor (60 s por defecto).
func (c LifecycleConfig) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.PollSeconds) * time.Second
}

// SupportConfig datos de contacto que se muestran en el overlay de renovación.
type SupportConfig struct {
	Email    string
	Phone    string
	WhatsApp string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_URL, SESSION_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

// devProfileSecret firma de la cookie fuera de production cuando no se configura PROFILE_SECRET.
const devProfileSecret = "erp-portal-dev-profile-secret"

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "erp-portal"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8081),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(getString(v, "BACKEND_URL", "http://localhost:5000/api"), "/"),
			TimeoutSeconds: getInt(v, "BACKEND_TIMEOUT_SECONDS", 15),
		},
		Session: SessionConfig{
			Driver:          strings.ToLower(getString(v, "SESSION_DRIVER", SessionDriverMemory)),
			Dir:             getString(v, "SESSION_DIR", "./.portal"),
			RedisURL:        getString(v, "REDIS_URL", "localhost:6379"),
			DatabaseURL:     getString(v, "DATABASE_URL", ""),
			ProfileSecret:   getString(v, "PROFILE_SECRET", ""),
			ProfileTTLHours: getInt(v, "PROFILE_TTL_HOURS", 720),
		},
		Lifecycle: LifecycleConfig{
			PollSeconds: getInt(v, "LIFECYCLE_POLL_SECONDS", 60),
		},
		Support: SupportConfig{
			Email:    getString(v, "SUPPORT_EMAIL", "support@pos-erp.com"),
			Phone:    getString(v, "SUPPORT_PHONE", "+92 300 1234567"),
			WhatsApp: getString(v, "SUPPORT_WHATSAPP", "https://wa.me/923001234567"),
		},
	}

	if cfg.Session.ProfileSecret == "" {
		if cfg.App.Env == "production" {
			return nil, fmt.Errorf("config: PROFILE_SECRET requerido en production")
		}
		cfg.Session.ProfileSecret = devProfileSecret
	}

	switch cfg.Session.Driver {
	case SessionDriverMemory, SessionDriverFile, SessionDriverRedis:
	case SessionDriverPostgres:
		if cfg.Session.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL requerido con SESSION_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("config: SESSION_DRIVER desconocido %q", cfg.Session.Driver)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
