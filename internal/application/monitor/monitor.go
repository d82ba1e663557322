// Package monitor recalcula periódicamente el estado de una sesión: countdown de la
// cuenta demo (con logout forzado al vencer) y días restantes de la suscripción del tenant.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/erp-portal/internal/domain"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/lifecycle"
	"github.com/jhoicas/erp-portal/internal/domain/repository"
	"github.com/jhoicas/erp-portal/pkg/logger"
)

// DefaultInterval período de recálculo.
const DefaultInterval = time.Minute

// TickerFunc crea un ticker y su función de parada; permite inyectar ticks en tests.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func systemTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Update resultado de un recálculo.
type Update struct {
	At           time.Time
	Countdown    *lifecycle.Countdown // solo demo
	State        *lifecycle.State     // solo tenant con suscripción conocida
	Level        lifecycle.Level
	ForcedLogout bool
	Changed      bool // la sesión persistida ya no es la observada
}

// Done informa si el monitor debe detenerse tras este recálculo.
func (u Update) Done() bool { return u.ForcedLogout || u.Changed }

// Config dependencias del monitor.
type Config struct {
	Store        repository.SessionStore
	Session      entity.Session
	Subscription *entity.Subscription // opcional
	Interval     time.Duration
	Now          func() time.Time
	Ticker       TickerFunc
	// OnUpdate se invoca tras cada recálculo, incluido el inicial.
	OnUpdate func(Update)
	// OnForcedLogout recibe ErrExpiryForcedLogout cuando la demo vence.
	OnForcedLogout func(error)
	Logger         *logger.Logger
}

// Monitor una tarea periódica por sesión observada.
type Monitor struct {
	cfg Config

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

// New aplica valores por defecto a la configuración.
func New(cfg Config) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Ticker == nil {
		cfg.Ticker = systemTicker
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	cfg.Logger = cfg.Logger.Component("monitor")
	return &Monitor{cfg: cfg}
}

// Tick recalcula una vez. Si la demo venció limpia su namespace y devuelve ErrExpiryForcedLogout.
func (m *Monitor) Tick(ctx context.Context) (Update, error) {
	now := m.cfg.Now()
	u := Update{At: now, Level: lifecycle.LevelNone}
	s := m.cfg.Session

	current, ok := m.cfg.Store.Load(ctx, s.Namespace)
	if !ok || !current.SameAs(s) {
		u.Changed = true
		return u, nil
	}

	if exp, ok := s.DemoExpiresAt(); ok {
		cd := lifecycle.DemoCountdown(exp, now)
		u.Countdown = &cd
		if cd.Expired {
			if err := m.cfg.Store.Clear(ctx, entity.NamespaceDemo); err != nil {
				m.cfg.Logger.Error().Err(err).Msg("no se pudo limpiar la sesión demo vencida")
			}
			u.ForcedLogout = true
			m.cfg.Logger.Info().Str("user", s.User.ID).Msg("demo vencida, logout forzado")
			return u, domain.ErrExpiryForcedLogout
		}
		return u, nil
	}

	if sub := m.cfg.Subscription; sub != nil {
		st := lifecycle.EvaluateSubscription(*sub, now)
		if !lifecycle.DemoAccount(s, &st) {
			u.State = &st
			u.Level = lifecycle.BannerLevel(st, false)
		}
	}
	return u, nil
}

// Run bloquea hasta Stop, cancelación del contexto, cambio de sesión o logout forzado.
// Solo devuelve error en el logout forzado (ErrExpiryForcedLogout).
func (m *Monitor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil
	}
	m.cancel = cancel
	m.mu.Unlock()

	ticks, stopTicker := m.cfg.Ticker(m.cfg.Interval)
	defer stopTicker()

	if done, err := m.step(ctx); done {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticks:
			if done, err := m.step(ctx); done {
				return err
			}
		}
	}
}

func (m *Monitor) step(ctx context.Context) (bool, error) {
	u, err := m.Tick(ctx)
	if m.cfg.OnUpdate != nil {
		m.cfg.OnUpdate(u)
	}
	if err != nil && m.cfg.OnForcedLogout != nil {
		m.cfg.OnForcedLogout(err)
	}
	if u.Changed {
		m.cfg.Logger.Debug().Msg("sesión cambiada, monitor detenido")
	}
	return u.Done(), err
}

// Stop detiene el monitor; idempotente y seguro desde cualquier goroutine.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	if m.cancel != nil {
		m.cancel()
	}
}
