// Package lifecycle calcula la fase de la suscripción y los countdowns a partir de fechas.
// Funciones puras: el instante actual siempre llega como parámetro.
package lifecycle

import (
	"math"
	"time"

	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

// NonExpiringDays centinela para cuentas sin fecha de vencimiento (ej. super-admin).
const NonExpiringDays = 999

const day = 24 * time.Hour

// State fase renderizable de la suscripción.
type State struct {
	Status         entity.SubscriptionStatus
	DaysRemaining  int
	Expired        bool // status == expired o DaysRemaining <= 0, recalculado en cliente
	Suspended      bool
	InCreditPeriod bool // vencida pero dentro de credit_days; solo informativo
	Demo           bool // el backend marca la suscripción como demo (is_demo)
}

// DaysRemaining ceil((expiry - now) / 1 día); nil = NonExpiringDays.
func DaysRemaining(expiry *time.Time, now time.Time) int {
	if expiry == nil {
		return NonExpiringDays
	}
	d := expiry.Sub(now)
	return int(math.Ceil(float64(d) / float64(day)))
}

// Evaluate deriva el estado a partir del status del backend y la fecha de vencimiento.
// El vencimiento se recalcula siempre: un status "active" con fecha pasada cuenta como vencido.
func Evaluate(status entity.SubscriptionStatus, expiry *time.Time, now time.Time) State {
	days := DaysRemaining(expiry, now)
	return State{
		Status:        status,
		DaysRemaining: days,
		Expired:       status == entity.StatusExpired || days <= 0,
		Suspended:     status == entity.StatusSuspended,
	}
}

// EvaluateSubscription igual que Evaluate, añadiendo el período de crédito del plan.
func EvaluateSubscription(sub entity.Subscription, now time.Time) State {
	st := Evaluate(sub.Status, sub.ExpiryDate, now)
	st.Demo = sub.IsDemo
	if st.Expired && sub.ExpiryDate != nil && sub.CreditDays > 0 {
		creditEnd := sub.ExpiryDate.Add(time.Duration(sub.CreditDays) * day)
		st.InCreditPeriod = !now.After(creditEnd)
	}
	return st
}

// DemoAccount cuenta demo por identidad de sesión o por el flag is_demo del backend.
// Una cuenta demo nunca muestra banner de vencimiento ni overlay de bloqueo.
func DemoAccount(s entity.Session, st *State) bool {
	return s.IsDemo() || (st != nil && st.Demo)
}

// Level urgencia del banner de vencimiento.
type Level string

const (
	LevelNone     Level = "none"
	LevelExpired  Level = "expired"
	LevelCritical Level = "critical"
	LevelWarning  Level = "warning"
	LevelTrial    Level = "trial"
)

// Levels todos los niveles, en orden de urgencia decreciente.
var Levels = []Level{LevelExpired, LevelCritical, LevelWarning, LevelTrial, LevelNone}

// BannerLevel política de umbrales del banner de vencimiento del tenant.
// Las cuentas demo nunca lo muestran: usan el banner de countdown.
func BannerLevel(st State, isDemo bool) Level {
	if isDemo {
		return LevelNone
	}
	switch {
	case st.DaysRemaining > 14 && st.Status != entity.StatusTrial:
		return LevelNone
	case st.Expired:
		return LevelExpired
	case st.DaysRemaining <= 3:
		return LevelCritical
	case st.DaysRemaining <= 7:
		return LevelWarning
	case st.Status == entity.StatusTrial:
		return LevelTrial
	default:
		return LevelNone
	}
}

// Countdown tiempo restante de una cuenta demo.
type Countdown struct {
	Remaining time.Duration
	Hours     int
	Minutes   int
	Expired   bool
}

// DemoCountdown floor((expiresAt - now)) en horas y minutos; expira cuando la diferencia es <= 0.
func DemoCountdown(expiresAt, now time.Time) Countdown {
	diff := expiresAt.Sub(now)
	if diff <= 0 {
		return Countdown{Expired: true}
	}
	return Countdown{
		Remaining: diff,
		Hours:     int(diff / time.Hour),
		Minutes:   int((diff % time.Hour) / time.Minute),
	}
}
