package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// ErrAuth y ErrExpiryForcedLogout se manejan globalmente (limpiar sesión + redirigir);
// el resto se maneja en la pantalla que emitió la llamada.
var (
	ErrAuth               = errors.New("credenciales inválidas o sesión expirada")
	ErrEntitlementFetch   = errors.New("no se pudo cargar la suscripción")
	ErrValidation         = errors.New("entrada inválida")
	ErrExpiryForcedLogout = errors.New("sesión demo expirada")
	ErrTransient          = errors.New("fallo transitorio, reintente")
	ErrUpstream           = errors.New("error del backend")
	ErrNoSession          = errors.New("no hay sesión activa")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// APIError error devuelto por el backend REST. Se desenvuelve al sentinela correspondiente,
// de modo que errors.Is(err, ErrAuth) funciona sobre un 401.
type APIError struct {
	Status  int
	Code    string
	Message string
	Kind    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend %d: %v", e.Status, e.Kind)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Kind }

// IsRetryable informa si el error es transitorio (timeout, red, 5xx) y no de autenticación.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrAuth) {
		return false
	}
	return errors.Is(err, ErrTransient) || errors.Is(err, ErrUpstream)
}

// HandledGlobally informa si el error obliga a limpiar la sesión y redirigir al login.
func HandledGlobally(err error) bool {
	return errors.Is(err, ErrAuth) || errors.Is(err, ErrExpiryForcedLogout)
}
