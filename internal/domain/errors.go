package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrValidation          = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrUpstream            = errors.New("la API remota rechazó la petición")
	ErrUpstreamUnavailable = errors.New("la API remota no está disponible")
)

// ValidationError error de validación local con un mensaje apto para el usuario.
// Nunca llega a la red: se devuelve antes de construir la petición.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid construye un ValidationError.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}
