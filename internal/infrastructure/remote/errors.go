package remote

import (
	"fmt"
	"net/http"

	"github.com/jhoicas/orderly-console/internal/domain"
)

// APIError respuesta no-2xx de la API remota. Message es el campo "error" del cuerpo
// o un texto genérico con el código de estado.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Is permite comparar con los sentinelas del dominio vía errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrUpstream:
		return true
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// GoString para logs de depuración.
func (e *APIError) GoString() string {
	return fmt.Sprintf("remote.APIError{Status: %d, Message: %q}", e.Status, e.Message)
}
