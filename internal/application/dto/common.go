package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y acota Limit a 100.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse confirmación simple de una acción.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoadingResponse la sesión aún no está resuelta; el cliente debe reintentar.
type LoadingResponse struct {
	Status     string `json:"status"`
	RetryAfter int    `json:"retryAfter"`
}

// RedirectResponse destino de navegación tras una acción (login, registro...).
type RedirectResponse struct {
	Location string `json:"location"`
}
