package dto

import "github.com/jhoicas/orderly-console/internal/domain/entity"

// LoginRequest formulario de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	From     string `json:"from"`
}

// RegisterRequest formulario de alta (el OTP solo en el segundo paso).
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	OrganizationName string `json:"organizationName"`
	OTP              string `json:"otp,omitempty"`
}

// EmailRequest cuerpo con un único email.
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest restablecimiento con código.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
	Role        string `json:"role"`
	From        string `json:"from"`
}

// SessionResponse usuario de la sesión y destino recomendado.
type SessionResponse struct {
	User       *entity.SessionUser `json:"user"`
	LinkStatus *entity.LinkStatus  `json:"salespersonLinkStatus,omitempty"`
	Location   string              `json:"location,omitempty"`
}

// PreferencesResponse preferencias de UI persistidas.
type PreferencesResponse struct {
	JoinAs string `json:"joinAs"`
}

// PreferencesRequest actualización de preferencias.
type PreferencesRequest struct {
	JoinAs string `json:"joinAs"`
}

// LinkDistributorRequest solicitud de vínculo del vendedor.
type LinkDistributorRequest struct {
	DistributorEmail string `json:"distributorEmail"`
}

// LinkPageView estado de la página de vinculación.
type LinkPageView struct {
	Status     entity.LinkStatus `json:"status"`
	ReturnTo   string            `json:"returnTo"`
	CanProceed bool              `json:"canProceed"`
}

// LoginPageView datos para pintar el formulario de login.
type LoginPageView struct {
	JoinAs string `json:"joinAs,omitempty"`
	From   string `json:"from,omitempty"`
}
