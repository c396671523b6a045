package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/application/saleslink"
	"github.com/jhoicas/orderly-console/internal/domain"
	"github.com/jhoicas/orderly-console/internal/domain/access"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

const (
	minPasswordLen = 6
	minOTPLen      = 4
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginInput datos del formulario de login. From es la ruta que se intentaba abrir.
type LoginInput struct {
	Email    string
	Password string
	Role     entity.Role
	From     string
}

// RegisterInput datos del alta con verificación por código.
type RegisterInput struct {
	Email            string
	Password         string
	Role             entity.Role
	OrganizationName string
	OTP              string
}

// ResetInput restablecimiento de contraseña con código.
type ResetInput struct {
	Email       string
	OTP         string
	NewPassword string
	Role        entity.Role // rol elegido en el formulario, por si el servidor no informa uno
	From        string
}

// Result usuario autenticado y destino de navegación.
type Result struct {
	User       entity.SessionUser `json:"user"`
	LinkStatus *entity.LinkStatus `json:"salespersonLinkStatus,omitempty"`
	Target     string             `json:"target"`
}

// UseCase flujos de autenticación contra la API remota de la sesión.
type UseCase struct {
	api ports.AuthAPI
}

// NewUseCase construye el caso de uso.
func NewUseCase(api ports.AuthAPI) *UseCase {
	return &UseCase{api: api}
}

// Login valida el formulario, inicia sesión y calcula el destino.
func (uc *UseCase) Login(ctx context.Context, in LoginInput) (*Result, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || in.Role == entity.RoleNone {
		return nil, domain.Invalid("Please fill in all fields")
	}
	if !emailRe.MatchString(email) {
		return nil, domain.Invalid("Please enter a valid email address")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.Invalid("Password must be at least 6 characters")
	}
	if !in.Role.CanSignIn() {
		return nil, domain.Invalid("Please select a valid role")
	}

	res, err := uc.api.Login(ctx, email, in.Password, in.Role)
	if err != nil {
		return nil, friendlyLoginError(err)
	}
	role := res.User.Role
	if role == entity.RoleNone {
		role = in.Role
	}
	user := res.User
	user.Role = role
	return &Result{User: user, LinkStatus: res.LinkStatus, Target: access.LoginTarget(role, in.From)}, nil
}

// SendRegistrationOTP valida el formulario de alta y envía el código de verificación.
func (uc *UseCase) SendRegistrationOTP(ctx context.Context, in RegisterInput) error {
	in.Email = normalizeEmail(in.Email)
	if err := validateRegistration(in); err != nil {
		return err
	}
	return uc.api.SendOTP(ctx, in.Email)
}

// CompleteRegistration verifica el código y crea la cuenta. El servidor deja la sesión iniciada.
func (uc *UseCase) CompleteRegistration(ctx context.Context, in RegisterInput) (*Result, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateRegistration(in); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(in.OTP)) < minOTPLen {
		return nil, domain.Invalid("Enter the code sent to your email")
	}
	if err := uc.api.VerifyOTP(ctx, in.Email, strings.TrimSpace(in.OTP)); err != nil {
		return nil, err
	}
	user, err := uc.api.Register(ctx, entity.Registration{
		Email:            in.Email,
		Password:         in.Password,
		Role:             in.Role,
		OrganizationName: strings.TrimSpace(in.OrganizationName),
	})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, &FriendlyError{Message: "Account already exists. Please log in.", Err: err}
		}
		return nil, err
	}
	u := entity.SessionUser{Email: in.Email}
	if user != nil {
		u = *user
	}
	if u.Role == entity.RoleNone {
		u.Role = in.Role
	}
	return &Result{User: u, Target: registrationTarget(u.Role)}, nil
}

// ForgotPasswordSendOTP envía el código para restablecer la contraseña.
func (uc *UseCase) ForgotPasswordSendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !emailRe.MatchString(email) {
		return domain.Invalid("Enter a valid email")
	}
	return uc.api.ForgotPasswordSendOTP(ctx, email)
}

// ResetPassword cambia la contraseña con el código y deja la sesión iniciada.
func (uc *UseCase) ResetPassword(ctx context.Context, in ResetInput) (*Result, error) {
	email := normalizeEmail(in.Email)
	if !emailRe.MatchString(email) {
		return nil, domain.Invalid("Enter a valid email")
	}
	if len(strings.TrimSpace(in.OTP)) < minOTPLen {
		return nil, domain.Invalid("Enter the code sent to your email")
	}
	if len(in.NewPassword) < minPasswordLen {
		return nil, domain.Invalid("Password must be at least 6 characters")
	}
	user, err := uc.api.ResetPassword(ctx, email, strings.TrimSpace(in.OTP), in.NewPassword)
	if err != nil {
		return nil, err
	}
	u := entity.SessionUser{Email: email}
	if user != nil {
		u = *user
	}
	if u.Role == entity.RoleNone {
		u.Role = in.Role
	}
	return &Result{User: u, Target: access.LoginTarget(u.Role, in.From)}, nil
}

// FriendlyError reemplaza el mensaje del servidor por uno apto para el usuario sin perder la causa.
type FriendlyError struct {
	Message string
	Err     error
}

func (e *FriendlyError) Error() string { return e.Message }
func (e *FriendlyError) Unwrap() error { return e.Err }

var loginMessages = []struct{ needle, message string }{
	{"user_not_found", "No account found with this email"},
	{"invalid_credentials", "Invalid email, password, or role"},
	{"wrong_password", "Incorrect password"},
	{"valid role is required", "Please select a valid role"},
	{"email and password are required", "Email and password are required"},
}

func friendlyLoginError(err error) error {
	if !errors.Is(err, domain.ErrUpstream) {
		return err
	}
	msg := strings.ToLower(err.Error())
	for _, m := range loginMessages {
		if strings.Contains(msg, m.needle) {
			return &FriendlyError{Message: m.message, Err: err}
		}
	}
	return err
}

func validateRegistration(in RegisterInput) error {
	if in.Email == "" || in.Password == "" || in.Role == entity.RoleNone {
		return domain.Invalid("Please fill in all fields")
	}
	if !in.Role.CanSignIn() {
		return domain.Invalid("Please select a valid role")
	}
	if in.Role == entity.RoleDistributor && strings.TrimSpace(in.OrganizationName) == "" {
		return domain.Invalid("Organization name is required for distributors")
	}
	if len(in.Password) < minPasswordLen {
		return domain.Invalid("Password must be at least 6 characters")
	}
	if !emailRe.MatchString(in.Email) {
		return domain.Invalid("Please enter a valid email address")
	}
	return nil
}

// registrationTarget destino tras el alta: el vendedor recién creado va a vincularse.
func registrationTarget(role entity.Role) string {
	if role == entity.RoleSalesperson {
		return saleslink.LinkPagePath
	}
	return access.HomePath(role)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
