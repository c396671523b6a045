package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orderly-console/internal/application/auth"
	"github.com/jhoicas/orderly-console/internal/domain"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/infrastructure/remote"
)

// fakeAuthAPI doble de la API de autenticación que registra las llamadas.
type fakeAuthAPI struct {
	loginUser   entity.SessionUser
	loginErr    error
	loginEmail  string
	calls       []string
	verifyErr   error
	registerErr error
	resetUser   *entity.SessionUser
}

func (f *fakeAuthAPI) SendOTP(ctx context.Context, email string) error {
	f.calls = append(f.calls, "send-otp:"+email)
	return nil
}

func (f *fakeAuthAPI) VerifyOTP(ctx context.Context, email, otp string) error {
	f.calls = append(f.calls, "verify-otp")
	return f.verifyErr
}

func (f *fakeAuthAPI) Register(ctx context.Context, in entity.Registration) (*entity.SessionUser, error) {
	f.calls = append(f.calls, "register")
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &entity.SessionUser{ID: "new", Email: in.Email, Role: in.Role}, nil
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string, role entity.Role) (*entity.LoginResult, error) {
	f.calls = append(f.calls, "login")
	f.loginEmail = email
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &entity.LoginResult{User: f.loginUser}, nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error { return nil }

func (f *fakeAuthAPI) Me(ctx context.Context) (*entity.SessionUser, error) { return nil, nil }

func (f *fakeAuthAPI) ForgotPasswordSendOTP(ctx context.Context, email string) error {
	f.calls = append(f.calls, "forgot:"+email)
	return nil
}

func (f *fakeAuthAPI) ResetPassword(ctx context.Context, email, otp, newPassword string) (*entity.SessionUser, error) {
	f.calls = append(f.calls, "reset")
	return f.resetUser, nil
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_ShopkeeperConFromAjenoVaASuDashboard(t *testing.T) {
	api := &fakeAuthAPI{loginUser: entity.SessionUser{ID: "u1", Email: "shop@x.io", Role: entity.RoleShopkeeper}}
	uc := auth.NewUseCase(api)

	res, err := uc.Login(context.Background(), auth.LoginInput{
		Email: "  Shop@X.io ", Password: "secret1", Role: entity.RoleShopkeeper, From: "/wholesale/orders",
	})
	require.NoError(t, err)
	assert.Equal(t, "/shop/dashboard", res.Target)
	assert.Equal(t, "shop@x.io", api.loginEmail, "el email se normaliza")
}

func TestLogin_FromPermitidoSeRespeta(t *testing.T) {
	api := &fakeAuthAPI{loginUser: entity.SessionUser{ID: "u1", Role: entity.RoleDistributor}}
	uc := auth.NewUseCase(api)

	res, err := uc.Login(context.Background(), auth.LoginInput{
		Email: "d@x.io", Password: "secret1", Role: entity.RoleDistributor, From: "/wholesale/inventory",
	})
	require.NoError(t, err)
	assert.Equal(t, "/wholesale/inventory", res.Target)
}

func TestLogin_SinRolDelServidorUsaElElegido(t *testing.T) {
	api := &fakeAuthAPI{loginUser: entity.SessionUser{ID: "u1"}}
	uc := auth.NewUseCase(api)

	res, err := uc.Login(context.Background(), auth.LoginInput{Email: "s@x.io", Password: "secret1", Role: entity.RoleSalesperson})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSalesperson, res.User.Role)
	assert.Equal(t, "/sales/dashboard", res.Target)
}

func TestLogin_ValidacionAntesDeLaRed(t *testing.T) {
	cases := []struct {
		name string
		in   auth.LoginInput
		msg  string
	}{
		{"campos vacíos", auth.LoginInput{Email: "a@b.co"}, "Please fill in all fields"},
		{"email inválido", auth.LoginInput{Email: "nope", Password: "secret1", Role: entity.RoleShopkeeper}, "Please enter a valid email address"},
		{"password corto", auth.LoginInput{Email: "a@b.co", Password: "123", Role: entity.RoleShopkeeper}, "Password must be at least 6 characters"},
		{"rol admin no elegible", auth.LoginInput{Email: "a@b.co", Password: "secret1", Role: entity.RoleAdmin}, "Please select a valid role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAuthAPI{}
			_, err := auth.NewUseCase(api).Login(context.Background(), tc.in)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tc.msg, err.Error())
			assert.Empty(t, api.calls)
		})
	}
}

func TestLogin_MensajesAmigables(t *testing.T) {
	cases := map[string]string{
		"user_not_found":                  "No account found with this email",
		"INVALID_CREDENTIALS":             "Invalid email, password, or role",
		"wrong_password":                  "Incorrect password",
		"A valid role is required":        "Please select a valid role",
		"Email and password are required": "Email and password are required",
		"something else":                  "something else",
	}
	for serverMsg, want := range cases {
		t.Run(serverMsg, func(t *testing.T) {
			api := &fakeAuthAPI{loginErr: &remote.APIError{Status: http.StatusUnauthorized, Message: serverMsg}}
			_, err := auth.NewUseCase(api).Login(context.Background(), auth.LoginInput{Email: "a@b.co", Password: "secret1", Role: entity.RoleShopkeeper})
			require.Error(t, err)
			assert.Equal(t, want, err.Error())
			assert.ErrorIs(t, err, domain.ErrUnauthorized, "se conserva la causa")
		})
	}
}

func TestLogin_ErrorDeTransporteSinTraducir(t *testing.T) {
	transport := errors.Join(domain.ErrUpstreamUnavailable, errors.New("dial tcp: refused"))
	api := &fakeAuthAPI{loginErr: transport}

	_, err := auth.NewUseCase(api).Login(context.Background(), auth.LoginInput{Email: "a@b.co", Password: "secret1", Role: entity.RoleShopkeeper})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

// ── Registro ─────────────────────────────────────────────────────────────────

func TestRegistro_DistribuidorRequiereOrganizacion(t *testing.T) {
	api := &fakeAuthAPI{}
	err := auth.NewUseCase(api).SendRegistrationOTP(context.Background(), auth.RegisterInput{
		Email: "d@x.io", Password: "secret1", Role: entity.RoleDistributor,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Organization name is required for distributors", err.Error())
	assert.Empty(t, api.calls)
}

func TestRegistro_FlujoCompleto(t *testing.T) {
	api := &fakeAuthAPI{}
	uc := auth.NewUseCase(api)
	in := auth.RegisterInput{Email: "S@X.io", Password: "secret1", Role: entity.RoleSalesperson, OTP: "1234"}

	require.NoError(t, uc.SendRegistrationOTP(context.Background(), in))
	res, err := uc.CompleteRegistration(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, []string{"send-otp:s@x.io", "verify-otp", "register"}, api.calls)
	assert.Equal(t, "/sales/link-distributor", res.Target, "el vendedor nuevo va a vincularse")
}

func TestRegistro_OTPCorto(t *testing.T) {
	api := &fakeAuthAPI{}
	_, err := auth.NewUseCase(api).CompleteRegistration(context.Background(), auth.RegisterInput{
		Email: "s@x.io", Password: "secret1", Role: entity.RoleShopkeeper, OTP: "12",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.calls)
}

func TestRegistro_CuentaExistente(t *testing.T) {
	api := &fakeAuthAPI{registerErr: &remote.APIError{Status: http.StatusConflict, Message: "User already exists"}}
	_, err := auth.NewUseCase(api).CompleteRegistration(context.Background(), auth.RegisterInput{
		Email: "s@x.io", Password: "secret1", Role: entity.RoleShopkeeper, OTP: "1234",
	})
	require.Error(t, err)
	assert.Equal(t, "Account already exists. Please log in.", err.Error())
}

// ── Contraseña olvidada ──────────────────────────────────────────────────────

func TestResetPassword_DestinoSegunRol(t *testing.T) {
	api := &fakeAuthAPI{resetUser: &entity.SessionUser{ID: "u1", Role: entity.RoleDistributor}}
	uc := auth.NewUseCase(api)

	require.NoError(t, uc.ForgotPasswordSendOTP(context.Background(), " D@X.io"))
	res, err := uc.ResetPassword(context.Background(), auth.ResetInput{
		Email: "d@x.io", OTP: "9999", NewPassword: "newpass", From: "/shop/cart",
	})
	require.NoError(t, err)
	assert.Equal(t, "/wholesale/dashboard", res.Target)
	assert.Equal(t, []string{"forgot:d@x.io", "reset"}, api.calls)
}

func TestResetPassword_Validaciones(t *testing.T) {
	uc := auth.NewUseCase(&fakeAuthAPI{})

	_, err := uc.ResetPassword(context.Background(), auth.ResetInput{Email: "bad", OTP: "1234", NewPassword: "secret1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.ResetPassword(context.Background(), auth.ResetInput{Email: "a@b.co", OTP: "1", NewPassword: "secret1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.ResetPassword(context.Background(), auth.ResetInput{Email: "a@b.co", OTP: "1234", NewPassword: "123"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
