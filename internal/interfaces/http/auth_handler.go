package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/orderly-console/internal/application/auth"
	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/access"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// prefJoinAs última opción "unirse como" elegida en login/registro.
const prefJoinAs = "joinAs"

// AuthHandler login, registro, contraseña, logout y preferencias de la sesión.
type AuthHandler struct {
	prefs ports.PreferenceStore
	log   zerolog.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(prefs ports.PreferenceStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{prefs: prefs, log: log}
}

func (h *AuthHandler) uc(c *fiber.Ctx) *auth.UseCase {
	return auth.NewUseCase(GetWorkspace(c).API)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc(c).Login(c.UserContext(), auth.LoginInput{
		Email:    in.Email,
		Password: in.Password,
		Role:     entity.ParseRole(in.Role),
		From:     in.From,
	})
	if err != nil {
		return writeError(c, err)
	}
	return h.signedIn(c, res, in.Role)
}

// LoginPage godoc
// @Summary      Página de login
// @Description  Con sesión iniciada redirige al destino del rol; si no, devuelve la última opción "unirse como".
// @Tags         auth
// @Produce      json
// @Param        from  query  string  false  "Ruta que se intentaba abrir"
// @Success      200   {object}  dto.LoginPageView
// @Success      302
// @Failure      503   {object}  dto.LoadingResponse
// @Router       /login [get]
func (h *AuthHandler) LoginPage(wait time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := GetWorkspace(c)
		user, pending := awaitUser(c, w, wait)
		if pending {
			return loading(c)
		}
		from := c.Query("from")
		if user != nil {
			return c.Redirect(access.LoginTarget(user.Role, from), fiber.StatusFound)
		}
		joinAs, _, err := h.prefs.Get(c.UserContext(), w.ID, prefJoinAs)
		if err != nil {
			h.log.Warn().Err(err).Msg("auth: no se pudo leer la preferencia de rol")
		}
		return c.JSON(dto.LoginPageView{JoinAs: joinAs, From: from})
	}
}

// SendRegistrationOTP godoc
// @Summary      Registro: enviar código
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos de alta"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/register/send-otp [post]
func (h *AuthHandler) SendRegistrationOTP(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc(c).SendRegistrationOTP(c.UserContext(), registerInput(in)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Verification code sent"})
}

// CompleteRegistration godoc
// @Summary      Registro: verificar código y crear cuenta
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos de alta con OTP"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/register [post]
func (h *AuthHandler) CompleteRegistration(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc(c).CompleteRegistration(c.UserContext(), registerInput(in))
	if err != nil {
		return writeError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return h.signedIn(c, res, in.Role)
}

// ForgotPassword godoc
// @Summary      Contraseña olvidada: enviar código
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailRequest  true  "Email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/password/send-otp [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.EmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc(c).ForgotPasswordSendOTP(c.UserContext(), in.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Reset code sent"})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "Código y nueva contraseña"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/password/reset [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc(c).ResetPassword(c.UserContext(), auth.ResetInput{
		Email:       in.Email,
		OTP:         in.OTP,
		NewPassword: in.NewPassword,
		Role:        entity.ParseRole(in.Role),
		From:        in.From,
	})
	if err != nil {
		return writeError(c, err)
	}
	return h.signedIn(c, res, in.Role)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.RedirectResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := GetWorkspace(c).SignOut(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RedirectResponse{Location: access.LoginPath})
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      503  {object}  dto.LoadingResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := GetUser(c)
	return c.JSON(dto.SessionResponse{User: user, Location: access.HomePath(user.Role)})
}

// GetPreferences godoc
// @Summary      Preferencias de la sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.PreferencesResponse
// @Router       /api/preferences [get]
func (h *AuthHandler) GetPreferences(c *fiber.Ctx) error {
	v, _, err := h.prefs.Get(c.UserContext(), GetWorkspace(c).ID, prefJoinAs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PreferencesResponse{JoinAs: v})
}

// SetPreferences godoc
// @Summary      Guardar preferencias
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreferencesRequest  true  "Preferencias"
// @Success      200   {object}  dto.PreferencesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/preferences [put]
func (h *AuthHandler) SetPreferences(c *fiber.Ctx) error {
	var in dto.PreferencesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	role := entity.ParseRole(in.JoinAs)
	if !role.CanSignIn() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Please select a valid role"})
	}
	if err := h.prefs.Set(c.UserContext(), GetWorkspace(c).ID, prefJoinAs, string(role)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PreferencesResponse{JoinAs: string(role)})
}

// signedIn fija el usuario en el workspace, recuerda el rol elegido y responde el destino.
func (h *AuthHandler) signedIn(c *fiber.Ctx, res *auth.Result, chosenRole string) error {
	w := GetWorkspace(c)
	w.SignIn(res.User)
	if role := entity.ParseRole(chosenRole); role.CanSignIn() {
		if err := h.prefs.Set(c.UserContext(), w.ID, prefJoinAs, string(role)); err != nil {
			h.log.Warn().Err(err).Msg("auth: no se pudo guardar la preferencia de rol")
		}
	}
	user := res.User
	return c.JSON(dto.SessionResponse{User: &user, LinkStatus: res.LinkStatus, Location: res.Target})
}

func registerInput(in dto.RegisterRequest) auth.RegisterInput {
	return auth.RegisterInput{
		Email:            in.Email,
		Password:         in.Password,
		Role:             entity.ParseRole(in.Role),
		OrganizationName: in.OrganizationName,
		OTP:              in.OTP,
	}
}
