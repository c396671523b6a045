package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/saleslink"
	"github.com/jhoicas/orderly-console/internal/application/workspace"
	"github.com/jhoicas/orderly-console/internal/domain/access"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/pkg/jwt"
)

// Locals keys de Fiber.
const (
	LocalWorkspace = "workspace"
	LocalUser      = "session_user"
)

// retryAfterSeconds sugerencia al cliente mientras la sesión se resuelve.
const retryAfterSeconds = 1

// SessionConfig cookie de sesión de la consola.
type SessionConfig struct {
	Secret     string
	CookieName string
	TTLMinutes int
	Issuer     string
	Secure     bool
	// ResolveWait cuánto esperar a /auth/me antes de responder "loading".
	ResolveWait time.Duration
}

// SessionMiddleware asocia la petición a su workspace. Sin cookie válida se abre una sesión
// nueva y se emite la cookie firmada con su id.
func SessionMiddleware(reg *workspace.Registry, cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := ""
		if tok := c.Cookies(cfg.CookieName); tok != "" {
			if id, err := jwt.Parse(cfg.Secret, tok); err == nil {
				sid = id
			}
		}
		w, err := reg.Resolve(sid)
		if err != nil {
			return writeError(c, err)
		}
		if w.ID != sid {
			tok, err := jwt.Generate(cfg.Secret, w.ID, cfg.Issuer, cfg.TTLMinutes)
			if err != nil {
				return writeError(c, err)
			}
			c.Cookie(&fiber.Cookie{
				Name:     cfg.CookieName,
				Value:    tok,
				Path:     "/",
				HTTPOnly: true,
				Secure:   cfg.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
				Expires:  time.Now().Add(time.Duration(cfg.TTLMinutes) * time.Minute),
			})
		}
		c.Locals(LocalWorkspace, w)
		return c.Next()
	}
}

// GetWorkspace workspace de la petición (después de SessionMiddleware).
func GetWorkspace(c *fiber.Ctx) *workspace.Workspace {
	w, _ := c.Locals(LocalWorkspace).(*workspace.Workspace)
	return w
}

// GetUser usuario autenticado (después de RequireAccess o RequireUser).
func GetUser(c *fiber.Ctx) *entity.SessionUser {
	u, _ := c.Locals(LocalUser).(*entity.SessionUser)
	return u
}

// awaitUser espera como mucho wait a que la sesión se resuelva.
func awaitUser(c *fiber.Ctx, w *workspace.Workspace, wait time.Duration) (*entity.SessionUser, bool) {
	ctx, cancel := context.WithTimeout(c.UserContext(), wait)
	defer cancel()
	w.Session.Await(ctx)
	return w.User()
}

func loading(c *fiber.Ctx) error {
	c.Set(fiber.HeaderRetryAfter, "1")
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.LoadingResponse{Status: "loading", RetryAfter: retryAfterSeconds})
}

// RequireAccess guard de las páginas: sesión sin resolver → "loading"; sin usuario → login con
// ?from=; rol sin acceso a la ruta → su dashboard.
func RequireAccess(wait time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := GetWorkspace(c)
		user, pending := awaitUser(c, w, wait)
		d := access.Decide(user, pending, c.Path())
		switch d.Outcome {
		case access.OutcomeLoading:
			return loading(c)
		case access.OutcomeRedirectLogin, access.OutcomeRedirectHome:
			return c.Redirect(d.Location, fiber.StatusFound)
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireUser para los endpoints JSON de /api: sin usuario responde 401 en lugar de redirigir.
func RequireUser(wait time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := GetWorkspace(c)
		user, pending := awaitUser(c, w, wait)
		if pending {
			return loading(c)
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "inicie sesión"})
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireSalesLink bloquea las páginas de ventas hasta que el vínculo con el distribuidor esté
// aprobado. La propia página de vinculación queda exenta. Debe ir después de RequireAccess.
func RequireSalesLink() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == saleslink.LinkPagePath {
			return c.Next()
		}
		w := GetWorkspace(c)
		if w.Links.Check(c.UserContext(), GetUser(c)) != saleslink.StateApproved {
			return c.Redirect(saleslink.RedirectURL(c.Path()), fiber.StatusFound)
		}
		return c.Next()
	}
}
