package saleslink

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain"
	"github.com/jhoicas/orderly-console/internal/domain/access"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// LinkPagePath página donde el vendedor solicita el vínculo con un distribuidor.
const LinkPagePath = "/sales/link-distributor"

// State resultado del guard para un usuario.
type State string

const (
	StateLoading  State = "loading"
	StateApproved State = "approved"
	StateBlocked  State = "blocked"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Guard decide si un vendedor puede usar las páginas de ventas. Falla cerrado:
// cualquier error al consultar el estado del vínculo bloquea.
type Guard struct {
	api ports.LinkAPI
	log zerolog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	states map[string]State
}

// NewGuard crea el guard.
func NewGuard(api ports.LinkAPI, log zerolog.Logger) *Guard {
	return &Guard{api: api, log: log, states: make(map[string]State)}
}

// Check resuelve el estado del usuario. Los usuarios que no son vendedores se aprueban sin
// consultar al servidor. Las consultas concurrentes del mismo usuario se agrupan.
func (g *Guard) Check(ctx context.Context, user *entity.SessionUser) State {
	if user == nil || user.Role != entity.RoleSalesperson {
		return StateApproved
	}
	v, _, _ := g.group.Do(user.ID, func() (any, error) {
		st := StateBlocked
		status, err := g.api.LinkStatus(ctx)
		switch {
		case err != nil:
			g.log.Warn().Err(err).Str("user_id", user.ID).Msg("saleslink: no se pudo consultar el vínculo; se bloquea")
		case status != nil && status.State == entity.LinkApproved:
			st = StateApproved
		}
		g.mu.Lock()
		g.states[user.ID] = st
		g.mu.Unlock()
		return st, nil
	})
	return v.(State)
}

// State último estado conocido del usuario; loading si aún no se consultó.
func (g *Guard) State(userID string) State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if st, ok := g.states[userID]; ok {
		return st
	}
	return StateLoading
}

// Forget descarta el estado cacheado (logout o cambio de vínculo).
func (g *Guard) Forget(userID string) {
	g.mu.Lock()
	delete(g.states, userID)
	g.mu.Unlock()
}

// Status estado del vínculo para la página de vinculación.
func (g *Guard) Status(ctx context.Context) (*entity.LinkStatus, error) {
	return g.api.LinkStatus(ctx)
}

// RequestLink solicita el vínculo con el distribuidor indicado por email.
func (g *Guard) RequestLink(ctx context.Context, userID, distributorEmail string) (*entity.LinkRequest, error) {
	email := strings.TrimSpace(distributorEmail)
	if email == "" {
		return nil, domain.Invalid("Please enter the distributor's email")
	}
	if !emailRe.MatchString(email) {
		return nil, domain.Invalid("Please enter a valid email address")
	}
	req, err := g.api.RequestLink(ctx, email)
	if err != nil {
		return nil, err
	}
	g.Forget(userID)
	return req, nil
}

// RedirectURL destino cuando el vendedor está bloqueado.
func RedirectURL(from string) string {
	return LinkPagePath + "?from=" + url.QueryEscape(from)
}

// ReturnTarget a dónde volver tras la aprobación: from si el vendedor puede verlo
// (y no es la propia página de vínculo), si no su dashboard.
func ReturnTarget(from string) string {
	if from != "" && from != LinkPagePath && access.IsPathAllowed(from, entity.RoleSalesperson) {
		return from
	}
	return access.HomePath(entity.RoleSalesperson)
}
