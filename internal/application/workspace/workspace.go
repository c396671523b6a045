// Package workspace agrupa el estado de cada sesión de consola (un navegador): su cliente de la
// API remota, el usuario de la sesión, el poller de notificaciones y el guard de vínculo.
package workspace

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/orderly-console/internal/application/notifications"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/application/saleslink"
	"github.com/jhoicas/orderly-console/internal/application/session"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// Workspace estado de una sesión. Cada campo se modifica solo a través de sus propios métodos.
type Workspace struct {
	ID            string
	API           ports.API
	Session       *session.State
	Notifications *notifications.Poller
	Links         *saleslink.Guard

	ctx      context.Context // vive hasta que la sesión se cierra
	cancel   context.CancelFunc
	lastSeen atomic.Int64
	log      zerolog.Logger

	// mu serializa login, logout, arranque del sondeo y cierre.
	mu     sync.Mutex
	closed bool
}

// User usuario actual y si la sesión sigue resolviéndose.
func (w *Workspace) User() (*entity.SessionUser, bool) {
	return w.Session.Current()
}

// SignIn fija el usuario tras login, registro o restablecimiento y arranca el sondeo.
func (w *Workspace) SignIn(u entity.SessionUser) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Session.SetUser(&u)
	w.Links.Forget(u.ID)
	if !w.closed {
		w.Notifications.Start(w.ctx)
	}
	w.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("workspace: sesión iniciada")
}

// SignOut cierra la sesión en el servidor. Si el servidor falla, el usuario se conserva.
func (w *Workspace) SignOut(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	u, _ := w.Session.Current()
	if err := w.Session.SignOut(ctx); err != nil {
		return err
	}
	w.Notifications.Stop()
	if u != nil {
		w.Links.Forget(u.ID)
	}
	w.log.Info().Msg("workspace: sesión cerrada")
	return nil
}

// ensurePolling arranca el poller si ya hay usuario.
func (w *Workspace) ensurePolling() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if u, _ := w.Session.Current(); u != nil {
		w.Notifications.Start(w.ctx)
	}
}

func (w *Workspace) touch(now time.Time) {
	w.lastSeen.Store(now.UnixNano())
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, w.lastSeen.Load()))
}

func (w *Workspace) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.Notifications.Stop()
	w.cancel()
}
