package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// State usuario de la sesión de consola. Se resuelve una vez con /auth/me, se reemplaza en el
// login y se limpia en el logout. Solo se modifica mediante sus métodos.
type State struct {
	api ports.SessionAPI
	log zerolog.Logger

	mu       sync.RWMutex
	user     *entity.SessionUser
	resolved bool
	explicit bool // SetUser ganó a Init; el resultado de /auth/me se descarta

	ready     chan struct{}
	readyOnce sync.Once
	initOnce  sync.Once
}

// New crea el estado en "loading".
func New(api ports.SessionAPI, log zerolog.Logger) *State {
	return &State{api: api, log: log, ready: make(chan struct{})}
}

// Init consulta /auth/me una sola vez. Cualquier error deja la sesión sin usuario.
func (s *State) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		u, err := s.api.Me(ctx)
		if err != nil {
			s.log.Debug().Err(err).Msg("session: /auth/me sin usuario")
			u = nil
		}
		s.mu.Lock()
		if !s.explicit {
			s.user = copyUser(u)
		}
		s.resolved = true
		s.mu.Unlock()
		s.markReady()
	})
}

// Await espera a que la sesión esté resuelta o a que ctx termine. Devuelve true si está resuelta.
func (s *State) Await(ctx context.Context) bool {
	select {
	case <-s.ready:
		return true
	case <-ctx.Done():
		return false
	}
}

// Current devuelve una copia del usuario y si la sesión sigue en "loading".
func (s *State) Current() (user *entity.SessionUser, loading bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.user), !s.resolved
}

// SetUser reemplaza el usuario (login, registro, restablecimiento de contraseña).
func (s *State) SetUser(u *entity.SessionUser) {
	s.mu.Lock()
	s.user = copyUser(u)
	s.explicit = true
	s.resolved = true
	s.mu.Unlock()
	s.markReady()
}

// SignOut cierra la sesión en el servidor y solo entonces limpia el usuario local.
func (s *State) SignOut(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("session: logout rechazado; se conserva el usuario")
		return err
	}
	s.SetUser(nil)
	return nil
}

func (s *State) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

func copyUser(u *entity.SessionUser) *entity.SessionUser {
	if u == nil {
		return nil
	}
	n := u.Normalized()
	return &n
}
