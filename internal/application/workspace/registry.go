package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/orderly-console/internal/application/notifications"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/application/saleslink"
	"github.com/jhoicas/orderly-console/internal/application/session"
)

// ClientFactory crea el cliente remoto (con su propio cookie jar) de una sesión nueva.
type ClientFactory func() (ports.API, error)

// Config parámetros del registro.
type Config struct {
	PollInterval time.Duration
	IdleTTL      time.Duration // 0 = no se desalojan sesiones
	InitTimeout  time.Duration // tope para la consulta inicial de /auth/me
}

// Hooks callbacks opcionales (métricas).
type Hooks struct {
	Opened     func()
	Closed     func()
	PollFailed func(error)
}

// Registry sesiones de consola vivas indexadas por id.
type Registry struct {
	newClient ClientFactory
	cfg       Config
	hooks     Hooks
	log       zerolog.Logger
	now       func() time.Time

	base   context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	items map[string]*Workspace

	janitorOnce sync.Once
	janitorDone chan struct{}
}

// NewRegistry construye el registro.
func NewRegistry(newClient ClientFactory, cfg Config, hooks Hooks, log zerolog.Logger) *Registry {
	if cfg.InitTimeout <= 0 {
		cfg.InitTimeout = 15 * time.Second
	}
	base, cancel := context.WithCancel(context.Background())
	return &Registry{
		newClient: newClient,
		cfg:       cfg,
		hooks:     hooks,
		log:       log,
		now:       time.Now,
		base:      base,
		cancel:    cancel,
		items:     make(map[string]*Workspace),
	}
}

// Get devuelve la sesión y marca actividad.
func (r *Registry) Get(id string) (*Workspace, bool) {
	r.mu.Lock()
	w, ok := r.items[id]
	r.mu.Unlock()
	if ok {
		w.touch(r.now())
	}
	return w, ok
}

// Resolve devuelve la sesión con ese id o crea una nueva. id vacío genera uno.
// Una sesión recreada (desalojada o tras reinicio) no tiene credenciales y se resuelve sin usuario.
func (r *Registry) Resolve(id string) (*Workspace, error) {
	if id != "" {
		if w, ok := r.Get(id); ok {
			return w, nil
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	return r.create(id)
}

func (r *Registry) create(id string) (*Workspace, error) {
	api, err := r.newClient()
	if err != nil {
		return nil, fmt.Errorf("workspace: cliente remoto: %w", err)
	}
	log := r.log.With().Str("session_id", id).Logger()
	ctx, cancel := context.WithCancel(r.base)
	w := &Workspace{
		ID:            id,
		API:           api,
		Session:       session.New(api, log.With().Str("component", "session").Logger()),
		Notifications: notifications.NewPoller(api, r.cfg.PollInterval, log.With().Str("component", "notifications").Logger()),
		Links:         saleslink.NewGuard(api, log.With().Str("component", "saleslink").Logger()),
		ctx:           ctx,
		cancel:        cancel,
		log:           log,
	}
	if r.hooks.PollFailed != nil {
		w.Notifications.OnFailure(r.hooks.PollFailed)
	}
	w.touch(r.now())

	r.mu.Lock()
	if existing, ok := r.items[id]; ok {
		r.mu.Unlock()
		cancel()
		return existing, nil
	}
	r.items[id] = w
	r.mu.Unlock()

	if r.hooks.Opened != nil {
		r.hooks.Opened()
	}
	go func() {
		initCtx, done := context.WithTimeout(ctx, r.cfg.InitTimeout)
		defer done()
		w.Session.Init(initCtx)
		w.ensurePolling()
	}()
	return w, nil
}

// Close cierra y olvida la sesión.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	w, ok := r.items[id]
	delete(r.items, id)
	r.mu.Unlock()
	if !ok {
		return
	}
	w.close()
	if r.hooks.Closed != nil {
		r.hooks.Closed()
	}
}

// Len número de sesiones vivas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep desaloja las sesiones sin actividad durante más de IdleTTL. Devuelve cuántas cerró.
func (r *Registry) Sweep() int {
	if r.cfg.IdleTTL <= 0 {
		return 0
	}
	now := r.now()
	var idle []string
	r.mu.Lock()
	for id, w := range r.items {
		if w.idleSince(now) > r.cfg.IdleTTL {
			idle = append(idle, id)
		}
	}
	r.mu.Unlock()
	for _, id := range idle {
		r.Close(id)
	}
	if len(idle) > 0 {
		r.log.Info().Int("evicted", len(idle)).Msg("workspace: sesiones inactivas desalojadas")
	}
	return len(idle)
}

// StartJanitor barre periódicamente las sesiones inactivas hasta Shutdown.
func (r *Registry) StartJanitor(every time.Duration) {
	if every <= 0 || r.cfg.IdleTTL <= 0 {
		return
	}
	r.janitorOnce.Do(func() {
		r.janitorDone = make(chan struct{})
		go func() {
			defer close(r.janitorDone)
			ticker := time.NewTicker(every)
			defer ticker.Stop()
			for {
				select {
				case <-r.base.Done():
					return
				case <-ticker.C:
					r.Sweep()
				}
			}
		}()
	})
}

// Shutdown detiene el janitor y cierra todas las sesiones (pollers incluidos).
func (r *Registry) Shutdown() {
	r.cancel()
	if r.janitorDone != nil {
		<-r.janitorDone
	}
	r.mu.Lock()
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	for _, id := range ids {
		r.Close(id)
	}
}
