package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// DefaultInterval intervalo de sondeo si no se configura otro.
const DefaultInterval = 20 * time.Second

// Snapshot copia inmutable del estado de notificaciones.
type Snapshot struct {
	Items       []entity.Notification `json:"items"`
	UnreadCount int                   `json:"unreadCount"`
	Loading     bool                  `json:"loading"`
	LastError   string                `json:"lastError,omitempty"`
}

// Poller mantiene la lista de notificaciones de una sesión y la refresca periódicamente.
// Las mutaciones se envían primero al servidor; la lista local cambia solo si el servidor acepta.
type Poller struct {
	api      ports.NotificationsAPI
	interval time.Duration
	log      zerolog.Logger

	mu      sync.RWMutex
	items   []entity.Notification
	loading bool
	lastErr error

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	onFailure func(error)
}

// NewPoller crea el poller. interval <= 0 usa DefaultInterval.
func NewPoller(api ports.NotificationsAPI, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{api: api, interval: interval, log: log}
}

// OnFailure registra un callback para los refrescos fallidos (métricas). Llamar antes de Start.
func (p *Poller) OnFailure(fn func(error)) {
	p.onFailure = fn
}

// Start consulta de inmediato y luego cada intervalo hasta Stop o la cancelación de ctx.
// Llamar Start con el poller en marcha no hace nada.
func (p *Poller) Start(ctx context.Context) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		_ = p.Refresh(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = p.Refresh(ctx)
			}
		}
	}()
}

// Stop detiene el sondeo y espera a que el bucle termine. Es idempotente.
func (p *Poller) Stop() {
	p.runMu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running indica si hay un bucle de sondeo activo.
func (p *Poller) Running() bool {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.cancel != nil
}

// Refresh recarga la lista. Si falla se conserva la lista anterior.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	items, err := p.api.ListNotifications(ctx, nil)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.lastErr = err
		if ctx.Err() == nil {
			p.log.Warn().Err(err).Msg("notifications: no se pudo refrescar")
			if p.onFailure != nil {
				p.onFailure(err)
			}
		}
		return err
	}
	p.lastErr = nil
	p.items = items
	return nil
}

// MarkRead marca una notificación como leída.
func (p *Poller) MarkRead(ctx context.Context, id string) error {
	if err := p.api.MarkNotificationRead(ctx, id); err != nil {
		p.log.Warn().Err(err).Str("notification_id", id).Msg("notifications: mark read falló")
		return err
	}
	p.setRead(func(n entity.Notification) bool { return n.ID == id }, true)
	return nil
}

// MarkUnread marca una notificación como no leída.
func (p *Poller) MarkUnread(ctx context.Context, id string) error {
	if err := p.api.MarkNotificationUnread(ctx, id); err != nil {
		p.log.Warn().Err(err).Str("notification_id", id).Msg("notifications: mark unread falló")
		return err
	}
	p.setRead(func(n entity.Notification) bool { return n.ID == id }, false)
	return nil
}

// MarkAllRead marca todas como leídas.
func (p *Poller) MarkAllRead(ctx context.Context) error {
	if err := p.api.MarkAllNotificationsRead(ctx); err != nil {
		p.log.Warn().Err(err).Msg("notifications: mark all read falló")
		return err
	}
	p.setRead(func(entity.Notification) bool { return true }, true)
	return nil
}

// ClearAll borra todas las notificaciones del usuario.
func (p *Poller) ClearAll(ctx context.Context) error {
	if err := p.api.ClearNotifications(ctx); err != nil {
		p.log.Warn().Err(err).Msg("notifications: clear falló")
		return err
	}
	p.mu.Lock()
	p.items = nil
	p.mu.Unlock()
	return nil
}

func (p *Poller) setRead(match func(entity.Notification) bool, read bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Copia nueva para no alterar snapshots ya entregados.
	next := make([]entity.Notification, len(p.items))
	copy(next, p.items)
	for i := range next {
		if match(next[i]) {
			next[i].Read = read
		}
	}
	p.items = next
}

// Snapshot devuelve una copia del estado actual.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	items := make([]entity.Notification, len(p.items))
	copy(items, p.items)
	snap := Snapshot{Items: items, UnreadCount: countUnread(items), Loading: p.loading}
	if p.lastErr != nil {
		snap.LastError = p.lastErr.Error()
	}
	return snap
}

func countUnread(items []entity.Notification) int {
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n
}
