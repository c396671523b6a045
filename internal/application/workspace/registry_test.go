package workspace_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/application/workspace"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/pkg/logger"
)

type fakeAPI struct {
	ports.API

	mu        sync.Mutex
	me        *entity.SessionUser
	meErr     error
	logoutErr error
	listErr   error
}

func (f *fakeAPI) Me(ctx context.Context) (*entity.SessionUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.me, f.meErr
}

func (f *fakeAPI) Logout(ctx context.Context) error { return f.logoutErr }

func (f *fakeAPI) ListNotifications(ctx context.Context, unread *bool) ([]entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return []entity.Notification{}, f.listErr
}

func newRegistry(api *fakeAPI, cfg workspace.Config, hooks workspace.Hooks) *workspace.Registry {
	return workspace.NewRegistry(func() (ports.API, error) { return api, nil }, cfg, hooks, logger.Nop().Zerolog())
}

func TestRegistry_ResolveReutilizaLaSesion(t *testing.T) {
	var opened atomic.Int32
	reg := newRegistry(&fakeAPI{meErr: errors.New("401")}, workspace.Config{}, workspace.Hooks{Opened: func() { opened.Add(1) }})
	defer reg.Shutdown()

	w1, err := reg.Resolve("")
	require.NoError(t, err)
	require.NotEmpty(t, w1.ID)

	w2, err := reg.Resolve(w1.ID)
	require.NoError(t, err)
	assert.Same(t, w1, w2)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, int32(1), opened.Load())

	w3, err := reg.Resolve("cookie-from-previous-process")
	require.NoError(t, err)
	assert.Equal(t, "cookie-from-previous-process", w3.ID, "se conserva el id de la cookie")
}

func TestRegistry_ErrorDelClienteRemoto(t *testing.T) {
	reg := workspace.NewRegistry(func() (ports.API, error) { return nil, errors.New("bad url") }, workspace.Config{}, workspace.Hooks{}, logger.Nop().Zerolog())
	defer reg.Shutdown()

	_, err := reg.Resolve("")
	assert.Error(t, err)
	assert.Zero(t, reg.Len())
}

func TestWorkspace_InitConUsuarioArrancaElSondeo(t *testing.T) {
	api := &fakeAPI{me: &entity.SessionUser{ID: "u1", Email: "shop@test.co", Role: "shopkeeper"}}
	reg := newRegistry(api, workspace.Config{PollInterval: time.Hour}, workspace.Hooks{})
	defer reg.Shutdown()

	w, err := reg.Resolve("")
	require.NoError(t, err)
	require.True(t, w.Session.Await(context.Background()))

	u, loading := w.User()
	assert.False(t, loading)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleShopkeeper, u.Role)
	assert.Eventually(t, w.Notifications.Running, time.Second, 5*time.Millisecond)
}

func TestWorkspace_SinUsuarioNoSondea(t *testing.T) {
	api := &fakeAPI{meErr: errors.New("Request failed: 401")}
	reg := newRegistry(api, workspace.Config{}, workspace.Hooks{})
	defer reg.Shutdown()

	w, err := reg.Resolve("")
	require.NoError(t, err)
	require.True(t, w.Session.Await(context.Background()))

	u, loading := w.User()
	assert.Nil(t, u)
	assert.False(t, loading)
	assert.False(t, w.Notifications.Running())
}

func TestWorkspace_SignInYSignOut(t *testing.T) {
	api := &fakeAPI{meErr: errors.New("401")}
	reg := newRegistry(api, workspace.Config{PollInterval: time.Hour}, workspace.Hooks{})
	defer reg.Shutdown()

	w, err := reg.Resolve("")
	require.NoError(t, err)

	w.SignIn(entity.SessionUser{ID: "u2", Role: entity.RoleDistributor})
	u, _ := w.User()
	require.NotNil(t, u)
	assert.True(t, w.Notifications.Running())

	require.NoError(t, w.SignOut(context.Background()))
	u, _ = w.User()
	assert.Nil(t, u)
	assert.False(t, w.Notifications.Running(), "el logout detiene el sondeo")
}

func TestWorkspace_SignOutRechazadoConservaUsuario(t *testing.T) {
	api := &fakeAPI{meErr: errors.New("401"), logoutErr: errors.New("server down")}
	reg := newRegistry(api, workspace.Config{PollInterval: time.Hour}, workspace.Hooks{})
	defer reg.Shutdown()

	w, err := reg.Resolve("")
	require.NoError(t, err)
	w.SignIn(entity.SessionUser{ID: "u3", Role: entity.RoleShopkeeper})

	assert.Error(t, w.SignOut(context.Background()))
	u, _ := w.User()
	assert.NotNil(t, u)
	assert.True(t, w.Notifications.Running())
}

func TestRegistry_SweepDesalojaInactivas(t *testing.T) {
	var closed atomic.Int32
	api := &fakeAPI{me: &entity.SessionUser{ID: "u1", Role: "shopkeeper"}}
	reg := newRegistry(api, workspace.Config{PollInterval: time.Hour, IdleTTL: 20 * time.Millisecond}, workspace.Hooks{Closed: func() { closed.Add(1) }})
	defer reg.Shutdown()

	w, err := reg.Resolve("")
	require.NoError(t, err)
	require.True(t, w.Session.Await(context.Background()))

	assert.Zero(t, reg.Sweep(), "recién creada no se desaloja")
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 1, reg.Sweep())
	assert.Zero(t, reg.Len())
	assert.Equal(t, int32(1), closed.Load())
	assert.False(t, w.Notifications.Running(), "el poller no queda vivo")

	_, ok := reg.Get(w.ID)
	assert.False(t, ok)
}

func TestRegistry_HookDeSondeoFallido(t *testing.T) {
	var failures atomic.Int32
	api := &fakeAPI{me: &entity.SessionUser{ID: "u1", Role: "distributor"}, listErr: errors.New("timeout")}
	reg := newRegistry(api, workspace.Config{PollInterval: time.Hour}, workspace.Hooks{PollFailed: func(error) { failures.Add(1) }})
	defer reg.Shutdown()

	_, err := reg.Resolve("")
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return failures.Load() >= 1 }, time.Second, 5*time.Millisecond)
}

func TestRegistry_ShutdownCierraTodo(t *testing.T) {
	api := &fakeAPI{me: &entity.SessionUser{ID: "u1", Role: "shopkeeper"}}
	reg := newRegistry(api, workspace.Config{PollInterval: time.Hour, IdleTTL: time.Minute}, workspace.Hooks{})
	reg.StartJanitor(time.Millisecond)

	for i := 0; i < 3; i++ {
		_, err := reg.Resolve("")
		require.NoError(t, err)
	}
	reg.Shutdown()
	assert.Zero(t, reg.Len())
}
