package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/application/workspace"
	"github.com/jhoicas/orderly-console/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/orderly-console/internal/infrastructure/pdf"
	"github.com/jhoicas/orderly-console/internal/infrastructure/prefs"
	"github.com/jhoicas/orderly-console/internal/infrastructure/remote"
	"github.com/jhoicas/orderly-console/internal/infrastructure/sheet"
	httpRouter "github.com/jhoicas/orderly-console/internal/interfaces/http"
	"github.com/jhoicas/orderly-console/pkg/config"
	"github.com/jhoicas/orderly-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("iniciando consola")

	m := metrics.New()

	// Preferencias: Redis si está configurado; si no responde se sigue en memoria.
	var prefStore ports.PreferenceStore = prefs.NewMemoryStore()
	if cfg.Redis.Enabled() {
		redisStore := prefs.NewRedisStore(prefs.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisStore.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible; preferencias en memoria")
			_ = redisStore.Close()
		} else {
			prefStore = redisStore
			defer redisStore.Close()
		}
	}

	// Un cliente remoto por sesión: cada uno con su cookie jar.
	transport := m.InstrumentTransport(nil)
	newClient := func() (ports.API, error) {
		client, err := remote.NewClient(remote.Config{
			BaseURL:   cfg.Upstream.BaseURL,
			Timeout:   cfg.Upstream.Timeout,
			UserAgent: cfg.Upstream.UserAgent,
			Transport: transport,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	registry := workspace.NewRegistry(newClient, workspace.Config{
		PollInterval: cfg.Notifications.PollInterval,
		IdleTTL:      cfg.Session.IdleTTL,
	}, workspace.Hooks{
		Opened:     m.SessionOpened,
		Closed:     m.SessionClosed,
		PollFailed: func(error) { m.PollFailed() },
	}, log.Component("workspace"))
	registry.StartJanitor(time.Minute)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		AllowOrigins: cfg.HTTP.AllowOrigins,
		RateMax:      cfg.RateLimit.Max,
		RateWindow:   cfg.RateLimit.Window,
		SwaggerFile:  "./docs/swagger.json",
	}, m, log.Component("http"))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Registry: registry,
		Session: httpRouter.SessionConfig{
			Secret:      cfg.Session.Secret,
			CookieName:  cfg.Session.CookieName,
			TTLMinutes:  cfg.Session.TTLMinutes,
			Issuer:      cfg.Session.Issuer,
			Secure:      cfg.Session.Secure,
			ResolveWait: cfg.Session.ResolveWait,
		},
		Services: httpRouter.Services{
			Exporter:        sheet.NewOrderExporter(),
			PDF:             infrapdf.NewOrderSummaryGenerator(),
			Parser:          sheet.NewCatalogParser(),
			Prefs:           prefStore,
			UpstreamBaseURL: cfg.Upstream.BaseURL,
		},
		Log: log.Component("auth"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	registry.Shutdown()

	log.Info().Msg("consola detenida")
}
