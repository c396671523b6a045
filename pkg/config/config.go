package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	Upstream      UpstreamConfig
	Session       SessionConfig
	Notifications NotificationsConfig
	Redis         RedisConfig
	RateLimit     RateLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP de la consola.
type HTTPConfig struct {
	Host         string
	Port         int
	AllowOrigins string // lista separada por comas para CORS
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfig describe la API remota de pedidos que consume la consola.
type UpstreamConfig struct {
	BaseURL   string // ej. https://orderly.example.com/api
	Timeout   time.Duration
	UserAgent string
}

// SessionConfig configuración de la cookie de sesión de la consola.
type SessionConfig struct {
	Secret      string
	CookieName  string
	TTLMinutes  int
	IdleTTL     time.Duration // sesiones sin actividad se desalojan tras este tiempo
	ResolveWait time.Duration // espera máxima para resolver "who am I" antes de responder "loading"
	Issuer      string
	Secure      bool
}

// NotificationsConfig intervalo de sondeo de notificaciones.
type NotificationsConfig struct {
	PollInterval time.Duration
}

// RedisConfig almacén de preferencias. Addr vacío => almacén en memoria.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled indica si hay que usar Redis para las preferencias.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// RateLimitConfig límite de peticiones por IP.
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, UPSTREAM_BASE_URL, SESSION_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "orderly-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			AllowOrigins: getString(v, "HTTP_ALLOW_ORIGINS", "http://localhost:5173"),
		},
		Upstream: UpstreamConfig{
			BaseURL:   strings.TrimRight(getString(v, "UPSTREAM_BASE_URL", "http://localhost:4000/api"), "/"),
			Timeout:   getDuration(v, "UPSTREAM_TIMEOUT", 15*time.Second),
			UserAgent: getString(v, "UPSTREAM_USER_AGENT", "orderly-console/1.0"),
		},
		Session: SessionConfig{
			Secret:      getString(v, "SESSION_SECRET", ""),
			CookieName:  getString(v, "SESSION_COOKIE_NAME", "orderly_session"),
			TTLMinutes:  getInt(v, "SESSION_TTL_MINUTES", 60*24),
			IdleTTL:     getDuration(v, "SESSION_IDLE_TTL", 30*time.Minute),
			ResolveWait: getDuration(v, "SESSION_RESOLVE_WAIT", 2*time.Second),
			Issuer:      getString(v, "SESSION_ISSUER", "orderly-console"),
			Secure:      getBool(v, "SESSION_COOKIE_SECURE", false),
		},
		Notifications: NotificationsConfig{
			PollInterval: getDuration(v, "NOTIFICATIONS_POLL_INTERVAL", 20*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Max:    getInt(v, "RATE_LIMIT_MAX", 200),
			Window: getDuration(v, "RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: UPSTREAM_BASE_URL debe ser una URL absoluta (%q)", c.Upstream.BaseURL)
	}
	if c.Session.Secret == "" {
		if c.App.Env == "production" {
			return fmt.Errorf("config: SESSION_SECRET es obligatorio en producción")
		}
		// En desarrollo se acepta un secreto fijo para no romper el arranque local.
		c.Session.Secret = "dev-only-session-secret"
	}
	if c.Notifications.PollInterval <= 0 {
		c.Notifications.PollInterval = 20 * time.Second
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getDuration acepta "20s", "5m" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
