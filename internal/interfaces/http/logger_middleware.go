package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger registra cada petición servida: método, ruta, estado, latencia y request id.
// Debe ir después de requestid.New().
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		lvl := zerolog.InfoLevel
		switch {
		case status >= 500:
			lvl = zerolog.ErrorLevel
		case status >= 400:
			lvl = zerolog.WarnLevel
		}
		rid, _ := c.Locals("requestid").(string)
		log.WithLevel(lvl).
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", rid).
			Msg("http")
		return err
	}
}
