package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/domain"
)

// writeError traduce un error de caso de uso o de la API remota a dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string, string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, "VALIDATION", ve.Message
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION", "la acción no corresponde al estado actual del pedido"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "no se pudo contactar con el servidor de pedidos"
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, "UPSTREAM", err.Error()
	default:
		return fiber.StatusInternalServerError, "INTERNAL", err.Error()
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func missingParam(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_" + name, Message: name + " es requerido"})
}
