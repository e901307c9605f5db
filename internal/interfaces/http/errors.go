package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/domain"
	"github.com/jhoicas/Rentabilidad-api/pkg/logger"
)

// errMissingFile falta el campo multipart "file".
var errMissingFile = errors.New("campo file requerido")

// errorMapping traduce errores de dominio a status + código.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrMissingCompany, fiber.StatusUnauthorized, "MISSING_COMPANY"},
	{errMissingFile, fiber.StatusBadRequest, "MISSING_FILE"},
	{domain.ErrTooManyVariants, fiber.StatusBadRequest, "TOO_MANY_VARIANTS"},
	{domain.ErrUnsupportedFormat, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
}

// respondError responde con el status que corresponde al error. Lo no mapeado es 500 y se registra.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
