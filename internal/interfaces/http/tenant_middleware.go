package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
)

// HeaderCompanyID identifica a la empresa dueña de los escenarios.
const HeaderCompanyID = "X-Company-ID"

// LocalCompanyID key en c.Locals.
const LocalCompanyID = "company_id"

// TenantMiddleware exige X-Company-ID (UUID) y lo deja en c.Locals.
func TenantMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := strings.TrimSpace(c.Get(HeaderCompanyID))
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_COMPANY", Message: HeaderCompanyID + " requerido"})
		}
		id, err := uuid.Parse(companyID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_COMPANY", Message: HeaderCompanyID + " debe ser un UUID"})
		}
		c.Locals(LocalCompanyID, id.String())
		return c.Next()
	}
}

// GetCompanyID devuelve el CompanyID del contexto (después de TenantMiddleware).
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
