package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/pkg/logger"
)

// ScenarioHandler maneja los escenarios guardados (requiere X-Company-ID).
type ScenarioHandler struct {
	uc    *simulation.ScenarioUseCase
	parse ScenarioParser
	log   *logger.Logger
}

// NewScenarioHandler construye el handler.
func NewScenarioHandler(uc *simulation.ScenarioUseCase, parse ScenarioParser, log *logger.Logger) *ScenarioHandler {
	return &ScenarioHandler{uc: uc, parse: parse, log: log}
}

// ScenarioSimulationResponse escenario junto con su simulación.
type ScenarioSimulationResponse struct {
	Scenario   *dto.ScenarioResponse   `json:"scenario"`
	Simulation *dto.SimulationResponse `json:"simulation"`
}

// Create godoc
// @Summary      Crear escenario
// @Tags         scenarios
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header    string               true  "Empresa (UUID)"
// @Param        body          body      dto.ScenarioRequest  true  "Escenario"
// @Success      201           {object}  dto.ScenarioResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      409           {object}  dto.ErrorResponse
// @Router       /api/scenarios [post]
func (h *ScenarioHandler) Create(c *fiber.Ctx) error {
	var in dto.ScenarioRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Import godoc
// @Summary      Importar escenarios desde planilla
// @Description  Guarda cada fila del XLSX o CSV como escenario. Si una fila falla no se guarda ninguna.
// @Tags         scenarios
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Company-ID  header    string  true  "Empresa (UUID)"
// @Param        file          formData  file    true  "Planilla de escenarios"
// @Success      201           {object}  dto.ScenarioImportResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      409           {object}  dto.ErrorResponse
// @Router       /api/scenarios/import [post]
func (h *ScenarioHandler) Import(c *fiber.Ctx) error {
	rows, err := parseUpload(c, h.parse)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Import(c.UserContext(), GetCompanyID(c), rows)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar escenarios
// @Tags         scenarios
// @Produce      json
// @Param        X-Company-ID  header    string  true   "Empresa (UUID)"
// @Param        limit         query     int     false  "Límite"  default(20)
// @Param        offset        query     int     false  "Offset"  default(0)
// @Success      200           {object}  dto.ScenarioListResponse
// @Router       /api/scenarios [get]
func (h *ScenarioHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener escenario por ID
// @Tags         scenarios
// @Produce      json
// @Param        X-Company-ID  header    string  true  "Empresa (UUID)"
// @Param        id            path      string  true  "ID del escenario"
// @Success      200           {object}  dto.ScenarioResponse
// @Failure      404           {object}  dto.ErrorResponse
// @Router       /api/scenarios/{id} [get]
func (h *ScenarioHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar escenario
// @Tags         scenarios
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header    string               true  "Empresa (UUID)"
// @Param        id            path      string               true  "ID del escenario"
// @Param        body          body      dto.ScenarioRequest  true  "Escenario"
// @Success      200           {object}  dto.ScenarioResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      404           {object}  dto.ErrorResponse
// @Failure      409           {object}  dto.ErrorResponse
// @Router       /api/scenarios/{id} [put]
func (h *ScenarioHandler) Update(c *fiber.Ctx) error {
	var in dto.ScenarioRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar escenario
// @Tags         scenarios
// @Param        X-Company-ID  header  string  true  "Empresa (UUID)"
// @Param        id            path    string  true  "ID del escenario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scenarios/{id} [delete]
func (h *ScenarioHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Simulate godoc
// @Summary      Simular escenario guardado
// @Tags         scenarios
// @Produce      json
// @Param        X-Company-ID  header    string  true  "Empresa (UUID)"
// @Param        id            path      string  true  "ID del escenario"
// @Success      200           {object}  ScenarioSimulationResponse
// @Failure      404           {object}  dto.ErrorResponse
// @Router       /api/scenarios/{id}/simulation [get]
func (h *ScenarioHandler) Simulate(c *fiber.Ctx) error {
	sim, sc, err := h.uc.Simulate(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(ScenarioSimulationResponse{Scenario: sc, Simulation: sim})
}
