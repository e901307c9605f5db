package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rentabilidad-api/internal/application/catalog"
	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/pkg/logger"
)

// KitHandler generador de variantes y kits.
type KitHandler struct {
	uc  *catalog.KitUseCase
	log *logger.Logger
}

// NewKitHandler construye el handler.
func NewKitHandler(uc *catalog.KitUseCase, log *logger.Logger) *KitHandler {
	return &KitHandler{uc: uc, log: log}
}

// Generate godoc
// @Summary      Generar variantes
// @Description  Producto cartesiano de atributos por tamaños de kit, con SKU y nombre.
// @Tags         kits
// @Accept       json
// @Produce      json
// @Param        body  body      dto.KitRequest  true  "Composición"
// @Success      200   {object}  dto.KitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/kits/generate [post]
func (h *KitHandler) Generate(c *fiber.Ctx) error {
	var in dto.KitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Generate(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar variantes a XLSX
// @Tags         kits
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body      dto.KitRequest  true  "Composición"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/kits/export [post]
func (h *KitHandler) Export(c *fiber.Ctx) error {
	var in dto.KitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	data, err := h.uc.Export(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendFile(c, data, simulation.ContentTypeXLSX, "variantes.xlsx")
}

// Simulate godoc
// @Summary      Simular un kit
// @Description  Escala el costo del producto y el costo operativo fijo por kit_size y resuelve el precio del kit.
// @Tags         kits
// @Accept       json
// @Produce      json
// @Param        body  body      dto.KitSimulationRequest  true  "Costos unitarios y tamaño del kit"
// @Success      200   {object}  dto.SimulationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/kits/simulate [post]
func (h *KitHandler) Simulate(c *fiber.Ctx) error {
	var in dto.KitSimulationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Simulate(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
