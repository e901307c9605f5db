package http

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/pkg/logger"
)

// ScenarioParser lee escenarios desde un archivo subido (XLSX o CSV).
type ScenarioParser func(fileName string, r io.Reader) ([]dto.ScenarioImportRow, error)

// ProfitabilityHandler calculadora de rentabilidad sin estado (no requiere empresa).
type ProfitabilityHandler struct {
	uc    *simulation.SimulationUseCase
	parse ScenarioParser
	log   *logger.Logger
}

// NewProfitabilityHandler construye el handler.
func NewProfitabilityHandler(uc *simulation.SimulationUseCase, parse ScenarioParser, log *logger.Logger) *ProfitabilityHandler {
	return &ProfitabilityHandler{uc: uc, parse: parse, log: log}
}

// Simulate godoc
// @Summary      Simular precio y tabla ROAS
// @Description  Resuelve el precio de venta según el modo objetivo y calcula lucro y márgenes para ROAS 1..30.
// @Tags         profitability
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SimulationRequest  true  "Costos y objetivo"
// @Success      200   {object}  dto.SimulationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profitability/simulate [post]
func (h *ProfitabilityHandler) Simulate(c *fiber.Ctx) error {
	var in dto.SimulationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Simulate(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar simulación
// @Description  Devuelve la simulación como planilla XLSX o reporte PDF.
// @Tags         profitability
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format  query     string                 false  "xlsx | pdf"  default(xlsx)
// @Param        title   query     string                 false  "Título del reporte"
// @Param        body    body      dto.SimulationRequest  true   "Costos y objetivo"
// @Success      200     {file}    file
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/profitability/export [post]
func (h *ProfitabilityHandler) Export(c *fiber.Ctx) error {
	var in dto.SimulationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	format := c.Query("format", simulation.FormatXLSX)
	data, contentType, err := h.uc.Export(c.UserContext(), in, format, c.Query("title"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	ext := simulation.FormatXLSX
	if contentType == simulation.ContentTypePDF {
		ext = simulation.FormatPDF
	}
	return sendFile(c, data, contentType, "simulacion."+ext)
}

// Import godoc
// @Summary      Simular escenarios desde planilla
// @Description  Recibe un XLSX o CSV (campo multipart "file") y simula cada fila; los errores se informan por fila.
// @Description  Con format=xlsx devuelve la planilla resumen en lugar de JSON.
// @Tags         profitability
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "Planilla de escenarios"
// @Param        format  query     string  false  "json | xlsx"  default(json)
// @Success      200     {object}  dto.BatchSimulationResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/profitability/import [post]
func (h *ProfitabilityHandler) Import(c *fiber.Ctx) error {
	rows, err := parseUpload(c, h.parse)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if strings.EqualFold(c.Query("format"), simulation.FormatXLSX) {
		data, _, err := h.uc.ExportBatch(c.UserContext(), rows)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return sendFile(c, data, simulation.ContentTypeXLSX, "lote.xlsx")
	}
	return c.JSON(h.uc.SimulateBatch(c.UserContext(), rows))
}

// parseUpload lee el campo multipart "file" con el parser de planillas.
func parseUpload(c *fiber.Ctx, parse ScenarioParser) ([]dto.ScenarioImportRow, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errMissingFile
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer f.Close()
	return parse(fh.Filename, f)
}

func sendFile(c *fiber.Ctx, data []byte, contentType, fileName string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Send(data)
}
