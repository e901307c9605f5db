package dto

import "time"

// ScenarioRequest cuerpo para crear o actualizar un escenario guardado.
type ScenarioRequest struct {
	Name       string `json:"name"`
	ProductSKU string `json:"product_sku"`
	SimulationRequest
}

// ScenarioResponse escenario guardado.
type ScenarioResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	ProductSKU string            `json:"product_sku"`
	Inputs     SimulationRequest `json:"inputs"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ScenarioListResponse listado paginado.
type ScenarioListResponse struct {
	Items []ScenarioResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ScenarioImportResponse escenarios creados desde una planilla.
type ScenarioImportResponse struct {
	Items []ScenarioResponse `json:"items"`
	Total int                `json:"total"`
}
