package simulation

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/domain"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/repository"
)

// Largos máximos, iguales a las columnas de profitability_scenarios.
const (
	MaxScenarioNameLen = 120
	MaxProductSKULen   = 80
)

// ScenarioUseCase CRUD de escenarios guardados por empresa.
type ScenarioUseCase struct {
	repo      repository.ScenarioRepository
	tx        ScenarioTxRunner
	simulator *SimulationUseCase
}

// NewScenarioUseCase construye el caso de uso. Con tx nil la importación escribe sin transacción.
func NewScenarioUseCase(repo repository.ScenarioRepository, tx ScenarioTxRunner, simulator *SimulationUseCase) *ScenarioUseCase {
	if tx == nil {
		tx = directRunner{repo: repo}
	}
	return &ScenarioUseCase{repo: repo, tx: tx, simulator: simulator}
}

// Create valida y guarda un nuevo escenario.
func (uc *ScenarioUseCase) Create(ctx context.Context, companyID string, in dto.ScenarioRequest) (*dto.ScenarioResponse, error) {
	if err := validateScenario(companyID, &in); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Scenario{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyScenario(s, in)
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toScenarioResponse(s), nil
}

// GetByID obtiene un escenario de la empresa.
func (uc *ScenarioUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ScenarioResponse, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	s, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toScenarioResponse(s), nil
}

// List lista escenarios de la empresa con paginación.
func (uc *ScenarioUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ScenarioListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ScenarioResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toScenarioResponse(s))
	}
	return &dto.ScenarioListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update reemplaza los datos de un escenario existente.
func (uc *ScenarioUseCase) Update(ctx context.Context, companyID, id string, in dto.ScenarioRequest) (*dto.ScenarioResponse, error) {
	if err := validateScenario(companyID, &in); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	s, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	applyScenario(s, in)
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toScenarioResponse(s), nil
}

// Delete elimina un escenario de la empresa.
func (uc *ScenarioUseCase) Delete(ctx context.Context, companyID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, companyID, id)
}

// Import guarda todas las filas de una planilla como escenarios, todo o nada.
// Una fila inválida o un nombre repetido (en el archivo o en la empresa) cancela la importación.
func (uc *ScenarioUseCase) Import(ctx context.Context, companyID string, rows []dto.ScenarioImportRow) (*dto.ScenarioImportResponse, error) {
	if companyID == "" {
		return nil, domain.ErrMissingCompany
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: la planilla no tiene filas", domain.ErrInvalidInput)
	}

	now := time.Now()
	names := make(map[string]int, len(rows))
	scenarios := make([]*entity.Scenario, 0, len(rows))
	for _, row := range rows {
		in := dto.ScenarioRequest{Name: row.Name, ProductSKU: row.ProductSKU, SimulationRequest: row.Request}
		if err := validateScenario(companyID, &in); err != nil {
			return nil, fmt.Errorf("fila %d: %w", row.Row, err)
		}
		// Misma regla que el índice único (company_id, name): distingue mayúsculas.
		if prev, ok := names[in.Name]; ok {
			return nil, fmt.Errorf("fila %d: nombre repetido (fila %d): %w", row.Row, prev, domain.ErrDuplicate)
		}
		names[in.Name] = row.Row

		s := &entity.Scenario{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyScenario(s, in)
		scenarios = append(scenarios, s)
	}

	err := uc.tx.RunScenarios(ctx, func(repo repository.ScenarioRepository) error {
		for i, s := range scenarios {
			if err := repo.Create(ctx, s); err != nil {
				return fmt.Errorf("fila %d: %w", rows[i].Row, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &dto.ScenarioImportResponse{Items: make([]dto.ScenarioResponse, 0, len(scenarios))}
	for _, s := range scenarios {
		out.Items = append(out.Items, *toScenarioResponse(s))
	}
	out.Total = len(out.Items)
	return out, nil
}

// Simulate ejecuta la calculadora con las entradas guardadas del escenario.
func (uc *ScenarioUseCase) Simulate(ctx context.Context, companyID, id string) (*dto.SimulationResponse, *dto.ScenarioResponse, error) {
	if !validID(id) {
		return nil, nil, domain.ErrNotFound
	}
	s, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	resp, err := uc.simulator.Simulate(ctx, RequestFromScenario(s))
	if err != nil {
		return nil, nil, err
	}
	return resp, toScenarioResponse(s), nil
}

// validID los IDs son UUID; cualquier otro valor no puede existir.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validateScenario(companyID string, in *dto.ScenarioRequest) error {
	if companyID == "" {
		return domain.ErrMissingCompany
	}
	in.Name = strings.TrimSpace(in.Name)
	in.ProductSKU = strings.TrimSpace(in.ProductSKU)
	in.TargetMode = strings.ToUpper(strings.TrimSpace(in.TargetMode))
	if in.Name == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Name) > MaxScenarioNameLen {
		return fmt.Errorf("%w: name admite hasta %d caracteres", domain.ErrInvalidInput, MaxScenarioNameLen)
	}
	if utf8.RuneCountInString(in.ProductSKU) > MaxProductSKULen {
		return fmt.Errorf("%w: product_sku admite hasta %d caracteres", domain.ErrInvalidInput, MaxProductSKULen)
	}
	return profitability.Validate(ToCostInputs(in.SimulationRequest))
}

func applyScenario(s *entity.Scenario, in dto.ScenarioRequest) {
	s.Name = in.Name
	s.ProductSKU = in.ProductSKU
	s.ProductCost = in.ProductCost
	s.OperationalCostFixed = in.OperationalCostFixed
	s.OperationalCostPercent = in.OperationalCostPercent
	s.ShippingFixedCost = in.ShippingFixedCost
	s.MarketplaceCommissionPercent = in.MarketplaceCommissionPercent
	s.TaxPercent = in.TaxPercent
	s.InvoicedSharePercent = in.InvoicedSharePercent
	s.TargetMode = in.TargetMode
	s.TargetValue = in.TargetValue
	s.CurrentRoas = in.CurrentRoas
}

func toScenarioResponse(s *entity.Scenario) *dto.ScenarioResponse {
	if s == nil {
		return nil
	}
	return &dto.ScenarioResponse{
		ID:         s.ID,
		Name:       s.Name,
		ProductSKU: s.ProductSKU,
		Inputs:     RequestFromScenario(s),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// directRunner ejecuta sobre el repositorio sin transacción (tests y almacenamiento en memoria).
type directRunner struct {
	repo repository.ScenarioRepository
}

func (r directRunner) RunScenarios(_ context.Context, fn func(repository.ScenarioRepository) error) error {
	return fn(r.repo)
}
