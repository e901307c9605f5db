package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Rentabilidad-api/internal/domain"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/repository"
)

var _ repository.ScenarioRepository = (*ScenarioRepo)(nil)

const scenarioColumns = `id, company_id, name, product_sku, product_cost, operational_cost_fixed,
	operational_cost_percent, shipping_fixed_cost, marketplace_commission_percent, tax_percent,
	invoiced_share_percent, target_mode, target_value, current_roas, created_at, updated_at`

// ScenarioRepo implementación del puerto ScenarioRepository sobre PostgreSQL (usable con pool o tx).
type ScenarioRepo struct {
	q Querier
}

// NewScenarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewScenarioRepository(q Querier) *ScenarioRepo {
	return &ScenarioRepo{q: q}
}

// Create persiste un escenario nuevo. Nombre repetido en la empresa => domain.ErrDuplicate.
func (r *ScenarioRepo) Create(ctx context.Context, s *entity.Scenario) error {
	query := `INSERT INTO profitability_scenarios (` + scenarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Name, s.ProductSKU, s.ProductCost, s.OperationalCostFixed,
		s.OperationalCostPercent, s.ShippingFixedCost, s.MarketplaceCommissionPercent, s.TaxPercent,
		s.InvoicedSharePercent, s.TargetMode, s.TargetValue, s.CurrentRoas, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert scenario: %w", err)
	}
	return nil
}

// GetByID obtiene un escenario de la empresa. Si no existe devuelve domain.ErrNotFound.
func (r *ScenarioRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM profitability_scenarios WHERE company_id = $1 AND id = $2`
	s, err := scanScenario(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get scenario: %w", err)
	}
	return s, nil
}

// List lista escenarios de la empresa, más recientes primero, y devuelve el total.
func (r *ScenarioRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Scenario, int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM profitability_scenarios WHERE company_id = $1`, companyID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count scenarios: %w", err)
	}

	query := `SELECT ` + scenarioColumns + ` FROM profitability_scenarios
		WHERE company_id = $1 ORDER BY updated_at DESC, name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Scenario, 0, limit)
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan scenario: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Update reemplaza los datos editables. Sin filas afectadas => domain.ErrNotFound.
func (r *ScenarioRepo) Update(ctx context.Context, s *entity.Scenario) error {
	query := `
		UPDATE profitability_scenarios SET
			name = $3, product_sku = $4, product_cost = $5, operational_cost_fixed = $6,
			operational_cost_percent = $7, shipping_fixed_cost = $8, marketplace_commission_percent = $9,
			tax_percent = $10, invoiced_share_percent = $11, target_mode = $12, target_value = $13,
			current_roas = $14, updated_at = $15
		WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		s.CompanyID, s.ID, s.Name, s.ProductSKU, s.ProductCost, s.OperationalCostFixed,
		s.OperationalCostPercent, s.ShippingFixedCost, s.MarketplaceCommissionPercent,
		s.TaxPercent, s.InvoicedSharePercent, s.TargetMode, s.TargetValue, s.CurrentRoas, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update scenario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un escenario de la empresa.
func (r *ScenarioRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM profitability_scenarios WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*entity.Scenario, error) {
	var s entity.Scenario
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.ProductSKU, &s.ProductCost, &s.OperationalCostFixed,
		&s.OperationalCostPercent, &s.ShippingFixedCost, &s.MarketplaceCommissionPercent, &s.TaxPercent,
		&s.InvoicedSharePercent, &s.TargetMode, &s.TargetValue, &s.CurrentRoas, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
