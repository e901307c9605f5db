package repository

import (
	"context"

	"github.com/jhoicas/Rentabilidad-api/internal/domain/entity"
)

// ScenarioRepository define el puerto de persistencia para Scenario (DIP).
// Todas las lecturas y escrituras se acotan a la empresa (tenant).
type ScenarioRepository interface {
	Create(ctx context.Context, s *entity.Scenario) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Scenario, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Scenario, int, error)
	Update(ctx context.Context, s *entity.Scenario) error
	Delete(ctx context.Context, companyID, id string) error
}
