package contract

import (
	"context"

	"subcontrol-be/internal/entity"

	"github.com/google/uuid"
)

type PlanRepository interface {
	List(ctx context.Context) ([]*entity.Plan, error)
	FindById(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
	Create(ctx context.Context, plan *entity.Plan) error
	Update(ctx context.Context, id uuid.UUID, patch entity.PlanPatch) (*entity.Plan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
