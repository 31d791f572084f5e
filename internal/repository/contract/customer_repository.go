package contract

import (
	"context"

	"subcontrol-be/internal/entity"

	"github.com/google/uuid"
)

type CustomerRepository interface {
	List(ctx context.Context) ([]*entity.Customer, error)
	FindById(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, id uuid.UUID, patch entity.CustomerPatch) (*entity.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
