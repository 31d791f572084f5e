package contract

import (
	"context"

	"subcontrol-be/internal/entity"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	List(ctx context.Context) ([]*entity.Subscription, error)
	FindById(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)
	Create(ctx context.Context, subscription *entity.Subscription) error
	Update(ctx context.Context, id uuid.UUID, patch entity.SubscriptionPatch) (*entity.Subscription, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
