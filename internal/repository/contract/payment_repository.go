package contract

import (
	"context"

	"subcontrol-be/internal/entity"

	"github.com/google/uuid"
)

// PaymentRepository is append-only: payments are never updated or deleted.
type PaymentRepository interface {
	List(ctx context.Context) ([]*entity.Payment, error)
	ListBySubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*entity.Payment, error)
	// FindByIdempotencyKey returns nil, nil when no payment carries the key.
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.Payment, error)
	Create(ctx context.Context, payment *entity.Payment) error
}
