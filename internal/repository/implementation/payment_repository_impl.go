package implementation

import (
	"context"
	"errors"
	"fmt"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/mapper"
	"subcontrol-be/internal/model"
	"subcontrol-be/internal/repository/contract"
	"subcontrol-be/internal/repository/scope"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) toEntities(models []*model.Payment) []*entity.Payment {
	entities := make([]*entity.Payment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities
}

// List returns payments newest first.
func (r *PaymentRepositoryImpl) List(ctx context.Context) ([]*entity.Payment, error) {
	var models []*model.Payment
	if err := r.db.WithContext(ctx).Scopes(scope.OrderByPaidAtDesc).Find(&models).Error; err != nil {
		return nil, apperror.Unavailable("list payments", err)
	}
	return r.toEntities(models), nil
}

func (r *PaymentRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*entity.Payment, error) {
	var models []*model.Payment
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionId).
		Scopes(scope.OrderByPaidAtDesc).
		Find(&models).Error
	if err != nil {
		return nil, apperror.Unavailable("list subscription payments", err)
	}
	return r.toEntities(models), nil
}

func (r *PaymentRepositoryImpl) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Payment, error) {
	var m model.Payment
	if err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Unavailable("find payment by idempotency key", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.Id == uuid.Nil {
		payment.Id = uuid.New()
	}
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("payment idempotency key already used: %w", apperror.ErrConflict)
		}
		return apperror.Unavailable("create payment", err)
	}
	*payment = *r.mapper.ToEntity(m)
	return nil
}
