package implementation

import (
	"context"
	"errors"
	"time"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/mapper"
	"subcontrol-be/internal/model"
	"subcontrol-be/internal/repository/contract"
	"subcontrol-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context) ([]*entity.Subscription, error) {
	var models []*model.Subscription
	if err := r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, apperror.Unavailable("list subscriptions", err)
	}
	entities := make([]*entity.Subscription, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SubscriptionToEntity(m)
	}
	return entities, nil
}

func (r *SubscriptionRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	var m model.Subscription
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("subscription", id)
		}
		return nil, apperror.Unavailable("find subscription", err)
	}
	return r.mapper.SubscriptionToEntity(&m), nil
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, subscription *entity.Subscription) error {
	if subscription.Id == uuid.Nil {
		subscription.Id = uuid.New()
	}
	m := r.mapper.SubscriptionToModel(subscription)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Unavailable("create subscription", err)
	}
	*subscription = *r.mapper.SubscriptionToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, id uuid.UUID, patch entity.SubscriptionPatch) (*entity.Subscription, error) {
	current, err := r.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	current.UpdatedAt = time.Now()

	m := r.mapper.SubscriptionToModel(current)
	result := r.db.WithContext(ctx).Model(&model.Subscription{Id: id}).Select("*").Omit("id", "created_at").Updates(m)
	if result.Error != nil {
		return nil, apperror.Unavailable("update subscription", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("subscription", id)
	}
	return current, nil
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Subscription{}, "id = ?", id)
	if result.Error != nil {
		return apperror.Unavailable("delete subscription", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("subscription", id)
	}
	return nil
}
