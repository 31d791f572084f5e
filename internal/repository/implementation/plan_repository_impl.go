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

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewPlanRepository(db *gorm.DB) contract.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *PlanRepositoryImpl) List(ctx context.Context) ([]*entity.Plan, error) {
	var models []*model.Plan
	if err := r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, apperror.Unavailable("list plans", err)
	}
	entities := make([]*entity.Plan, len(models))
	for i, m := range models {
		entities[i] = r.mapper.PlanToEntity(m)
	}
	return entities, nil
}

func (r *PlanRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	var m model.Plan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("plan", id)
		}
		return nil, apperror.Unavailable("find plan", err)
	}
	return r.mapper.PlanToEntity(&m), nil
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *entity.Plan) error {
	if plan.Id == uuid.Nil {
		plan.Id = uuid.New()
	}
	m := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Unavailable("create plan", err)
	}
	*plan = *r.mapper.PlanToEntity(m)
	return nil
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, id uuid.UUID, patch entity.PlanPatch) (*entity.Plan, error) {
	current, err := r.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	current.UpdatedAt = time.Now()

	m := r.mapper.PlanToModel(current)
	result := r.db.WithContext(ctx).Model(&model.Plan{Id: id}).Select("*").Omit("id", "created_at").Updates(m)
	if result.Error != nil {
		return nil, apperror.Unavailable("update plan", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("plan", id)
	}
	return current, nil
}

// Delete leaves subscriptions that reference the plan in place.
func (r *PlanRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Plan{}, "id = ?", id)
	if result.Error != nil {
		return apperror.Unavailable("delete plan", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("plan", id)
	}
	return nil
}
