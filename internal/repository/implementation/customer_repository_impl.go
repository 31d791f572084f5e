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

type CustomerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CustomerMapper
}

func NewCustomerRepository(db *gorm.DB) contract.CustomerRepository {
	return &CustomerRepositoryImpl{
		db:     db,
		mapper: mapper.NewCustomerMapper(),
	}
}

func (r *CustomerRepositoryImpl) List(ctx context.Context) ([]*entity.Customer, error) {
	var models []*model.Customer
	if err := r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, apperror.Unavailable("list customers", err)
	}
	entities := make([]*entity.Customer, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *CustomerRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var m model.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("customer", id)
		}
		return nil, apperror.Unavailable("find customer", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.Id == uuid.Nil {
		customer.Id = uuid.New()
	}
	m := r.mapper.ToModel(customer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Unavailable("create customer", err)
	}
	*customer = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomerRepositoryImpl) Update(ctx context.Context, id uuid.UUID, patch entity.CustomerPatch) (*entity.Customer, error) {
	current, err := r.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	current.UpdatedAt = time.Now()

	m := r.mapper.ToModel(current)
	result := r.db.WithContext(ctx).Model(&model.Customer{Id: id}).Select("*").Omit("id", "created_at").Updates(m)
	if result.Error != nil {
		return nil, apperror.Unavailable("update customer", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("customer", id)
	}
	return current, nil
}

// Delete does not cascade to subscriptions.
func (r *CustomerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Customer{}, "id = ?", id)
	if result.Error != nil {
		return apperror.Unavailable("delete customer", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("customer", id)
	}
	return nil
}
