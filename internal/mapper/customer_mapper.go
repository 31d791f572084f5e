package mapper

import (
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/model"
)

type CustomerMapper struct{}

func NewCustomerMapper() *CustomerMapper {
	return &CustomerMapper{}
}

func (m *CustomerMapper) ToEntity(c *model.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	return &entity.Customer{
		Id:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Status:    entity.CustomerStatus(c.Status),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *CustomerMapper) ToModel(c *entity.Customer) *model.Customer {
	if c == nil {
		return nil
	}
	return &model.Customer{
		Id:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Status:    string(c.Status),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
