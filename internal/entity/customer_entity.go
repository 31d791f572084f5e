package entity

import (
	"time"

	"github.com/google/uuid"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

func (s CustomerStatus) Valid() bool {
	return s == CustomerStatusActive || s == CustomerStatusInactive
}

type Customer struct {
	Id        uuid.UUID
	Name      string
	Email     string
	Status    CustomerStatus
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CustomerPatch struct {
	Name   *string
	Email  *string
	Status *CustomerStatus
	Notes  *string
}

func (p CustomerPatch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}
