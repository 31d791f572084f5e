package dto

import (
	"time"

	"github.com/google/uuid"
)

type CustomerCreateRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Email  string `json:"email" validate:"required,email"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
	Notes  string `json:"notes"`
}

// CustomerUpdateRequest only touches the fields present in the body.
type CustomerUpdateRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Notes  *string `json:"notes,omitempty"`
}

type CustomerResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
