package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicationRequest struct {
	Name     string           `json:"name" validate:"required,min=2,max=255"`
	Price    *decimal.Decimal `json:"price" validate:"required,nonneg_decimal,money"`
	Quantity int              `json:"quantity" validate:"gte=0"`
	ImageURL string           `json:"imageUrl" validate:"omitempty,url"`
}

type UpdateMedicationRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=2,max=255"`
	Price    *decimal.Decimal `json:"price" validate:"omitempty,nonneg_decimal,money"`
	Quantity *int             `json:"quantity" validate:"omitempty,gte=0"`
	ImageURL *string          `json:"imageUrl" validate:"omitempty,url"`
}

// Response DTOs

type MedicationResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl"`
	CreatedAt time.Time       `json:"createdAt"`
}
