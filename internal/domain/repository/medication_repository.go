package repository

import (
	"context"

	"clinic-admin-api/internal/domain/entity"

	"github.com/google/uuid"
)

type MedicationRepository interface {
	Create(ctx context.Context, medication *entity.Medication) error
	FindAll(ctx context.Context) ([]entity.Medication, error)
	SearchByName(ctx context.Context, name string) ([]entity.Medication, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
