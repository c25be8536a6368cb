package repository

import (
	"context"

	"clinic-admin-api/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientRepository finders return (nil, nil) when no row matches.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindAll(ctx context.Context) ([]entity.Patient, error)
	SearchByName(ctx context.Context, name string) ([]entity.Patient, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	UpdateFingerprintSlot(ctx context.Context, id uuid.UUID, slot int) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
