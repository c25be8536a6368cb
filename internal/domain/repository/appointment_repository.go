package repository

import (
	"context"

	"clinic-admin-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	SearchByPatientName(ctx context.Context, patientName string) ([]entity.Appointment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
