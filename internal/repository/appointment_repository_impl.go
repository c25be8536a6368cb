package repository

import (
	"context"
	"errors"

	"clinic-admin-api/internal/domain/entity"
	domainRepo "clinic-admin-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Omit("Patient").Create(appointment).Error
}

func (r *appointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).Order("date DESC, time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) SearchByPatientName(ctx context.Context, patientName string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_name ILIKE ?", containsPattern(patientName)).
		Order("date DESC, time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// Update writes only the given columns of the row with id and reports how
// many rows matched. An empty column set still reports whether the row exists.
func (r *appointmentRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	return updateColumns(r.db.WithContext(ctx).Model(&entity.Appointment{}).Where("id = ?", id), fields)
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
