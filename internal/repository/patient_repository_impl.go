package repository

import (
	"context"
	"errors"

	"clinic-admin-api/internal/domain/entity"
	domainRepo "clinic-admin-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) SearchByName(ctx context.Context, name string) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", containsPattern(name)).
		Order("created_at DESC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

// Update writes only the given columns of the row with id and reports how
// many rows matched. An empty column set still reports whether the row exists.
func (r *patientRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	return updateColumns(r.db.WithContext(ctx).Model(&entity.Patient{}).Where("id = ?", id), fields)
}

func (r *patientRepository) UpdateFingerprintSlot(ctx context.Context, id uuid.UUID, slot int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Patient{}).Where("id = ?", id).Update("fingerprint_slot", slot)
	return result.RowsAffected, result.Error
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Patient{})
	return result.RowsAffected, result.Error
}
