package repository

import (
	"context"
	"errors"

	"clinic-admin-api/internal/domain/entity"
	domainRepo "clinic-admin-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) domainRepo.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, medication *entity.Medication) error {
	return r.db.WithContext(ctx).Create(medication).Error
}

func (r *medicationRepository) FindAll(ctx context.Context) ([]entity.Medication, error) {
	var medications []entity.Medication
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&medications).Error; err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) SearchByName(ctx context.Context, name string) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", containsPattern(name)).
		Order("created_at DESC").
		Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	var medication entity.Medication
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medication, nil
}

// Update writes only the given columns of the row with id and reports how
// many rows matched. An empty column set still reports whether the row exists.
func (r *medicationRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	return updateColumns(r.db.WithContext(ctx).Model(&entity.Medication{}).Where("id = ?", id), fields)
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Medication{})
	return result.RowsAffected, result.Error
}
