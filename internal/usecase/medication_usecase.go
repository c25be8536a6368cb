package usecase

import (
	"context"
	"errors"

	"clinic-admin-api/internal/converter"
	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/domain/entity"
	"clinic-admin-api/internal/domain/repository"
	"clinic-admin-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrMedicationNotFound = errors.New("medication not found")
)

type MedicationUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error)
	GetAll(ctx context.Context) ([]dto.MedicationResponse, error)
	Search(ctx context.Context, name string) ([]dto.MedicationResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicationUsecase struct {
	log            *logrus.Logger
	medicationRepo repository.MedicationRepository
	auditService   service.AuditService
}

func NewMedicationUsecase(
	log *logrus.Logger,
	medicationRepo repository.MedicationRepository,
	auditService service.AuditService,
) MedicationUsecase {
	return &medicationUsecase{
		log:            log,
		medicationRepo: medicationRepo,
		auditService:   auditService,
	}
}

func (u *medicationUsecase) Create(ctx context.Context, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error) {
	medication := &entity.Medication{
		Name:     req.Name,
		Price:    *req.Price,
		Quantity: req.Quantity,
		ImageURL: req.ImageURL,
	}

	if err := u.medicationRepo.Create(ctx, medication); err != nil {
		u.log.Warnf("Failed to create medication: %+v", err)
		return nil, err
	}

	newValue := converter.MedicationToResponse(medication)
	if err := u.auditService.LogCreate(ctx, adminIDFromContext(ctx), entity.AuditActionMedicationCreate, "medication", medication.ID.String(), newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

func (u *medicationUsecase) GetAll(ctx context.Context) ([]dto.MedicationResponse, error) {
	medications, err := u.medicationRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all medications: %+v", err)
		return nil, err
	}

	return converter.MedicationsToResponses(medications), nil
}

func (u *medicationUsecase) Search(ctx context.Context, name string) ([]dto.MedicationResponse, error) {
	medications, err := u.medicationRepo.SearchByName(ctx, name)
	if err != nil {
		u.log.Warnf("Failed to search medications: %+v", err)
		return nil, err
	}

	return converter.MedicationsToResponses(medications), nil
}

func (u *medicationUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicationResponse, error) {
	medication, err := u.medicationRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medication by ID: %+v", err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}

	return converter.MedicationToResponse(medication), nil
}

func (u *medicationUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error) {
	medication, err := u.medicationRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medication by ID: %+v", err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}

	oldValue := converter.MedicationToResponse(medication)

	fields := map[string]interface{}{}
	if req.Name != nil {
		medication.Name = *req.Name
		fields["name"] = medication.Name
	}
	if req.Price != nil {
		medication.Price = *req.Price
		fields["price"] = medication.Price
	}
	if req.Quantity != nil {
		medication.Quantity = *req.Quantity
		fields["quantity"] = medication.Quantity
	}
	if req.ImageURL != nil {
		medication.ImageURL = *req.ImageURL
		fields["image_url"] = medication.ImageURL
	}

	affectedRows, err := u.medicationRepo.Update(ctx, id, fields)
	if err != nil {
		u.log.Warnf("Failed to update medication: %+v", err)
		return nil, err
	}
	if affectedRows == 0 {
		return nil, ErrMedicationNotFound
	}

	newValue := converter.MedicationToResponse(medication)
	if err := u.auditService.LogUpdate(ctx, adminIDFromContext(ctx), entity.AuditActionMedicationUpdate, "medication", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

func (u *medicationUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	medication, err := u.medicationRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medication by ID: %+v", err)
		return err
	}
	if medication == nil {
		return ErrMedicationNotFound
	}
	oldValue := converter.MedicationToResponse(medication)

	affectedRows, err := u.medicationRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed delete medication: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrMedicationNotFound
	}

	if err := u.auditService.LogDelete(ctx, adminIDFromContext(ctx), entity.AuditActionMedicationDelete, "medication", id.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
