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
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetAll(ctx context.Context) ([]dto.PatientResponse, error)
	Search(ctx context.Context, name string) ([]dto.PatientResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type patientUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		Name:       req.Name,
		Age:        *req.Age,
		Gender:     req.Gender,
		BloodGroup: req.BloodGroup,
		Email:      req.Email,
		Number:     req.Number,
		Password:   string(hashedPassword),
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	newValue := converter.PatientToResponse(patient)
	if err := u.auditService.LogCreate(ctx, adminIDFromContext(ctx), entity.AuditActionPatientCreate, "patient", patient.ID.String(), newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

func (u *patientUsecase) GetAll(ctx context.Context) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) Search(ctx context.Context, name string) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.SearchByName(ctx, name)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	// Capture old value for audit
	oldValue := converter.PatientToResponse(patient)

	fields := map[string]interface{}{}
	if req.Name != nil {
		patient.Name = *req.Name
		fields["name"] = patient.Name
	}
	if req.Age != nil {
		patient.Age = *req.Age
		fields["age"] = patient.Age
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
		fields["gender"] = patient.Gender
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = *req.BloodGroup
		fields["blood_group"] = patient.BloodGroup
	}
	if req.Email != nil {
		patient.Email = *req.Email
		fields["email"] = patient.Email
	}
	if req.Number != nil {
		patient.Number = *req.Number
		fields["number"] = patient.Number
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		patient.Password = string(hashedPassword)
		fields["password"] = patient.Password
	}

	affectedRows, err := u.patientRepo.Update(ctx, id, fields)
	if err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}
	if affectedRows == 0 {
		return nil, ErrPatientNotFound
	}

	// Audit log - update patient
	newValue := converter.PatientToResponse(patient)
	if err := u.auditService.LogUpdate(ctx, adminIDFromContext(ctx), entity.AuditActionPatientUpdate, "patient", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

func (u *patientUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	// Get patient for audit log before delete
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	oldValue := converter.PatientToResponse(patient)

	affectedRows, err := u.patientRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed delete patient: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(ctx, adminIDFromContext(ctx), entity.AuditActionPatientDelete, "patient", id.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
