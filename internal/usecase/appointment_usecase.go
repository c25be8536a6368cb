package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-admin-api/internal/converter"
	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/domain/entity"
	"clinic-admin-api/internal/domain/repository"
	"clinic-admin-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound        = errors.New("appointment not found")
	ErrAppointmentPatientNotFound = errors.New("appointment patient not found")
	ErrInvalidDateFormat          = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat          = errors.New("invalid time format, use HH:MM")
	ErrInvalidAppointmentType     = errors.New("invalid appointment type")
)

const timeLayout = "15:04"

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context) ([]dto.AppointmentResponse, error)
	Search(ctx context.Context, patientName string) ([]dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateLink(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentLinkRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
	}
}

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp and
// keeps only the calendar day.
func parseDate(value string) (time.Time, error) {
	if d, err := time.Parse(converter.DateLayout, value); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseClock normalises "9:05" to "09:05".
func parseClock(value string) (string, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return "", ErrInvalidTimeFormat
	}
	return t.Format(timeLayout), nil
}

func parseAppointmentType(value string) (entity.AppointmentType, error) {
	appointmentType := entity.AppointmentType(value)
	if !appointmentType.Valid() {
		return "", ErrInvalidAppointmentType
	}
	return appointmentType, nil
}

func (u *appointmentUsecase) findPatient(ctx context.Context, rawID string) (*entity.Patient, error) {
	patientID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrAppointmentPatientNotFound
	}
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrAppointmentPatientNotFound
	}
	return patient, nil
}

func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	clock, err := parseClock(req.Time)
	if err != nil {
		return nil, err
	}
	appointmentType, err := parseAppointmentType(req.AppointmentType)
	if err != nil {
		return nil, err
	}

	patient, err := u.findPatient(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:       &patient.ID,
		PatientName:     patient.Name,
		Date:            date,
		Time:            clock,
		AppointmentType: appointmentType,
		RemoteLink:      req.RemoteLink,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	newValue := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogCreate(ctx, adminIDFromContext(ctx), entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

func (u *appointmentUsecase) GetAll(ctx context.Context) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) Search(ctx context.Context, patientName string) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.SearchByPatientName(ctx, patientName)
	if err != nil {
		u.log.Warnf("Failed to search appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	oldValue := converter.AppointmentToResponse(appointment)

	fields := map[string]interface{}{}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		appointment.Date = date
		fields["date"] = date
	}
	if req.Time != nil {
		clock, err := parseClock(*req.Time)
		if err != nil {
			return nil, err
		}
		appointment.Time = clock
		fields["time"] = clock
	}
	if req.AppointmentType != nil {
		appointmentType, err := parseAppointmentType(*req.AppointmentType)
		if err != nil {
			return nil, err
		}
		appointment.AppointmentType = appointmentType
		fields["appointment_type"] = appointmentType
	}
	if req.RemoteLink != nil {
		appointment.RemoteLink = *req.RemoteLink
		fields["remote_link"] = appointment.RemoteLink
	}
	if req.PatientID != nil {
		patient, err := u.findPatient(ctx, *req.PatientID)
		if err != nil {
			return nil, err
		}
		appointment.PatientID = &patient.ID
		appointment.PatientName = patient.Name
		fields["patient_id"] = patient.ID
		fields["patient_name"] = patient.Name
	}

	affectedRows, err := u.appointmentRepo.Update(ctx, id, fields)
	if err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}
	if affectedRows == 0 {
		return nil, ErrAppointmentNotFound
	}

	newValue := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, adminIDFromContext(ctx), entity.AuditActionAppointmentUpdate, "appointment", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

// UpdateLink sets the remote meeting link without touching anything else.
func (u *appointmentUsecase) UpdateLink(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentLinkRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	oldValue := converter.AppointmentToResponse(appointment)
	appointment.RemoteLink = req.RemoteLink

	affectedRows, err := u.appointmentRepo.Update(ctx, id, map[string]interface{}{"remote_link": req.RemoteLink})
	if err != nil {
		u.log.Warnf("Failed to update appointment link: %+v", err)
		return nil, err
	}
	if affectedRows == 0 {
		return nil, ErrAppointmentNotFound
	}

	newValue := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, adminIDFromContext(ctx), entity.AuditActionAppointmentLink, "appointment", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	oldValue := converter.AppointmentToResponse(appointment)

	affectedRows, err := u.appointmentRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed delete appointment: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, adminIDFromContext(ctx), entity.AuditActionAppointmentDelete, "appointment", id.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
