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
	ErrEnrollmentNotFound  = errors.New("fingerprint enrollment not found")
	ErrNoPendingEnrollment = errors.New("no pending fingerprint enrollment")
	ErrSlotMismatch        = errors.New("fingerprint slot does not match the pending enrollment")
)

type FingerprintUsecase interface {
	StartEnrollment(ctx context.Context, patientID uuid.UUID) (*dto.EnrollmentResponse, error)
	GetEnrollment(ctx context.Context, patientID uuid.UUID, wait time.Duration) (*dto.EnrollmentResponse, error)
	CompleteEnrollment(ctx context.Context, req *dto.DeviceEnrollmentResultRequest) (*dto.EnrollmentResponse, error)
	GetDeviceMode(ctx context.Context) (*dto.DeviceModeResponse, error)
}

type fingerprintUsecase struct {
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	fingerprintRepo repository.FingerprintRepository
	auditService    service.AuditService
	maxWait         time.Duration
	now             func() time.Time
}

func NewFingerprintUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	fingerprintRepo repository.FingerprintRepository,
	auditService service.AuditService,
	maxWait time.Duration,
) FingerprintUsecase {
	return &fingerprintUsecase{
		log:             log,
		patientRepo:     patientRepo,
		fingerprintRepo: fingerprintRepo,
		auditService:    auditService,
		maxWait:         maxWait,
		now:             time.Now,
	}
}

// StartEnrollment puts the scanner into signup mode for the patient. A patient
// that already has a slot is re-enrolled into the same slot.
func (u *fingerprintUsecase) StartEnrollment(ctx context.Context, patientID uuid.UUID) (*dto.EnrollmentResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	var slot int
	if patient.FingerprintSlot != nil {
		slot = *patient.FingerprintSlot
	} else {
		slot, err = u.fingerprintRepo.NextSlot(ctx)
		if err != nil {
			u.log.Warnf("Failed to allocate fingerprint slot: %+v", err)
			return nil, err
		}
	}

	enrollment := &entity.FingerprintEnrollment{
		PatientID:   patient.ID,
		Slot:        slot,
		Status:      entity.EnrollmentStatusPending,
		RequestedAt: u.now().UTC(),
	}
	if err := u.fingerprintRepo.SaveEnrollment(ctx, enrollment); err != nil {
		u.log.Warnf("Failed to save fingerprint enrollment: %+v", err)
		return nil, err
	}

	if err := u.fingerprintRepo.SetDeviceMode(ctx, &entity.DeviceMode{
		Mode:      entity.DeviceModeSignup,
		PatientID: &patient.ID,
		Slot:      slot,
	}); err != nil {
		u.log.Warnf("Failed to set device mode: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, adminIDFromContext(ctx), entity.AuditActionFingerprintStart, entity.JSON{
		"entity":    "patient",
		"entity_id": patient.ID.String(),
		"slot":      slot,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.EnrollmentToResponse(enrollment), nil
}

// GetEnrollment returns the current enrollment. With a positive wait it blocks
// while the enrollment is pending, until the device reports back or the wait
// runs out, and then returns whatever state is current.
func (u *fingerprintUsecase) GetEnrollment(ctx context.Context, patientID uuid.UUID, wait time.Duration) (*dto.EnrollmentResponse, error) {
	if wait > u.maxWait {
		wait = u.maxWait
	}
	if wait <= 0 {
		return u.currentEnrollment(ctx, patientID)
	}

	// Subscribe before reading so a completion between the read and the wait
	// is not lost.
	sub, err := u.fingerprintRepo.SubscribeEnrollment(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to subscribe to enrollment events: %+v", err)
		return nil, err
	}
	defer sub.Close()

	enrollment, err := u.findEnrollment(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !enrollment.Pending() {
		return converter.EnrollmentToResponse(enrollment), nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case update, ok := <-sub.Updates():
		if ok && update != nil {
			return converter.EnrollmentToResponse(update), nil
		}
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return u.currentEnrollment(ctx, patientID)
}

func (u *fingerprintUsecase) currentEnrollment(ctx context.Context, patientID uuid.UUID) (*dto.EnrollmentResponse, error) {
	enrollment, err := u.findEnrollment(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return converter.EnrollmentToResponse(enrollment), nil
}

func (u *fingerprintUsecase) findEnrollment(ctx context.Context, patientID uuid.UUID) (*entity.FingerprintEnrollment, error) {
	enrollment, err := u.fingerprintRepo.FindEnrollment(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find fingerprint enrollment: %+v", err)
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}
	return enrollment, nil
}

// CompleteEnrollment records the scanner's result, stores the slot on the
// patient when the finger was registered, and switches the scanner back to
// auth mode.
func (u *fingerprintUsecase) CompleteEnrollment(ctx context.Context, req *dto.DeviceEnrollmentResultRequest) (*dto.EnrollmentResponse, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrEnrollmentNotFound
	}

	enrollment, err := u.fingerprintRepo.FindEnrollment(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find fingerprint enrollment: %+v", err)
		return nil, err
	}
	if enrollment == nil || !enrollment.Pending() {
		return nil, ErrNoPendingEnrollment
	}
	if enrollment.Slot != req.Slot {
		return nil, ErrSlotMismatch
	}

	enrollment.Status = entity.EnrollmentStatusFailed
	if *req.Success {
		affectedRows, err := u.patientRepo.UpdateFingerprintSlot(ctx, patientID, enrollment.Slot)
		if err != nil {
			u.log.Warnf("Failed to store fingerprint slot: %+v", err)
			return nil, err
		}
		if affectedRows == 0 {
			return nil, ErrPatientNotFound
		}
		enrollment.Status = entity.EnrollmentStatusEnrolled
	}

	completedAt := u.now().UTC()
	enrollment.CompletedAt = &completedAt
	if err := u.fingerprintRepo.SaveEnrollment(ctx, enrollment); err != nil {
		u.log.Warnf("Failed to save fingerprint enrollment: %+v", err)
		return nil, err
	}

	if err := u.fingerprintRepo.SetDeviceMode(ctx, &entity.DeviceMode{Mode: entity.DeviceModeAuth}); err != nil {
		u.log.Warnf("Failed to reset device mode: %+v", err)
		return nil, err
	}

	// Waiters re-read the stored state when their wait ends.
	if err := u.fingerprintRepo.PublishEnrollment(ctx, enrollment); err != nil {
		u.log.Warnf("Failed to publish enrollment event: %+v", err)
	}

	return converter.EnrollmentToResponse(enrollment), nil
}

func (u *fingerprintUsecase) GetDeviceMode(ctx context.Context) (*dto.DeviceModeResponse, error) {
	mode, err := u.fingerprintRepo.GetDeviceMode(ctx)
	if err != nil {
		u.log.Warnf("Failed to get device mode: %+v", err)
		return nil, err
	}

	return converter.DeviceModeToResponse(mode), nil
}
