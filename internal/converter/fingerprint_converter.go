package converter

import (
	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/domain/entity"
)

func EnrollmentToResponse(enrollment *entity.FingerprintEnrollment) *dto.EnrollmentResponse {
	if enrollment == nil {
		return nil
	}

	return &dto.EnrollmentResponse{
		PatientID:   enrollment.PatientID,
		Slot:        enrollment.Slot,
		Status:      string(enrollment.Status),
		RequestedAt: enrollment.RequestedAt,
		CompletedAt: enrollment.CompletedAt,
	}
}

func DeviceModeToResponse(mode *entity.DeviceMode) *dto.DeviceModeResponse {
	if mode == nil {
		return nil
	}

	return &dto.DeviceModeResponse{
		Mode:      string(mode.Mode),
		PatientID: mode.PatientID,
		Slot:      mode.Slot,
	}
}
