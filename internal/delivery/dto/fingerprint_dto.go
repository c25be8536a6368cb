package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// DeviceEnrollmentResultRequest is posted by the scanner once it has tried to
// register the finger it was asked for.
type DeviceEnrollmentResultRequest struct {
	PatientID string `json:"patientId" validate:"required,uuid"`
	Slot      int    `json:"slot" validate:"required,gte=1"`
	Success   *bool  `json:"success" validate:"required"`
}

// Response DTOs

type EnrollmentResponse struct {
	PatientID   uuid.UUID  `json:"patientId"`
	Slot        int        `json:"slot"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type DeviceModeResponse struct {
	Mode      string     `json:"mode"`
	PatientID *uuid.UUID `json:"patientId,omitempty"`
	Slot      int        `json:"slot,omitempty"`
}
