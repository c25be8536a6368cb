package entity

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentStatusPending  EnrollmentStatus = "pending"
	EnrollmentStatusEnrolled EnrollmentStatus = "enrolled"
	EnrollmentStatusFailed   EnrollmentStatus = "failed"
)

// FingerprintEnrollment tracks one request to register a patient's finger on
// the scanner. It lives in redis, not in postgres.
type FingerprintEnrollment struct {
	PatientID   uuid.UUID        `json:"patient_id"`
	Slot        int              `json:"slot"`
	Status      EnrollmentStatus `json:"status"`
	RequestedAt time.Time        `json:"requested_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

func (e *FingerprintEnrollment) Pending() bool {
	return e.Status == EnrollmentStatusPending
}

type DeviceModeName string

const (
	DeviceModeAuth   DeviceModeName = "auth"
	DeviceModeSignup DeviceModeName = "signup"
)

// DeviceMode is the instruction the scanner reads: authenticate fingers, or
// enroll the next finger into Slot for PatientID.
type DeviceMode struct {
	Mode      DeviceModeName `json:"mode"`
	PatientID *uuid.UUID     `json:"patient_id,omitempty"`
	Slot      int            `json:"slot,omitempty"`
}
