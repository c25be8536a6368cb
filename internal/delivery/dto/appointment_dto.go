package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       string `json:"patientId" validate:"required,uuid"`
	Date            string `json:"date" validate:"required"` // Format: YYYY-MM-DD or RFC 3339
	Time            string `json:"time" validate:"required"` // Format: HH:MM
	AppointmentType string `json:"appointmentType" validate:"required"`
	RemoteLink      string `json:"remoteLink" validate:"omitempty,url"`
}

type UpdateAppointmentRequest struct {
	PatientID       *string `json:"patientId" validate:"omitempty,uuid"`
	Date            *string `json:"date" validate:"omitempty"`
	Time            *string `json:"time" validate:"omitempty"`
	AppointmentType *string `json:"appointmentType" validate:"omitempty"`
	RemoteLink      *string `json:"remoteLink" validate:"omitempty,url"`
}

// UpdateAppointmentLinkRequest sets or, with an empty string, clears the link.
type UpdateAppointmentLinkRequest struct {
	RemoteLink string `json:"remoteLink" validate:"omitempty,url"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	PatientID       *uuid.UUID `json:"patientId"`
	PatientName     string     `json:"patientName"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	AppointmentType string     `json:"appointmentType"`
	RemoteLink      string     `json:"remoteLink,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}
