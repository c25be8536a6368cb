package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Age        *int   `json:"age" validate:"required,gte=0,lte=150"`
	Gender     string `json:"gender" validate:"required,max=20"`
	BloodGroup string `json:"bloodGroup" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Number     string `json:"number" validate:"omitempty,min=7,max=20"`
	Password   string `json:"password" validate:"required,min=6,bcrypt_len"`
}

// UpdatePatientRequest is a partial update: nil fields are left unchanged.
type UpdatePatientRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=255"`
	Age        *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender     *string `json:"gender" validate:"omitempty,min=1,max=20"`
	BloodGroup *string `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Number     *string `json:"number" validate:"omitempty,min=7,max=20"`
	Password   *string `json:"password" validate:"omitempty,min=6,bcrypt_len"`
}

// Response DTOs

type PatientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	BloodGroup      string    `json:"bloodGroup"`
	Email           string    `json:"email"`
	Number          string    `json:"number"`
	FingerprintSlot *int      `json:"fingerprintSlot,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
