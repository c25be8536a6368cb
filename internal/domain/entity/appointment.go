package entity

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentType string

const (
	AppointmentTypePhysical AppointmentType = "physical"
	AppointmentTypeRemote   AppointmentType = "remote"
)

func (t AppointmentType) Valid() bool {
	return t == AppointmentTypePhysical || t == AppointmentTypeRemote
}

// Appointment references its patient by id. PatientName is copied from the
// patient when the appointment is created or re-assigned and stays in place
// after the patient is deleted (PatientID becomes NULL).
type Appointment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID       *uuid.UUID      `gorm:"type:uuid;index"`
	PatientName     string          `gorm:"type:varchar(255);not null;index"`
	Date            time.Time       `gorm:"type:date;not null;index"`
	Time            string          `gorm:"type:varchar(5);not null"`
	AppointmentType AppointmentType `gorm:"type:varchar(10);not null"`
	RemoteLink      string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:SET NULL"`
}

func (Appointment) TableName() string {
	return "appointments"
}
