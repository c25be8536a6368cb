package entity

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"type:varchar(255);not null;index"`
	Age             int       `gorm:"not null"`
	Gender          string    `gorm:"type:varchar(20);not null"`
	BloodGroup      string    `gorm:"type:varchar(3);not null"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex:idx_patients_email;not null"`
	Number          string    `gorm:"type:varchar(20)"`
	Password        string    `gorm:"type:text;not null"`
	FingerprintSlot *int      `gorm:"uniqueIndex:idx_patients_fingerprint_slot"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
}

func (Patient) TableName() string {
	return "patients"
}
