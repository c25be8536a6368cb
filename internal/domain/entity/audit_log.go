package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog records one admin action against a resource.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	AdminID   *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"type:varchar(100);not null;index"`
	Metadata  JSON       `gorm:"type:jsonb"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`

	// Relationships
	Admin *Admin `gorm:"foreignKey:AdminID"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON is a jsonb column decoded into a map.
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

const (
	AuditActionAdminLogin        = "admin.login"
	AuditActionAdminLogout       = "admin.logout"
	AuditActionPatientCreate     = "patient.create"
	AuditActionPatientUpdate     = "patient.update"
	AuditActionPatientDelete     = "patient.delete"
	AuditActionAppointmentCreate = "appointment.create"
	AuditActionAppointmentUpdate = "appointment.update"
	AuditActionAppointmentLink   = "appointment.link"
	AuditActionAppointmentDelete = "appointment.delete"
	AuditActionMedicationCreate  = "medication.create"
	AuditActionMedicationUpdate  = "medication.update"
	AuditActionMedicationDelete  = "medication.delete"
	AuditActionFingerprintStart  = "fingerprint.start"
)
