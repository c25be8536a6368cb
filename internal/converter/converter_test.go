package converter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"clinic-admin-api/internal/domain/entity"

	"github.com/google/uuid"
)

func TestPatientToResponseOmitsPassword(t *testing.T) {
	patient := &entity.Patient{
		ID:         uuid.New(),
		Name:       "John",
		Age:        40,
		Gender:     "male",
		BloodGroup: "O+",
		Email:      "john@example.com",
		Password:   "$2a$10$hash",
		CreatedAt:  time.Now(),
	}

	body, err := json.Marshal(PatientToResponse(patient))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(body), "password") || strings.Contains(string(body), "$2a$") {
		t.Errorf("password leaked into response: %s", body)
	}
	if !strings.Contains(string(body), `"bloodGroup":"O+"`) {
		t.Errorf("expected camelCase bloodGroup in %s", body)
	}
}

func TestAppointmentToResponseFormatsDate(t *testing.T) {
	appointment := &entity.Appointment{
		ID:              uuid.New(),
		PatientName:     "John",
		Date:            time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		Time:            "09:30",
		AppointmentType: entity.AppointmentTypeRemote,
	}

	got := AppointmentToResponse(appointment)
	if got.Date != "2026-03-07" {
		t.Errorf("date: got %s", got.Date)
	}
	if got.AppointmentType != "remote" {
		t.Errorf("type: got %s", got.AppointmentType)
	}
}

func TestSliceConvertersReturnEmptySlices(t *testing.T) {
	if got := PatientsToResponses(nil); got == nil || len(got) != 0 {
		t.Errorf("patients: got %#v", got)
	}
	if got := AppointmentsToResponses(nil); got == nil || len(got) != 0 {
		t.Errorf("appointments: got %#v", got)
	}
	if got := MedicationsToResponses(nil); got == nil || len(got) != 0 {
		t.Errorf("medications: got %#v", got)
	}
}
