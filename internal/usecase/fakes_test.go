package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-admin-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// clock hands out strictly increasing creation times so newest-first ordering
// is deterministic.
type clock struct {
	mu   sync.Mutex
	next time.Time
}

func (c *clock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.next.IsZero() {
		c.next = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	}
	c.next = c.next.Add(time.Second)
	return c.next
}

type fakeAdminRepo struct {
	admins    map[string]*entity.Admin
	createErr error
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*entity.Admin{}}
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *entity.Admin) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.admins[admin.Username]; ok {
		return uniqueViolation("idx_admins_username")
	}
	admin.ID = uuid.New()
	admin.CreatedAt = time.Now()
	stored := *admin
	f.admins[admin.Username] = &stored
	return nil
}

func (f *fakeAdminRepo) FindByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	admin, ok := f.admins[username]
	if !ok {
		return nil, nil
	}
	found := *admin
	return &found, nil
}

func (f *fakeAdminRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	for _, admin := range f.admins {
		if admin.ID == id {
			found := *admin
			return &found, nil
		}
	}
	return nil, nil
}

type fakeTokenRepo struct {
	revoked map[string]time.Duration
}

func (f *fakeTokenRepo) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	f.revoked[tokenID] = ttl
	return nil
}

func (f *fakeTokenRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := f.revoked[tokenID]
	return ok, nil
}

type fakePatientRepo struct {
	clock    clock
	patients map[uuid.UUID]entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: map[uuid.UUID]entity.Patient{}}
}

func (f *fakePatientRepo) emailTaken(email string, except uuid.UUID) bool {
	for id, p := range f.patients {
		if id != except && p.Email == email {
			return true
		}
	}
	return false
}

func (f *fakePatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	if f.emailTaken(patient.Email, uuid.Nil) {
		return uniqueViolation("idx_patients_email")
	}
	patient.ID = uuid.New()
	patient.CreatedAt = f.clock.tick()
	f.patients[patient.ID] = *patient
	return nil
}

func (f *fakePatientRepo) sorted(keep func(entity.Patient) bool) []entity.Patient {
	var out []entity.Patient
	for _, p := range f.patients {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakePatientRepo) FindAll(ctx context.Context) ([]entity.Patient, error) {
	return f.sorted(func(entity.Patient) bool { return true }), nil
}

func (f *fakePatientRepo) SearchByName(ctx context.Context, name string) ([]entity.Patient, error) {
	term := strings.ToLower(name)
	return f.sorted(func(p entity.Patient) bool { return strings.Contains(strings.ToLower(p.Name), term) }), nil
}

func (f *fakePatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	p, ok := f.patients[id]
	if !ok {
		return 0, nil
	}
	for column, value := range fields {
		switch column {
		case "name":
			p.Name = value.(string)
		case "age":
			p.Age = value.(int)
		case "gender":
			p.Gender = value.(string)
		case "blood_group":
			p.BloodGroup = value.(string)
		case "email":
			p.Email = value.(string)
			if f.emailTaken(p.Email, id) {
				return 0, uniqueViolation("idx_patients_email")
			}
		case "number":
			p.Number = value.(string)
		case "password":
			p.Password = value.(string)
		default:
			panic("unexpected patient column " + column)
		}
	}
	f.patients[id] = p
	return 1, nil
}

func (f *fakePatientRepo) UpdateFingerprintSlot(ctx context.Context, id uuid.UUID, slot int) (int64, error) {
	p, ok := f.patients[id]
	if !ok {
		return 0, nil
	}
	p.FingerprintSlot = &slot
	f.patients[id] = p
	return 1, nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.patients[id]; !ok {
		return 0, nil
	}
	delete(f.patients, id)
	return 1, nil
}

type fakeAppointmentRepo struct {
	clock        clock
	appointments map[uuid.UUID]entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[uuid.UUID]entity.Appointment{}}
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	appointment.ID = uuid.New()
	appointment.CreatedAt = f.clock.tick()
	f.appointments[appointment.ID] = *appointment
	return nil
}

func (f *fakeAppointmentRepo) sorted(keep func(entity.Appointment) bool) []entity.Appointment {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeAppointmentRepo) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	return f.sorted(func(entity.Appointment) bool { return true }), nil
}

func (f *fakeAppointmentRepo) SearchByPatientName(ctx context.Context, patientName string) ([]entity.Appointment, error) {
	term := strings.ToLower(patientName)
	return f.sorted(func(a entity.Appointment) bool { return strings.Contains(strings.ToLower(a.PatientName), term) }), nil
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	a, ok := f.appointments[id]
	if !ok {
		return 0, nil
	}
	for column, value := range fields {
		switch column {
		case "date":
			a.Date = value.(time.Time)
		case "time":
			a.Time = value.(string)
		case "appointment_type":
			a.AppointmentType = value.(entity.AppointmentType)
		case "remote_link":
			a.RemoteLink = value.(string)
		case "patient_id":
			patientID := value.(uuid.UUID)
			a.PatientID = &patientID
		case "patient_name":
			a.PatientName = value.(string)
		default:
			panic("unexpected appointment column " + column)
		}
	}
	f.appointments[id] = a
	return 1, nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.appointments[id]; !ok {
		return 0, nil
	}
	delete(f.appointments, id)
	return 1, nil
}

type fakeMedicationRepo struct {
	clock       clock
	medications map[uuid.UUID]entity.Medication
}

func newFakeMedicationRepo() *fakeMedicationRepo {
	return &fakeMedicationRepo{medications: map[uuid.UUID]entity.Medication{}}
}

func (f *fakeMedicationRepo) Create(ctx context.Context, medication *entity.Medication) error {
	medication.ID = uuid.New()
	medication.CreatedAt = f.clock.tick()
	f.medications[medication.ID] = *medication
	return nil
}

func (f *fakeMedicationRepo) sorted(keep func(entity.Medication) bool) []entity.Medication {
	var out []entity.Medication
	for _, m := range f.medications {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeMedicationRepo) FindAll(ctx context.Context) ([]entity.Medication, error) {
	return f.sorted(func(entity.Medication) bool { return true }), nil
}

func (f *fakeMedicationRepo) SearchByName(ctx context.Context, name string) ([]entity.Medication, error) {
	term := strings.ToLower(name)
	return f.sorted(func(m entity.Medication) bool { return strings.Contains(strings.ToLower(m.Name), term) }), nil
}

func (f *fakeMedicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	m, ok := f.medications[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (f *fakeMedicationRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	m, ok := f.medications[id]
	if !ok {
		return 0, nil
	}
	for column, value := range fields {
		switch column {
		case "name":
			m.Name = value.(string)
		case "price":
			m.Price = value.(decimal.Decimal)
		case "quantity":
			m.Quantity = value.(int)
		case "image_url":
			m.ImageURL = value.(string)
		default:
			panic("unexpected medication column " + column)
		}
	}
	f.medications[id] = m
	return 1, nil
}

func (f *fakeMedicationRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.medications[id]; !ok {
		return 0, nil
	}
	delete(f.medications, id)
	return 1, nil
}

type fakeAuditService struct {
	mu      sync.Mutex
	actions []string
	admins  []*uuid.UUID
	err     error
}

func (f *fakeAuditService) record(adminID *uuid.UUID, action string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
	f.admins = append(f.admins, adminID)
	return f.err
}

func (f *fakeAuditService) LogAction(ctx context.Context, adminID *uuid.UUID, action string, metadata entity.JSON) error {
	return f.record(adminID, action)
}

func (f *fakeAuditService) LogCreate(ctx context.Context, adminID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return f.record(adminID, action)
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, adminID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return f.record(adminID, action)
}

func (f *fakeAuditService) LogDelete(ctx context.Context, adminID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return f.record(adminID, action)
}

func (f *fakeAuditService) Actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.actions...)
}

func ptr[T any](v T) *T {
	return &v
}
