package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/delivery/http/middleware"
	"clinic-admin-api/internal/domain/entity"
	"clinic-admin-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"
)

func newPatientRequest(name, email string) *dto.CreatePatientRequest {
	return &dto.CreatePatientRequest{
		Name:       name,
		Age:        ptr(34),
		Gender:     "male",
		BloodGroup: "O+",
		Email:      email,
		Number:     "0812345678",
		Password:   "secret123",
	}
}

func TestPatientCreateListRoundTrip(t *testing.T) {
	repo := newFakePatientRepo()
	audit := &fakeAuditService{}
	uc := NewPatientUsecase(newTestLogger(), repo, audit)

	adminID := uuid.New()
	ctx := middleware.WithClaims(context.Background(), &jwt.Claims{AdminID: adminID, Username: "admin", TokenID: "t1"})

	created, err := uc.Create(ctx, newPatientRequest("John Doe", "john@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stored := repo.patients[created.ID]
	if stored.Password == "secret123" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")); err != nil {
		t.Errorf("hash mismatch: %v", err)
	}

	list, err := uc.GetAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || !reflect.DeepEqual(list[0], *created) {
		t.Errorf("list: got %+v want %+v", list, *created)
	}

	if len(audit.admins) != 1 || audit.admins[0] == nil || *audit.admins[0] != adminID {
		t.Errorf("audit admin: got %v", audit.admins)
	}
}

func TestPatientCreateDuplicateEmail(t *testing.T) {
	uc := NewPatientUsecase(newTestLogger(), newFakePatientRepo(), &fakeAuditService{})
	ctx := context.Background()

	if _, err := uc.Create(ctx, newPatientRequest("John", "john@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := uc.Create(ctx, newPatientRequest("Johnny", "john@example.com"))
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("got %v want %v", err, ErrEmailAlreadyExists)
	}
}

func TestPatientSearchAndOrdering(t *testing.T) {
	uc := NewPatientUsecase(newTestLogger(), newFakePatientRepo(), &fakeAuditService{})
	ctx := context.Background()

	for _, p := range []struct{ name, email string }{
		{"John", "john@example.com"},
		{"Mary", "mary@example.com"},
		{"Jonah", "jonah@example.com"},
	} {
		if _, err := uc.Create(ctx, newPatientRequest(p.name, p.email)); err != nil {
			t.Fatalf("create %s: %v", p.name, err)
		}
	}

	found, err := uc.Search(ctx, "jo")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 || found[0].Name != "Jonah" || found[1].Name != "John" {
		t.Errorf("search jo: got %+v", found)
	}

	none, err := uc.Search(ctx, "zzz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestPatientPartialUpdateIsIdempotent(t *testing.T) {
	repo := newFakePatientRepo()
	uc := NewPatientUsecase(newTestLogger(), repo, &fakeAuditService{})
	ctx := context.Background()

	created, _ := uc.Create(ctx, newPatientRequest("John", "john@example.com"))
	req := &dto.UpdatePatientRequest{Age: ptr(35), BloodGroup: ptr("AB-")}

	first, err := uc.Update(ctx, created.ID, req)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := uc.Update(ctx, created.ID, req)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("updates differ: %+v vs %+v", first, second)
	}
	if first.Age != 35 || first.BloodGroup != "AB-" || first.Name != "John" || first.Email != "john@example.com" {
		t.Errorf("unexpected patient after update: %+v", first)
	}
}

func TestPatientUpdatePasswordIsRehashed(t *testing.T) {
	repo := newFakePatientRepo()
	uc := NewPatientUsecase(newTestLogger(), repo, &fakeAuditService{})
	ctx := context.Background()

	created, _ := uc.Create(ctx, newPatientRequest("John", "john@example.com"))
	if _, err := uc.Update(ctx, created.ID, &dto.UpdatePatientRequest{Password: ptr("new-secret")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(repo.patients[created.ID].Password), []byte("new-secret")); err != nil {
		t.Errorf("new password does not match stored hash: %v", err)
	}
}

func TestPatientNotFound(t *testing.T) {
	uc := NewPatientUsecase(newTestLogger(), newFakePatientRepo(), &fakeAuditService{})
	ctx := context.Background()
	missing := uuid.New()

	if _, err := uc.GetByID(ctx, missing); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("get: got %v", err)
	}
	if _, err := uc.Update(ctx, missing, &dto.UpdatePatientRequest{Name: ptr("x")}); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("update: got %v", err)
	}
	if err := uc.Delete(ctx, missing); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("delete: got %v", err)
	}
}

func TestPatientDeleteTwice(t *testing.T) {
	audit := &fakeAuditService{}
	uc := NewPatientUsecase(newTestLogger(), newFakePatientRepo(), audit)
	ctx := context.Background()

	created, _ := uc.Create(ctx, newPatientRequest("John", "john@example.com"))
	if err := uc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := uc.Delete(ctx, created.ID); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("second delete: got %v", err)
	}

	want := []string{entity.AuditActionPatientCreate, entity.AuditActionPatientDelete}
	if !reflect.DeepEqual(audit.Actions(), want) {
		t.Errorf("audit actions: got %v want %v", audit.Actions(), want)
	}
}

func TestPatientAuditFailureDoesNotFailRequest(t *testing.T) {
	audit := &fakeAuditService{err: errors.New("audit store down")}
	log, hook := test.NewNullLogger()
	uc := NewPatientUsecase(log, newFakePatientRepo(), audit)

	if _, err := uc.Create(context.Background(), newPatientRequest("John", "john@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if n := len(hook.AllEntries()); n != 1 {
		t.Errorf("expected the audit failure logged once, got %d entries", n)
	}
}

// vanishingPatientRepo deletes a patient right after handing it out, as a
// concurrent delete would.
type vanishingPatientRepo struct {
	*fakePatientRepo
}

func (r vanishingPatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, err := r.fakePatientRepo.FindByID(ctx, id)
	if patient != nil {
		delete(r.patients, id)
	}
	return patient, err
}

func TestPatientUpdateAfterConcurrentDelete(t *testing.T) {
	repo := newFakePatientRepo()
	audit := &fakeAuditService{}
	ctx := context.Background()

	created, err := NewPatientUsecase(newTestLogger(), repo, audit).Create(ctx, newPatientRequest("John", "john@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := NewPatientUsecase(newTestLogger(), vanishingPatientRepo{repo}, audit)
	if _, err := uc.Update(ctx, created.ID, &dto.UpdatePatientRequest{Name: ptr("Johnny")}); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("update: got %v, want ErrPatientNotFound", err)
	}
	if _, ok := repo.patients[created.ID]; ok {
		t.Error("deleted patient was written back by the update")
	}
	if got := audit.Actions(); !reflect.DeepEqual(got, []string{entity.AuditActionPatientCreate}) {
		t.Errorf("audit actions: got %v", got)
	}
}
