package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"clinic-admin-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeAuditRepo struct {
	logs []entity.AuditLog
	err  error
}

func (f *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	log.ID = int64(len(f.logs) + 1)
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeAuditRepo) FindAll(ctx context.Context) ([]entity.AuditLog, error) {
	return f.logs, nil
}

func (f *fakeAuditRepo) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	return nil, nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAuditServiceLogUpdate(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(newLogger(), repo)
	adminID := uuid.New()

	err := svc.LogUpdate(context.Background(), &adminID, entity.AuditActionPatientUpdate, "patient", "p-1", "old", "new")
	if err != nil {
		t.Fatalf("log update: %v", err)
	}

	if len(repo.logs) != 1 {
		t.Fatalf("expected one log, got %d", len(repo.logs))
	}
	got := repo.logs[0]
	if got.Action != entity.AuditActionPatientUpdate || *got.AdminID != adminID {
		t.Errorf("unexpected log: %+v", got)
	}
	if got.Metadata["old_value"] != "old" || got.Metadata["new_value"] != "new" || got.Metadata["entity_id"] != "p-1" {
		t.Errorf("unexpected metadata: %+v", got.Metadata)
	}
}

func TestAuditServiceReturnsStoreErrorWithoutLogging(t *testing.T) {
	storeErr := errors.New("db down")
	repo := &fakeAuditRepo{err: storeErr}
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	svc := NewAuditService(log, repo)

	err := svc.LogDelete(context.Background(), nil, entity.AuditActionMedicationDelete, "medication", "m-1", nil)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if n := len(hook.AllEntries()); n != 0 {
		t.Errorf("failed entries are logged by the caller, got %d log lines here", n)
	}
}
