package usecase

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"clinic-admin-api/config"
	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/infrastructure/database"
	"clinic-admin-api/internal/repository"
	"clinic-admin-api/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if i := strings.Index(dsn, "://"); i >= 0 {
		if err := database.RunMigrations("pgx5" + dsn[i:]); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestPatientUsecaseAgainstPostgres(t *testing.T) {
	uc := NewPatientUsecase(newTestLogger(), repository.NewPatientRepository(newTestDB(t)), &fakeAuditService{})
	ctx := context.Background()
	suffix := uuid.NewString()[:8]
	email := "john-" + suffix + "@example.com"

	created, err := uc.Create(ctx, newPatientRequest("John "+suffix, email))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.Create(ctx, newPatientRequest("Jane "+suffix, email)); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("duplicate create: got %v", err)
	}

	other, err := uc.Create(ctx, newPatientRequest("Jane "+suffix, "jane-"+suffix+"@example.com"))
	if err != nil {
		t.Fatalf("create other: %v", err)
	}
	if _, err := uc.Update(ctx, other.ID, &dto.UpdatePatientRequest{Email: ptr(email)}); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("duplicate update: got %v", err)
	}

	found, err := uc.Search(ctx, "jo")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	matched := false
	for _, p := range found {
		if p.ID == created.ID {
			matched = true
		}
		if p.ID == other.ID {
			t.Errorf("search jo matched %s", p.Name)
		}
	}
	if !matched {
		t.Error(`search "jo" did not match John`)
	}

	if err := uc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.Delete(ctx, created.ID); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("second delete: got %v", err)
	}
	if _, err := uc.Update(ctx, created.ID, &dto.UpdatePatientRequest{Name: ptr("Johnny")}); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("update after delete: got %v", err)
	}
}

func TestEnsureDefaultAdminAgainstPostgres(t *testing.T) {
	db := newTestDB(t)
	uc := NewAuthUsecase(newTestLogger(), repository.NewAdminRepository(db), &fakeTokenRepo{revoked: map[string]time.Duration{}}, jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour}), &fakeAuditService{})
	ctx := context.Background()
	username := "admin-" + uuid.NewString()[:8]

	created, err := uc.EnsureDefaultAdmin(ctx, username, "secret123")
	if err != nil || !created {
		t.Fatalf("first run: created %v, err %v", created, err)
	}
	created, err = uc.EnsureDefaultAdmin(ctx, username, "secret123")
	if err != nil || created {
		t.Errorf("second run: created %v, err %v", created, err)
	}
}
