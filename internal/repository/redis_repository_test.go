package repository

import (
	"context"
	"testing"
	"time"

	"clinic-admin-api/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestTokenRepositoryRevoke(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewTokenRepository(client)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "token-1")
	if err != nil {
		t.Fatalf("is revoked: %v", err)
	}
	if revoked {
		t.Fatal("fresh token reported as revoked")
	}

	if err := repo.Revoke(ctx, "token-1", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, _ = repo.IsRevoked(ctx, "token-1")
	if !revoked {
		t.Fatal("expected token to be revoked")
	}

	mr.FastForward(2 * time.Minute)
	revoked, _ = repo.IsRevoked(ctx, "token-1")
	if revoked {
		t.Fatal("revocation should expire with the token")
	}
}

func TestTokenRepositoryRevokeExpiredIsNoop(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewTokenRepository(client)

	if err := repo.Revoke(context.Background(), "token-2", 0); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if mr.Exists(revokedTokenKeyPrefix + "token-2") {
		t.Fatal("no key should be written for an already expired token")
	}
}

func TestFingerprintRepositorySlotsAndEnrollment(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewFingerprintRepository(client)
	ctx := context.Background()

	first, err := repo.NextSlot(ctx)
	if err != nil {
		t.Fatalf("next slot: %v", err)
	}
	second, _ := repo.NextSlot(ctx)
	if first != 1 || second != 2 {
		t.Errorf("slots: got %d, %d", first, second)
	}

	patientID := uuid.New()
	missing, err := repo.FindEnrollment(ctx, patientID)
	if err != nil || missing != nil {
		t.Fatalf("expected no enrollment, got %v, %v", missing, err)
	}

	enrollment := &entity.FingerprintEnrollment{
		PatientID:   patientID,
		Slot:        first,
		Status:      entity.EnrollmentStatusPending,
		RequestedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.SaveEnrollment(ctx, enrollment); err != nil {
		t.Fatalf("save: %v", err)
	}

	found, err := repo.FindEnrollment(ctx, patientID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Slot != first || found.Status != entity.EnrollmentStatusPending {
		t.Errorf("unexpected enrollment: %+v", found)
	}
}

func TestFingerprintRepositoryDeviceMode(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewFingerprintRepository(client)
	ctx := context.Background()

	mode, err := repo.GetDeviceMode(ctx)
	if err != nil {
		t.Fatalf("get mode: %v", err)
	}
	if mode.Mode != entity.DeviceModeAuth {
		t.Errorf("default mode: got %s", mode.Mode)
	}

	patientID := uuid.New()
	if err := repo.SetDeviceMode(ctx, &entity.DeviceMode{Mode: entity.DeviceModeSignup, PatientID: &patientID, Slot: 4}); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	mode, _ = repo.GetDeviceMode(ctx)
	if mode.Mode != entity.DeviceModeSignup || mode.Slot != 4 || mode.PatientID == nil || *mode.PatientID != patientID {
		t.Errorf("unexpected mode: %+v", mode)
	}
}

func TestFingerprintRepositoryPublishSubscribe(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewFingerprintRepository(client)
	ctx := context.Background()
	patientID := uuid.New()

	sub, err := repo.SubscribeEnrollment(ctx, patientID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	published := &entity.FingerprintEnrollment{PatientID: patientID, Slot: 3, Status: entity.EnrollmentStatusEnrolled}
	if err := repo.PublishEnrollment(ctx, published); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-sub.Updates():
		if got.Status != entity.EnrollmentStatusEnrolled || got.Slot != 3 {
			t.Errorf("unexpected update: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for enrollment event")
	}

	if err := sub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
