package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"clinic-admin-api/internal/domain/entity"
	domainRepo "clinic-admin-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	fingerprintSlotKey          = "fingerprint:slot:seq"
	fingerprintDeviceKey        = "fingerprint:device"
	fingerprintEnrollmentPrefix = "fingerprint:enrollment:"
	fingerprintEventsPrefix     = "fingerprint:events:"

	// Enrollments nobody completes disappear after a day.
	enrollmentTTL = 24 * time.Hour
)

type fingerprintRepository struct {
	redisClient *redis.Client
}

func NewFingerprintRepository(redisClient *redis.Client) domainRepo.FingerprintRepository {
	return &fingerprintRepository{redisClient: redisClient}
}

func (r *fingerprintRepository) NextSlot(ctx context.Context) (int, error) {
	slot, err := r.redisClient.Incr(ctx, fingerprintSlotKey).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate fingerprint slot: %w", err)
	}
	return int(slot), nil
}

func (r *fingerprintRepository) SaveEnrollment(ctx context.Context, enrollment *entity.FingerprintEnrollment) error {
	payload, err := json.Marshal(enrollment)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, fingerprintEnrollmentPrefix+enrollment.PatientID.String(), payload, enrollmentTTL).Err()
}

func (r *fingerprintRepository) FindEnrollment(ctx context.Context, patientID uuid.UUID) (*entity.FingerprintEnrollment, error) {
	payload, err := r.redisClient.Get(ctx, fingerprintEnrollmentPrefix+patientID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var enrollment entity.FingerprintEnrollment
	if err := json.Unmarshal(payload, &enrollment); err != nil {
		return nil, fmt.Errorf("decode enrollment: %w", err)
	}
	return &enrollment, nil
}

func (r *fingerprintRepository) SetDeviceMode(ctx context.Context, mode *entity.DeviceMode) error {
	payload, err := json.Marshal(mode)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, fingerprintDeviceKey, payload, 0).Err()
}

// GetDeviceMode defaults to auth mode when nothing was ever written.
func (r *fingerprintRepository) GetDeviceMode(ctx context.Context) (*entity.DeviceMode, error) {
	payload, err := r.redisClient.Get(ctx, fingerprintDeviceKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &entity.DeviceMode{Mode: entity.DeviceModeAuth}, nil
		}
		return nil, err
	}

	var mode entity.DeviceMode
	if err := json.Unmarshal(payload, &mode); err != nil {
		return nil, fmt.Errorf("decode device mode: %w", err)
	}
	return &mode, nil
}

func (r *fingerprintRepository) PublishEnrollment(ctx context.Context, enrollment *entity.FingerprintEnrollment) error {
	payload, err := json.Marshal(enrollment)
	if err != nil {
		return err
	}
	return r.redisClient.Publish(ctx, fingerprintEventsPrefix+enrollment.PatientID.String(), payload).Err()
}

// SubscribeEnrollment returns once redis has confirmed the subscription, so
// any event published afterwards is delivered.
func (r *fingerprintRepository) SubscribeEnrollment(ctx context.Context, patientID uuid.UUID) (domainRepo.EnrollmentSubscription, error) {
	pubsub := r.redisClient.Subscribe(ctx, fingerprintEventsPrefix+patientID.String())
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe enrollment events: %w", err)
	}

	sub := &enrollmentSubscription{
		pubsub:  pubsub,
		updates: make(chan *entity.FingerprintEnrollment, 1),
		done:    make(chan struct{}),
	}
	go sub.forward(pubsub.Channel())

	return sub, nil
}

type enrollmentSubscription struct {
	pubsub    *redis.PubSub
	updates   chan *entity.FingerprintEnrollment
	done      chan struct{}
	closeOnce sync.Once
}

func (s *enrollmentSubscription) forward(messages <-chan *redis.Message) {
	defer close(s.updates)
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var enrollment entity.FingerprintEnrollment
			if err := json.Unmarshal([]byte(msg.Payload), &enrollment); err != nil {
				continue
			}
			select {
			case s.updates <- &enrollment:
			case <-s.done:
				return
			}
		}
	}
}

func (s *enrollmentSubscription) Updates() <-chan *entity.FingerprintEnrollment {
	return s.updates
}

func (s *enrollmentSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}
