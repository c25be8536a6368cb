package repository

import (
	"context"

	"clinic-admin-api/internal/domain/entity"

	"github.com/google/uuid"
)

// EnrollmentSubscription delivers enrollment updates for one patient until
// Close is called.
type EnrollmentSubscription interface {
	Updates() <-chan *entity.FingerprintEnrollment
	Close() error
}

type FingerprintRepository interface {
	NextSlot(ctx context.Context) (int, error)
	SaveEnrollment(ctx context.Context, enrollment *entity.FingerprintEnrollment) error
	FindEnrollment(ctx context.Context, patientID uuid.UUID) (*entity.FingerprintEnrollment, error)
	SetDeviceMode(ctx context.Context, mode *entity.DeviceMode) error
	GetDeviceMode(ctx context.Context) (*entity.DeviceMode, error)
	PublishEnrollment(ctx context.Context, enrollment *entity.FingerprintEnrollment) error
	SubscribeEnrollment(ctx context.Context, patientID uuid.UUID) (EnrollmentSubscription, error)
}
