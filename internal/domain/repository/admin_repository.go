package repository

import (
	"context"

	"clinic-admin-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindByUsername(ctx context.Context, username string) (*entity.Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
}
