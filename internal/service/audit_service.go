package service

import (
	"context"
	"fmt"

	"clinic-admin-api/internal/domain/entity"
	"clinic-admin-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService records admin actions. Entries are written after the change
// they describe has been stored. A failed entry is returned to the caller,
// which logs it; it never rolls the change back.
type AuditService interface {
	LogAction(ctx context.Context, adminID *uuid.UUID, action string, metadata entity.JSON) error
	LogCreate(ctx context.Context, adminID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, adminID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, adminID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogAction(ctx context.Context, adminID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		AdminID:  adminID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	s.log.Debugf("Audit log %d recorded: %s", auditLog.ID, action)
	return nil
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, adminID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.LogAction(ctx, adminID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, adminID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.LogAction(ctx, adminID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, adminID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.LogAction(ctx, adminID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	})
}
