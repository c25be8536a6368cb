package dto

import (
	"time"

	"clinic-admin-api/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64          `json:"id"`
	Admin     *AdminResponse `json:"admin,omitempty"`
	Action    string         `json:"action"`
	Metadata  entity.JSON    `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
