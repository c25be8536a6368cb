package converter

import (
	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/domain/entity"
)

func AdminToResponse(admin *entity.Admin) *dto.AdminResponse {
	if admin == nil {
		return nil
	}

	return &dto.AdminResponse{
		ID:        admin.ID,
		Username:  admin.Username,
		CreatedAt: admin.CreatedAt,
	}
}
