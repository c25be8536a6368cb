package entity

import (
	"time"

	"github.com/google/uuid"
)

// Admin is the single privileged identity allowed to call protected endpoints.
type Admin struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex:idx_admins_username;not null" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Admin) TableName() string {
	return "admins"
}
