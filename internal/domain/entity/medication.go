package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Medication struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string          `gorm:"type:varchar(255);not null;index"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null;default:0"`
	ImageURL  string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"autoCreateTime;index"`
}

func (Medication) TableName() string {
	return "medications"
}
