package revenue

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Revenue struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_revenue_period"`
	Month     int             `gorm:"not null;uniqueIndex:uq_revenue_period"`
	Year      int             `gorm:"not null;uniqueIndex:uq_revenue_period"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (Revenue) TableName() string {
	return "revenues"
}
