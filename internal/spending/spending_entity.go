package spending

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdditionalSpending is a non-payroll expense. A nil DepartmentID marks a
// company-level ("CEO") spending.
type AdditionalSpending struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	DepartmentID  *uuid.UUID      `gorm:"type:uuid;index"`
	Name          string          `gorm:"size:150;not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	WalletAddress string          `gorm:"type:varchar(42);not null"`
	CreatedAt     time.Time       `gorm:"not null;default:now()"`
}

func (AdditionalSpending) TableName() string {
	return "additional_spendings"
}
