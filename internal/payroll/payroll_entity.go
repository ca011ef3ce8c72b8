package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending = "pending"
	StatusFailed  = "failed"
)

const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// Transaction is one attempted payout to one worker. Status holds either
// StatusFailed or the state reported by the wallet provider.
type Transaction struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_payroll_tx_company_period,priority:1"`
	WorkerID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount             decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	PeriodStart        time.Time       `gorm:"type:date;not null;index:idx_payroll_tx_company_period,priority:2"`
	PeriodEnd          time.Time       `gorm:"type:date;not null;index:idx_payroll_tx_company_period,priority:3"`
	Status             string          `gorm:"type:varchar(20);not null"`
	Trigger            string          `gorm:"type:varchar(20);not null"`
	ExternalTransferID *string         `gorm:"type:varchar(64)"`
	TransactionHash    *string         `gorm:"type:varchar(100)"`
	ErrorMessage       *string         `gorm:"type:text"`
	CreatedAt          time.Time       `gorm:"not null"`
}

func (Transaction) TableName() string {
	return "payroll_transactions"
}
