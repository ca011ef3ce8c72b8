package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                string         `gorm:"type:varchar(150);not null;default:''"`
	Email               string         `gorm:"type:varchar(255);index"`
	MasterWalletAddress *string        `gorm:"type:varchar(42)"`
	WalletID            *string        `gorm:"type:varchar(36)"`
	WalletSetID         *string        `gorm:"type:varchar(36)"`
	PayrollDate         *time.Time     `gorm:"type:date"`
	PayrollTime         *string        `gorm:"type:varchar(5)"`
	CreatedAt           time.Time      `gorm:"not null;default:now()"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()"`
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}

// Schedulable reports whether the company has everything a scheduled payroll needs.
func (c Company) Schedulable() bool {
	return c.PayrollDate != nil && c.PayrollTime != nil && c.WalletID != nil && *c.WalletID != ""
}
