package worker

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Worker struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DepartmentID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"size:100;not null"`
	Surname       string          `gorm:"size:100;not null;default:''"`
	Salary        decimal.Decimal `gorm:"type:numeric(18,6);not null;default:0"`
	WalletAddress string          `gorm:"type:varchar(42);not null"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (Worker) TableName() string {
	return "workers"
}

func (w Worker) FullName() string {
	if w.Surname == "" {
		return w.Name
	}
	return w.Name + " " + w.Surname
}
