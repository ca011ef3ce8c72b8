package payroll

import (
	"context"
	"time"

	"go-bossboard/internal/company"
	"go-bossboard/internal/messaging/kafka"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger persists payroll transaction records.
type Ledger interface {
	// FindRecord reports whether any record exists for the exact period that
	// was created at or after createdAfter.
	FindRecord(ctx context.Context, companyID uuid.UUID, start, end, createdAfter time.Time) (bool, error)
	// Commit inserts records and the optional outbox event in one transaction.
	Commit(ctx context.Context, records []Transaction, event *kafka.OutboxEvent) error
	FindAllByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]TransactionRow, error)
}

// TransactionRow is a ledger record joined with its worker's name.
type TransactionRow struct {
	Transaction
	WorkerName    string
	WorkerSurname string
}

type gormLedger struct {
	db     *gorm.DB
	outbox kafka.OutboxRepository
}

func NewLedger(db *gorm.DB, outbox kafka.OutboxRepository) Ledger {
	return &gormLedger{db: db, outbox: outbox}
}

func (l *gormLedger) FindRecord(ctx context.Context, companyID uuid.UUID, start, end, createdAfter time.Time) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("company_id = ? AND period_start = ? AND period_end = ? AND created_at >= ?",
			companyID, start.Format(company.DateLayout), end.Format(company.DateLayout), createdAfter).
		Count(&count).Error
	return count > 0, err
}

func (l *gormLedger) Commit(ctx context.Context, records []Transaction, event *kafka.OutboxEvent) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(records) > 0 {
			if err := tx.Create(&records).Error; err != nil {
				return err
			}
		}
		if event != nil {
			if err := l.outbox.WithTx(tx).Create(ctx, *event); err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *gormLedger) FindAllByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]TransactionRow, error) {
	var rows []TransactionRow
	err := l.db.WithContext(ctx).
		Table("payroll_transactions AS pt").
		Select("pt.*, COALESCE(w.name, '') AS worker_name, COALESCE(w.surname, '') AS worker_surname").
		Joins("LEFT JOIN workers w ON w.id = pt.worker_id").
		Where("pt.company_id = ?", companyID).
		Order("pt.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
