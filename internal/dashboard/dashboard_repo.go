package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Totals struct {
	TotalWorkers     int64
	TotalDepartments int64
	TotalPayroll     decimal.Decimal
	TotalSpendings   decimal.Decimal
	CEOSpendings     decimal.Decimal
	TotalRevenue     decimal.Decimal
}

type DepartmentRow struct {
	ID          string
	Name        string
	WorkerCount int64
	Payroll     decimal.Decimal
	Spendings   decimal.Decimal
}

type PayoutSummary struct {
	Paid      decimal.Decimal
	LastRunAt *time.Time
}

type Repository interface {
	Totals(ctx context.Context, companyID string) (Totals, error)
	Departments(ctx context.Context, companyID string) ([]DepartmentRow, error)
	Payouts(ctx context.Context, companyID string, since time.Time, failed []string) (PayoutSummary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const totalsQuery = `
SELECT
	(SELECT COUNT(*) FROM workers w JOIN departments d ON d.id = w.department_id
		WHERE d.company_id = @company AND w.is_active) AS total_workers,
	(SELECT COUNT(*) FROM departments WHERE company_id = @company) AS total_departments,
	(SELECT COALESCE(SUM(w.salary), 0) FROM workers w JOIN departments d ON d.id = w.department_id
		WHERE d.company_id = @company AND w.is_active) AS total_payroll,
	(SELECT COALESCE(SUM(amount), 0) FROM additional_spendings WHERE company_id = @company) AS total_spendings,
	(SELECT COALESCE(SUM(amount), 0) FROM additional_spendings
		WHERE company_id = @company AND department_id IS NULL) AS ceo_spendings,
	(SELECT COALESCE(SUM(amount), 0) FROM revenues WHERE company_id = @company) AS total_revenue
`

func (r *repository) Totals(ctx context.Context, companyID string) (Totals, error) {
	var t Totals
	err := r.db.WithContext(ctx).
		Raw(totalsQuery, map[string]any{"company": companyID}).
		Scan(&t).Error
	return t, err
}

const departmentsQuery = `
SELECT
	d.id::text AS id,
	d.name AS name,
	COUNT(w.id) FILTER (WHERE w.is_active) AS worker_count,
	COALESCE(SUM(w.salary) FILTER (WHERE w.is_active), 0) AS payroll,
	COALESCE((SELECT SUM(s.amount) FROM additional_spendings s WHERE s.department_id = d.id), 0) AS spendings
FROM departments d
LEFT JOIN workers w ON w.department_id = d.id
WHERE d.company_id = @company
GROUP BY d.id, d.name
ORDER BY d.name ASC
`

func (r *repository) Departments(ctx context.Context, companyID string) ([]DepartmentRow, error) {
	var rows []DepartmentRow
	err := r.db.WithContext(ctx).
		Raw(departmentsQuery, map[string]any{"company": companyID}).
		Scan(&rows).Error
	return rows, err
}

// payoutsQuery sums paid amounts since the month start; last_run_at spans all history.
const payoutsQuery = `
SELECT
	COALESCE(SUM(amount) FILTER (WHERE status NOT IN @failed AND created_at >= @since), 0) AS paid,
	MAX(created_at) AS last_run_at
FROM payroll_transactions
WHERE company_id = @company
`

func (r *repository) Payouts(ctx context.Context, companyID string, since time.Time, failed []string) (PayoutSummary, error) {
	var p PayoutSummary
	err := r.db.WithContext(ctx).
		Raw(payoutsQuery, map[string]any{"company": companyID, "since": since, "failed": failed}).
		Scan(&p).Error
	return p, err
}
