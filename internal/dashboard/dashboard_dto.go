package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepartmentStat struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	WorkerCount int64           `json:"worker_count"`
	Payroll     decimal.Decimal `json:"payroll"`
	Spendings   decimal.Decimal `json:"spendings"`
	Total       decimal.Decimal `json:"total"`
}

type StatsResponse struct {
	TotalWorkers     int64            `json:"total_workers"`
	TotalDepartments int64            `json:"total_departments"`
	TotalRevenue     decimal.Decimal  `json:"total_revenue"`
	TotalPayroll     decimal.Decimal  `json:"total_payroll"`
	TotalSpendings   decimal.Decimal  `json:"total_spendings"`
	CEOSpendings     decimal.Decimal  `json:"ceo_spendings"`
	TotalExpenses    decimal.Decimal  `json:"total_expenses"`
	Profit           decimal.Decimal  `json:"profit"`
	PaidThisMonth    decimal.Decimal  `json:"paid_this_month"`
	LastPayrollAt    *time.Time       `json:"last_payroll_at"`
	DepartmentStats  []DepartmentStat `json:"department_stats"`
}
