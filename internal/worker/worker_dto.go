package worker

import "github.com/shopspring/decimal"

type CreateWorkerRequest struct {
	DepartmentID  string          `json:"department_id" binding:"required,uuid"`
	Name          string          `json:"name" binding:"required,max=100"`
	Surname       string          `json:"surname" binding:"max=100"`
	Salary        decimal.Decimal `json:"salary"`
	WalletAddress string          `json:"wallet_address" binding:"required"`
	IsActive      *bool           `json:"is_active"`
}

// UpdateWorkerRequest is a partial update; nil fields are left untouched.
type UpdateWorkerRequest struct {
	DepartmentID  *string          `json:"department_id" binding:"omitempty,uuid"`
	Name          *string          `json:"name" binding:"omitempty,max=100"`
	Surname       *string          `json:"surname" binding:"omitempty,max=100"`
	Salary        *decimal.Decimal `json:"salary"`
	WalletAddress *string          `json:"wallet_address"`
	IsActive      *bool            `json:"is_active"`
}

type WorkerResponse struct {
	ID            string          `json:"id"`
	DepartmentID  string          `json:"department_id"`
	Name          string          `json:"name"`
	Surname       string          `json:"surname"`
	Salary        decimal.Decimal `json:"salary"`
	WalletAddress string          `json:"wallet_address"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     string          `json:"created_at"`
}
