package spending

import "github.com/shopspring/decimal"

type CreateSpendingRequest struct {
	DepartmentID  *string         `json:"department_id" binding:"omitempty,uuid"`
	Name          string          `json:"name" binding:"required,max=150"`
	Amount        decimal.Decimal `json:"amount"`
	WalletAddress string          `json:"wallet_address" binding:"required"`
}

type UpdateDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type SpendingResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	DepartmentID  *string         `json:"department_id"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	WalletAddress string          `json:"wallet_address"`
	CreatedAt     string          `json:"created_at"`
}
