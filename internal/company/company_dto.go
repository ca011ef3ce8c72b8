package company

import "time"

type CompanyResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	MasterWalletAddress *string   `json:"master_wallet_address"`
	WalletID            *string   `json:"wallet_id"`
	WalletSetID         *string   `json:"wallet_set_id"`
	PayrollDate         *string   `json:"payroll_date"`
	PayrollTime         *string   `json:"payroll_time"`
	CreatedAt           time.Time `json:"created_at"`
}

// UpdateSettingsRequest: a nil field is left unchanged, an empty string clears it.
type UpdateSettingsRequest struct {
	Name                *string `json:"name" binding:"omitempty,max=150"`
	Email               *string `json:"email" binding:"omitempty,email"`
	MasterWalletAddress *string `json:"master_wallet_address"`
	WalletID            *string `json:"wallet_id"`
	WalletSetID         *string `json:"wallet_set_id"`
	PayrollDate         *string `json:"payroll_date"`
	PayrollTime         *string `json:"payroll_time"`
}
