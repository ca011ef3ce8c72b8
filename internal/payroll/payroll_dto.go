package payroll

type ExecuteRequest struct {
	PeriodStart string `json:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" binding:"required,datetime=2006-01-02"`
}

type TransferResponse struct {
	TransactionID string `json:"transaction_id"`
	WorkerID      string `json:"worker_id"`
	WorkerName    string `json:"worker_name"`
	WalletAddress string `json:"wallet_address"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	ExternalID    string `json:"external_transfer_id,omitempty"`
	TxHash        string `json:"transaction_hash,omitempty"`
	Error         string `json:"error,omitempty"`
}

type ExecuteResponse struct {
	CompanyID   string             `json:"company_id"`
	PeriodStart string             `json:"period_start"`
	PeriodEnd   string             `json:"period_end"`
	TotalAmount string             `json:"total_amount"`
	Succeeded   int                `json:"succeeded"`
	Failed      int                `json:"failed"`
	Transfers   []TransferResponse `json:"transfers"`
}

type TransactionResponse struct {
	ID                 string  `json:"id"`
	WorkerID           string  `json:"worker_id"`
	WorkerName         string  `json:"worker_name"`
	Amount             string  `json:"amount"`
	PeriodStart        string  `json:"period_start"`
	PeriodEnd          string  `json:"period_end"`
	Status             string  `json:"status"`
	Trigger            string  `json:"trigger"`
	ExternalTransferID *string `json:"external_transfer_id"`
	TransactionHash    *string `json:"transaction_hash"`
	ErrorMessage       *string `json:"error_message"`
	CreatedAt          string  `json:"created_at"`
}

type PreviewResponse struct {
	ActiveWorkers int     `json:"active_workers"`
	TotalDue      string  `json:"total_due"`
	WalletID      *string `json:"wallet_id"`
	Balance       *string `json:"balance"`
	BalanceError  string  `json:"balance_error,omitempty"`
	Sufficient    *bool   `json:"sufficient"`
	PayrollDate   *string `json:"payroll_date"`
	PayrollTime   *string `json:"payroll_time"`
}
