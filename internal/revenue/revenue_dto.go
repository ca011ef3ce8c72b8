package revenue

import "github.com/shopspring/decimal"

type UpsertRevenueRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Month  int             `json:"month" binding:"required,min=1,max=12"`
	Year   int             `json:"year" binding:"required,min=1900,max=9999"`
}

type RevenueResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	CreatedAt string          `json:"created_at"`
}
