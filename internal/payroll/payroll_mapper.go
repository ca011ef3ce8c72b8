package payroll

import (
	"strings"
	"time"

	"go-bossboard/internal/company"
)

func toExecuteResponse(res ExecutionResult) *ExecuteResponse {
	resp := &ExecuteResponse{
		CompanyID:   res.CompanyID,
		PeriodStart: res.PeriodStart.Format(company.DateLayout),
		PeriodEnd:   res.PeriodEnd.Format(company.DateLayout),
		TotalAmount: res.Total.String(),
		Transfers:   make([]TransferResponse, 0, len(res.Transfers)),
	}
	for _, t := range res.Transfers {
		if t.Failed() {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Transfers = append(resp.Transfers, TransferResponse{
			TransactionID: t.TransactionID,
			WorkerID:      t.WorkerID,
			WorkerName:    t.WorkerName,
			WalletAddress: t.WalletAddress,
			Amount:        t.Amount.String(),
			Status:        t.Status,
			ExternalID:    t.ExternalID,
			TxHash:        t.TxHash,
			Error:         t.Error,
		})
	}
	return resp
}

func toTransactionResponse(row TransactionRow) TransactionResponse {
	return TransactionResponse{
		ID:                 row.ID.String(),
		WorkerID:           row.WorkerID.String(),
		WorkerName:         strings.TrimSpace(row.WorkerName + " " + row.WorkerSurname),
		Amount:             row.Amount.String(),
		PeriodStart:        row.PeriodStart.Format(company.DateLayout),
		PeriodEnd:          row.PeriodEnd.Format(company.DateLayout),
		Status:             row.Status,
		Trigger:            row.Trigger,
		ExternalTransferID: row.ExternalTransferID,
		TransactionHash:    row.TransactionHash,
		ErrorMessage:       row.ErrorMessage,
		CreatedAt:          row.CreatedAt.UTC().Format(time.RFC3339),
	}
}
