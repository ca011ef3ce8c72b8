package treasury

import "go-bossboard/internal/wallet"

type BalanceResponse struct {
	WalletID string `json:"wallet_id"`
	Symbol   string `json:"symbol"`
	Amount   string `json:"amount"`
}

type BalancesResponse struct {
	WalletID string                `json:"wallet_id"`
	Balances []wallet.TokenBalance `json:"balances"`
}

type WalletResponse struct {
	WalletID    string `json:"wallet_id"`
	Address     string `json:"address,omitempty"`
	State       string `json:"state,omitempty"`
	WalletSetID string `json:"wallet_set_id,omitempty"`
	Blockchain  string `json:"blockchain,omitempty"`
}

type TransactionResponse struct {
	wallet.Transaction
	WorkerName string `json:"worker_name,omitempty"`
}
