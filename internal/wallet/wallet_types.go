package wallet

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransferState is the lifecycle state reported by the wallet provider.
type TransferState string

const (
	StateInitiated TransferState = "INITIATED"
	StateQueued    TransferState = "QUEUED"
	StateSent      TransferState = "SENT"
	StateConfirmed TransferState = "CONFIRMED"
	StateComplete  TransferState = "COMPLETE"
	StateCleared   TransferState = "CLEARED"
	StateFailed    TransferState = "FAILED"
	StateCancelled TransferState = "CANCELLED"
	StateDenied    TransferState = "DENIED"
	StateStuck     TransferState = "STUCK"
	StateUnknown   TransferState = "UNKNOWN"
)

var knownStates = map[string]TransferState{
	"INITIATED": StateInitiated,
	"QUEUED":    StateQueued,
	"SENT":      StateSent,
	"CONFIRMED": StateConfirmed,
	"COMPLETE":  StateComplete,
	"COMPLETED": StateComplete,
	"CLEARED":   StateCleared,
	"FAILED":    StateFailed,
	"CANCELLED": StateCancelled,
	"CANCELED":  StateCancelled,
	"DENIED":    StateDenied,
	"STUCK":     StateStuck,
}

// ParseTransferState maps provider spellings onto TransferState.
// An empty value means the provider accepted the transfer without reporting a state yet.
func ParseTransferState(s string) TransferState {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return StateInitiated
	}
	if st, ok := knownStates[s]; ok {
		return st
	}
	return StateUnknown
}

func (s TransferState) IsTerminal() bool {
	switch s {
	case StateComplete, StateConfirmed, StateCleared, StateFailed, StateCancelled, StateDenied:
		return true
	}
	return false
}

func (s TransferState) IsFailure() bool {
	return s == StateFailed || s == StateCancelled || s == StateDenied || s == StateStuck
}

// TransactionKind classifies a wallet movement from the company's point of view.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindPayroll    TransactionKind = "payroll"
	KindWithdrawal TransactionKind = "withdrawal"
	KindUnknown    TransactionKind = "unknown"
)

type TransferRequest struct {
	Credential  string
	WalletID    string
	Destination string
	Amount      decimal.Decimal
}

type TransferResult struct {
	ID     string
	State  TransferState
	TxHash string
}

type TokenBalance struct {
	TokenID      string          `json:"token_id,omitempty"`
	TokenAddress string          `json:"token_address,omitempty"`
	Blockchain   string          `json:"blockchain,omitempty"`
	Symbol       string          `json:"symbol"`
	Decimals     *int            `json:"decimals,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
}

type WalletInfo struct {
	ID          string `json:"wallet_id"`
	Address     string `json:"address,omitempty"`
	State       string `json:"state,omitempty"`
	WalletSetID string `json:"wallet_set_id,omitempty"`
	Blockchain  string `json:"blockchain,omitempty"`
}

// Transaction is a provider transaction after field-alias normalization.
type Transaction struct {
	ID                 string          `json:"id"`
	WalletID           string          `json:"wallet_id,omitempty"`
	Kind               TransactionKind `json:"type"`
	State              TransferState   `json:"state"`
	Amount             decimal.Decimal `json:"amount"`
	TxHash             string          `json:"tx_hash,omitempty"`
	SourceAddress      string          `json:"source_address,omitempty"`
	DestinationAddress string          `json:"destination_address,omitempty"`
	CreatedAt          *time.Time      `json:"timestamp,omitempty"`
}
