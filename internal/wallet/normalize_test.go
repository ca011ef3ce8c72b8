package wallet_test

import (
	"testing"

	"go-bossboard/internal/wallet"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeTransaction_Aliases(t *testing.T) {
	tests := []struct {
		name      string
		raw       map[string]any
		wantKind  wallet.TransactionKind
		wantState wallet.TransferState
		wantAmt   string
	}{
		{
			name:      "provider v1 fields",
			raw:       map[string]any{"transactionType": "INBOUND", "state": "CONFIRMED", "amounts": []any{"10", "2.5"}},
			wantKind:  wallet.KindDeposit,
			wantState: wallet.StateConfirmed,
			wantAmt:   "12.5",
		},
		{
			name:      "legacy type and status",
			raw:       map[string]any{"type": "withdrawal", "status": "failed", "amount": map[string]any{"amount": "7", "currency": "USD"}},
			wantKind:  wallet.KindWithdrawal,
			wantState: wallet.StateFailed,
			wantAmt:   "7",
		},
		{
			name:      "direction and transactionState",
			raw:       map[string]any{"direction": "in", "transactionState": "completed", "value": 3.25},
			wantKind:  wallet.KindDeposit,
			wantState: wallet.StateComplete,
			wantAmt:   "3.25",
		},
		{
			name:      "unrecognised values",
			raw:       map[string]any{"operation": "MINT", "state": "WEIRD"},
			wantKind:  wallet.KindUnknown,
			wantState: wallet.StateUnknown,
			wantAmt:   "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx := wallet.NormalizeTransaction(tc.raw)
			assert.Equal(t, tc.wantKind, tx.Kind)
			assert.Equal(t, tc.wantState, tx.State)
			assert.True(t, decimal.RequireFromString(tc.wantAmt).Equal(tx.Amount), "amount %s", tx.Amount)
		})
	}
}

func TestParseTransferState(t *testing.T) {
	assert.Equal(t, wallet.StateInitiated, wallet.ParseTransferState(""))
	assert.Equal(t, wallet.StateQueued, wallet.ParseTransferState("queued"))
	assert.Equal(t, wallet.StateUnknown, wallet.ParseTransferState("??"))

	assert.True(t, wallet.StateComplete.IsTerminal())
	assert.False(t, wallet.StateSent.IsTerminal())
	assert.True(t, wallet.StateDenied.IsFailure())
}

func TestValidateCredential(t *testing.T) {
	assert.NoError(t, wallet.ValidateCredential(testSecret))
	assert.ErrorIs(t, wallet.ValidateCredential("zz"+testSecret[2:]), wallet.ErrInvalidCredential)
	assert.ErrorIs(t, wallet.ValidateCredential(""), wallet.ErrInvalidCredential)
}
