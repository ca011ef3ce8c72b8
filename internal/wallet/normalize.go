package wallet

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field aliases seen across provider API versions, in lookup order.
var (
	kindFields   = []string{"transactionType", "type", "operation", "direction"}
	stateFields  = []string{"state", "status", "transactionState"}
	idFields     = []string{"id", "transactionId", "transaction_id"}
	walletFields = []string{"walletId", "wallet_id", "sourceWalletId"}
	hashFields   = []string{"txHash", "transactionHash", "tx_hash"}
	amountFields = []string{"amounts", "amount", "value"}
	timeFields   = []string{"createDate", "createdAt", "created_at", "timestamp"}
	srcFields    = []string{"sourceAddress", "source_address", "from"}
	dstFields    = []string{"destinationAddress", "destination_address", "to"}
)

var kindValues = map[string]TransactionKind{
	"INBOUND":    KindDeposit,
	"IN":         KindDeposit,
	"DEPOSIT":    KindDeposit,
	"RECEIVE":    KindDeposit,
	"CREDIT":     KindDeposit,
	"OUTBOUND":   KindPayroll,
	"OUT":        KindPayroll,
	"TRANSFER":   KindPayroll,
	"SEND":       KindPayroll,
	"WITHDRAWAL": KindWithdrawal,
	"WITHDRAW":   KindWithdrawal,
	"PAYROLL":    KindPayroll,
	"DEBIT":      KindPayroll,
}

// NormalizeTransaction folds a raw provider transaction into Transaction.
// Unrecognised kinds and states become KindUnknown and StateUnknown.
func NormalizeTransaction(raw map[string]any) Transaction {
	tx := Transaction{
		ID:                 firstString(raw, idFields),
		WalletID:           firstString(raw, walletFields),
		Kind:               KindUnknown,
		State:              StateUnknown,
		Amount:             firstAmount(raw, amountFields),
		TxHash:             firstString(raw, hashFields),
		SourceAddress:      firstString(raw, srcFields),
		DestinationAddress: firstString(raw, dstFields),
	}

	if k, ok := kindValues[strings.ToUpper(firstString(raw, kindFields))]; ok {
		tx.Kind = k
	}
	if s := firstString(raw, stateFields); s != "" {
		tx.State = ParseTransferState(s)
	}
	if ts := firstString(raw, timeFields); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			tx.CreatedAt = &t
		}
	}
	return tx
}

func firstString(raw map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case json.Number:
			return t.String()
		case float64:
			return decimal.NewFromFloat(t).String()
		default:
			return fmt.Sprint(t)
		}
	}
	return ""
}

func firstAmount(raw map[string]any, keys []string) decimal.Decimal {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if d, ok := toDecimal(v); ok {
			return d
		}
	}
	return decimal.Zero
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case []any:
		sum := decimal.Zero
		found := false
		for _, item := range t {
			if d, ok := toDecimal(item); ok {
				sum = sum.Add(d)
				found = true
			}
		}
		return sum, found
	case map[string]any:
		if inner, ok := t["amount"]; ok {
			return toDecimal(inner)
		}
	}
	return decimal.Zero, false
}
