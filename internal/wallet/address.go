package wallet

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidAddress = errors.New("wallet: address must be 0x followed by 40 hex characters")

// NormalizeAddress trims the input and adds a missing 0x prefix to a bare
// 40-character hex address.
func NormalizeAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) == 40 {
		s = "0x" + s
	}
	if len(s) != 42 || !strings.HasPrefix(strings.ToLower(s), "0x") {
		return "", ErrInvalidAddress
	}
	if _, err := hex.DecodeString(s[2:]); err != nil {
		return "", ErrInvalidAddress
	}
	return "0x" + s[2:], nil
}

func IsWalletID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil && len(strings.TrimSpace(s)) == 36
}
