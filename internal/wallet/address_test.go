package wallet_test

import (
	"testing"

	"go-bossboard/internal/wallet"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress(t *testing.T) {
	bare := "AbCdEf0123456789abcdef0123456789ABCDEF01"

	got, err := wallet.NormalizeAddress(bare)
	assert.NoError(t, err)
	assert.Equal(t, "0x"+bare, got)

	got, err = wallet.NormalizeAddress("  0X" + bare + " ")
	assert.NoError(t, err)
	assert.Equal(t, "0x"+bare, got)

	for _, bad := range []string{"", "0x123", "0x" + bare + "00", "0xZZcdef0123456789abcdef0123456789abcdef01"} {
		_, err := wallet.NormalizeAddress(bad)
		assert.ErrorIs(t, err, wallet.ErrInvalidAddress, bad)
	}
}

func TestIsWalletID(t *testing.T) {
	assert.True(t, wallet.IsWalletID("0b9d2c4e-5a41-4c36-9b5e-2f1f3f7b6a11"))
	assert.False(t, wallet.IsWalletID("0b9d2c4e5a414c369b5e2f1f3f7b6a11"))
	assert.False(t, wallet.IsWalletID("not-a-uuid"))
}
