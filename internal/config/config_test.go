package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "ARC-TESTNET", cfg.Wallet.Blockchain)
	assert.Equal(t, 30*time.Second, cfg.Wallet.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Cache.DashboardTTL)
	assert.Equal(t, 10, cfg.Cache.DashboardSize)
	assert.Equal(t, "0 * * * * *", cfg.Payroll.CronSpec)
	assert.Equal(t, "9102", cfg.Payroll.MetricsPort)
	assert.Equal(t, time.Local, cfg.Payroll.Location())
}

func TestFromViper_TrimsWalletValues(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"CIRCLE_BASE_URL": "https://api.example.com/",
		"ENTITY_SECRET":   "  abcd  ",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Wallet.BaseURL)
	assert.Equal(t, "abcd", cfg.Wallet.EntitySecret)
}

func TestFromViper_Invalid(t *testing.T) {
	cases := map[string]map[string]any{
		"bad timezone":      {"PAYROLL_TIMEZONE": "Mars/Olympus"},
		"zero cache size":   {"DASHBOARD_CACHE_SIZE": 0},
		"prod without jwt":  {"APP_ENV": "production"},
		"non positive lock": {"PAYROLL_LOCK_TTL": "0s"},
	}

	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fromViper(newTestViper(overrides))
			assert.Error(t, err)
		})
	}
}

func TestPayrollConfig_Location(t *testing.T) {
	p := PayrollConfig{Timezone: "Europe/London"}
	assert.Equal(t, "Europe/London", p.Location().String())
}
