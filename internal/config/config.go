package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	HTTP     HTTPConfig
	DB       DBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Wallet   WalletConfig
	Payroll  PayrollConfig
	Cache    CacheConfig
	Migrate  MigrateConfig
	Policies string
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DBConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
	PollInterval  time.Duration
}

type JWTConfig struct {
	Secret string
}

// WalletConfig describes the custodial wallet provider.
// EntitySecret is the credential used to sign every transfer.
type WalletConfig struct {
	BaseURL      string
	APIKey       string
	EntitySecret string
	TokenID      string
	Blockchain   string
	Timeout      time.Duration
}

type PayrollConfig struct {
	Timezone    string
	CronSpec    string
	LockTTL     time.Duration
	MetricsPort string
}

type CacheConfig struct {
	DashboardTTL  time.Duration
	DashboardSize int
}

type MigrateConfig struct {
	Path string
}

// Location resolves the configured payroll timezone, falling back to the host's.
func (p PayrollConfig) Location() *time.Location {
	if p.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("PORT", "8080")
	v.SetDefault("HTTP_READ_TIMEOUT", "10s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "60s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "60s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "bossboard")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 10)

	v.SetDefault("REDIS_ADDR", "")

	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "bossboard-api")
	v.SetDefault("OUTBOX_POLL_INTERVAL", "2s")

	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("CIRCLE_BASE_URL", "https://api.circle.com")
	v.SetDefault("CIRCLE_API_KEY", "")
	v.SetDefault("ENTITY_SECRET", "")
	v.SetDefault("USDC_TOKEN_ID", "")
	v.SetDefault("PAYROLL_BLOCKCHAIN", "ARC-TESTNET")
	v.SetDefault("WALLET_HTTP_TIMEOUT", "30s")

	v.SetDefault("PAYROLL_TIMEZONE", "")
	v.SetDefault("PAYROLL_CRON", "0 * * * * *")
	v.SetDefault("PAYROLL_LOCK_TTL", "10m")
	v.SetDefault("SCHEDULER_METRICS_PORT", "9102")

	v.SetDefault("DASHBOARD_CACHE_TTL", "5s")
	v.SetDefault("DASHBOARD_CACHE_SIZE", 10)

	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RBAC_POLICY_PATH", "")
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Port:         v.GetString("PORT"),
			ReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("HTTP_IDLE_TIMEOUT"),
		},
		DB: DBConfig{
			Host:       v.GetString("DB_HOST"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			Port:       v.GetString("DB_PORT"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			MaxRetries: v.GetInt("DB_MAX_RETRIES"),
		},
		Redis: RedisConfig{Addr: v.GetString("REDIS_ADDR")},
		Kafka: KafkaConfig{
			Broker:        v.GetString("KAFKA_BROKER"),
			ConsumerGroup: v.GetString("KAFKA_CONSUMER_GROUP"),
			PollInterval:  v.GetDuration("OUTBOX_POLL_INTERVAL"),
		},
		JWT: JWTConfig{Secret: v.GetString("JWT_SECRET")},
		Wallet: WalletConfig{
			BaseURL:      strings.TrimRight(v.GetString("CIRCLE_BASE_URL"), "/"),
			APIKey:       v.GetString("CIRCLE_API_KEY"),
			EntitySecret: strings.TrimSpace(v.GetString("ENTITY_SECRET")),
			TokenID:      strings.TrimSpace(v.GetString("USDC_TOKEN_ID")),
			Blockchain:   v.GetString("PAYROLL_BLOCKCHAIN"),
			Timeout:      v.GetDuration("WALLET_HTTP_TIMEOUT"),
		},
		Payroll: PayrollConfig{
			Timezone:    v.GetString("PAYROLL_TIMEZONE"),
			CronSpec:    v.GetString("PAYROLL_CRON"),
			LockTTL:     v.GetDuration("PAYROLL_LOCK_TTL"),
			MetricsPort: v.GetString("SCHEDULER_METRICS_PORT"),
		},
		Cache: CacheConfig{
			DashboardTTL:  v.GetDuration("DASHBOARD_CACHE_TTL"),
			DashboardSize: v.GetInt("DASHBOARD_CACHE_SIZE"),
		},
		Migrate:  MigrateConfig{Path: v.GetString("MIGRATIONS_PATH")},
		Policies: v.GetString("RBAC_POLICY_PATH"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Port == "" {
		return fmt.Errorf("config: PORT must not be empty")
	}
	if c.Cache.DashboardSize <= 0 {
		return fmt.Errorf("config: DASHBOARD_CACHE_SIZE must be positive, got %d", c.Cache.DashboardSize)
	}
	if c.Payroll.LockTTL <= 0 {
		return fmt.Errorf("config: PAYROLL_LOCK_TTL must be positive")
	}
	if c.Payroll.Timezone != "" {
		if _, err := time.LoadLocation(c.Payroll.Timezone); err != nil {
			return fmt.Errorf("config: PAYROLL_TIMEZONE: %w", err)
		}
	}
	if c.IsProduction() && c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET is required in production")
	}
	return nil
}
