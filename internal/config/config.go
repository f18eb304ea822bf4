package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	DatabaseURL         string // Postgres DSN; empty selects the embedded SQLite database
	SQLitePath          string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
	LedgerAdminKey      string // guards the account deposit faucet
	RegistryOwner       string // account allowed to approve properties; fixed at first boot
	ContractAccount     string // host account holding attached values and the retained share
}

var ErrOwnerRequired = errors.New("REGISTRY_OWNER is required")

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SQLITE_PATH", "registry.db")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("REGISTRY_CONTRACT_ACCOUNT", "registry")

	cfg := &Config{
		Env:                 v.GetString("APP_ENV"),
		Port:                v.GetString("PORT"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		SQLitePath:          v.GetString("SQLITE_PATH"),
		RedisURL:            v.GetString("REDIS_URL"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(v.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
		LedgerAdminKey:      v.GetString("LEDGER_ADMIN_KEY"),
		RegistryOwner:       strings.TrimSpace(v.GetString("REGISTRY_OWNER")),
		ContractAccount:     strings.TrimSpace(v.GetString("REGISTRY_CONTRACT_ACCOUNT")),
	}
	if cfg.RegistryOwner == "" {
		return nil, ErrOwnerRequired
	}
	if cfg.ContractAccount == "" {
		cfg.ContractAccount = "registry"
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
