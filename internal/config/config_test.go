package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresOwner(t *testing.T) {
	t.Setenv("REGISTRY_OWNER", "")
	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.Equal(t, ErrOwnerRequired, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REGISTRY_OWNER", " alice ")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.RegistryOwner)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "registry", cfg.ContractAccount)
	assert.Equal(t, "registry.db", cfg.SQLitePath)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("REGISTRY_OWNER", "alice")
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REGISTRY_CONTRACT_ACCOUNT", "land")
	t.Setenv("ALLOW_CROSS_SITE_DEV", "TRUE")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "land", cfg.ContractAccount)
	assert.True(t, cfg.AllowCrossSiteDev)
}
