package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "")
	t.Setenv("SECRET_JWT_KEY", "")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SERVER_PORT", "")
}

func TestFromEnv_Defaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SECRET_JWT_KEY", "top-secret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "web3", cfg.StorageBackend)
	assert.Equal(t, "top-secret", cfg.JWTSecret)
	assert.False(t, cfg.UsingFallbackSecret)
	assert.Equal(t, "admin", cfg.AdminUsername)
}

func TestFromEnv_MissingAdminCredentials(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrMissingAdminCredentials)

	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("ADMIN_USERNAME", "")
	_, err = FromEnv()
	assert.ErrorIs(t, err, ErrMissingAdminCredentials)
}

func TestFromEnv_FallbackSecretInDevelopment(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.UsingFallbackSecret)
	assert.Equal(t, FallbackJWTSecret, cfg.JWTSecret)
}

func TestFromEnv_FallbackSecretRefusedInProduction(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "Production")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrInsecureSecret)
}

func TestFromEnv_RejectsUnknownBackends(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DRIVER", "mysql")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("STORAGE_BACKEND", "ftp")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d"}
	assert.Equal(t, "postgres://u:p@h:1/d?sslmode=disable", cfg.PostgresDSN())
}
