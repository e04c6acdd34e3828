package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// FallbackJWTSecret is only accepted outside production.
	FallbackJWTSecret = "myFallbackSecretKey"
)

var (
	ErrMissingAdminCredentials = errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	ErrInsecureSecret          = errors.New("SECRET_JWT_KEY must be set in production")
)

type Config struct {
	Env        string
	ServerPort string
	LogLevel   string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	JWTSecret           string
	UsingFallbackSecret bool

	AdminUsername string
	AdminPassword string

	StorageBackend   string
	Web3StorageToken string
	Web3StorageURL   string

	S3Endpoint  string
	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:        strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		ServerPort: getEnv("SERVER_PORT", "8000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "quill"),
		DBPassword: getEnv("DB_PASSWORD", "quill_dev_password"),
		DBName:     getEnv("DB_NAME", "quill"),
		SQLitePath: getEnv("SQLITE_PATH", "quill.db"),

		JWTSecret: getEnv("SECRET_JWT_KEY", ""),

		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		StorageBackend:   getEnv("STORAGE_BACKEND", "web3"),
		Web3StorageToken: getEnv("WEB3_STORAGE_TOKEN", ""),
		Web3StorageURL:   getEnv("WEB3_STORAGE_URL", "https://api.web3.storage"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, ErrMissingAdminCredentials
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrInsecureSecret
		}
		cfg.JWTSecret = FallbackJWTSecret
		cfg.UsingFallbackSecret = true
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.StorageBackend {
	case "web3", "s3":
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// PostgresDSN assembles the pgx connection string from the DB_* settings.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}

	return fallback
}
