package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RepositoriesConfig struct {
	Postgres PostgresConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type JWTConfig struct {
	SecretKey string
	TokenTTL  time.Duration
	Issuer    string
}

type Config struct {
	Repositories RepositoriesConfig
	Gemini       GeminiConfig
	JWT          JWTConfig
	ServerPort   string
	// LoginDelay simulates the provider round-trip of the stub auth flows.
	LoginDelay time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Repositories: RepositoriesConfig{
			Postgres: PostgresConfig{
				Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
				DB:       getEnvOrDefault("POSTGRES_DB", "yatra"),
				Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
				Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
				SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
				MaxConns: 30,
				MinConns: 5,
			},
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		JWT: JWTConfig{
			SecretKey: getEnvOrDefault("JWT_SECRET_KEY", "default-secret-key-change-in-production-min-32-chars"),
			TokenTTL:  24 * time.Hour,
			Issuer:    "yatra",
		},
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
		LoginDelay: time.Duration(getEnvIntOrDefault("LOGIN_DELAY_MS", 1000)) * time.Millisecond,
	}

	if cfg.Repositories.Postgres.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD environment variable is required")
	}
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
