package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	TokenExpiry   time.Duration
	EncryptionKey string
	LookupHashKey string
	GinMode       string
	ListenAddr    string
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "planify"),
		DBPassword:    getEnv("DB_PASSWORD", "planify"),
		DBName:        getEnv("DB_NAME", "planify"),
		JWTSecret:     getEnv("JWT_SECRET", "default-secret-key-change-me"),
		TokenExpiry:   getDurationEnv("TOKEN_EXPIRY", 24*time.Hour),
		EncryptionKey: getEnv("ENCRYPTION_KEY", "default-encryption-key-change-me"),
		LookupHashKey: getEnv("LOOKUP_HASH_KEY", "default-lookup-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
