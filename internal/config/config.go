// Package config loads application settings from the environment.
// A .env file is read when present (local development); real environments
// set the variables directly.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the API server.
type Config struct {
	Port      string
	JWTSecret string
	DB        DBConfig
	Upload    UploadConfig
	R2        R2Config
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	URL string
}

// UploadConfig holds local file storage settings.
type UploadConfig struct {
	Dir     string
	BaseURL string
}

// R2Config holds Cloudflare R2 (S3-compatible) credentials.
// All fields empty means local disk storage is used instead.
type R2Config struct {
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// Enabled reports whether R2 object storage is fully configured.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// Load reads configuration from the environment and validates that the
// required variables are set before the server does anything else.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file is fine outside development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		DB: DBConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "uploads"),
			BaseURL: getEnv("UPLOAD_BASE_URL", "/api/files"),
		},
		R2: R2Config{
			AccountID: os.Getenv("R2_ACCOUNT_ID"),
			AccessKey: os.Getenv("R2_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			Bucket:    os.Getenv("R2_BUCKET"),
			PublicURL: os.Getenv("R2_PUBLIC_URL"),
		},
	}

	var missing []string
	if cfg.DB.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
