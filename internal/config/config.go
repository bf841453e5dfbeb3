// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Client configuration
	BackendBaseURL string
	TenantID       string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Devserver configuration
	ServerPort string
	DBPath     string

	// Optional live reply provider for the devserver. When the key is empty
	// the devserver answers with canned replies.
	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	Environment string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8080"),
		TenantID:       getEnv("TENANT_ID", ""),
		RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxRetries:     getEnvAsInt("MAX_RETRIES", 3),
		RetryDelay:     time.Duration(getEnvAsInt("RETRY_DELAY_MS", 500)) * time.Millisecond,
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "chatorb.db"),
		AIAPIKey:       getEnv("AI_API_KEY", ""),
		AIBaseURL:      getEnv("AI_BASE_URL", ""),
		AIModel:        getEnv("AI_MODEL", "gpt-4o-mini"),
		Environment:    env,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.TenantID == "" {
			missing = append(missing, "TENANT_ID")
		}
		if cfg.BackendBaseURL == "" {
			missing = append(missing, "BACKEND_BASE_URL")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
