// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names.
const (
	envPort          = "PORT"
	envMongoURI      = "MONGO_URI"
	envMongoDatabase = "MONGO_DB"
	envJWTSecret     = "JWT_SECRET"
	envGeminiAPIKey  = "GEMINI_API_KEY"
	envGeminiModel   = "GEMINI_MODEL"
	envMonthlyBudget = "MONTHLY_BUDGET"
	envAITimeout     = "AI_TIMEOUT_SECONDS"
)

// Defaults. Budget thresholds are in whole currency units (rupees).
const (
	defaultPort             = "5000"
	defaultMongoURI         = "mongodb://localhost:27017"
	defaultMongoDatabase    = "expense_tracker"
	defaultGeminiModel      = "gemini-2.5-flash"
	defaultMonthlyBudget    = 50000
	defaultHighSpend        = 40000
	defaultLargeCategory    = 15000
	defaultAITimeoutSeconds = 15
)

// Config holds the application configuration.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string

	JWTSecret string
	TokenTTL  time.Duration

	GeminiAPIKey string
	GeminiModel  string
	// AITimeout bounds every call to the generative backend. A timeout is
	// treated like any other AI failure and resolved by fallback.
	AITimeout time.Duration

	// MonthlyBudget is the overall budget used for budget-status derivation.
	MonthlyBudget float64
	// HighSpendThreshold triggers the dashboard high-spend alert.
	HighSpendThreshold float64
	// LargeCategoryThreshold triggers the dashboard top-category headline.
	LargeCategoryThreshold float64
}

// Load reads configuration from environment variables, falling back to
// defaults for everything except JWT_SECRET, which the caller must verify
// is non-empty before serving authenticated routes.
func Load() *Config {
	return &Config{
		Port:          getEnv(envPort, defaultPort),
		MongoURI:      getEnv(envMongoURI, defaultMongoURI),
		MongoDatabase: getEnv(envMongoDatabase, defaultMongoDatabase),

		JWTSecret: os.Getenv(envJWTSecret),
		TokenTTL:  time.Hour,

		GeminiAPIKey: os.Getenv(envGeminiAPIKey),
		GeminiModel:  getEnv(envGeminiModel, defaultGeminiModel),
		AITimeout:    time.Duration(getEnvInt(envAITimeout, defaultAITimeoutSeconds)) * time.Second,

		MonthlyBudget:          getEnvFloat(envMonthlyBudget, defaultMonthlyBudget),
		HighSpendThreshold:     defaultHighSpend,
		LargeCategoryThreshold: defaultLargeCategory,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
