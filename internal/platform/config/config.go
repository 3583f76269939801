package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// DefaultReportingCurrency seeds the settings of a workspace seen for the first time.
	DefaultReportingCurrency string
	// FetchTimeout bounds the concurrent data fetches of one report.
	FetchTimeout time.Duration
	// StalenessStrategy selects the overdue detector ("percentile" or "max").
	StalenessStrategy string

	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string
	MigrationsPath     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "budget-reconciler")
	v.SetDefault("DEFAULT_REPORTING_CURRENCY", "USD")
	v.SetDefault("FETCH_TIMEOUT", "10s")
	v.SetDefault("STALENESS_STRATEGY", "percentile")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:              v.GetString("PGSQL_URL"),
		Port:                     v.GetString("PORT"),
		IsProduction:             v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:            v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:                v.GetString("JWT_SECRET"),
		JWTIssuer:                v.GetString("JWT_ISSUER"),
		DefaultReportingCurrency: strings.ToUpper(v.GetString("DEFAULT_REPORTING_CURRENCY")),
		StalenessStrategy:        v.GetString("STALENESS_STRATEGY"),
		RateLimit:                v.GetString("RATE_LIMIT"),
		MigrationsPath:           v.GetString("MIGRATIONS_PATH"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	fetchTimeoutStr := v.GetString("FETCH_TIMEOUT")
	fetchTimeout, err := time.ParseDuration(fetchTimeoutStr)
	if err != nil || fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for FETCH_TIMEOUT ('%s'). Defaulting to %s.\n", fetchTimeoutStr, fetchTimeout)
	}
	cfg.FetchTimeout = fetchTimeout

	if cfg.DefaultReportingCurrency == "" {
		cfg.DefaultReportingCurrency = "USD"
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
