package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	Reporting   ReportingConfig
	Notify      NotifyConfig
	Assumptions Assumptions
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// NotifyConfig holds the optional ops webhook used for batch-cycle
// summaries. Notifications are disabled when WebhookURL is empty.
type NotifyConfig struct {
	WebhookURL string
}

// Assumptions are the default financial parameters applied when a property
// record carries no richer data. They stand in for a per-user settings
// source and are injected into the data assembler so that source can be
// swapped later without touching the calculator.
type Assumptions struct {
	PropertyTaxRate       float64 // % of purchase price per year
	MaintenanceReservePct float64 // % of annual rent
	VacancyRatePct        float64 // % of annual rent
	MortgageRate          float64 // % APR
	DownPaymentPct        float64 // % of purchase price
	LoanTermYears         int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "propfin"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 2 1 * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("OPS_WEBHOOK_URL"),
		},
		Assumptions: Assumptions{
			PropertyTaxRate:       getenvFloat("DEFAULT_PROPERTY_TAX_RATE", 1.2),
			MaintenanceReservePct: getenvFloat("DEFAULT_MAINTENANCE_RESERVE_PCT", 5),
			VacancyRatePct:        getenvFloat("DEFAULT_VACANCY_RATE_PCT", 5),
			MortgageRate:          getenvFloat("DEFAULT_MORTGAGE_RATE", 3.5),
			DownPaymentPct:        getenvFloat("DEFAULT_DOWN_PAYMENT_PCT", 20),
			LoanTermYears:         getenvInt("DEFAULT_LOAN_TERM_YEARS", 25),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}
	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Assumptions.LoanTermYears <= 0 {
		return errors.New("DEFAULT_LOAN_TERM_YEARS must be positive")
	}
	if c.Assumptions.DownPaymentPct < 0 || c.Assumptions.DownPaymentPct > 100 {
		return errors.New("DEFAULT_DOWN_PAYMENT_PCT must be between 0 and 100")
	}
	if c.Assumptions.VacancyRatePct < 0 || c.Assumptions.VacancyRatePct > 100 {
		return errors.New("DEFAULT_VACANCY_RATE_PCT must be between 0 and 100")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
