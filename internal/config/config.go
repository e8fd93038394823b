package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration
type Config struct {
	Port       string
	APIBaseURL string // base URL of the remote rent-tracking API
	StateFile  string // path of the persisted app state document
	LogLevel   string

	// RentDueDay is the day of the month rent is considered due. Fixed
	// business rule, configurable here rather than per profile.
	RentDueDay int
	// TxPageLimit is the page size used when walking the transaction store.
	TxPageLimit int

	// SMTP settings for rent reminder emails. Reminders are disabled when
	// SMTPHost or ReminderEmail is empty.
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SenderEmail   string
	ReminderEmail string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using environment variables")
	}

	dueDay, err := strconv.Atoi(getEnv("RENT_DUE_DAY", "5"))
	if err != nil || dueDay < 1 || dueDay > 28 {
		return nil, fmt.Errorf("RENT_DUE_DAY must be a day of month between 1 and 28")
	}

	pageLimit, err := strconv.Atoi(getEnv("TX_PAGE_LIMIT", "100"))
	if err != nil || pageLimit < 1 {
		return nil, fmt.Errorf("TX_PAGE_LIMIT must be a positive integer")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		APIBaseURL:    getEnv("API_BASE_URL", ""),
		StateFile:     getEnv("STATE_FILE", "rentbook-state.json"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		RentDueDay:    dueDay,
		TxPageLimit:   pageLimit,
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", ""),
		ReminderEmail: getEnv("REMINDER_EMAIL", ""),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
