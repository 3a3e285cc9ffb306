package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	SMTP          SMTPConfig
	Notifications NotificationsConfig
	Reminders     RemindersConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds a postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type NotificationsConfig struct {
	// MailEndpoint, when set, routes notices through the HTTP mail
	// endpoint instead of direct SMTP.
	MailEndpoint string
	Timeout      time.Duration
}

type RemindersConfig struct {
	Interval time.Duration
	// Window is how far ahead of a deadline the reminder fires.
	Window time.Duration
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "projecthub"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:      getEnvAsInt("SMTP_PORT", 465),
			Username:  getEnv("SMTP_USER", ""),
			Password:  getEnv("SMTP_PASS", ""),
			FromEmail: getEnv("EMAIL_FROM", "noreply@nyrix.co"),
			FromName:  getEnv("EMAIL_FROM_NAME", "Nyrix Project Hub"),
		},
		Notifications: NotificationsConfig{
			MailEndpoint: getEnv("MAIL_ENDPOINT", ""),
			Timeout:      getEnvAsDuration("NOTIFY_TIMEOUT", 10*time.Second),
		},
		Reminders: RemindersConfig{
			Interval: getEnvAsDuration("REMINDER_INTERVAL", time.Hour),
			Window:   getEnvAsDuration("REMINDER_WINDOW", 24*time.Hour),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	return defaultValue
}
