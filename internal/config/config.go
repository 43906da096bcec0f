package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Sentry
	SentryDSN string

	// Kafka event stream (optional; empty disables publishing)
	KafkaBrokers []string

	// Elasticsearch product search (optional; empty falls back to SQL)
	ESAddress  string
	ESUsername string
	ESPassword string
	ESIndex    string

	// SMTP order confirmations (optional; empty disables email)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("APP_ENV", "development"),

		SentryDSN: getEnv("SENTRY_DSN", ""),

		KafkaBrokers: splitEnv(getEnv("KAFKA_BROKERS", "")),

		ESAddress:  getEnv("ES_URL", ""),
		ESUsername: getEnv("ES_USER", ""),
		ESPassword: getEnv("ES_PASSWORD", ""),
		ESIndex:    getEnv("ES_PRODUCT_INDEX", "products"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "orders@example.com"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitEnv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
