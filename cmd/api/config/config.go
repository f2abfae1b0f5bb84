package config

import (
	"os"
	"time"
)

// Config carries the runtime knobs the server wires together at startup.
type Config struct {
	Port              string
	AllowedOrigins    string
	AdminToken        string
	ClientTokenSecret string
	WidgetBaseURL     string
	WidgetCacheTTL    time.Duration
	RetentionSchedule string
}

func NewConfig() *Config {
	return &Config{
		Port:              getEnv("PORT", "3000"),
		AllowedOrigins:    getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),
		AdminToken:        os.Getenv("ADMIN_TOKEN"),
		ClientTokenSecret: os.Getenv("CLIENT_TOKEN_SECRET"),
		WidgetBaseURL:     getEnv("WIDGET_BASE_URL", "http://localhost:3000"),
		WidgetCacheTTL:    5 * time.Minute,
		RetentionSchedule: getEnv("RETENTION_SCHEDULE", "@hourly"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
