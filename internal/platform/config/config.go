package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything main needs to wire the service.
type Config struct {
	Addr    string
	BaseURL string

	DatabaseURL string

	EmailBaseURL   string
	EmailSender    string
	EmailAuthToken string
	EmailTimeout   time.Duration

	KafkaBrokers    []string
	KafkaAuditTopic string
}

// FromEnv builds a Config from environment variables so main stays lean.
// Development defaults keep a local run working without a full stack.
func FromEnv() Config {
	cfg := Config{
		Addr:            getenv("SIGNUP_ADDR", ":8000"),
		BaseURL:         getenv("SIGNUP_BASE_URL", "http://127.0.0.1:8000"),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		EmailBaseURL:    getenv("EMAIL_BASE_URL", ""),
		EmailSender:     getenv("EMAIL_SENDER", "noreply@handmadepixel.com"),
		EmailAuthToken:  os.Getenv("EMAIL_AUTH_TOKEN"),
		EmailTimeout:    10 * time.Second,
		KafkaAuditTopic: getenv("KAFKA_AUDIT_TOPIC", "signup.audit"),
	}

	if raw := os.Getenv("EMAIL_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.EmailTimeout = d
		}
	}
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, broker := range strings.Split(raw, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	// Confirmation links embed the base URL; a trailing slash would produce
	// a double slash in every link.
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
