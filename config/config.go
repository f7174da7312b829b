package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string
	Port           string
	ActivitiesFile string
	AllowedOrigins []string
	DBUrl          string
	MetricsEnabled bool
	RateLimit      RateLimitConfig
	Email          EmailConfig
}

// RateLimitConfig controls the per-client request limiter. RPS of 0 disables it.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// EmailConfig holds settings for roster confirmation emails.
type EmailConfig struct {
	Provider              string
	FromAddress           string
	FromName              string
	AWSRegion             string
	AWSAccessKeyID        string
	AWSSecretAccessKey    string
	SESInsecureSkipVerify bool
	// MaxInFlight bounds concurrent background sends; SendTimeout bounds each one.
	MaxInFlight int
	SendTimeout time.Duration
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on system environment variables only
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:    env,
		Port:           os.Getenv("PORT"),
		ActivitiesFile: strings.TrimSpace(os.Getenv("ACTIVITIES_FILE")),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		DBUrl:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		MetricsEnabled: true,
		RateLimit:      RateLimitConfig{Burst: 10},
		Email: EmailConfig{
			Provider:           os.Getenv("EMAIL_PROVIDER"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			MaxInFlight:        8,
			SendTimeout:        10 * time.Second,
		},
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "noop"
	}
	if cfg.Email.FromAddress == "" {
		cfg.Email.FromAddress = "activities@mergington.edu"
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Mergington High School"
	}

	var err error
	if cfg.MetricsEnabled, err = boolEnv("METRICS_ENABLED", cfg.MetricsEnabled); err != nil {
		return nil, err
	}
	if cfg.Email.SESInsecureSkipVerify, err = boolEnv("SES_INSECURE_SKIP_VERIFY", false); err != nil {
		return nil, err
	}
	if s := os.Getenv("EMAIL_MAX_IN_FLIGHT"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid EMAIL_MAX_IN_FLIGHT %q", s)
		}
		cfg.Email.MaxInFlight = n
	}
	if s := os.Getenv("EMAIL_SEND_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid EMAIL_SEND_TIMEOUT %q", s)
		}
		cfg.Email.SendTimeout = d
	}
	if s := os.Getenv("RATE_LIMIT_RPS"); s != "" {
		rps, err := strconv.ParseFloat(s, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q", s)
		}
		cfg.RateLimit.RPS = rps
	}
	if s := os.Getenv("RATE_LIMIT_BURST"); s != "" {
		burst, err := strconv.Atoi(s)
		if err != nil || burst < 1 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %q", s)
		}
		cfg.RateLimit.Burst = burst
	}

	return cfg, nil
}

func boolEnv(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
