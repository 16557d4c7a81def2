package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingAPIKey  = errors.New("YouTube API key is required")
	ErrMissingBaseURL = errors.New("API base URL is required")
)

const (
	defaultPort           = "8080"
	defaultDashboardPort  = "3000"
	defaultAPIBaseURL     = "http://localhost:8080/api"
	defaultRequestTimeout = 15 * time.Second
)

var defaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}

// Config holds the application configuration
type Config struct {
	// Analytics API
	YouTubeAPIKey  string
	Port           string
	AllowedOrigins []string
	CacheTTL       time.Duration

	// Dashboard
	APIBaseURL     string
	DashboardPort  string
	RequestTimeout time.Duration
}

// LoadEnvFile loads variables from a .env file in the working directory, if any
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}
}

// Load loads the analytics API configuration from environment variables
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDashboard loads the dashboard configuration; no API key is needed
func LoadDashboard() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.APIBaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	return cfg, nil
}

func load() (*Config, error) {
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", 0)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvAsDuration("REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		YouTubeAPIKey:  os.Getenv("YOUTUBE_API_KEY"),
		Port:           getEnv("PORT", defaultPort),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", defaultAllowedOrigins),
		CacheTTL:       cacheTTL,
		APIBaseURL:     strings.TrimRight(getEnv("API_BASE_URL", defaultAPIBaseURL), "/"),
		DashboardPort:  getEnv("DASHBOARD_PORT", defaultDashboardPort),
		RequestTimeout: timeout,
	}, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: YOUTUBE_API_KEY environment variable is not set", ErrMissingAPIKey)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
