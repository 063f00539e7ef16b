package infrastructure

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/onk/blogchecker/internal/model"
)

// DefaultUserAgent is sent on every feed and page fetch
const DefaultUserAgent = "BlogCheckerBot/1.0 (@onk)"

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Word list location: gs://bucket/key, file:///path or a local path
	TechwordsPath string `json:"techwords_path"`

	// Fetch settings
	UserAgent    string        `json:"user_agent"`
	MaxRedirects int           `json:"max_redirects"`
	FetchDelay   time.Duration `json:"fetch_delay"`
	FetchTimeout time.Duration `json:"fetch_timeout"`

	// Filter settings
	Threshold int `json:"techword_threshold"`

	// Cloud Storage endpoint override (emulators)
	StorageEndpoint string `json:"storage_endpoint"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	// Scheduled checks (local server only)
	ScheduledSites []model.Site `json:"scheduled_sites"`
	CheckSchedule  string       `json:"check_schedule"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Host:            getEnvOrDefault("HOST", "0.0.0.0"),
		TechwordsPath:   getEnvOrDefault("TECHWORDS_PATH", ""),
		UserAgent:       getEnvOrDefault("USER_AGENT", DefaultUserAgent),
		MaxRedirects:    getEnvOrDefaultInt("MAX_REDIRECTS", 2),
		FetchDelay:      getEnvOrDefaultDuration("FETCH_DELAY", time.Second),
		FetchTimeout:    getEnvOrDefaultDuration("FETCH_TIMEOUT", 30*time.Second),
		Threshold:       getEnvOrDefaultInt("TECHWORD_THRESHOLD", 3),
		StorageEndpoint: getEnvOrDefault("STORAGE_ENDPOINT", ""),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "json"),
		ScheduledSites:  parseSites(getEnvOrDefault("SCHEDULED_SITES", "")),
		CheckSchedule:   getEnvOrDefault("CHECK_SCHEDULE", "@hourly"),
	}

	return config, config.validate()
}

// validate checks if required configuration values are present
func (c *Config) validate() error {
	if c.TechwordsPath == "" {
		return &ConfigError{Field: "TECHWORDS_PATH", Message: "word list location is required"}
	}
	if c.MaxRedirects < 1 {
		return &ConfigError{Field: "MAX_REDIRECTS", Message: "must be at least 1"}
	}
	if c.FetchDelay < 0 {
		return &ConfigError{Field: "FETCH_DELAY", Message: "must not be negative"}
	}
	if c.FetchTimeout <= 0 {
		return &ConfigError{Field: "FETCH_TIMEOUT", Message: "must be positive"}
	}
	if c.Threshold < 1 {
		return &ConfigError{Field: "TECHWORD_THRESHOLD", Message: "must be at least 1"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvOrDefaultDuration accepts Go duration strings ("1s", "500ms")
func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseSites parses "kind=url,kind=url". An entry without "=" is treated as kind other.
func parseSites(value string) []model.Site {
	if value == "" {
		return []model.Site{}
	}
	parts := strings.Split(value, ",")
	sites := make([]model.Site, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind, url, found := strings.Cut(part, "=")
		if !found {
			sites = append(sites, model.Site{Kind: model.KindOther, URL: part})
			continue
		}
		sites = append(sites, model.Site{Kind: model.ParseKind(kind), URL: strings.TrimSpace(url)})
	}
	return sites
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
