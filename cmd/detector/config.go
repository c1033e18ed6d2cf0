// cmd/detector/config.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration, sourced from the environment
type Config struct {
	ListenAddr     string `json:"listen_addr"`
	VectorizerPath string `json:"vectorizer_path"`
	ModelPath      string `json:"model_path"`
	SourcesPath    string `json:"sources_path"`
	LogPath        string `json:"log_path"`
	LogLevel       string `json:"log_level"`
	UserAgent      string `json:"user_agent"`

	// API keys
	FactCheckAPIKey string `json:"fact_check_api_key"`
	OpenAIAPIKey    string `json:"openai_api_key"`

	// Feature toggles
	EnableFactCheck      bool `json:"enable_fact_check"`
	EnableOpenAIFallback bool `json:"enable_openai_fallback"`
	EnableRobotsCheck    bool `json:"enable_robots_check"`

	// Tunables
	DefaultThreshold       float64       `json:"default_threshold"`
	MaxPerSource           int           `json:"max_per_source"`
	FactCheckPageSize      int           `json:"fact_check_page_size"`
	FactCheckCacheTTL      time.Duration `json:"fact_check_cache_ttl"`
	RefreshIntervalMinutes int           `json:"refresh_interval_minutes"`
	FetchRatePerHost       float64       `json:"fetch_rate_per_host"`
	FetchBurst             int           `json:"fetch_burst"`
}

// GetEnvString gets a string from environment variables with a default value
func GetEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an integer from environment variables with a default value
func GetEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvBool gets a boolean from environment variables with a default value
func GetEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// GetEnvFloat gets a float64 from environment variables with a default value
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// LoadEnvConfig loads configuration from environment variables
func LoadEnvConfig() *Config {
	return &Config{
		ListenAddr:     GetEnvString("LISTEN_ADDR", ":8080"),
		VectorizerPath: GetEnvString("VECTORIZER_PATH", "model/vectorizer.json"),
		ModelPath:      GetEnvString("MODEL_PATH", "model/model.json"),
		SourcesPath:    GetEnvString("SOURCES_PATH", "config/sources.yml"),
		LogPath:        GetEnvString("LOG_PATH", "logs/detector.log"),
		LogLevel:       GetEnvString("LOG_LEVEL", "info"),
		UserAgent:      GetEnvString("USER_AGENT", "FakeNewsDetector/"+VERSION),

		FactCheckAPIKey: GetEnvString("GOOGLE_FACT_CHECK_API_KEY", ""),
		OpenAIAPIKey:    GetEnvString("OPENAI_API_KEY", ""),

		EnableFactCheck:      GetEnvBool("ENABLE_FACT_CHECK", true),
		EnableOpenAIFallback: GetEnvBool("ENABLE_OPENAI_FALLBACK", false),
		EnableRobotsCheck:    GetEnvBool("ENABLE_ROBOTS_CHECK", true),

		DefaultThreshold:       GetEnvFloat("DEFAULT_THRESHOLD", 0.62),
		MaxPerSource:           GetEnvInt("MAX_PER_SOURCE", 5),
		FactCheckPageSize:      GetEnvInt("FACT_CHECK_PAGE_SIZE", 5),
		FactCheckCacheTTL:      time.Duration(GetEnvInt("FACT_CHECK_CACHE_TTL_MINUTES", 30)) * time.Minute,
		RefreshIntervalMinutes: GetEnvInt("REFRESH_INTERVAL_MINUTES", 0),
		FetchRatePerHost:       GetEnvFloat("FETCH_RATE_PER_HOST", 1.0),
		FetchBurst:             GetEnvInt("FETCH_BURST", 3),
	}
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return NewConfigError(ErrConfigValidation, "LISTEN_ADDR must not be empty", nil)
	}
	if c.VectorizerPath == "" || c.ModelPath == "" {
		return NewConfigError(ErrConfigValidation, "artifact paths must not be empty", nil)
	}
	if c.DefaultThreshold < MinThreshold || c.DefaultThreshold > MaxThreshold {
		return NewConfigError(ErrConfigValidation,
			fmt.Sprintf("DEFAULT_THRESHOLD %.2f outside [%.2f, %.2f]", c.DefaultThreshold, MinThreshold, MaxThreshold), nil)
	}
	if c.MaxPerSource < 1 || c.MaxPerSource > MaxPerSourceLimit {
		return NewConfigError(ErrConfigValidation,
			fmt.Sprintf("MAX_PER_SOURCE %d outside [1, %d]", c.MaxPerSource, MaxPerSourceLimit), nil)
	}
	if c.FetchRatePerHost <= 0 {
		return NewConfigError(ErrConfigValidation, "FETCH_RATE_PER_HOST must be positive", nil)
	}
	return nil
}

// Redacted returns a copy safe to expose over the API
func (c *Config) Redacted() Config {
	out := *c
	if out.FactCheckAPIKey != "" {
		out.FactCheckAPIKey = "[REDACTED]"
	}
	if out.OpenAIAPIKey != "" {
		out.OpenAIAPIKey = "[REDACTED]"
	}
	return out
}

// ParseLogLevel maps a config string to a LogLevel
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogDebug
	case "warn", "warning":
		return LogWarning
	case "error":
		return LogError
	default:
		return LogInfo
	}
}
