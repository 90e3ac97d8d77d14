package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"papelog/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	BackendBaseURL string
	LogLevel       string
	MaxFileSize    int64
	PollInterval   time.Duration
	UploadTimeout  time.Duration
	TTSLanguage    string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort: getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		// Absence of the backend URL is not validated upfront: it surfaces
		// as failed outbound calls, matching how the UI has always behaved.
		BackendBaseURL: strings.TrimRight(getEnvOrDefault("BACKEND_BASE_URL", ""), "/"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		MaxFileSize:    getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		PollInterval:   getEnvSecondsOrDefault("POLL_INTERVAL_SECONDS", 3*time.Second),
		// Structural parsing can be slow; bound the upload wait generously
		// instead of waiting forever.
		UploadTimeout: getEnvSecondsOrDefault("UPLOAD_TIMEOUT_SECONDS", 10*time.Minute),
		TTSLanguage:   getEnvOrDefault("TTS_LANGUAGE", "en"),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetBackendBaseURL returns the parsing backend base URL
func (c *AppConfig) GetBackendBaseURL() string {
	return c.BackendBaseURL
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetPollInterval returns the job status polling interval
func (c *AppConfig) GetPollInterval() time.Duration {
	return c.PollInterval
}

// GetUploadTimeout returns the ceiling for one upload-and-submit call
func (c *AppConfig) GetUploadTimeout() time.Duration {
	return c.UploadTimeout
}

// GetTTSLanguage returns the language sent with speech synthesis requests
func (c *AppConfig) GetTTSLanguage() string {
	return c.TTSLanguage
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvSecondsOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
