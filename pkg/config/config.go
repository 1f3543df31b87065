package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Server ServerConfig `yaml:"server"`
	App    AppConfig    `yaml:"app"`
}

// ScanConfig describes the external scan service
type ScanConfig struct {
	ServiceURL string `yaml:"service_url"`
	Timeout    int    `yaml:"timeout"` // seconds
}

// ServerConfig holds the web surface settings
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Debug          bool     `yaml:"debug"`
}

// AppConfig holds application-wide settings
type AppConfig struct {
	LogLevel string `yaml:"log_level"`
	Locale   string `yaml:"locale"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			ServiceURL: "http://localhost:8000",
			Timeout:    120,
		},
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		},
		App: AppConfig{
			LogLevel: "info",
			Locale:   "en",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path
// and environment variables, in that order of precedence (last wins).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, &ConfigError{Field: "file", Message: fmt.Sprintf("invalid config file %s: %v", path, err)}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Scan.ServiceURL = getEnv("EXPOSURE_SERVICE_URL", c.Scan.ServiceURL)
	c.Scan.Timeout = getEnvAsInt("EXPOSURE_SCAN_TIMEOUT", c.Scan.Timeout)
	c.Server.Host = getEnv("EXPOSURE_HOST", c.Server.Host)
	c.Server.Port = getEnvAsInt("EXPOSURE_PORT", c.Server.Port)
	c.Server.Debug = getEnvAsBool("EXPOSURE_DEBUG", c.Server.Debug)
	if origins := os.Getenv("EXPOSURE_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}
	c.App.LogLevel = getEnv("LOG_LEVEL", c.App.LogLevel)
	c.App.Locale = getEnv("EXPOSURE_LOCALE", c.App.Locale)
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	validations := []struct {
		field     string
		value     int
		min, max  int
		fieldName string
	}{
		{"scan.timeout", c.Scan.Timeout, 1, 3600, "Scan timeout"},
		{"server.port", c.Server.Port, 1, 65535, "Server port"},
	}

	for _, v := range validations {
		if err := validateRange(v.field, v.value, v.min, v.max, v.fieldName); err != nil {
			return err
		}
	}

	if err := validateServiceURL(c.Scan.ServiceURL); err != nil {
		return err
	}

	if err := validateOrigins(c.Server.AllowedOrigins); err != nil {
		return err
	}

	if err := validateLogLevel(c.App.LogLevel); err != nil {
		return err
	}

	return validateLocale(c.App.Locale)
}

func validateRange(field string, value, min, max int, fieldName string) error {
	if value < min || value > max {
		return &ConfigError{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %d and %d", fieldName, min, max),
		}
	}
	return nil
}

func validateServiceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ConfigError{
			Field:   "scan.service_url",
			Message: fmt.Sprintf("Invalid scan service URL '%s': expected http(s)://host[:port]", raw),
		}
	}
	return nil
}

func validateOrigins(origins []string) error {
	if len(origins) == 0 {
		return &ConfigError{Field: "server.allowed_origins", Message: "At least one allowed origin is required"}
	}
	for _, origin := range origins {
		if origin == "*" || strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://") {
			continue
		}
		return &ConfigError{
			Field:   "server.allowed_origins",
			Message: fmt.Sprintf("Invalid origin '%s': expected * or http(s)://host[:port]", origin),
		}
	}
	return nil
}

func validateLogLevel(logLevel string) error {
	validLevels := []string{"debug", "info", "warning", "warn", "error", "fatal", "silent"}
	logLevelLower := strings.ToLower(logLevel)

	for _, valid := range validLevels {
		if logLevelLower == valid {
			return nil
		}
	}

	return &ConfigError{
		Field:   "app.log_level",
		Message: fmt.Sprintf("Invalid log level '%s'. Valid levels are: %s", logLevel, strings.Join(validLevels, ", ")),
	}
}

func validateLocale(locale string) error {
	switch locale {
	case "en", "it":
		return nil
	}
	return &ConfigError{
		Field:   "app.locale",
		Message: fmt.Sprintf("Unsupported locale '%s'. Supported locales are: en, it", locale),
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
