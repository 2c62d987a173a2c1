/*
Package configs is responsible for loading and parsing the application's configuration settings.

Settings come from operating system environment variables. An optional YAML file named by
CONFIG_FILE is read first, and any environment variable that is set overrides the file value.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// SessionStoreMemory keeps sessions in the process.
	SessionStoreMemory = "memory"

	// SessionStoreRedis keeps sessions in Redis with a key TTL.
	SessionStoreRedis = "redis"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port"`
	PublicDir   string `yaml:"public_dir"`

	// Security Settings
	AllowedOrigins []string `yaml:"allowed_origins"`
	Secret         string   `yaml:"secret"`

	// Session Settings
	SessionTTL   time.Duration `yaml:"session_ttl"`
	SessionStore string        `yaml:"session_store"`
	RedisAddr    string        `yaml:"redis_addr"`
}

// IsDevelopment reports whether the application runs with development defaults.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads and parses the application configuration.
// It provides default values for each configuration item and performs necessary type conversions and validation.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// --- General Server Settings ---
	setString(&cfg.Environment, "ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
		}
		cfg.Port = port
	}
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	setString(&cfg.PublicDir, "PUBLIC_DIR")
	if cfg.PublicDir == "" {
		cfg.PublicDir = "public"
	}

	// --- Security Settings ---
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		cfg.AllowedOrigins = nil
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}
	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = []string{}
	}

	setString(&cfg.Secret, "SECRET")
	if cfg.Secret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("SECRET environment variable is required in %s environment for security", cfg.Environment)
		}
		cfg.Secret = "your_default_insecure_secret_key_change_me"
	}

	// --- Session Settings ---
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL environment variable: %w", err)
		}
		cfg.SessionTTL = ttl
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.SessionTTL < 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	setString(&cfg.SessionStore, "SESSION_STORE")
	switch cfg.SessionStore {
	case "":
		cfg.SessionStore = SessionStoreMemory
	case SessionStoreMemory:
	case SessionStoreRedis:
		setString(&cfg.RedisAddr, "REDIS_ADDR")
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR environment variable is required when SESSION_STORE is %q", SessionStoreRedis)
		}
	default:
		return nil, fmt.Errorf("unsupported SESSION_STORE %q (expected %q or %q)", cfg.SessionStore, SessionStoreMemory, SessionStoreRedis)
	}

	return cfg, nil
}

// loadFile decodes the YAML file at path into cfg.
func loadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
