package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration. It merges file defaults and
// environment overrides to support both local and deployed runs.
type Config struct {
	AppName string
	Version string
	Debug   bool

	HTTPPort int

	DataFile   string
	AuthSecret string

	LogLevel string
	LogFile  string

	MaxUsers int
	Timeout  time.Duration

	SessionTTL        time.Duration
	MaxFailedAttempts int
	BcryptCost        int
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	App struct {
		Name     string `yaml:"name"`
		Version  string `yaml:"version"`
		Debug    *bool  `yaml:"debug"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"app"`
	Storage struct {
		DataFile string `yaml:"data_file"`
	} `yaml:"storage"`
	Auth struct {
		Secret            string `yaml:"secret"`
		SessionTTLHours   int    `yaml:"session_ttl_hours"`
		MaxFailedAttempts int    `yaml:"max_failed_attempts"`
		BcryptCost        int    `yaml:"bcrypt_cost"`
	} `yaml:"auth"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
	Limits struct {
		MaxUsers       int `yaml:"max_users"`
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"limits"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// A missing config file is not an error; the defaults are complete.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		AppName:           "taskdeck",
		Version:           "1.0.0",
		Debug:             true,
		HTTPPort:          8080,
		DataFile:          "taskdeck_data.json",
		AuthSecret:        "test-secret-key-12345",
		LogLevel:          "INFO",
		MaxUsers:          1000,
		Timeout:           30 * time.Second,
		SessionTTL:        24 * time.Hour,
		MaxFailedAttempts: 3,
		BcryptCost:        12,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.App.Name != "" {
			cfg.AppName = f.App.Name
		}
		if f.App.Version != "" {
			cfg.Version = f.App.Version
		}
		if f.App.Debug != nil {
			cfg.Debug = *f.App.Debug
		}
		if f.App.HTTPPort > 0 {
			cfg.HTTPPort = f.App.HTTPPort
		}
		if f.Storage.DataFile != "" {
			cfg.DataFile = f.Storage.DataFile
		}
		if f.Auth.Secret != "" {
			cfg.AuthSecret = f.Auth.Secret
		}
		if f.Auth.SessionTTLHours > 0 {
			cfg.SessionTTL = time.Duration(f.Auth.SessionTTLHours) * time.Hour
		}
		if f.Auth.MaxFailedAttempts > 0 {
			cfg.MaxFailedAttempts = f.Auth.MaxFailedAttempts
		}
		if f.Auth.BcryptCost > 0 {
			cfg.BcryptCost = f.Auth.BcryptCost
		}
		if f.Logging.Level != "" {
			cfg.LogLevel = f.Logging.Level
		}
		if f.Logging.File != "" {
			cfg.LogFile = f.Logging.File
		}
		if f.Limits.MaxUsers > 0 {
			cfg.MaxUsers = f.Limits.MaxUsers
		}
		if f.Limits.TimeoutSeconds > 0 {
			cfg.Timeout = time.Duration(f.Limits.TimeoutSeconds) * time.Second
		}
	}

	cfg.AppName = envOrDefault("APP_NAME", cfg.AppName)
	cfg.Version = envOrDefault("APP_VERSION", cfg.Version)
	cfg.Debug = envBool("DEBUG", cfg.Debug)
	cfg.DataFile = envOrDefault("DATABASE_URL", cfg.DataFile)
	cfg.AuthSecret = envOrDefault("AUTH_SECRET", cfg.AuthSecret)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envOrDefault("LOG_FILE", cfg.LogFile)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.MaxUsers = envInt("MAX_USERS", cfg.MaxUsers)
	cfg.Timeout = time.Duration(envInt("TIMEOUT", int(cfg.Timeout.Seconds()))) * time.Second
	cfg.SessionTTL = time.Duration(envInt("SESSION_EXPIRY_HOURS", int(cfg.SessionTTL.Hours()))) * time.Hour
	cfg.MaxFailedAttempts = envInt("MAX_FAILED_ATTEMPTS", cfg.MaxFailedAttempts)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)

	if cfg.DataFile == "" {
		return Config{}, fmt.Errorf("missing data file path")
	}
	if cfg.AuthSecret == "" {
		return Config{}, fmt.Errorf("missing AUTH_SECRET")
	}

	return cfg, nil
}

// IsProduction reports whether the process runs without debug conveniences.
func (c Config) IsProduction() bool {
	return !c.Debug
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envBool parses common boolean env forms while keeping a deterministic fallback.
func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return fallback
	}
}
