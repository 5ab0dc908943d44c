package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	APIBaseURL     string        `yaml:"apiBaseURL" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"requestTimeout,omitempty"`

	// SessionPath is where the bearer token and host identity are persisted.
	// Defaults to ~/.voluntree/session.json.
	SessionPath string `yaml:"sessionPath,omitempty"`

	// CacheBackend selects where the opportunity cache lives: "file" (default)
	// or "postgres".
	CacheBackend string `yaml:"cacheBackend,omitempty" validate:"omitempty,oneof=file postgres"`
	CachePath    string `yaml:"cachePath,omitempty"`
	PostgresURL  string `yaml:"postgresURL,omitempty" validate:"required_if=CacheBackend postgres"`

	// RequestsPerSecond caps outgoing API calls; 0 means the default of 5.
	RequestsPerSecond float64 `yaml:"requestsPerSecond,omitempty" validate:"omitempty,gt=0"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for the given environment,
// looking for voluntree_<env>_config.yaml in the current directory first, then
// in the user's home directory. A .env file (if present) and environment
// variables override file values.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// applyEnvOverrides loads .env (ignored if absent) and overrides config fields
// from environment variables
func applyEnvOverrides(cfg *Config) {
	godotenv.Load()

	if v := os.Getenv("VOLUNTREE_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("VOLUNTREE_SESSION_PATH"); v != "" {
		cfg.SessionPath = v
	}
	if v := os.Getenv("VOLUNTREE_CACHE_BACKEND"); v != "" {
		cfg.CacheBackend = v
	}
	if v := os.Getenv("VOLUNTREE_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("VOLUNTREE_POSTGRES_URL"); v != "" {
		cfg.PostgresURL = v
	}
}

// applyDefaults fills in defaults for optional fields
func applyDefaults(cfg *Config) {
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = "file"
	}
	if cfg.SessionPath == "" {
		cfg.SessionPath = defaultStatePath("session.json")
	}
	if cfg.CachePath == "" {
		cfg.CachePath = defaultStatePath("opportunities.json")
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 5
	}
}

// defaultStatePath returns ~/.voluntree/<name>, falling back to the current
// directory if the home directory cannot be determined
func defaultStatePath(name string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(homeDir, ".voluntree", name)
}

// findConfigFile searches for voluntree_<env>_config.yaml in current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := fmt.Sprintf("voluntree_%s_config.yaml", env)

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
