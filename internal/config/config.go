// Package config resolves tool configuration from defaults, an optional
// YAML config file, and environment variable overrides, in that order.
// The core packages never read the environment themselves; they receive
// resolved values as parameters.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	EnvDBPath      = "SIGGUARD_DB_PATH"
	EnvDataDir     = "SIGGUARD_DATA_DIR"
	EnvMaxFileSize = "SIGGUARD_MAX_FILE_SIZE"
	EnvLogLevel    = "SIGGUARD_LOG_LEVEL"
)

// DefaultMaxFileSize caps candidate files at 100 MiB.
const DefaultMaxFileSize = 100 << 20

const (
	baseDirName    = ".sigguard"
	configFileName = "config.yaml"
	dbFileName     = "signatures.db"
)

// Config holds the resolved tool configuration.
type Config struct {
	// DBPath is the signature database location.
	DBPath string `yaml:"db_path"`

	// DataDir is the base directory for tool state.
	DataDir string `yaml:"data_dir"`

	// MaxFileSize is the largest candidate file the validator accepts,
	// in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Load resolves the configuration: built-in defaults, then the config
// file if present, then environment overrides.
func Load() (*Config, error) {
	cfg := defaults()

	if path := configFilePath(); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, dbFileName)
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}

	return cfg, nil
}

func defaults() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DataDir:     filepath.Join(home, baseDirName, "data"),
		MaxFileSize: DefaultMaxFileSize,
		LogLevel:    "info",
	}
}

func configFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, baseDirName, configFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
		// A data dir override moves the default database with it unless
		// the db path is itself overridden below.
		cfg.DBPath = ""
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvMaxFileSize); v != "" {
		if size, err := strconv.ParseInt(v, 10, 64); err == nil && size > 0 {
			cfg.MaxFileSize = size
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
