package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	Backup      BackupConfig  `toml:"backup"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// StorageConfig contains CSV storage settings.
type StorageConfig struct {
	DataDir         string `toml:"data_dir"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// BackupConfig contains periodic data directory snapshot settings.
type BackupConfig struct {
	Enabled      bool   `toml:"enabled"`
	Schedule     string `toml:"schedule"`
	Dir          string `toml:"dir"`
	MaxSnapshots int    `toml:"max_snapshots"`
}

// IsDevMode reports whether the portal runs in dev mode.
func (c *Config) IsDevMode() bool {
	return c.Environment == "dev"
}

// BaseURL returns the externally visible base URL of the server.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks mandatory configuration and returns human-readable issues.
func (c *Config) Validate() []string {
	var issues []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Server.Host == "" {
		issues = append(issues, "server.host must not be empty")
	}
	if c.Storage.DataDir == "" {
		issues = append(issues, "storage.data_dir must not be empty")
	}
	if c.Backup.Enabled && c.Backup.Schedule == "" {
		issues = append(issues, "backup.schedule must be set when backup.enabled is true")
	}
	if c.Backup.Enabled && c.Backup.Dir == "" {
		issues = append(issues, "backup.dir must be set when backup.enabled is true")
	}
	return issues
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies GAMES_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("GAMES_ENVIRONMENT"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("GAMES_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("GAMES_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if dataDir := os.Getenv("GAMES_DATA_DIR"); dataDir != "" {
		config.Storage.DataDir = dataDir
	}
	if level := os.Getenv("GAMES_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if backupDir := os.Getenv("GAMES_BACKUP_DIR"); backupDir != "" {
		config.Backup.Dir = backupDir
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host, dataDir string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
	if dataDir != "" {
		config.Storage.DataDir = dataDir
	}
}
