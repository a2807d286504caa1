package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4311,
			Host: "localhost",
		},
		Storage: StorageConfig{
			DataDir:         "./data",
			CacheTTLSeconds: 5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console", "file"},
		},
		Backup: BackupConfig{
			Enabled:      false,
			Schedule:     "0 3 * * *",
			Dir:          "./backups",
			MaxSnapshots: 14,
		},
	}
}
