package config

import (
	"strings"
	"time"
)

const (
	DefaultWorkers              = 2
	DefaultQueueSize            = 256
	DefaultJoinTimeout          = 5000 * time.Millisecond
	DefaultLargeFolderThreshold = int64(1_000_000_000)
	DefaultFallbackMultiplier   = int64(3)
)

// ApplyDefaults replaces zero values with defaults and normalizes case.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applySizesDefaults(&cfg.Sizes)
	applyBrowserDefaults(&cfg.Browser)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)
	if cfg.Format == "" {
		cfg.Format = "console"
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

func applySizesDefaults(cfg *SizesConfig) {
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.JoinTimeout == 0 {
		cfg.JoinTimeout = DefaultJoinTimeout
	}
	if cfg.LargeFolderThreshold == 0 {
		cfg.LargeFolderThreshold = DefaultLargeFolderThreshold
	}
	if cfg.FallbackMultiplier == 0 {
		cfg.FallbackMultiplier = DefaultFallbackMultiplier
	}
}

func applyBrowserDefaults(cfg *BrowserConfig) {
	if cfg.SortKey == "" {
		cfg.SortKey = "name"
	}
	cfg.SortKey = strings.ToLower(cfg.SortKey)
	if cfg.Direction == "" {
		cfg.Direction = "asc"
	}
	cfg.Direction = strings.ToLower(cfg.Direction)
	if len(cfg.Roots) == 0 {
		cfg.Roots = nil
	}
}

// GetDefaultConfig returns a fully populated default configuration.
func GetDefaultConfig() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}
