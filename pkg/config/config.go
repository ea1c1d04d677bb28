package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "FOLDERTUG"

// Config is the complete foldertug configuration.
//
// Sources, highest precedence first:
//  1. Environment variables (FOLDERTUG_*)
//  2. Configuration file (YAML)
//  3. Default values
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Sizes   SizesConfig   `mapstructure:"sizes"`
	Browser BrowserConfig `mapstructure:"browser"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Valid values: DEBUG, INFO, WARN, ERROR (normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR"`

	// Valid values: console, json
	Format string `mapstructure:"format" validate:"required,oneof=console json"`

	// stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required"`
}

// SizesConfig tunes the folder size calculator.
type SizesConfig struct {
	Workers   int `mapstructure:"workers" validate:"required,gte=1,lte=64"`
	QueueSize int `mapstructure:"queue_size" validate:"required,gte=1"`

	// JoinTimeout bounds the parallel walk of a large folder.
	JoinTimeout time.Duration `mapstructure:"join_timeout" validate:"required,gt=0"`

	// LargeFolderThreshold is compared with a folder's shallow length
	// to choose between the serial and the parallel walk.
	LargeFolderThreshold int64 `mapstructure:"large_folder_threshold" validate:"required,gt=0"`

	FallbackMultiplier int64 `mapstructure:"fallback_multiplier" validate:"required,gte=1"`
}

// BrowserConfig holds the initial browser state.
type BrowserConfig struct {
	SortKey   string `mapstructure:"sort_key" validate:"required,oneof=name size extension"`
	Direction string `mapstructure:"direction" validate:"required,oneof=asc desc"`

	// Roots are registered at start-up. The registry is never written back.
	Roots []string `mapstructure:"roots" validate:"dive,required"`
}

// MetricsConfig enables the pprof and /metrics HTTP endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// Load loads configuration from file, environment, and defaults.
// An empty configPath means the default location; a missing file there is fine.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Example: FOLDERTUG_SIZES_WORKERS=4
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees env overrides for keys viper already knows.
	defaults := GetDefaultConfig()
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.output", defaults.Logging.Output)
	v.SetDefault("sizes.workers", defaults.Sizes.Workers)
	v.SetDefault("sizes.queue_size", defaults.Sizes.QueueSize)
	v.SetDefault("sizes.join_timeout", defaults.Sizes.JoinTimeout)
	v.SetDefault("sizes.large_folder_threshold", defaults.Sizes.LargeFolderThreshold)
	v.SetDefault("sizes.fallback_multiplier", defaults.Sizes.FallbackMultiplier)
	v.SetDefault("browser.sort_key", defaults.Browser.SortKey)
	v.SetDefault("browser.direction", defaults.Browser.Direction)
	v.SetDefault("metrics.addr", defaults.Metrics.Addr)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// $XDG_CONFIG_HOME/foldertug/config.yaml
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

var osUserHomeDir = os.UserHomeDir

// getConfigDir returns $XDG_CONFIG_HOME/foldertug, ~/.config/foldertug,
// or "." when no home directory is known.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "foldertug")
	}
	home, err := osUserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "foldertug")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
