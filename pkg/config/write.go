package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/filetug/foldertug/pkg/fsutils"
	"gopkg.in/yaml.v3"
)

// WriteDefault writes the default configuration as YAML to path,
// creating parent directories. An existing file is left untouched
// unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}
	data, err := yaml.Marshal(defaultDocument(GetDefaultConfig()))
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	dir := filepath.Dir(path)
	exists, err := fsutils.DirExists(dir)
	if err != nil {
		return fmt.Errorf("failed to check config dir: %w", err)
	}
	if !exists {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// defaultDocument mirrors the mapstructure keys.
// Durations are written in their string form so viper can parse them back.
func defaultDocument(cfg *Config) map[string]any {
	roots := cfg.Browser.Roots
	if roots == nil {
		roots = []string{}
	}
	return map[string]any{
		"logging": map[string]any{
			"level":  cfg.Logging.Level,
			"format": cfg.Logging.Format,
			"output": cfg.Logging.Output,
		},
		"sizes": map[string]any{
			"workers":                cfg.Sizes.Workers,
			"queue_size":             cfg.Sizes.QueueSize,
			"join_timeout":           cfg.Sizes.JoinTimeout.String(),
			"large_folder_threshold": cfg.Sizes.LargeFolderThreshold,
			"fallback_multiplier":    cfg.Sizes.FallbackMultiplier,
		},
		"browser": map[string]any{
			"sort_key":  cfg.Browser.SortKey,
			"direction": cfg.Browser.Direction,
			"roots":     roots,
		},
		"metrics": map[string]any{
			"addr": cfg.Metrics.Addr,
		},
	}
}
