package config

import (
	"fmt"
	"os"
	"path/filepath"

	"i3-last/pkg/core"
)

// DefaultPath returns ~/.config/i3-last/config.yaml (honouring XDG_CONFIG_HOME).
func DefaultPath() (string, error) {
	homeConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(homeConfigDir, appName, "config.yaml"), nil
}

// FindConfig locates and loads the configuration.
//
// A provided path must exist. Otherwise the default path is used and created
// with built-in values on first run.
func FindConfig(providedPath string, log core.Logger) (*Config, error) {
	log.Info("Looking for configuration", "provided_path", providedPath)

	if providedPath != "" {
		config, err := loadConfigFromPath(providedPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from provided path: %w", err)
		}
		return config, nil
	}

	defaultPath, err := DefaultPath()
	if err != nil {
		log.Error("Failed to resolve default config path", err)
		return nil, err
	}

	if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
		log.Info("Creating default configuration", "path", defaultPath)
		if err := writeDefaultConfig(defaultPath); err != nil {
			log.Error("Failed to write default config", err, "path", defaultPath)
			return nil, err
		}
	}

	return loadConfigFromPath(defaultPath, log)
}
