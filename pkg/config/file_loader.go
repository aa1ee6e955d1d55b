package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"i3-last/pkg/core"
)

// newViper prepares a viper instance bound to path with defaults and the
// I3LAST_ environment overrides.
func newViper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("I3LAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfigFromPath loads the configuration from a file.
func loadConfigFromPath(path string, log core.Logger) (*Config, error) {
	log.Debug("Loading configuration from file", "path", path)

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		log.Error("Failed to read config file", err, "path", path)
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	config, err := fromViper(v)
	if err != nil {
		log.Error("Config file rejected", err, "path", path)
		return nil, err
	}
	config.path = path
	config.v = v
	config.log = log

	log.Debug("Config parsed successfully",
		"max_history_depth", config.maxHistoryDepth,
		"socket_path", config.socketPath)
	return config, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return fromFile(fc)
}

// fromFile validates fc and fills in computed defaults.
func fromFile(fc fileConfig) (*Config, error) {
	if fc.MaxHistoryDepth < 1 {
		return nil, fmt.Errorf("%w: max_history_depth must be at least 1, got %d", ErrInvalid, fc.MaxHistoryDepth)
	}

	signals, err := fc.Signals.resolve()
	if err != nil {
		return nil, err
	}

	socketPath := fc.SocketPath
	if socketPath == "" {
		socketPath = defaultSocketPath()
	}
	logFile := fc.LogFile
	if logFile == "" {
		logFile = defaultLogFile()
	}

	return &Config{
		maxHistoryDepth: fc.MaxHistoryDepth,
		signals:         signals,
		socketPath:      socketPath,
		logFile:         logFile,
		notifyOnFatal:   fc.NotifyOnFatal,
	}, nil
}

// writeDefaultConfig creates path with the built-in values.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(defaultFile())
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}

	header := "# i3-last configuration\n# signals are base+offset; bind keys with e.g. `pkill -RTMIN+3 i3-last`\n"
	return os.WriteFile(path, append([]byte(header), data...), 0644)
}
