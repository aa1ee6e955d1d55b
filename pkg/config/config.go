package config

import (
	"errors"

	"github.com/spf13/viper"

	"i3-last/pkg/core"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the application configuration.
type Config struct {
	// Configurable via YAML file (private fields to enforce immutability)
	maxHistoryDepth int
	signals         SignalMap
	socketPath      string
	logFile         string
	notifyOnFatal   bool

	// Internal fields
	path string
	v    *viper.Viper
	log  core.Logger
}

// fileConfig is the on-disk layout.
type fileConfig struct {
	MaxHistoryDepth int        `yaml:"max_history_depth" mapstructure:"max_history_depth"`
	Signals         signalFile `yaml:"signals" mapstructure:"signals"`
	SocketPath      string     `yaml:"socket_path,omitempty" mapstructure:"socket_path"`
	LogFile         string     `yaml:"log_file,omitempty" mapstructure:"log_file"`
	NotifyOnFatal   bool       `yaml:"notify_on_fatal" mapstructure:"notify_on_fatal"`
}

type signalFile struct {
	Base     int `yaml:"base" mapstructure:"base"`
	Forward  int `yaml:"forward" mapstructure:"forward"`
	Backward int `yaml:"backward" mapstructure:"backward"`
	Last     int `yaml:"last" mapstructure:"last"`
}

// MaxHistoryDepth returns the bound applied to both history stacks.
func (c *Config) MaxHistoryDepth() int {
	return c.maxHistoryDepth
}

// Signals returns the resolved realtime signal numbers.
func (c *Config) Signals() SignalMap {
	return c.signals
}

// SocketPath returns where the command socket listens.
func (c *Config) SocketPath() string {
	return c.socketPath
}

// LogFile returns the daemon log file.
func (c *Config) LogFile() string {
	return c.logFile
}

func (c *Config) NotifyOnFatal() bool {
	return c.notifyOnFatal
}

// Path returns the file the configuration was read from.
func (c *Config) Path() string {
	return c.path
}
