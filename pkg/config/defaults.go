package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"i3-last/internal/history"
	"i3-last/pkg/logger"
)

const (
	appName = "i3-last"

	// glibc keeps the first two realtime signals for its thread implementation,
	// so SIGRTMIN is usually 34 and the first safe one is 36.
	DefaultSignalBase     = 36
	DefaultForwardOffset  = 0
	DefaultBackwardOffset = 1
	DefaultLastOffset     = 2
)

// defaultSocketPath prefers the per-user runtime dir.
func defaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, appName+".sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d.sock", appName, os.Getuid()))
}

func defaultLogFile() string {
	path, err := logger.DefaultLogPath()
	if err != nil {
		return ""
	}
	return path
}

// defaultFile is what gets written when no config file exists yet.
func defaultFile() fileConfig {
	return fileConfig{
		MaxHistoryDepth: history.DefaultMaxDepth,
		Signals: signalFile{
			Base:     DefaultSignalBase,
			Forward:  DefaultForwardOffset,
			Backward: DefaultBackwardOffset,
			Last:     DefaultLastOffset,
		},
		NotifyOnFatal: true,
	}
}

func setDefaults(v *viper.Viper) {
	d := defaultFile()
	v.SetDefault("max_history_depth", d.MaxHistoryDepth)
	v.SetDefault("signals.base", d.Signals.Base)
	v.SetDefault("signals.forward", d.Signals.Forward)
	v.SetDefault("signals.backward", d.Signals.Backward)
	v.SetDefault("signals.last", d.Signals.Last)
	v.SetDefault("socket_path", "")
	v.SetDefault("log_file", "")
	v.SetDefault("notify_on_fatal", d.NotifyOnFatal)
}

// DefaultConfig returns the built-in configuration without touching the disk.
func DefaultConfig() *Config {
	c, err := fromFile(defaultFile())
	if err != nil {
		// the built-in values always validate
		panic(err)
	}
	return c
}
