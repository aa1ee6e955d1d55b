package config

import (
	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the new configuration every time the file is
// rewritten with valid content. Invalid edits are logged and ignored.
func (c *Config) Watch(onChange func(*Config)) {
	if c.v == nil {
		return
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		next, err := fromViper(c.v)
		if err != nil {
			c.log.Warn("Ignoring invalid config change", "path", e.Name, "error", err.Error())
			return
		}
		next.path = c.path
		next.v = c.v
		next.log = c.log

		c.log.Info("Configuration reloaded", "path", e.Name, "max_history_depth", next.maxHistoryDepth)
		onChange(next)
	})
	c.v.WatchConfig()
}
