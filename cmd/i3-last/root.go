package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"i3-last/internal/app"
	"i3-last/pkg/config"
	"i3-last/pkg/logger"
	"i3-last/pkg/notify"
)

var errConfig = errors.New("configuration unavailable")

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	debug      bool
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "i3-last",
		Short: "Alt-tab style window history for i3 and sway",
		Long: `i3-last follows window focus changes and lets you walk back and forth
through the windows you used, the way a browser walks its history.

Bind the navigation commands in your WM config, for example:

  bindsym $mod+Tab exec --no-startup-id i3-last back
  bindsym $mod+Shift+Tab exec --no-startup-id i3-last forward`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(opts, version)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: ~/.config/i3-last/config.yaml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"enable debug logging on stderr")

	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the daemon in the foreground (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(opts, version)
		},
	})
	addClientCommands(root, opts)

	return root
}

func newLogger(opts *options) (*logger.Logger, error) {
	level := zerolog.InfoLevel
	logOpts := []logger.Option{}
	if opts.debug {
		level = zerolog.DebugLevel
		logOpts = append(logOpts, logger.WithConsole())
	}
	logOpts = append(logOpts, logger.WithLevel(level))
	return logger.NewLogger(logOpts...)
}

func runDaemon(opts *options, version string) error {
	log, err := newLogger(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	cfg, err := config.FindConfig(opts.configPath, log)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return err
		}
		return fmt.Errorf("%w: %w", errConfig, err)
	}

	if err := log.AddFile(cfg.LogFile()); err != nil {
		log.Warn("File logging disabled", "path", cfg.LogFile(), "error", err.Error())
	}

	log.Info("Starting i3-last",
		"version", version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"config", cfg.Path(),
		"debug", opts.debug)

	err = runApp(cfg, log)
	if err != nil {
		log.Error("i3-last stopped", err)
		if cfg.NotifyOnFatal() {
			n := notify.NewNotifyService("i3-last", log)
			if nerr := n.Error("i3-last stopped", err); nerr != nil {
				log.Warn("Could not raise notification", "error", nerr.Error())
			}
		}
	}
	return err
}

func runApp(cfg *config.Config, log *logger.Logger) error {
	daemon, err := app.NewI3Last(cfg, log)
	if err != nil {
		return err
	}
	return daemon.Run()
}
