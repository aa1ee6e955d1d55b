package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"i3-last/internal/history"
	"i3-last/internal/ipc"
	"i3-last/pkg/config"
	"i3-last/pkg/core"
)

var clientCommands = []struct {
	name  string
	short string
}{
	{"back", "Focus the previous window in history"},
	{"forward", "Focus the next window after going back"},
	{"last", "Undo the most recent navigation step"},
	{"quit", "Stop the running daemon"},
	{"status", "Print the daemon's window history"},
}

func addClientCommands(root *cobra.Command, opts *options) {
	for _, c := range clientCommands {
		name := c.name
		root.AddCommand(&cobra.Command{
			Use:   name,
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(cmd.OutOrStdout(), opts, name)
			},
		})
	}
}

func send(out io.Writer, opts *options, command string) error {
	log, err := newLogger(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	resp, err := ipc.SendCommand(socketPath(opts, log), command, log)
	if err != nil {
		return err
	}
	if resp.History != nil {
		printSnapshot(out, *resp.History)
	}
	return nil
}

// socketPath reads the socket location from the config, falling back to the
// built-in default so that keybindings keep working with a broken config.
func socketPath(opts *options, log core.Logger) string {
	cfg, err := config.FindConfig(opts.configPath, log)
	if err != nil {
		log.Warn("Using default socket path", "error", err.Error())
		cfg = config.DefaultConfig()
	}
	return cfg.SocketPath()
}

func printSnapshot(out io.Writer, s history.Snapshot) {
	fmt.Fprintf(out, "current:  %s\n", optionalID(s.Current))
	fmt.Fprintf(out, "pending:  %s\n", optionalID(s.Pending))
	fmt.Fprintf(out, "visited:  %v\n", s.Visited)
	fmt.Fprintf(out, "skipped:  %v\n", s.Skipped)
	last := s.LastDirection
	if last == "" {
		last = "-"
	}
	fmt.Fprintf(out, "last:     %s\n", last)
	fmt.Fprintf(out, "depth:    %d\n", s.MaxDepth)
}

func optionalID(id *history.WindowID) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(int64(*id))
}
