package main

import (
	"errors"
	"fmt"
	"os"

	"i3-last/internal/app"
	"i3-last/pkg/config"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

const (
	exitFailure   = 1
	exitConfig    = 2
	exitSource    = 3
	exitSubscribe = 4
	exitSoftware  = 70 // EX_SOFTWARE
)

func main() {
	root := newRootCmd(fmt.Sprintf("%s (commit: %s)", version, commit))
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "i3-last: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, config.ErrInvalid), errors.Is(err, errConfig):
		return exitConfig
	case errors.Is(err, app.ErrSourceUnavailable):
		return exitSource
	case errors.Is(err, app.ErrSubscription):
		return exitSubscribe
	case errors.Is(err, app.ErrInvariant):
		return exitSoftware
	default:
		return exitFailure
	}
}
