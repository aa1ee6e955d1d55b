package app

import "errors"

var (
	// ErrSourceUnavailable means the WM or the command socket could not be set
	// up at startup.
	ErrSourceUnavailable = errors.New("event source unavailable")
	// ErrSubscription means a running producer lost its source.
	ErrSubscription = errors.New("event subscription failed")
	// ErrInvariant means the dispatcher reached a state that should not exist.
	ErrInvariant = errors.New("internal invariant violated")
)
