package wm

import (
	"i3-last/internal/event"
	"i3-last/internal/history"
)

type WindowManager interface {
	// Watch streams focus and close events into sink. It blocks until the
	// subscription breaks or sink rejects an event.
	Watch(sink event.Sink) error
	// FocusWindow brings the specified window to front
	FocusWindow(id history.WindowID) error
	// Name returns the WM name for logging/display
	Name() string
}

var _ WindowManager = (*Manager)(nil)
