// Package event defines the normalized events that flow from the window
// manager and the command sources to the dispatcher.
package event

import (
	"fmt"

	"i3-last/internal/history"
)

// Kind identifies an event.
type Kind int

const (
	// FocusChanged reports that Window gained focus.
	FocusChanged Kind = iota + 1
	// WindowClosed reports that Window was destroyed.
	WindowClosed
	NavigateBackward
	NavigateForward
	// RepeatLast undoes the most recent navigation.
	RepeatLast
	// Terminate stops the dispatcher.
	Terminate
	// Reconfigure carries a new history depth.
	Reconfigure
	// Status asks the dispatcher to send a history snapshot on Reply.
	Status
	// SourceFailed reports that a producer died; Err holds the cause.
	SourceFailed
)

var kindNames = map[Kind]string{
	FocusChanged:     "focus_changed",
	WindowClosed:     "window_closed",
	NavigateBackward: "navigate_backward",
	NavigateForward:  "navigate_forward",
	RepeatLast:       "repeat_last",
	Terminate:        "terminate",
	Reconfigure:      "reconfigure",
	Status:           "status",
	SourceFailed:     "source_failed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a single item on the dispatcher queue. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind   Kind
	Window history.WindowID
	Depth  int
	Reply  chan<- history.Snapshot
	Err    error
}

func Focus(id history.WindowID) Event {
	return Event{Kind: FocusChanged, Window: id}
}

func Close(id history.WindowID) Event {
	return Event{Kind: WindowClosed, Window: id}
}

func Command(k Kind) Event {
	return Event{Kind: k}
}

func Failed(err error) Event {
	return Event{Kind: SourceFailed, Err: err}
}

// Sink accepts events from a producer.
type Sink interface {
	Push(Event) error
}
