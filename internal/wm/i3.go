package wm

import (
	"errors"
	"fmt"

	"go.i3wm.org/i3/v4"

	"i3-last/internal/event"
	"i3-last/internal/history"
)

// ErrSubscription is returned by Watch when the event stream cannot be
// established or breaks.
var ErrSubscription = errors.New("window event subscription failed")

// Watch subscribes to window events and forwards focus and close changes.
func (m *Manager) Watch(sink event.Sink) error {
	recv := i3.Subscribe(i3.WindowEventType)
	m.log.Info("Subscribed to window events", "wm", m.name)

	for recv.Next() {
		ev, ok := normalize(recv.Event())
		if !ok {
			continue
		}

		m.log.Debug("Window event", "kind", ev.Kind.String(), "window", ev.Window)
		if err := sink.Push(ev); err != nil {
			recv.Close()
			return fmt.Errorf("failed to queue %s: %w", ev.Kind, err)
		}
	}

	if err := recv.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrSubscription, err)
	}
	return fmt.Errorf("%w: %s closed the event stream", ErrSubscription, m.name)
}

// normalize maps an i3 event onto our two window events and drops the rest.
func normalize(raw i3.Event) (event.Event, bool) {
	ev, ok := raw.(*i3.WindowEvent)
	if !ok {
		return event.Event{}, false
	}

	id := history.WindowID(ev.Container.ID)
	switch ev.Change {
	case "focus":
		return event.Focus(id), true
	case "close":
		return event.Close(id), true
	default:
		return event.Event{}, false
	}
}

// FocusWindow asks the WM to focus the container with the given id
func (m *Manager) FocusWindow(id history.WindowID) error {
	m.log.Debug("Focusing window", "window", id)

	cmd := fmt.Sprintf("[con_id=%d] focus", id)
	if _, err := i3.RunCommand(cmd); err != nil {
		return fmt.Errorf("failed to focus window %d: %w", id, err)
	}
	return nil
}
