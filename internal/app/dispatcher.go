package app

import (
	"fmt"

	"i3-last/internal/event"
	"i3-last/internal/history"
	"i3-last/pkg/core"
)

// Focuser applies focus directives to the window manager.
type Focuser interface {
	FocusWindow(id history.WindowID) error
}

// Dispatcher is the single consumer of the event queue and the only owner of
// the navigation state.
type Dispatcher struct {
	queue *event.Queue
	state *history.State
	wm    Focuser
	log   core.Logger
}

func NewDispatcher(queue *event.Queue, state *history.State, wm Focuser, log core.Logger) *Dispatcher {
	return &Dispatcher{queue: queue, state: state, wm: wm, log: log}
}

// Run processes events in arrival order until Terminate. It returns an error
// when a producer failed or the queue ran dry, and closes the queue on exit so
// remaining producers stop.
func (d *Dispatcher) Run() error {
	defer d.queue.Close()

	d.log.Info("Dispatcher started", "max_history_depth", d.state.MaxDepth())
	for {
		ev, err := d.queue.Pop()
		if err != nil {
			return fmt.Errorf("%w: event queue closed without terminate: %w", ErrInvariant, err)
		}

		stop, err := d.Handle(ev)
		if err != nil {
			return err
		}
		if stop {
			d.log.Info("Dispatcher stopped")
			return nil
		}
	}
}

// Handle applies one event. stop is true when the loop must end.
func (d *Dispatcher) Handle(ev event.Event) (stop bool, err error) {
	switch ev.Kind {
	case event.FocusChanged:
		d.state.ObserveFocus(ev.Window)
	case event.WindowClosed:
		d.state.ObserveClose(ev.Window)
	case event.NavigateBackward:
		d.focus(d.state.Navigate(history.Backward))
	case event.NavigateForward:
		d.focus(d.state.Navigate(history.Forward))
	case event.RepeatLast:
		d.focus(d.state.RepeatLast())
	case event.Reconfigure:
		d.log.Info("Applying new history depth", "from", d.state.MaxDepth(), "to", ev.Depth)
		d.state.SetMaxDepth(ev.Depth)
	case event.Status:
		if ev.Reply != nil {
			select {
			case ev.Reply <- d.state.Snapshot():
			default:
				d.log.Warn("Status reply dropped, nobody is listening")
			}
		}
	case event.Terminate:
		return true, nil
	case event.SourceFailed:
		return true, fmt.Errorf("%w: %w", ErrSubscription, ev.Err)
	default:
		d.log.Warn("Dropping unexpected event", "kind", ev.Kind.String())
		return false, nil
	}

	d.log.Debug("Event applied", "kind", ev.Kind.String(), "window", ev.Window)
	return false, nil
}

// focus issues the directive, if any. Failures are logged and not retried.
func (d *Dispatcher) focus(id history.WindowID, ok bool) {
	if !ok {
		d.log.Debug("Nothing to navigate to")
		return
	}
	if err := d.wm.FocusWindow(id); err != nil {
		d.log.Warn("Focus command failed", "window", id, "error", err.Error())
	}
}
