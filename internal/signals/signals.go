// Package signals turns OS signals into navigation commands. Keybindings in
// the WM config trigger them with e.g. `pkill -RTMIN+3 i3-last`.
package signals

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"i3-last/internal/event"
	"i3-last/pkg/config"
	"i3-last/pkg/core"
)

// Map resolves signals to commands.
type Map struct {
	Forward  unix.Signal
	Backward unix.Signal
	Last     unix.Signal
}

// FromConfig converts the configured signal numbers.
func FromConfig(m config.SignalMap) Map {
	return Map{
		Forward:  unix.Signal(m.Forward),
		Backward: unix.Signal(m.Backward),
		Last:     unix.Signal(m.Last),
	}
}

// Translate returns the event for sig. ok is false for signals we do not handle.
func (m Map) Translate(sig os.Signal) (ev event.Event, ok bool) {
	s, isUnix := sig.(unix.Signal)
	if !isUnix {
		return event.Event{}, false
	}

	switch s {
	case m.Forward:
		return event.Command(event.NavigateForward), true
	case m.Backward:
		return event.Command(event.NavigateBackward), true
	case m.Last:
		return event.Command(event.RepeatLast), true
	case unix.SIGINT, unix.SIGTERM:
		return event.Command(event.Terminate), true
	default:
		return event.Event{}, false
	}
}

func (m Map) signals() []os.Signal {
	return []os.Signal{m.Forward, m.Backward, m.Last, unix.SIGINT, unix.SIGTERM}
}

// Listener forwards caught signals to a sink.
type Listener struct {
	m   Map
	ch  chan os.Signal
	log core.Logger
}

// Listen starts catching the mapped signals. Events are delivered once Run is
// called; signals arriving before that are buffered by the channel.
func Listen(m Map, log core.Logger) *Listener {
	ch := make(chan os.Signal, 16)
	signal.Notify(ch, m.signals()...)

	log.Info("Listening for signals",
		"forward", int(m.Forward),
		"backward", int(m.Backward),
		"last", int(m.Last))
	return &Listener{m: m, ch: ch, log: log}
}

// Run forwards signals until a terminate signal has been queued or the sink
// refuses an event.
func (l *Listener) Run(sink event.Sink) error {
	defer signal.Stop(l.ch)

	for sig := range l.ch {
		ev, ok := l.m.Translate(sig)
		if !ok {
			l.log.Debug("Ignoring signal", "signal", sig.String())
			continue
		}

		l.log.Debug("Signal received", "signal", sig.String(), "event", ev.Kind.String())
		if err := sink.Push(ev); err != nil {
			return fmt.Errorf("failed to queue %s: %w", ev.Kind, err)
		}
		if ev.Kind == event.Terminate {
			return nil
		}
	}
	return errors.New("signal channel closed")
}
