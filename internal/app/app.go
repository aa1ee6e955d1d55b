package app

import (
	"errors"
	"fmt"

	"i3-last/internal/event"
	"i3-last/internal/history"
	"i3-last/internal/ipc"
	"i3-last/internal/signals"
	"i3-last/internal/wm"
	"i3-last/pkg/config"
	"i3-last/pkg/core"
)

// I3Last wires the event sources, the dispatcher and the window manager.
type I3Last struct {
	config     *config.Config
	log        core.Logger
	queue      *event.Queue
	wm         wm.WindowManager
	signals    *signals.Listener
	server     *ipc.Server
	dispatcher *Dispatcher
}

// NewI3Last connects to the window manager and prepares every event source.
// Any failure here is reported as ErrSourceUnavailable.
func NewI3Last(cfg *config.Config, log core.Logger) (*I3Last, error) {
	log.Debug("Connecting to window manager")

	manager, err := wm.NewManager(log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return newI3Last(cfg, log, manager)
}

func newI3Last(cfg *config.Config, log core.Logger, windowManager wm.WindowManager) (*I3Last, error) {
	queue := event.NewQueue()

	server := ipc.NewServer(cfg.SocketPath(), queue, log)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	listener := signals.Listen(signals.FromConfig(cfg.Signals()), log)
	state := history.New(cfg.MaxHistoryDepth())

	return &I3Last{
		config:     cfg,
		log:        log,
		queue:      queue,
		wm:         windowManager,
		signals:    listener,
		server:     server,
		dispatcher: NewDispatcher(queue, state, windowManager, log),
	}, nil
}

// Run starts the producers and blocks in the dispatcher until a terminate
// request or a fatal error.
func (a *I3Last) Run() error {
	a.log.Info("Starting i3-last", "wm", a.wm.Name())

	go a.produce("window manager", func() error { return a.wm.Watch(a.queue) })
	go a.produce("signals", func() error { return a.signals.Run(a.queue) })

	a.config.Watch(func(next *config.Config) {
		ev := event.Event{Kind: event.Reconfigure, Depth: next.MaxHistoryDepth()}
		if err := a.queue.Push(ev); err != nil {
			a.log.Warn("Config change arrived after shutdown", "error", err.Error())
		}
	})

	err := a.dispatcher.Run()
	if closeErr := a.server.Close(); closeErr != nil {
		a.log.Warn("Failed to close socket server", "error", closeErr.Error())
	}
	return err
}

// produce runs a producer. A producer that dies while the dispatcher is still
// running takes the whole process down with it.
func (a *I3Last) produce(name string, run func() error) {
	err := run()
	switch {
	case err == nil:
		a.log.Debug("Producer finished", "producer", name)
	case errors.Is(err, event.ErrClosed):
		a.log.Debug("Producer stopped, dispatcher is gone", "producer", name)
	default:
		a.log.Error("Producer failed", err, "producer", name)
		if pushErr := a.queue.Push(event.Failed(fmt.Errorf("%s: %w", name, err))); pushErr != nil {
			a.log.Debug("Dispatcher already stopped", "producer", name)
		}
	}
}
