package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i3-last/internal/event"
	"i3-last/internal/history"
	"i3-last/internal/ipc"
	"i3-last/pkg/config"
	"i3-last/pkg/logger"
)

// fakeWM replays a fixed list of focus events and confirms every focus
// command the way i3 would, by emitting a focus event for it.
type fakeWM struct {
	initial  []history.WindowID
	watchErr error

	mu      sync.Mutex
	sink    event.Sink
	focused []history.WindowID
	done    chan struct{}
}

func newFakeWM(initial ...history.WindowID) *fakeWM {
	return &fakeWM{initial: initial, done: make(chan struct{})}
}

func (f *fakeWM) Watch(sink event.Sink) error {
	f.mu.Lock()
	f.sink = sink
	f.mu.Unlock()

	for _, id := range f.initial {
		if err := sink.Push(event.Focus(id)); err != nil {
			return err
		}
	}
	if f.watchErr != nil {
		return f.watchErr
	}
	<-f.done
	return nil
}

func (f *fakeWM) FocusWindow(id history.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = append(f.focused, id)
	if f.sink != nil {
		return f.sink.Push(event.Focus(id))
	}
	return nil
}

func (f *fakeWM) Name() string { return "fake" }

func (f *fakeWM) calls() []history.WindowID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]history.WindowID(nil), f.focused...)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	// unix socket paths are length limited, t.TempDir can be too deep
	dir, err := os.MkdirTemp("", "i3last")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	t.Setenv("XDG_RUNTIME_DIR", dir)
	return config.DefaultConfig()
}

func runApp(t *testing.T, a *I3Last) <-chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run() }()
	return errCh
}

func waitForExit(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop")
		return nil
	}
}

func status(path string) (history.Snapshot, bool) {
	resp, err := ipc.SendCommand(path, "status", logger.Nop())
	if err != nil || resp.History == nil {
		return history.Snapshot{}, false
	}
	return *resp.History, true
}

func TestI3Last_NavigatesOverSocket(t *testing.T) {
	cfg := testConfig(t)
	wm := newFakeWM(1, 2, 3)
	defer close(wm.done)

	a, err := newI3Last(cfg, logger.Nop(), wm)
	require.NoError(t, err)
	errCh := runApp(t, a)

	path := cfg.SocketPath()
	require.Eventually(t, func() bool {
		snap, ok := status(path)
		return ok && snap.Current != nil && *snap.Current == 3
	}, 2*time.Second, 10*time.Millisecond)

	_, err = ipc.SendCommand(path, "back", logger.Nop())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, ok := status(path)
		return ok && snap.Pending == nil && len(wm.calls()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	snap, ok := status(path)
	require.True(t, ok)
	assert.Equal(t, []history.WindowID{2}, wm.calls())
	assert.Equal(t, []history.WindowID{1}, snap.Visited)
	assert.Equal(t, []history.WindowID{3}, snap.Skipped)
	require.NotNil(t, snap.Current)
	assert.Equal(t, history.WindowID(2), *snap.Current)

	_, err = ipc.SendCommand(path, "quit", logger.Nop())
	require.NoError(t, err)
	require.NoError(t, waitForExit(t, errCh))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "socket should be removed on exit")
}

func TestI3Last_SubscriptionLossIsFatal(t *testing.T) {
	cfg := testConfig(t)
	wm := newFakeWM(1)
	wm.watchErr = errors.New("EOF")

	a, err := newI3Last(cfg, logger.Nop(), wm)
	require.NoError(t, err)

	err = waitForExit(t, runApp(t, a))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubscription)
	assert.Contains(t, err.Error(), "EOF")
}

func TestI3Last_SocketUnavailable(t *testing.T) {
	dir, err := os.MkdirTemp("", "i3last")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))
	t.Setenv("XDG_RUNTIME_DIR", blocker)

	_, err = newI3Last(config.DefaultConfig(), logger.Nop(), newFakeWM())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
