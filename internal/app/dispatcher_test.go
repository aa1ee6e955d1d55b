package app

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i3-last/internal/event"
	"i3-last/internal/history"
	"i3-last/pkg/logger"
)

type recordingFocuser struct {
	mu      sync.Mutex
	focused []history.WindowID
	err     error
}

func (f *recordingFocuser) FocusWindow(id history.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = append(f.focused, id)
	return f.err
}

func (f *recordingFocuser) calls() []history.WindowID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]history.WindowID(nil), f.focused...)
}

func newTestDispatcher(depth int) (*Dispatcher, *event.Queue, *history.State, *recordingFocuser) {
	q := event.NewQueue()
	s := history.New(depth)
	f := &recordingFocuser{}
	return NewDispatcher(q, s, f, logger.Nop()), q, s, f
}

func handleAll(t *testing.T, d *Dispatcher, events ...event.Event) {
	t.Helper()
	for _, ev := range events {
		stop, err := d.Handle(ev)
		require.NoError(t, err)
		require.False(t, stop)
	}
}

func TestDispatcher_NavigationIssuesFocus(t *testing.T) {
	d, _, s, f := newTestDispatcher(5)

	handleAll(t, d,
		event.Focus(1),
		event.Focus(2),
		event.Focus(3),
		event.Command(event.NavigateBackward),
		event.Focus(2),
		event.Command(event.NavigateBackward),
		event.Focus(1),
		event.Command(event.NavigateForward),
	)

	assert.Equal(t, []history.WindowID{2, 1, 2}, f.calls())
	pending, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, history.WindowID(2), pending)
}

func TestDispatcher_RepeatLast(t *testing.T) {
	d, _, _, f := newTestDispatcher(5)

	handleAll(t, d,
		event.Focus(1),
		event.Focus(2),
		event.Command(event.RepeatLast),
	)

	assert.Equal(t, []history.WindowID{1}, f.calls())
}

func TestDispatcher_EmptyHistoryIssuesNothing(t *testing.T) {
	d, _, _, f := newTestDispatcher(5)

	handleAll(t, d,
		event.Command(event.NavigateBackward),
		event.Command(event.NavigateForward),
		event.Command(event.RepeatLast),
	)

	assert.Empty(t, f.calls())
}

func TestDispatcher_FailedFocusKeepsHistory(t *testing.T) {
	d, _, s, f := newTestDispatcher(5)
	f.err = errors.New("no such window")

	handleAll(t, d,
		event.Focus(1),
		event.Focus(2),
		event.Command(event.NavigateBackward),
	)

	assert.Equal(t, []history.WindowID{1}, f.calls())
	snap := s.Snapshot()
	assert.Empty(t, snap.Visited)
	assert.Equal(t, []history.WindowID{2}, snap.Skipped)
}

func TestDispatcher_CloseAndReconfigure(t *testing.T) {
	d, _, s, _ := newTestDispatcher(5)

	handleAll(t, d,
		event.Focus(1),
		event.Focus(2),
		event.Focus(3),
		event.Focus(4),
		event.Close(2),
		event.Event{Kind: event.Reconfigure, Depth: 1},
	)

	assert.Equal(t, 1, s.MaxDepth())
	assert.Equal(t, []history.WindowID{3}, s.Snapshot().Visited)
}

func TestDispatcher_StatusReplies(t *testing.T) {
	d, _, _, _ := newTestDispatcher(5)
	handleAll(t, d, event.Focus(1), event.Focus(2))

	reply := make(chan history.Snapshot, 1)
	handleAll(t, d, event.Event{Kind: event.Status, Reply: reply})

	snap := <-reply
	assert.Equal(t, []history.WindowID{1}, snap.Visited)
	require.NotNil(t, snap.Current)
	assert.Equal(t, history.WindowID(2), *snap.Current)
}

func TestDispatcher_StatusWithoutListenerDoesNotBlock(t *testing.T) {
	d, _, _, _ := newTestDispatcher(5)

	handleAll(t, d,
		event.Event{Kind: event.Status, Reply: make(chan history.Snapshot)},
		event.Event{Kind: event.Status},
	)
}

func TestDispatcher_UnknownKindIsDropped(t *testing.T) {
	d, _, _, f := newTestDispatcher(5)

	handleAll(t, d, event.Event{Kind: event.Kind(99)})
	assert.Empty(t, f.calls())
}

func TestDispatcher_RunStopsOnTerminate(t *testing.T) {
	d, q, s, f := newTestDispatcher(5)

	require.NoError(t, q.Push(event.Focus(1)))
	require.NoError(t, q.Push(event.Focus(2)))
	require.NoError(t, q.Push(event.Command(event.NavigateBackward)))
	require.NoError(t, q.Push(event.Command(event.Terminate)))
	require.NoError(t, q.Push(event.Focus(9)))

	require.NoError(t, d.Run())
	assert.Equal(t, []history.WindowID{1}, f.calls())

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, history.WindowID(1), current, "events after terminate must not be applied")

	assert.ErrorIs(t, q.Push(event.Focus(3)), event.ErrClosed)
}

func TestDispatcher_RunFailsOnSourceFailure(t *testing.T) {
	d, q, _, _ := newTestDispatcher(5)
	cause := errors.New("i3 went away")

	require.NoError(t, q.Push(event.Failed(cause)))

	err := d.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubscription)
	assert.ErrorIs(t, err, cause)
}

func TestDispatcher_RunFailsWhenQueueCloses(t *testing.T) {
	d, q, _, _ := newTestDispatcher(5)
	q.Close()

	err := d.Run()
	assert.ErrorIs(t, err, ErrInvariant)
	assert.ErrorIs(t, err, event.ErrClosed)
}
