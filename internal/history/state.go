// Package history keeps the focus history of the window manager and resolves
// back/forward navigation requests against it.
package history

import "slices"

// DefaultMaxDepth is the number of windows kept in either stack. The state can
// therefore remember at most 2*DefaultMaxDepth+1 windows.
const DefaultMaxDepth = 15

// WindowID is the window manager's handle for a window (the i3 con_id).
type WindowID int64

// Direction of a navigation request. It only has two values.
type Direction bool

const (
	Backward Direction = false
	Forward  Direction = true
)

// Opposite returns the direction that undoes d.
func (d Direction) Opposite() Direction {
	return !d
}

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// State is the navigation history. It is not safe for concurrent use; the
// dispatcher loop is its only owner.
type State struct {
	// Windows the user moved away from, most recent last.
	visited []WindowID
	// Windows stepped over while going backward, most recent last.
	skipped []WindowID

	current    WindowID
	hasCurrent bool

	// A focus change we asked for and have not seen yet.
	pending    WindowID
	hasPending bool

	lastDir    Direction
	hasLastDir bool

	maxDepth int
}

// New creates an empty history bounded to maxDepth entries per stack.
// Values below 1 fall back to DefaultMaxDepth.
func New(maxDepth int) *State {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	return &State{maxDepth: maxDepth}
}

// MaxDepth returns the current stack bound.
func (s *State) MaxDepth() int {
	return s.maxDepth
}

// SetMaxDepth changes the stack bound and evicts the oldest entries that no
// longer fit.
func (s *State) SetMaxDepth(n int) {
	if n < 1 {
		return
	}
	s.maxDepth = n
	s.visited = clamp(s.visited, n)
	s.skipped = clamp(s.skipped, n)
}

// Current returns the window believed to be focused.
func (s *State) Current() (WindowID, bool) {
	return s.current, s.hasCurrent
}

// Pending returns the navigation target awaiting confirmation.
func (s *State) Pending() (WindowID, bool) {
	return s.pending, s.hasPending
}

// LastDirection returns the direction a RepeatLast call would undo.
func (s *State) LastDirection() (Direction, bool) {
	return s.lastDir, s.hasLastDir
}

// ObserveFocus records that the window manager focused id.
func (s *State) ObserveFocus(id WindowID) {
	if s.hasPending {
		s.hasPending = false
		if s.pending == id {
			// Our own navigation landed; the stacks were updated when it was issued.
			return
		}
		// Navigation failed or the user was faster. Treat it as an organic move.
	}

	if s.hasCurrent {
		s.visited = remove(s.visited, s.current)
		s.visited = append(s.visited, s.current)
		// A new branch invalidates everything we stepped back over.
		s.skipped = s.skipped[:0]
		s.visited = clamp(s.visited, s.maxDepth)
	}

	s.visited = remove(s.visited, id)
	s.skipped = remove(s.skipped, id)

	s.lastDir = Forward
	s.hasLastDir = true

	s.current = id
	s.hasCurrent = true
}

// ObserveClose drops a destroyed window from the history.
func (s *State) ObserveClose(id WindowID) {
	s.visited = remove(s.visited, id)
	s.skipped = remove(s.skipped, id)
	if s.hasCurrent && s.current == id {
		s.hasCurrent = false
		s.current = 0
	}
	if s.hasPending && s.pending == id {
		s.hasPending = false
		s.pending = 0
	}
}

// Navigate moves one step in dir and returns the window to focus. It returns
// false when there is nothing to go to, in which case the state is unchanged.
func (s *State) Navigate(dir Direction) (WindowID, bool) {
	from, to := &s.visited, &s.skipped
	if dir == Forward {
		from, to = &s.skipped, &s.visited
	}

	if len(*from) == 0 {
		return 0, false
	}

	last := len(*from) - 1
	target := (*from)[last]
	*from = (*from)[:last]

	if s.hasCurrent {
		*to = remove(*to, s.current)
		*to = append(*to, s.current)
		*to = clamp(*to, s.maxDepth)
	}

	s.pending = target
	s.hasPending = true
	s.lastDir = dir
	s.hasLastDir = true
	s.current = target
	s.hasCurrent = true

	return target, true
}

// RepeatLast undoes the most recent navigation by going the opposite way.
func (s *State) RepeatLast() (WindowID, bool) {
	if !s.hasLastDir {
		return 0, false
	}
	return s.Navigate(s.lastDir.Opposite())
}

// remove deletes the first occurrence of id, keeping order.
func remove(ids []WindowID, id WindowID) []WindowID {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}

// clamp evicts the oldest entries so that at most n remain.
func clamp(ids []WindowID, n int) []WindowID {
	if len(ids) <= n {
		return ids
	}
	return slices.Delete(ids, 0, len(ids)-n)
}
