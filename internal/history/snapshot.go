package history

import "slices"

// Snapshot is a read-only copy of State, used by the status command.
type Snapshot struct {
	Visited       []WindowID `json:"visited"`
	Skipped       []WindowID `json:"skipped"`
	Current       *WindowID  `json:"current,omitempty"`
	Pending       *WindowID  `json:"pending,omitempty"`
	LastDirection string     `json:"last_direction,omitempty"`
	MaxDepth      int        `json:"max_depth"`
}

// Snapshot copies the current history.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Visited:  slices.Clone(s.visited),
		Skipped:  slices.Clone(s.skipped),
		MaxDepth: s.maxDepth,
	}
	if snap.Visited == nil {
		snap.Visited = []WindowID{}
	}
	if snap.Skipped == nil {
		snap.Skipped = []WindowID{}
	}
	if s.hasCurrent {
		cur := s.current
		snap.Current = &cur
	}
	if s.hasPending {
		p := s.pending
		snap.Pending = &p
	}
	if s.hasLastDir {
		snap.LastDirection = s.lastDir.String()
	}
	return snap
}
