package application

import "github.com/soloquest/soloquest-cli/internal/domain"

// HistoryCapacity bounds the number of retained snapshots. Truncation drops
// from the front, so undoing past the oldest retained change is impossible:
// memory use stays linear in capacity times state size.
const HistoryCapacity = 10

// History holds an ordered sequence of session snapshots and a cursor,
// supporting linear undo/redo. Every domain mutation flows through Commit
// or CommitWith. It is not safe for concurrent use; the engine has exactly
// one logical writer at a time.
type History struct {
	snapshots []domain.SessionState
	cursor    int
}

func NewHistory(initial domain.SessionState) *History {
	return &History{snapshots: []domain.SessionState{initial}}
}

// RestoreHistory rebuilds a history from previously persisted snapshots,
// clamping the cursor and the snapshot count to their invariants. Snapshots
// without a session id are skipped; restoring from nothing usable returns
// ok=false.
func RestoreHistory(snapshots []domain.SessionState, cursor int) (*History, bool) {
	kept := make([]domain.SessionState, 0, len(snapshots))
	for _, snapshot := range snapshots {
		if snapshot.SessionID == "" {
			continue
		}
		kept = append(kept, snapshot)
	}
	if len(kept) == 0 {
		return nil, false
	}
	if overflow := len(kept) - HistoryCapacity; overflow > 0 {
		kept = kept[overflow:]
	}

	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(kept)-1 {
		cursor = len(kept) - 1
	}

	return &History{snapshots: kept, cursor: cursor}, true
}

// Commit appends next as the new current snapshot, discarding any redo
// branch beyond the cursor and trimming the oldest snapshots beyond
// capacity. A snapshot without a session id is rejected as a no-op: it
// marks a mutator that failed internally, and state must stay unchanged.
func (h *History) Commit(next domain.SessionState) {
	if next.SessionID == "" {
		return
	}

	h.snapshots = append(h.snapshots[:h.cursor+1], next)
	if overflow := len(h.snapshots) - HistoryCapacity; overflow > 0 {
		h.snapshots = append([]domain.SessionState(nil), h.snapshots[overflow:]...)
	}
	h.cursor = len(h.snapshots) - 1
}

// CommitWith derives the next snapshot from the current one. A nil
// transform is a no-op.
func (h *History) CommitWith(transform func(domain.SessionState) domain.SessionState) {
	if transform == nil {
		return
	}
	h.Commit(transform(h.Current()))
}

// Undo moves the cursor one snapshot back, reporting whether it moved.
func (h *History) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo moves the cursor one snapshot forward, reporting whether it moved.
func (h *History) Redo() bool {
	if h.cursor == len(h.snapshots)-1 {
		return false
	}
	h.cursor++
	return true
}

func (h *History) CanUndo() bool {
	return h.cursor > 0
}

func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Current returns the snapshot at the cursor.
func (h *History) Current() domain.SessionState {
	return h.snapshots[h.cursor]
}

// ResetTo replaces the whole history with a single snapshot. Loading a
// session file and resetting the app both start a fresh linear history.
func (h *History) ResetTo(snapshot domain.SessionState) {
	h.snapshots = []domain.SessionState{snapshot}
	h.cursor = 0
}

// Len reports the number of retained snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Snapshots returns the retained snapshots in order, oldest first. The
// returned slice is a copy.
func (h *History) Snapshots() []domain.SessionState {
	return append([]domain.SessionState(nil), h.snapshots...)
}

// Cursor reports the current cursor index.
func (h *History) Cursor() int {
	return h.cursor
}
