package application

import (
	"fmt"
	"testing"

	"github.com/soloquest/soloquest-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotNamed(title string) domain.SessionState {
	state := domain.NewSessionState("session-1")
	state.PlayLogTitle = title
	return state
}

func TestHistoryCommitRetainsAtMostCapacitySnapshots(t *testing.T) {
	for _, commits := range []int{0, 1, 5, HistoryCapacity - 1, HistoryCapacity, HistoryCapacity + 7} {
		t.Run(fmt.Sprintf("%d commits", commits), func(t *testing.T) {
			history := NewHistory(snapshotNamed("initial"))
			for i := 0; i < commits; i++ {
				history.Commit(snapshotNamed(fmt.Sprintf("commit %d", i)))
			}

			want := commits + 1
			if want > HistoryCapacity {
				want = HistoryCapacity
			}
			assert.Equal(t, want, history.Len())
			if commits > 0 {
				assert.Equal(t, fmt.Sprintf("commit %d", commits-1), history.Current().PlayLogTitle)
			}
		})
	}
}

func TestHistoryCommitDropsOldestWhenFull(t *testing.T) {
	history := NewHistory(snapshotNamed("initial"))
	for i := 0; i < HistoryCapacity+3; i++ {
		history.Commit(snapshotNamed(fmt.Sprintf("commit %d", i)))
	}

	require.Equal(t, HistoryCapacity, history.Len())

	// The oldest retained snapshot is no longer "initial"; undoing all the
	// way lands on the oldest survivor instead.
	for history.Undo() {
	}
	assert.Equal(t, "commit 3", history.Current().PlayLogTitle)
}

func TestHistoryUndoRedoRoundTrip(t *testing.T) {
	history := NewHistory(snapshotNamed("first"))
	history.Commit(snapshotNamed("second"))

	require.True(t, history.Undo())
	assert.Equal(t, "first", history.Current().PlayLogTitle)
	assert.False(t, history.CanUndo())
	assert.True(t, history.CanRedo())

	require.True(t, history.Redo())
	assert.Equal(t, "second", history.Current().PlayLogTitle)
	assert.True(t, history.CanUndo())
	assert.False(t, history.CanRedo())
}

func TestHistoryUndoAtOldestAndRedoAtNewestDoNotMove(t *testing.T) {
	history := NewHistory(snapshotNamed("only"))

	assert.False(t, history.Undo())
	assert.False(t, history.Redo())
	assert.Equal(t, "only", history.Current().PlayLogTitle)
	assert.Equal(t, 1, history.Len())
}

func TestHistoryCommitAfterUndoDiscardsRedoBranch(t *testing.T) {
	history := NewHistory(snapshotNamed("first"))
	history.Commit(snapshotNamed("second"))
	history.Commit(snapshotNamed("third"))

	require.True(t, history.Undo())
	require.True(t, history.Undo())
	require.True(t, history.CanRedo())

	history.Commit(snapshotNamed("branch"))

	assert.False(t, history.CanRedo())
	assert.Equal(t, 2, history.Len())
	assert.Equal(t, "branch", history.Current().PlayLogTitle)

	require.True(t, history.Undo())
	assert.Equal(t, "first", history.Current().PlayLogTitle)
}

func TestHistoryCommitRejectsSnapshotWithoutSessionID(t *testing.T) {
	history := NewHistory(snapshotNamed("first"))
	history.Commit(domain.SessionState{PlayLogTitle: "broken"})

	assert.Equal(t, 1, history.Len())
	assert.Equal(t, "first", history.Current().PlayLogTitle)
}

func TestHistoryCommitWithNilTransformIsNoOp(t *testing.T) {
	history := NewHistory(snapshotNamed("first"))
	history.CommitWith(nil)

	assert.Equal(t, 1, history.Len())
}

func TestHistoryResetToStartsFreshLinearHistory(t *testing.T) {
	history := NewHistory(snapshotNamed("first"))
	history.Commit(snapshotNamed("second"))
	require.True(t, history.Undo())

	history.ResetTo(snapshotNamed("loaded"))

	assert.Equal(t, 1, history.Len())
	assert.Equal(t, "loaded", history.Current().PlayLogTitle)
	assert.False(t, history.CanUndo())
	assert.False(t, history.CanRedo())
}

func TestRestoreHistory(t *testing.T) {
	tests := []struct {
		name       string
		snapshots  []domain.SessionState
		cursor     int
		wantOK     bool
		wantLen    int
		wantCursor int
	}{
		{
			name:      "nothing usable",
			snapshots: []domain.SessionState{{}, {PlayLogTitle: "no id"}},
			cursor:    0,
			wantOK:    false,
		},
		{
			name:       "cursor clamped to range",
			snapshots:  []domain.SessionState{snapshotNamed("a"), snapshotNamed("b")},
			cursor:     9,
			wantOK:     true,
			wantLen:    2,
			wantCursor: 1,
		},
		{
			name:       "negative cursor clamped to zero",
			snapshots:  []domain.SessionState{snapshotNamed("a")},
			cursor:     -4,
			wantOK:     true,
			wantLen:    1,
			wantCursor: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history, ok := RestoreHistory(tt.snapshots, tt.cursor)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantLen, history.Len())
			assert.Equal(t, tt.wantCursor, history.Cursor())
		})
	}
}

func TestRestoreHistoryTrimsOverflowFromTheFront(t *testing.T) {
	snapshots := make([]domain.SessionState, 0, HistoryCapacity+4)
	for i := 0; i < HistoryCapacity+4; i++ {
		snapshots = append(snapshots, snapshotNamed(fmt.Sprintf("snapshot %d", i)))
	}

	history, ok := RestoreHistory(snapshots, len(snapshots)-1)
	require.True(t, ok)
	assert.Equal(t, HistoryCapacity, history.Len())
	assert.Equal(t, fmt.Sprintf("snapshot %d", HistoryCapacity+3), history.Current().PlayLogTitle)
}
