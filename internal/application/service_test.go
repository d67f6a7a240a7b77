package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/soloquest/soloquest-cli/internal/domain"
	"github.com/soloquest/soloquest-cli/internal/ports"
	"github.com/soloquest/soloquest-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// newTestService wires a Service against mocks with permissive storage
// expectations and deterministic ids ("id-001", "id-002", ...). The
// constructor itself consumes id-001 for the initial session.
func newTestService(t *testing.T) (*Service, *mocks.MockKeyValueStore) {
	t.Helper()

	store := mocks.NewMockKeyValueStore(t)
	store.EXPECT().Put(mockAnyContext(), mock.Anything, mock.Anything).Return(nil).Maybe()
	return newTestServiceWithStore(t, store), store
}

func newTestServiceWithStore(t *testing.T, store *mocks.MockKeyValueStore) *Service {
	t.Helper()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(testNow).Maybe()

	ids := mocks.NewMockIDGenerator(t)
	next := 0
	ids.EXPECT().NewID().RunAndReturn(func() string {
		next++
		return fmt.Sprintf("id-%03d", next)
	}).Maybe()

	rng := rand.New(rand.NewSource(7))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, nil, clock, ids, rng, logger)
}

func TestServiceStartsOnFreshDefaultSession(t *testing.T) {
	service, _ := newTestService(t)

	state := service.Current()
	assert.Equal(t, "id-001", state.SessionID)
	assert.Equal(t, domain.DefaultPlayLogTitle, state.PlayLogTitle)
	assert.Equal(t, domain.DefaultStatsLabel, state.CharacterSheet.StatsLabel)
	assert.Equal(t, domain.ThemeDark, state.Theme)
	assert.Empty(t, state.PlayLogEntries)
	assert.False(t, service.CanUndo())
	assert.False(t, service.CanRedo())
}

func TestServiceAddLogEntryAppendsAndPersists(t *testing.T) {
	service, _ := newTestService(t)

	entry, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{
		Content:  "Entered the ruined tower",
		Type:     domain.EntryHeading,
		ColorKey: domain.ColorBlue,
	})
	require.NoError(t, err)

	assert.Equal(t, "id-002", entry.ID)
	assert.Equal(t, domain.EntryHeading, entry.Type)
	assert.Equal(t, domain.ColorBlue, entry.ColorKey)
	assert.Equal(t, testNow, entry.Timestamp)

	state := service.Current()
	require.Len(t, state.PlayLogEntries, 1)
	assert.Equal(t, entry, state.PlayLogEntries[0])
	assert.True(t, service.CanUndo())
}

func TestServiceAddLogEntryRejectsBlankContent(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{Content: "   "})
	require.ErrorIs(t, err, domain.ErrEmptyContent)
	assert.Equal(t, 1, service.history.Len())
}

func TestServiceAddLogEntryDefaultsUnknownTypeAndColor(t *testing.T) {
	service, _ := newTestService(t)

	entry, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{
		Content:  "something happened",
		Type:     domain.EntryType("chapter"),
		ColorKey: domain.ColorKey("magenta"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EntryNormal, entry.Type)
	assert.Equal(t, domain.ColorDefault, entry.ColorKey)
}

func TestServiceUpdateLogEntryEditsInPlace(t *testing.T) {
	service, _ := newTestService(t)
	entry, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{Content: "draft"})
	require.NoError(t, err)

	err = service.UpdateLogEntry(context.Background(), UpdateLogEntryCommand{
		ID:       entry.ID,
		Content:  "final",
		Type:     domain.EntryNormal,
		ColorKey: domain.ColorGreen,
	})
	require.NoError(t, err)

	got := service.Current().PlayLogEntries[0]
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, "final", got.Content)
	assert.Equal(t, domain.ColorGreen, got.ColorKey)
	assert.Equal(t, entry.Timestamp, got.Timestamp)
}

func TestServiceUpdateLogEntryUnknownID(t *testing.T) {
	service, _ := newTestService(t)

	err := service.UpdateLogEntry(context.Background(), UpdateLogEntryCommand{ID: "missing", Content: "x"})
	require.ErrorIs(t, err, domain.ErrLogEntryNotFound)
	assert.Equal(t, 1, service.history.Len())
}

func TestServiceDeleteLogEntry(t *testing.T) {
	service, _ := newTestService(t)
	entry, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{Content: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteLogEntry(context.Background(), entry.ID))
	assert.Empty(t, service.Current().PlayLogEntries)

	err = service.DeleteLogEntry(context.Background(), entry.ID)
	require.ErrorIs(t, err, domain.ErrLogEntryNotFound)
}

func TestServiceSetPlayLogTitleBlankRestoresDefault(t *testing.T) {
	service, _ := newTestService(t)

	service.SetPlayLogTitle(context.Background(), "Into the Mists")
	assert.Equal(t, "Into the Mists", service.Current().PlayLogTitle)

	service.SetPlayLogTitle(context.Background(), "   ")
	assert.Equal(t, domain.DefaultPlayLogTitle, service.Current().PlayLogTitle)
}

func TestServiceSetThemeRejectsUnknownTheme(t *testing.T) {
	service, _ := newTestService(t)

	require.NoError(t, service.SetTheme(context.Background(), domain.ThemeParchment))
	assert.Equal(t, domain.ThemeParchment, service.Current().Theme)

	err := service.SetTheme(context.Background(), domain.Theme("neon"))
	require.Error(t, err)
	assert.Equal(t, domain.ThemeParchment, service.Current().Theme)
}

func TestServiceRollDiceKeepsMostRecentFirstAndBounded(t *testing.T) {
	service, _ := newTestService(t)

	var last domain.DiceRoll
	for i := 0; i < domain.MaxDiceRolls+5; i++ {
		roll, err := service.RollDice(context.Background(), "2d6+1")
		require.NoError(t, err)
		last = roll
	}

	history := service.Current().DiceRollHistory
	require.Len(t, history, domain.MaxDiceRolls)
	assert.Equal(t, last.ID, history[0].ID)
	assert.Equal(t, "2d6+1", history[0].Command)
	assert.Len(t, history[0].IndividualRolls, 2)
	assert.Equal(t, history[0].Total, history[0].IndividualRolls[0]+history[0].IndividualRolls[1]+1)
}

func TestServiceRollDiceRejectsInvalidCommand(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.RollDice(context.Background(), "banana")
	require.Error(t, err)
	assert.Empty(t, service.Current().DiceRollHistory)
	assert.Equal(t, 1, service.history.Len())
}

func TestServiceUndoRedoMoveThroughCommits(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{Content: "first"})
	require.NoError(t, err)

	require.True(t, service.Undo(context.Background()))
	assert.Empty(t, service.Current().PlayLogEntries)
	assert.False(t, service.Undo(context.Background()))

	require.True(t, service.Redo(context.Background()))
	require.Len(t, service.Current().PlayLogEntries, 1)
	assert.Equal(t, "first", service.Current().PlayLogEntries[0].Content)
	assert.False(t, service.Redo(context.Background()))
}

func TestServicePersistWritesSnapshotAndHistoryEnvelope(t *testing.T) {
	store := mocks.NewMockKeyValueStore(t)
	service := newTestServiceWithStore(t, store)

	var snapshot, envelope []byte
	store.EXPECT().Put(mockAnyContext(), KeyCurrentSnapshot, mock.Anything).Run(func(_ context.Context, _ string, value []byte) {
		snapshot = append([]byte(nil), value...)
	}).Return(nil)
	store.EXPECT().Put(mockAnyContext(), KeyHistory, mock.Anything).Run(func(_ context.Context, _ string, value []byte) {
		envelope = append([]byte(nil), value...)
	}).Return(nil)

	_, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{Content: "persist me"})
	require.NoError(t, err)

	var state domain.SessionState
	require.NoError(t, json.Unmarshal(snapshot, &state))
	require.Len(t, state.PlayLogEntries, 1)
	assert.Equal(t, "persist me", state.PlayLogEntries[0].Content)

	var stored historyEnvelope
	require.NoError(t, json.Unmarshal(envelope, &stored))
	assert.Len(t, stored.Snapshots, 2)
	assert.Equal(t, 1, stored.Cursor)
}

func TestServiceOpenRestoresHistoryEnvelope(t *testing.T) {
	service, store := newTestService(t)

	older := domain.NewSessionState("session-old")
	newer := older
	newer.PlayLogTitle = "after the ambush"
	envelope, err := json.Marshal(historyEnvelope{Snapshots: []domain.SessionState{older, newer}, Cursor: 1})
	require.NoError(t, err)

	store.EXPECT().Get(mockAnyContext(), KeyHistory).Return(envelope, nil)

	require.NoError(t, service.Open(context.Background()))
	assert.Equal(t, "after the ambush", service.Current().PlayLogTitle)
	assert.Equal(t, "session-old", service.Current().SessionID)
	assert.True(t, service.CanUndo())
}

func TestServiceOpenFallsBackToSanitizedSnapshot(t *testing.T) {
	service, store := newTestService(t)

	store.EXPECT().Get(mockAnyContext(), KeyHistory).Return(nil, ports.ErrKeyNotFound)
	store.EXPECT().Get(mockAnyContext(), KeyCurrentSnapshot).Return([]byte(`{
		"sessionId": "stored-session",
		"playLogTitle": "The Sunken City",
		"theme": "parchment"
	}`), nil)

	require.NoError(t, service.Open(context.Background()))

	state := service.Current()
	assert.Equal(t, "The Sunken City", state.PlayLogTitle)
	assert.Equal(t, domain.ThemeParchment, state.Theme)
	// Restored state gets a fresh session identity.
	assert.NotEqual(t, "stored-session", state.SessionID)
	assert.False(t, service.CanUndo())
}

func TestServiceOpenWithEmptyStorageKeepsFreshSession(t *testing.T) {
	service, store := newTestService(t)

	store.EXPECT().Get(mockAnyContext(), KeyHistory).Return(nil, ports.ErrKeyNotFound)
	store.EXPECT().Get(mockAnyContext(), KeyCurrentSnapshot).Return(nil, ports.ErrKeyNotFound)

	require.NoError(t, service.Open(context.Background()))
	assert.Equal(t, "id-001", service.Current().SessionID)
}

func TestServiceOpenWithCorruptEnvelopeFallsBack(t *testing.T) {
	service, store := newTestService(t)

	store.EXPECT().Get(mockAnyContext(), KeyHistory).Return([]byte("{not json"), nil)
	store.EXPECT().Get(mockAnyContext(), KeyCurrentSnapshot).Return([]byte(`{"playLogTitle":"rescued"}`), nil)

	require.NoError(t, service.Open(context.Background()))
	assert.Equal(t, "rescued", service.Current().PlayLogTitle)
}

func TestServiceOpenSanitizesEnvelopeSnapshots(t *testing.T) {
	service, store := newTestService(t)

	// A hand-edited envelope can carry histories past their bounds; Open
	// must trim them while keeping the stored session identity.
	oversized := domain.NewSessionState("session-big")
	for i := 0; i < domain.MaxDiceRolls+5; i++ {
		oversized.DiceRollHistory = append(oversized.DiceRollHistory, domain.DiceRoll{
			ID:        fmt.Sprintf("roll-%d", i),
			Command:   "1d6",
			Total:     3,
			Timestamp: testNow,
		})
	}
	tracker := domain.ResourceTracker{ID: "hp", Name: "HP", Value: 4}
	for i := 0; i < domain.MaxTrackerChanges+5; i++ {
		tracker.History = append(tracker.History, domain.TrackerChange{
			ID:        fmt.Sprintf("change-%d", i),
			Timestamp: testNow,
			NewValue:  4,
		})
	}
	oversized.ResourceTrackers = []domain.ResourceTracker{tracker}

	envelope, err := json.Marshal(historyEnvelope{Snapshots: []domain.SessionState{oversized}, Cursor: 0})
	require.NoError(t, err)

	store.EXPECT().Get(mockAnyContext(), KeyHistory).Return(envelope, nil)

	require.NoError(t, service.Open(context.Background()))

	state := service.Current()
	assert.Equal(t, "session-big", state.SessionID)
	require.Len(t, state.DiceRollHistory, domain.MaxDiceRolls)
	assert.Equal(t, "roll-0", state.DiceRollHistory[0].ID)
	require.Len(t, state.ResourceTrackers, 1)
	assert.Len(t, state.ResourceTrackers[0].History, domain.MaxTrackerChanges)
}

func TestServiceOpenSkipsNonObjectEnvelopeSnapshots(t *testing.T) {
	service, store := newTestService(t)

	store.EXPECT().Get(mockAnyContext(), KeyHistory).Return([]byte(`{
		"snapshots": [42, "junk", {"sessionId": "session-kept", "playLogTitle": "still here"}],
		"cursor": 9
	}`), nil)

	require.NoError(t, service.Open(context.Background()))
	assert.Equal(t, "session-kept", service.Current().SessionID)
	assert.Equal(t, "still here", service.Current().PlayLogTitle)
	assert.False(t, service.CanUndo())
	assert.False(t, service.CanRedo())
}

func TestServiceLoadSessionJSONInvalidInputLeavesStateUntouched(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{Content: "keep me"})
	require.NoError(t, err)

	_, err = service.LoadSessionJSON(context.Background(), []byte("not json at all"))
	require.Error(t, err)
	require.Len(t, service.Current().PlayLogEntries, 1)
	assert.True(t, service.CanUndo())
}

func TestServiceLoadSessionJSONResetsHistory(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{Content: "old life"})
	require.NoError(t, err)

	state, err := service.LoadSessionJSON(context.Background(), []byte(`{"playLogTitle":"Imported Campaign"}`))
	require.NoError(t, err)
	assert.Equal(t, "Imported Campaign", state.PlayLogTitle)
	assert.False(t, service.CanUndo())
	assert.Empty(t, service.Current().PlayLogEntries)
}

func TestServiceResetSessionStartsOver(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{Content: "history"})
	require.NoError(t, err)

	state := service.ResetSession(context.Background())
	assert.NotEqual(t, "id-001", state.SessionID)
	assert.Equal(t, domain.DefaultPlayLogTitle, state.PlayLogTitle)
	assert.Empty(t, state.PlayLogEntries)
	assert.False(t, service.CanUndo())
}

func TestServiceExportSessionJSONRoundTrips(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{Content: "exported"})
	require.NoError(t, err)

	data, err := service.ExportSessionJSON()
	require.NoError(t, err)

	var state domain.SessionState
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, service.Current().SessionID, state.SessionID)
	require.Len(t, state.PlayLogEntries, 1)
	assert.Equal(t, "exported", state.PlayLogEntries[0].Content)
}

func TestServiceOverview(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.AddLogEntry(context.Background(), AddLogEntryCommand{Content: "one"})
	require.NoError(t, err)
	_, err = service.AddTracker(context.Background(), "HP", 10)
	require.NoError(t, err)
	service.SetCharacterName(context.Background(), "Wren")

	overview := service.Overview()
	assert.Equal(t, "Wren", overview.CharacterName)
	assert.Equal(t, 1, overview.EntryCount)
	require.Len(t, overview.Trackers, 1)
	assert.Equal(t, "HP", overview.Trackers[0].Name)
	assert.True(t, overview.CanUndo)
	assert.False(t, overview.CanRedo)
	assert.Empty(t, overview.GameTitle)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
