package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/soloquest/soloquest-cli/internal/dice"
	"github.com/soloquest/soloquest-cli/internal/domain"
	"github.com/soloquest/soloquest-cli/internal/ports"
	"github.com/soloquest/soloquest-cli/internal/sanitize"
)

// Storage keys. KeyCurrentSnapshot always holds the JSON-serialized current
// snapshot; KeyHistory holds the undo/redo envelope so history survives
// process restarts.
const (
	KeyCurrentSnapshot = "session/current"
	KeyHistory         = "session/history"
)

type historyEnvelope struct {
	Snapshots []domain.SessionState `json:"snapshots"`
	Cursor    int                   `json:"cursor"`
}

// Service exposes every domain mutator as a method. Each mutator is a pure
// transform committed through the history; after a successful commit the
// current snapshot is persisted best-effort. Mutators are all-or-nothing:
// invalid input is rejected before any commit is attempted, and no error
// leaves the session partially updated.
type Service struct {
	store   ports.KeyValueStore
	san     *sanitize.Sanitizer
	clock   ports.Clock
	ids     ports.IDGenerator
	rng     *rand.Rand
	logger  *slog.Logger
	history *History
}

func NewService(store ports.KeyValueStore, san *sanitize.Sanitizer, clock ports.Clock, ids ports.IDGenerator, rng *rand.Rand, logger *slog.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if ids == nil {
		ids = ports.RandomIDGenerator{}
	}
	if san == nil {
		san = sanitize.New(clock, ids)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(clock.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:   store,
		san:     san,
		clock:   clock,
		ids:     ids,
		rng:     rng,
		logger:  logger,
		history: NewHistory(domain.NewSessionState(ids.NewID())),
	}
}

// Open restores the session from durable storage. Both keys may have been
// edited by hand, so every snapshot read back goes through the sanitizer:
// the history envelope keeps its session ids, while the current-snapshot
// fallback is treated like any other untrusted input. Storage failures are
// logged and leave the service on a fresh default session: in-memory state
// is the source of truth for the run.
func (s *Service) Open(ctx context.Context) error {
	if data, err := s.store.Get(ctx, KeyHistory); err == nil {
		if restored, ok := s.restoreEnvelope(data); ok {
			s.history = restored
			return nil
		}
	} else if !errors.Is(err, ports.ErrKeyNotFound) {
		s.logger.Warn("read session history", "error", err)
	}

	data, err := s.store.Get(ctx, KeyCurrentSnapshot)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			s.logger.Warn("read session snapshot", "error", err)
		}
		return nil
	}

	state, err := s.san.SessionJSON(data)
	if err != nil {
		s.logger.Warn("restore session snapshot", "error", err)
		return nil
	}

	s.history.ResetTo(state)
	return nil
}

// restoreEnvelope decodes a persisted history envelope, sanitizing each
// snapshot on the way in. Entries that are not even JSON objects are
// skipped; restoring from nothing usable reports ok=false.
func (s *Service) restoreEnvelope(data []byte) (*History, bool) {
	var envelope struct {
		Snapshots []json.RawMessage `json:"snapshots"`
		Cursor    int               `json:"cursor"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, false
	}

	snapshots := make([]domain.SessionState, 0, len(envelope.Snapshots))
	for _, raw := range envelope.Snapshots {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		if _, ok := v.(map[string]any); !ok {
			continue
		}
		snapshots = append(snapshots, s.san.Snapshot(v))
	}
	return RestoreHistory(snapshots, envelope.Cursor)
}

// Current returns the snapshot at the history cursor.
func (s *Service) Current() domain.SessionState {
	return s.history.Current()
}

func (s *Service) CanUndo() bool { return s.history.CanUndo() }
func (s *Service) CanRedo() bool { return s.history.CanRedo() }

// Undo steps the session one snapshot back, reporting whether it moved.
func (s *Service) Undo(ctx context.Context) bool {
	moved := s.history.Undo()
	if moved {
		s.persist(ctx)
	}
	return moved
}

// Redo steps the session one snapshot forward, reporting whether it moved.
func (s *Service) Redo(ctx context.Context) bool {
	moved := s.history.Redo()
	if moved {
		s.persist(ctx)
	}
	return moved
}

// Overview builds the read model for renderers.
func (s *Service) Overview() Overview {
	state := s.history.Current()

	overview := Overview{
		SessionID:     state.SessionID,
		Title:         state.PlayLogTitle,
		Theme:         state.Theme,
		CharacterName: state.CharacterSheet.Name,
		EntryCount:    len(state.PlayLogEntries),
		Trackers:      state.ResourceTrackers,
		RecentRolls:   state.DiceRollHistory,
		CanUndo:       s.history.CanUndo(),
		CanRedo:       s.history.CanRedo(),
	}
	if state.LoadedGameData != nil {
		overview.GameTitle = state.LoadedGameData.Manifest.GameTitle
	}
	return overview
}

func (s *Service) commit(ctx context.Context, transform func(domain.SessionState) domain.SessionState) {
	s.history.CommitWith(transform)
	s.persist(ctx)
}

// persist writes the current snapshot and the history envelope. Failures
// are logged and never fatal.
func (s *Service) persist(ctx context.Context) {
	current, err := json.Marshal(s.history.Current())
	if err != nil {
		s.logger.Warn("encode session snapshot", "error", err)
		return
	}
	if err := s.store.Put(ctx, KeyCurrentSnapshot, current); err != nil {
		s.logger.Warn("write session snapshot", "error", err)
	}

	envelope, err := json.Marshal(historyEnvelope{Snapshots: s.history.Snapshots(), Cursor: s.history.Cursor()})
	if err != nil {
		s.logger.Warn("encode session history", "error", err)
		return
	}
	if err := s.store.Put(ctx, KeyHistory, envelope); err != nil {
		s.logger.Warn("write session history", "error", err)
	}
}

// AddLogEntry appends a play-log entry with a fresh id and the current
// time. Unknown entry types and color keys fall back to their defaults.
func (s *Service) AddLogEntry(ctx context.Context, cmd AddLogEntryCommand) (domain.LogEntry, error) {
	if strings.TrimSpace(cmd.Content) == "" {
		return domain.LogEntry{}, domain.ErrEmptyContent
	}

	entry := s.newLogEntry(cmd.Content, cmd.Type, cmd.ColorKey)
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.PlayLogEntries = appendLogEntry(state.PlayLogEntries, entry)
		if cmd.ReplaceTrackers {
			state.ResourceTrackers = cmd.Trackers
		}
		return state
	})
	return entry, nil
}

// UpdateLogEntry edits an entry in place, keeping its id and timestamp.
func (s *Service) UpdateLogEntry(ctx context.Context, cmd UpdateLogEntryCommand) error {
	if strings.TrimSpace(cmd.Content) == "" {
		return domain.ErrEmptyContent
	}
	if _, ok := findLogEntry(s.history.Current().PlayLogEntries, cmd.ID); !ok {
		return fmt.Errorf("update entry %q: %w", cmd.ID, domain.ErrLogEntryNotFound)
	}

	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		entries := make([]domain.LogEntry, len(state.PlayLogEntries))
		for i, entry := range state.PlayLogEntries {
			if entry.ID == cmd.ID {
				entry.Content = cmd.Content
				entry.Type = normalizeEntryType(cmd.Type)
				entry.ColorKey = normalizeColorKey(cmd.ColorKey)
			}
			entries[i] = entry
		}
		state.PlayLogEntries = entries
		return state
	})
	return nil
}

// DeleteLogEntry removes an entry by id.
func (s *Service) DeleteLogEntry(ctx context.Context, id string) error {
	if _, ok := findLogEntry(s.history.Current().PlayLogEntries, id); !ok {
		return fmt.Errorf("delete entry %q: %w", id, domain.ErrLogEntryNotFound)
	}

	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		entries := make([]domain.LogEntry, 0, len(state.PlayLogEntries)-1)
		for _, entry := range state.PlayLogEntries {
			if entry.ID != id {
				entries = append(entries, entry)
			}
		}
		state.PlayLogEntries = entries
		return state
	})
	return nil
}

// SetPlayLogTitle renames the play log; an empty title restores the
// default label.
func (s *Service) SetPlayLogTitle(ctx context.Context, title string) {
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultPlayLogTitle
	}
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.PlayLogTitle = title
		return state
	})
}

// SetTheme switches the display theme.
func (s *Service) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q", theme)
	}
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.Theme = theme
		return state
	})
	return nil
}

func (s *Service) newLogEntry(content string, typ domain.EntryType, color domain.ColorKey) domain.LogEntry {
	return domain.LogEntry{
		ID:        s.ids.NewID(),
		Content:   content,
		Type:      normalizeEntryType(typ),
		ColorKey:  normalizeColorKey(color),
		Timestamp: s.clock.Now(),
	}
}

func appendLogEntry(entries []domain.LogEntry, entry domain.LogEntry) []domain.LogEntry {
	next := make([]domain.LogEntry, 0, len(entries)+1)
	next = append(next, entries...)
	return append(next, entry)
}

func findLogEntry(entries []domain.LogEntry, id string) (domain.LogEntry, bool) {
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return domain.LogEntry{}, false
}

func normalizeEntryType(t domain.EntryType) domain.EntryType {
	if t.Valid() {
		return t
	}
	return domain.EntryNormal
}

func normalizeColorKey(c domain.ColorKey) domain.ColorKey {
	if c.Valid() {
		return c
	}
	return domain.ColorDefault
}

// RollDice evaluates a dice command and records it at the front of the
// bounded dice history.
func (s *Service) RollDice(ctx context.Context, command string) (domain.DiceRoll, error) {
	result, err := dice.Eval(s.rng, command)
	if err != nil {
		return domain.DiceRoll{}, err
	}

	roll := domain.DiceRoll{
		ID:              s.ids.NewID(),
		Command:         strings.TrimSpace(command),
		IndividualRolls: result.Rolls,
		Total:           result.Total,
		Timestamp:       s.clock.Now(),
	}
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.DiceRollHistory = domain.PushDiceRoll(state.DiceRollHistory, roll)
		return state
	})
	return roll, nil
}

// ResetSession discards all state and history and starts over with a fresh
// default session, as on first run.
func (s *Service) ResetSession(ctx context.Context) domain.SessionState {
	state := domain.NewSessionState(s.ids.NewID())
	s.history.ResetTo(state)
	s.persist(ctx)
	return state
}

// LoadSessionJSON replaces the session with the content of an external
// session file. Unparsable JSON is an error and leaves the prior state
// untouched; anything parsable is sanitized into a valid session and
// starts a fresh history.
func (s *Service) LoadSessionJSON(ctx context.Context, data []byte) (domain.SessionState, error) {
	state, err := s.san.SessionJSON(data)
	if err != nil {
		return domain.SessionState{}, err
	}

	s.history.ResetTo(state)
	s.persist(ctx)
	return state, nil
}

// ExportSessionJSON serializes the current snapshot verbatim.
func (s *Service) ExportSessionJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s.history.Current(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}
