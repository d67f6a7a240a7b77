package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/soloquest/soloquest-cli/internal/dice"
	"github.com/soloquest/soloquest-cli/internal/domain"
)

// AddTable creates a random table. The dice command, when given, must be a
// parsable expression.
func (s *Service) AddTable(ctx context.Context, cmd AddTableCommand) (domain.RandomTable, error) {
	table := domain.RandomTable{
		ID:          s.ids.NewID(),
		Name:        cmd.Name,
		DiceCommand: strings.TrimSpace(cmd.DiceCommand),
	}
	if err := table.Validate(); err != nil {
		return domain.RandomTable{}, err
	}
	if table.DiceCommand != "" {
		if _, err := dice.Parse(table.DiceCommand); err != nil {
			return domain.RandomTable{}, err
		}
	}

	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		tables := make([]domain.RandomTable, 0, len(state.Tables)+1)
		tables = append(tables, state.Tables...)
		state.Tables = append(tables, table)
		return state
	})
	return table, nil
}

// UpdateTable renames a table or changes its dice command. Changing the
// dice command to a non-empty expression is rejected while any existing
// entry lacks a roll value, so a dice-command table can never carry
// unmatchable entries.
func (s *Service) UpdateTable(ctx context.Context, cmd UpdateTableCommand) error {
	table, ok := findTable(s.history.Current().Tables, cmd.TableID)
	if !ok {
		return fmt.Errorf("update table %q: %w", cmd.TableID, domain.ErrTableNotFound)
	}

	table.Name = cmd.Name
	table.DiceCommand = strings.TrimSpace(cmd.DiceCommand)
	if err := table.Validate(); err != nil {
		return err
	}
	if table.DiceCommand != "" {
		if _, err := dice.Parse(table.DiceCommand); err != nil {
			return err
		}
	}

	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.Tables = replaceTable(state.Tables, table)
		return state
	})
	return nil
}

// DeleteTable removes a table by id.
func (s *Service) DeleteTable(ctx context.Context, id string) error {
	if _, ok := findTable(s.history.Current().Tables, id); !ok {
		return fmt.Errorf("delete table %q: %w", id, domain.ErrTableNotFound)
	}

	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		tables := make([]domain.RandomTable, 0, len(state.Tables)-1)
		for _, table := range state.Tables {
			if table.ID != id {
				tables = append(tables, table)
			}
		}
		state.Tables = tables
		return state
	})
	return nil
}

// AddTableEntry appends an entry. On a dice-command table the roll value is
// required at entry-edit time.
func (s *Service) AddTableEntry(ctx context.Context, cmd TableEntryCommand) (domain.TableEntry, error) {
	table, ok := findTable(s.history.Current().Tables, cmd.TableID)
	if !ok {
		return domain.TableEntry{}, fmt.Errorf("add entry to table %q: %w", cmd.TableID, domain.ErrTableNotFound)
	}

	entry, err := s.buildTableEntry(table, cmd)
	if err != nil {
		return domain.TableEntry{}, err
	}

	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.Tables = replaceTable(state.Tables, withEntry(table, entry))
		return state
	})
	return entry, nil
}

// UpdateTableEntry edits an entry in place, keeping its id.
func (s *Service) UpdateTableEntry(ctx context.Context, cmd TableEntryCommand) error {
	table, ok := findTable(s.history.Current().Tables, cmd.TableID)
	if !ok {
		return fmt.Errorf("update entry in table %q: %w", cmd.TableID, domain.ErrTableNotFound)
	}

	found := false
	entries := make([]domain.TableEntry, len(table.Entries))
	for i, entry := range table.Entries {
		if entry.ID == cmd.EntryID {
			if err := validateEntryInput(table, cmd); err != nil {
				return err
			}
			entry.Value = cmd.Value
			entry.RollValue = strings.TrimSpace(cmd.RollValue)
			found = true
		}
		entries[i] = entry
	}
	if !found {
		return fmt.Errorf("update entry %q: %w", cmd.EntryID, domain.ErrEntryNotFound)
	}

	table.Entries = entries
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.Tables = replaceTable(state.Tables, table)
		return state
	})
	return nil
}

// DeleteTableEntry removes an entry by id.
func (s *Service) DeleteTableEntry(ctx context.Context, tableID, entryID string) error {
	table, ok := findTable(s.history.Current().Tables, tableID)
	if !ok {
		return fmt.Errorf("delete entry in table %q: %w", tableID, domain.ErrTableNotFound)
	}

	entries := make([]domain.TableEntry, 0, len(table.Entries))
	found := false
	for _, entry := range table.Entries {
		if entry.ID == entryID {
			found = true
			continue
		}
		entries = append(entries, entry)
	}
	if !found {
		return fmt.Errorf("delete entry %q: %w", entryID, domain.ErrEntryNotFound)
	}

	table.Entries = entries
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.Tables = replaceTable(state.Tables, table)
		return state
	})
	return nil
}

// ImportTableEntries appends a batch of entries (e.g. parsed from CSV) in a
// single commit. The whole batch is validated first; one bad row rejects
// the import.
func (s *Service) ImportTableEntries(ctx context.Context, tableID string, rows []TableEntryCommand) ([]domain.TableEntry, error) {
	table, ok := findTable(s.history.Current().Tables, tableID)
	if !ok {
		return nil, fmt.Errorf("import into table %q: %w", tableID, domain.ErrTableNotFound)
	}

	entries := make([]domain.TableEntry, 0, len(rows))
	for i, row := range rows {
		entry, err := s.buildTableEntry(table, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}

	next := table
	next.Entries = append(append([]domain.TableEntry(nil), table.Entries...), entries...)
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.Tables = replaceTable(state.Tables, next)
		return state
	})
	return entries, nil
}

// RollTable resolves a table roll. Dice-command tables roll the expression
// and match the total against entry roll values; command-less tables pick
// uniformly. The outcome is committed as one history step holding both the
// play-log line and, for dice tables, the dice-history record.
func (s *Service) RollTable(ctx context.Context, tableID string) (TableRollOutcome, error) {
	table, ok := findTable(s.history.Current().Tables, tableID)
	if !ok {
		return TableRollOutcome{}, fmt.Errorf("roll table %q: %w", tableID, domain.ErrTableNotFound)
	}
	if len(table.Entries) == 0 {
		return TableRollOutcome{}, fmt.Errorf("roll table %q: %w", tableID, domain.ErrTableEmpty)
	}

	outcome := TableRollOutcome{Table: table}
	if table.DiceCommand == "" {
		outcome.Entry = table.Entries[s.rng.Intn(len(table.Entries))]
	} else {
		result, err := dice.Eval(s.rng, table.DiceCommand)
		if err != nil {
			return TableRollOutcome{}, err
		}
		entry, matched := table.MatchEntry(result.Total)
		if !matched {
			return TableRollOutcome{}, fmt.Errorf("roll table %q (total %d): %w", tableID, result.Total, domain.ErrNoMatchingEntry)
		}
		outcome.Entry = entry
		outcome.Roll = &domain.DiceRoll{
			ID:              s.ids.NewID(),
			Command:         table.DiceCommand,
			IndividualRolls: result.Rolls,
			Total:           result.Total,
			Timestamp:       s.clock.Now(),
		}
	}

	content := fmt.Sprintf("Rolled on %s: %s", table.Name, outcome.Entry.Value)
	if outcome.Roll != nil {
		content = fmt.Sprintf("Rolled %s on %s: %s (total %d)", table.DiceCommand, table.Name, outcome.Entry.Value, outcome.Roll.Total)
	}
	entry := s.newLogEntry(content, domain.EntryNormal, domain.ColorDefault)

	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.PlayLogEntries = appendLogEntry(state.PlayLogEntries, entry)
		if outcome.Roll != nil {
			state.DiceRollHistory = domain.PushDiceRoll(state.DiceRollHistory, *outcome.Roll)
		}
		return state
	})
	return outcome, nil
}

func (s *Service) buildTableEntry(table domain.RandomTable, cmd TableEntryCommand) (domain.TableEntry, error) {
	if err := validateEntryInput(table, cmd); err != nil {
		return domain.TableEntry{}, err
	}
	return domain.TableEntry{
		ID:        s.ids.NewID(),
		Value:     cmd.Value,
		RollValue: strings.TrimSpace(cmd.RollValue),
	}, nil
}

func validateEntryInput(table domain.RandomTable, cmd TableEntryCommand) error {
	if strings.TrimSpace(cmd.Value) == "" {
		return domain.ErrEmptyContent
	}
	if table.DiceCommand != "" && strings.TrimSpace(cmd.RollValue) == "" {
		return domain.ErrRollValueRequired
	}
	return nil
}

func findTable(tables []domain.RandomTable, id string) (domain.RandomTable, bool) {
	for _, table := range tables {
		if table.ID == id {
			return table, true
		}
	}
	return domain.RandomTable{}, false
}

func replaceTable(tables []domain.RandomTable, updated domain.RandomTable) []domain.RandomTable {
	next := make([]domain.RandomTable, len(tables))
	for i, table := range tables {
		if table.ID == updated.ID {
			next[i] = updated
			continue
		}
		next[i] = table
	}
	return next
}

func withEntry(table domain.RandomTable, entry domain.TableEntry) domain.RandomTable {
	entries := make([]domain.TableEntry, 0, len(table.Entries)+1)
	entries = append(entries, table.Entries...)
	table.Entries = append(entries, entry)
	return table
}
