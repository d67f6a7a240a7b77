package sanitize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/soloquest/soloquest-cli/internal/domain"
)

// SessionJSON decodes and sanitizes a session file. Only unparsable JSON is
// an error; any parsable value, session-shaped or not, yields a valid state.
func (s *Sanitizer) SessionJSON(data []byte) (domain.SessionState, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.SessionState{}, fmt.Errorf("parse session file: %w", err)
	}
	return s.Session(raw), nil
}

// Snapshot sanitizes a decoded snapshot read back from this tool's own
// storage. It follows the Session rules except that an identifier-shaped
// session id is kept: reopening storage resumes the same session rather
// than importing a foreign one.
func (s *Sanitizer) Snapshot(v any) domain.SessionState {
	state := s.Session(v)
	if id, ok := object(v)["sessionId"].(string); ok && identifierShaped.MatchString(id) {
		state.SessionID = id
	}
	return state
}

// Session sanitizes an arbitrary decoded JSON value into a SessionState.
// The session id is always regenerated: loading external data starts a new
// session identity. Every other field keeps whatever valid content the
// input carried and falls back to its default otherwise.
func (s *Sanitizer) Session(v any) domain.SessionState {
	m := object(v)
	state := domain.NewSessionState(s.ids.NewID())

	if title := str(m, "playLogTitle", ""); strings.TrimSpace(title) != "" {
		state.PlayLogTitle = title
	}

	state.PlayLogEntries = s.logEntries(sequence(m, "playLogEntries"))
	state.CharacterSheet = s.characterSheet(object(m["characterSheet"]))
	state.Tables = s.tables(sequence(m, "tables"))
	state.ResourceTrackers = s.trackers(sequence(m, "resourceTrackers"))
	state.DiceRollHistory = s.diceRolls(sequence(m, "diceRollHistory"))

	if theme := domain.Theme(str(m, "theme", "")); theme.Valid() {
		state.Theme = theme
	}

	if pkgValue, ok := m["loadedGameDataPackage"]; ok {
		if pkgMap := object(pkgValue); pkgMap != nil {
			pkg := s.gameData(pkgMap)
			// The manifest gate applies here too: an embedded package that
			// would be rejected on load is dropped rather than kept.
			if pkg.Validate() == nil {
				state.LoadedGameData = &pkg
				state.GameDataLoadID = s.id(m, "gameDataPackageLoadId")
			}
		}
	}

	return state
}

func (s *Sanitizer) logEntries(raw []any) []domain.LogEntry {
	if len(raw) == 0 {
		return nil
	}

	entries := make([]domain.LogEntry, 0, len(raw))
	seen := seenIDs{}
	for _, item := range raw {
		m := object(item)
		if m == nil {
			continue
		}

		entry := domain.LogEntry{
			ID:        s.uniqueID(seen, m, "id"),
			Content:   str(m, "content", ""),
			Type:      domain.EntryNormal,
			ColorKey:  domain.ColorDefault,
			Timestamp: s.timestamp(m, "timestamp"),
		}
		if t := domain.EntryType(str(m, "type", "")); t.Valid() {
			entry.Type = t
		}
		if c := domain.ColorKey(str(m, "colorKey", "")); c.Valid() {
			entry.ColorKey = c
		}
		entries = append(entries, entry)
	}
	return entries
}

func (s *Sanitizer) characterSheet(m map[string]any) domain.CharacterSheet {
	sheet := domain.CharacterSheet{
		Name:       str(m, "name", ""),
		Image:      str(m, "image", ""),
		Stats:      str(m, "stats", ""),
		StatsLabel: str(m, "statsLabel", domain.DefaultStatsLabel),
	}

	seen := seenIDs{}
	for _, item := range sequence(m, "customFields") {
		fm := object(item)
		if fm == nil {
			continue
		}
		sheet.CustomFields = append(sheet.CustomFields, domain.CustomField{
			ID:         s.uniqueID(seen, fm, "id"),
			FieldName:  str(fm, "fieldName", ""),
			FieldValue: str(fm, "fieldValue", ""),
		})
	}
	return sheet
}

func (s *Sanitizer) tables(raw []any) []domain.RandomTable {
	if len(raw) == 0 {
		return nil
	}

	tables := make([]domain.RandomTable, 0, len(raw))
	seen := seenIDs{}
	for _, item := range raw {
		m := object(item)
		if m == nil {
			continue
		}
		tables = append(tables, s.table(m, seen))
	}
	return tables
}

func (s *Sanitizer) table(m map[string]any, seen seenIDs) domain.RandomTable {
	table := domain.RandomTable{
		ID:          s.uniqueID(seen, m, "id"),
		Name:        str(m, "name", ""),
		DiceCommand: str(m, "diceCommand", ""),
	}

	seenEntries := seenIDs{}
	for _, item := range sequence(m, "entries") {
		em := object(item)
		if em == nil {
			continue
		}
		table.Entries = append(table.Entries, domain.TableEntry{
			ID:        s.uniqueID(seenEntries, em, "id"),
			Value:     str(em, "value", ""),
			RollValue: str(em, "rollValue", ""),
		})
	}
	return table
}

func (s *Sanitizer) trackers(raw []any) []domain.ResourceTracker {
	if len(raw) == 0 {
		return nil
	}

	trackers := make([]domain.ResourceTracker, 0, len(raw))
	seen := seenIDs{}
	for _, item := range raw {
		m := object(item)
		if m == nil {
			continue
		}

		tracker := domain.ResourceTracker{
			ID:    s.uniqueID(seen, m, "id"),
			Name:  str(m, "name", ""),
			Value: number(m, "value", 0),
		}
		seenChanges := seenIDs{}
		for _, change := range sequence(m, "history") {
			cm := object(change)
			if cm == nil {
				continue
			}
			tracker.History = append(tracker.History, domain.TrackerChange{
				ID:            s.uniqueID(seenChanges, cm, "id"),
				Timestamp:     s.timestamp(cm, "timestamp"),
				Change:        number(cm, "change", 0),
				PreviousValue: number(cm, "previousValue", 0),
				NewValue:      number(cm, "newValue", 0),
				Reason:        str(cm, "reason", ""),
			})
		}
		if len(tracker.History) > domain.MaxTrackerChanges {
			tracker.History = tracker.History[:domain.MaxTrackerChanges]
		}
		trackers = append(trackers, tracker)
	}
	return trackers
}

func (s *Sanitizer) diceRolls(raw []any) []domain.DiceRoll {
	if len(raw) == 0 {
		return nil
	}

	rolls := make([]domain.DiceRoll, 0, len(raw))
	seen := seenIDs{}
	for _, item := range raw {
		m := object(item)
		if m == nil {
			continue
		}

		roll := domain.DiceRoll{
			ID:        s.uniqueID(seen, m, "id"),
			Command:   str(m, "command", ""),
			Total:     int(number(m, "total", 0)),
			Timestamp: s.timestamp(m, "timestamp"),
		}
		for _, value := range sequence(m, "individualRolls") {
			if n, ok := value.(float64); ok {
				roll.IndividualRolls = append(roll.IndividualRolls, int(n))
			}
		}
		rolls = append(rolls, roll)
		if len(rolls) == domain.MaxDiceRolls {
			break
		}
	}
	return rolls
}
