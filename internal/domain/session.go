package domain

import "time"

const (
	DefaultPlayLogTitle = "Adventure Log"
	DefaultStatsLabel   = "Stats"

	// MaxDiceRolls bounds the dice-roll history; the oldest roll is dropped
	// once the bound is reached.
	MaxDiceRolls = 20

	// MaxTrackerChanges bounds each resource tracker's change history.
	MaxTrackerChanges = 50
)

type Theme string

const (
	ThemeDark      Theme = "dark"
	ThemeLight     Theme = "light"
	ThemeParchment Theme = "parchment"
	ThemeMidnight  Theme = "midnight"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeDark, ThemeLight, ThemeParchment, ThemeMidnight:
		return true
	default:
		return false
	}
}

// SessionState is the full state of one play session. It is a value type:
// mutators derive a new SessionState and never modify an existing one, so a
// snapshot held by the history remains stable after later edits.
type SessionState struct {
	SessionID        string            `json:"sessionId"`
	PlayLogTitle     string            `json:"playLogTitle"`
	PlayLogEntries   []LogEntry        `json:"playLogEntries"`
	CharacterSheet   CharacterSheet    `json:"characterSheet"`
	Tables           []RandomTable     `json:"tables"`
	ResourceTrackers []ResourceTracker `json:"resourceTrackers"`
	DiceRollHistory  []DiceRoll        `json:"diceRollHistory"`
	Theme            Theme             `json:"theme"`
	LoadedGameData   *GameDataPackage  `json:"loadedGameDataPackage,omitempty"`
	GameDataLoadID   string            `json:"gameDataPackageLoadId,omitempty"`
}

// NewSessionState returns the default state for a fresh session.
func NewSessionState(sessionID string) SessionState {
	return SessionState{
		SessionID:    sessionID,
		PlayLogTitle: DefaultPlayLogTitle,
		CharacterSheet: CharacterSheet{
			StatsLabel: DefaultStatsLabel,
		},
		Theme: ThemeDark,
	}
}

// PushDiceRoll prepends roll to history, most recent first, dropping the
// oldest rolls beyond MaxDiceRolls. The input slice is not modified.
func PushDiceRoll(history []DiceRoll, roll DiceRoll) []DiceRoll {
	next := make([]DiceRoll, 0, len(history)+1)
	next = append(next, roll)
	next = append(next, history...)
	if len(next) > MaxDiceRolls {
		next = next[:MaxDiceRolls]
	}
	return next
}

type DiceRoll struct {
	ID              string    `json:"id"`
	Command         string    `json:"command"`
	IndividualRolls []int     `json:"individualRolls"`
	Total           int       `json:"total"`
	Timestamp       time.Time `json:"timestamp"`
}
