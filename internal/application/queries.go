package application

import "github.com/soloquest/soloquest-cli/internal/domain"

// Overview is the read model handed to renderers.
type Overview struct {
	SessionID     string
	Title         string
	Theme         domain.Theme
	CharacterName string
	GameTitle     string
	EntryCount    int
	Trackers      []domain.ResourceTracker
	RecentRolls   []domain.DiceRoll
	CanUndo       bool
	CanRedo       bool
}

// TableRollOutcome describes one resolved table roll. Roll is nil when the
// table has no dice command and picked uniformly.
type TableRollOutcome struct {
	Table domain.RandomTable
	Entry domain.TableEntry
	Roll  *domain.DiceRoll
}
