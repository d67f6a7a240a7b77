package application

import "github.com/soloquest/soloquest-cli/internal/domain"

type AddLogEntryCommand struct {
	Content  string
	Type     domain.EntryType
	ColorKey domain.ColorKey

	// Trackers optionally replaces the resource tracker list in the same
	// commit, so a resource change and its log line land in one undoable
	// step.
	Trackers        []domain.ResourceTracker
	ReplaceTrackers bool
}

type UpdateLogEntryCommand struct {
	ID       string
	Content  string
	Type     domain.EntryType
	ColorKey domain.ColorKey
}

type AdjustTrackerCommand struct {
	TrackerID string
	NewValue  float64
	Reason    string
}

type AddTableCommand struct {
	Name        string
	DiceCommand string
}

type UpdateTableCommand struct {
	TableID     string
	Name        string
	DiceCommand string
}

type TableEntryCommand struct {
	TableID   string
	EntryID   string
	Value     string
	RollValue string
}

type CustomFieldCommand struct {
	FieldID    string
	FieldName  string
	FieldValue string
}
