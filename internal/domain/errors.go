package domain

import "errors"

var (
	ErrEmptyContent      = errors.New("content must not be empty")
	ErrLogEntryNotFound  = errors.New("play log entry not found")
	ErrTableNotFound     = errors.New("random table not found")
	ErrEntryNotFound     = errors.New("table entry not found")
	ErrTrackerNotFound   = errors.New("resource tracker not found")
	ErrFieldNotFound     = errors.New("custom field not found")
	ErrRollValueRequired = errors.New("roll value is required when the table has a dice command")
	ErrTableEmpty        = errors.New("random table has no entries")
	ErrNoMatchingEntry   = errors.New("no table entry matches the rolled total")
	ErrGameTitleMissing  = errors.New("game data manifest is missing a game title")
)
