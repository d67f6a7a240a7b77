package domain

import "time"

type ResourceTracker struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Value   float64         `json:"value"`
	History []TrackerChange `json:"history"`
}

type TrackerChange struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Change        float64   `json:"change"`
	PreviousValue float64   `json:"previousValue"`
	NewValue      float64   `json:"newValue"`
	Reason        string    `json:"reason,omitempty"`
}

// WithChange returns a copy of the tracker at the new value with the change
// recorded most recent first, bounded to MaxTrackerChanges. The receiver's
// history slice is not modified.
func (t ResourceTracker) WithChange(change TrackerChange) ResourceTracker {
	history := make([]TrackerChange, 0, len(t.History)+1)
	history = append(history, change)
	history = append(history, t.History...)
	if len(history) > MaxTrackerChanges {
		history = history[:MaxTrackerChanges]
	}

	t.Value = change.NewValue
	t.History = history
	return t
}
