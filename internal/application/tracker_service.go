package application

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/soloquest/soloquest-cli/internal/domain"
)

// AddTracker creates a resource tracker at an initial value.
func (s *Service) AddTracker(ctx context.Context, name string, initial float64) (domain.ResourceTracker, error) {
	if strings.TrimSpace(name) == "" {
		return domain.ResourceTracker{}, fmt.Errorf("tracker name is required")
	}

	tracker := domain.ResourceTracker{
		ID:    s.ids.NewID(),
		Name:  name,
		Value: initial,
	}
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		trackers := make([]domain.ResourceTracker, 0, len(state.ResourceTrackers)+1)
		trackers = append(trackers, state.ResourceTrackers...)
		state.ResourceTrackers = append(trackers, tracker)
		return state
	})
	return tracker, nil
}

// DeleteTracker removes a tracker by id.
func (s *Service) DeleteTracker(ctx context.Context, id string) error {
	if _, ok := findTracker(s.history.Current().ResourceTrackers, id); !ok {
		return fmt.Errorf("delete tracker %q: %w", id, domain.ErrTrackerNotFound)
	}

	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		trackers := make([]domain.ResourceTracker, 0, len(state.ResourceTrackers)-1)
		for _, tracker := range state.ResourceTrackers {
			if tracker.ID != id {
				trackers = append(trackers, tracker)
			}
		}
		state.ResourceTrackers = trackers
		return state
	})
	return nil
}

// AdjustTracker sets a tracker to a new value. A real change, or any
// non-empty reason, records a change in the tracker's bounded history and
// lands together with its audit log entry in a single undoable commit.
// When neither the value nor the reason carries information the tracker
// list would be unchanged, so no commit happens at all: confirming the
// current value must not pollute the undo history.
func (s *Service) AdjustTracker(ctx context.Context, cmd AdjustTrackerCommand) error {
	current := s.history.Current()
	tracker, ok := findTracker(current.ResourceTrackers, cmd.TrackerID)
	if !ok {
		return fmt.Errorf("adjust tracker %q: %w", cmd.TrackerID, domain.ErrTrackerNotFound)
	}

	change := cmd.NewValue - tracker.Value
	reason := strings.TrimSpace(cmd.Reason)

	if change == 0 && reason == "" {
		updated := replaceTracker(current.ResourceTrackers, tracker)
		if reflect.DeepEqual(updated, current.ResourceTrackers) {
			return nil
		}
		s.commit(ctx, func(state domain.SessionState) domain.SessionState {
			state.ResourceTrackers = updated
			return state
		})
		return nil
	}

	record := domain.TrackerChange{
		ID:            s.ids.NewID(),
		Timestamp:     s.clock.Now(),
		Change:        change,
		PreviousValue: tracker.Value,
		NewValue:      cmd.NewValue,
		Reason:        reason,
	}
	updated := replaceTracker(current.ResourceTrackers, tracker.WithChange(record))

	content := fmt.Sprintf("%s: %g -> %g (%+g)", tracker.Name, record.PreviousValue, record.NewValue, record.Change)
	if reason != "" {
		content = fmt.Sprintf("%s - %s", content, reason)
	}

	_, err := s.AddLogEntry(ctx, AddLogEntryCommand{
		Content:         content,
		Type:            domain.EntryNormal,
		ColorKey:        domain.ColorDefault,
		Trackers:        updated,
		ReplaceTrackers: true,
	})
	return err
}

func findTracker(trackers []domain.ResourceTracker, id string) (domain.ResourceTracker, bool) {
	for _, tracker := range trackers {
		if tracker.ID == id {
			return tracker, true
		}
	}
	return domain.ResourceTracker{}, false
}

func replaceTracker(trackers []domain.ResourceTracker, updated domain.ResourceTracker) []domain.ResourceTracker {
	next := make([]domain.ResourceTracker, len(trackers))
	for i, tracker := range trackers {
		if tracker.ID == updated.ID {
			next[i] = updated
			continue
		}
		next[i] = tracker
	}
	return next
}
