package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStateDefaults(t *testing.T) {
	state := NewSessionState("session-1")

	assert.Equal(t, "session-1", state.SessionID)
	assert.Equal(t, DefaultPlayLogTitle, state.PlayLogTitle)
	assert.Equal(t, DefaultStatsLabel, state.CharacterSheet.StatsLabel)
	assert.Equal(t, ThemeDark, state.Theme)
	assert.Nil(t, state.LoadedGameData)
	assert.Empty(t, state.GameDataLoadID)
}

func TestThemeValid(t *testing.T) {
	for _, theme := range []Theme{ThemeDark, ThemeLight, ThemeParchment, ThemeMidnight} {
		assert.True(t, theme.Valid(), theme)
	}
	assert.False(t, Theme("neon").Valid())
	assert.False(t, Theme("").Valid())
}

func TestPushDiceRollKeepsMostRecentFirstWithinBound(t *testing.T) {
	var history []DiceRoll
	for i := 0; i < MaxDiceRolls+5; i++ {
		history = PushDiceRoll(history, DiceRoll{ID: fmt.Sprintf("roll-%d", i)})
	}

	require.Len(t, history, MaxDiceRolls)
	assert.Equal(t, fmt.Sprintf("roll-%d", MaxDiceRolls+4), history[0].ID)
	assert.Equal(t, "roll-5", history[MaxDiceRolls-1].ID)
}

func TestPushDiceRollDoesNotModifyInput(t *testing.T) {
	original := []DiceRoll{{ID: "roll-1"}}
	_ = PushDiceRoll(original, DiceRoll{ID: "roll-2"})

	require.Len(t, original, 1)
	assert.Equal(t, "roll-1", original[0].ID)
}

func TestTrackerWithChangeBoundsHistory(t *testing.T) {
	tracker := ResourceTracker{ID: "trk-1", Name: "HP", Value: 0}
	for i := 1; i <= MaxTrackerChanges+3; i++ {
		tracker = tracker.WithChange(TrackerChange{
			ID:            fmt.Sprintf("chg-%d", i),
			PreviousValue: tracker.Value,
			NewValue:      float64(i),
			Change:        float64(i) - tracker.Value,
		})
	}

	assert.Equal(t, float64(MaxTrackerChanges+3), tracker.Value)
	require.Len(t, tracker.History, MaxTrackerChanges)
	assert.Equal(t, fmt.Sprintf("chg-%d", MaxTrackerChanges+3), tracker.History[0].ID)
}

func TestEntryTypeAndColorKeyValid(t *testing.T) {
	assert.True(t, EntryNormal.Valid())
	assert.True(t, EntryHeading.Valid())
	assert.False(t, EntryType("chapter").Valid())

	for _, c := range []ColorKey{ColorDefault, ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorPurple} {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, ColorKey("mauve").Valid())
}

func TestLogEntryValidate(t *testing.T) {
	valid := LogEntry{ID: "entry-1", Content: "fine", Type: EntryNormal, ColorKey: ColorDefault}
	require.NoError(t, valid.Validate())

	missingContent := valid
	missingContent.Content = "  "
	require.ErrorIs(t, missingContent.Validate(), ErrEmptyContent)

	badType := valid
	badType.Type = "chapter"
	require.Error(t, badType.Validate())
}
