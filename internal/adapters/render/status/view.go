package status

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soloquest/soloquest-cli/internal/application"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time

	// MaxRolls bounds how many recent dice rolls are shown; zero means all.
	MaxRolls int
}

func renderView(overview application.Overview, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(overview.Title),
		s.header.Render(fmt.Sprintf("session %s | theme %s | entries: %d", overview.SessionID, overview.Theme, overview.EntryCount)),
	}

	if overview.CharacterName != "" {
		lines = append(lines, s.value.Render("character: "+overview.CharacterName))
	}
	if overview.GameTitle != "" {
		lines = append(lines, s.value.Render("game data: "+overview.GameTitle))
	}

	lines = append(lines, s.section.Render(renderTrackers(overview, s)))
	lines = append(lines, s.section.Render(renderRolls(overview, opts, s)))
	lines = append(lines, s.section.Render(renderHistoryState(overview, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTrackers(overview application.Overview, s styles) string {
	if len(overview.Trackers) == 0 {
		return s.empty.Render("No resource trackers.")
	}

	parts := []string{s.label.Render("trackers:")}
	for _, tracker := range overview.Trackers {
		parts = append(parts, fmt.Sprintf("  %s %s", s.tracker.Render(tracker.Name), s.value.Render(formatValue(tracker.Value))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderRolls(overview application.Overview, opts RenderOptions, s styles) string {
	rolls := overview.RecentRolls
	if opts.MaxRolls > 0 && len(rolls) > opts.MaxRolls {
		rolls = rolls[:opts.MaxRolls]
	}
	if len(rolls) == 0 {
		return s.empty.Render("No dice rolls yet.")
	}

	parts := []string{s.label.Render("recent rolls:")}
	for _, roll := range rolls {
		meta := fmt.Sprintf("[%s]", joinInts(roll.IndividualRolls))
		parts = append(parts, fmt.Sprintf("  %s %s %s",
			s.roll.Render(fmt.Sprintf("%s = %d", roll.Command, roll.Total)),
			s.rollMeta.Render(meta),
			s.rollMeta.Render(roll.Timestamp.Format("15:04:05")),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHistoryState(overview application.Overview, s styles) string {
	undo := s.spent.Render("undo: unavailable")
	if overview.CanUndo {
		undo = s.available.Render("undo: available")
	}
	redo := s.spent.Render("redo: unavailable")
	if overview.CanRedo {
		redo = s.available.Render("redo: available")
	}
	return undo + s.value.Render("  ") + redo
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
