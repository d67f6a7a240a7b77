package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RandomTable is a rollable table. When DiceCommand is set, rolling the
// table rolls that expression and matches the total against each entry's
// RollValue pattern; when it is empty the table picks uniformly among its
// entries.
type RandomTable struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	DiceCommand string       `json:"diceCommand,omitempty"`
	Entries     []TableEntry `json:"entries"`
}

// TableEntry is one outcome on a table. RollValue is either a single total
// ("7") or an inclusive range ("3-5"); it is required whenever the owning
// table has a dice command.
type TableEntry struct {
	ID        string `json:"id"`
	Value     string `json:"value"`
	RollValue string `json:"rollValue,omitempty"`
}

func (t RandomTable) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("table name is required")
	}
	if t.DiceCommand == "" {
		return nil
	}
	for _, entry := range t.Entries {
		if strings.TrimSpace(entry.RollValue) == "" {
			return fmt.Errorf("entry %q: %w", entry.ID, ErrRollValueRequired)
		}
	}
	return nil
}

// MatchEntry returns the first entry whose roll-value pattern covers total.
func (t RandomTable) MatchEntry(total int) (TableEntry, bool) {
	for _, entry := range t.Entries {
		if rollValueMatches(entry.RollValue, total) {
			return entry, true
		}
	}
	return TableEntry{}, false
}

func rollValueMatches(pattern string, total int) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}

	if low, high, ok := strings.Cut(pattern, "-"); ok && low != "" {
		lowN, err := strconv.Atoi(strings.TrimSpace(low))
		if err != nil {
			return false
		}
		highN, err := strconv.Atoi(strings.TrimSpace(high))
		if err != nil {
			return false
		}
		return total >= lowN && total <= highN
	}

	n, err := strconv.Atoi(pattern)
	if err != nil {
		return false
	}
	return n == total
}
