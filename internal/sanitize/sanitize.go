// Package sanitize converts arbitrary parsed JSON into well-formed domain
// values. Every function here is total: missing, wrong-typed, or malformed
// fields are replaced with defaults rather than reported, so the worst
// possible input still yields a usable session.
package sanitize

import (
	"regexp"
	"time"

	"github.com/soloquest/soloquest-cli/internal/ports"
)

// identifierShaped accepts ids produced by this tool and any reasonable
// foreign id. Preserving such ids keeps save/load round-trips stable.
var identifierShaped = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,64}$`)

type Sanitizer struct {
	clock ports.Clock
	ids   ports.IDGenerator
}

func New(clock ports.Clock, ids ports.IDGenerator) *Sanitizer {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if ids == nil {
		ids = ports.RandomIDGenerator{}
	}

	return &Sanitizer{clock: clock, ids: ids}
}

// object narrows a decoded JSON value to an object, or nil. All field
// helpers tolerate a nil map, so callers can chain without checks.
func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func sequence(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	s, _ := m[key].([]any)
	return s
}

func str(m map[string]any, key, fallback string) string {
	if m == nil {
		return fallback
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return fallback
}

func number(m map[string]any, key string, fallback float64) float64 {
	if m == nil {
		return fallback
	}
	if n, ok := m[key].(float64); ok {
		return n
	}
	return fallback
}

// id preserves an identifier-shaped string and synthesizes a fresh id for
// anything else, so two passes over valid input agree. Sequence callers go
// through uniqueID instead, which also rejects duplicates.
func (s *Sanitizer) id(m map[string]any, key string) string {
	if m != nil {
		if v, ok := m[key].(string); ok && identifierShaped.MatchString(v) {
			return v
		}
	}
	return s.ids.NewID()
}

// seenIDs tracks the ids already taken within one containing sequence.
type seenIDs map[string]struct{}

// uniqueID resolves an id like id does, then regenerates it while it
// collides with one already taken in the sequence. The first occurrence
// keeps its id, so valid input still round-trips unchanged.
func (s *Sanitizer) uniqueID(seen seenIDs, m map[string]any, key string) string {
	id := s.id(m, key)
	for {
		if _, taken := seen[id]; !taken {
			break
		}
		id = s.ids.NewID()
	}
	seen[id] = struct{}{}
	return id
}

// timestamp parses an ISO instant, substituting the current time for
// anything unparsable.
func (s *Sanitizer) timestamp(m map[string]any, key string) time.Time {
	if m != nil {
		if v, ok := m[key].(string); ok {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return t
			}
		}
	}
	return s.clock.Now()
}
