package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/soloquest/soloquest-cli/internal/domain"
)

// SetCharacterName updates the character's name.
func (s *Service) SetCharacterName(ctx context.Context, name string) {
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.CharacterSheet.Name = name
		return state
	})
}

// SetCharacterStats replaces the free-text stats block.
func (s *Service) SetCharacterStats(ctx context.Context, stats string) {
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.CharacterSheet.Stats = stats
		return state
	})
}

// SetCharacterImage sets or clears the character image reference.
func (s *Service) SetCharacterImage(ctx context.Context, image string) {
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.CharacterSheet.Image = image
		return state
	})
}

// SetStatsLabel overrides the stats caption; empty restores the default.
func (s *Service) SetStatsLabel(ctx context.Context, label string) {
	if strings.TrimSpace(label) == "" {
		label = domain.DefaultStatsLabel
	}
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.CharacterSheet.StatsLabel = label
		return state
	})
}

// AddCustomField appends a custom sheet field with a fresh id.
func (s *Service) AddCustomField(ctx context.Context, cmd CustomFieldCommand) (domain.CustomField, error) {
	if strings.TrimSpace(cmd.FieldName) == "" {
		return domain.CustomField{}, fmt.Errorf("field name is required")
	}

	field := domain.CustomField{
		ID:         s.ids.NewID(),
		FieldName:  cmd.FieldName,
		FieldValue: cmd.FieldValue,
	}
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		fields := make([]domain.CustomField, 0, len(state.CharacterSheet.CustomFields)+1)
		fields = append(fields, state.CharacterSheet.CustomFields...)
		state.CharacterSheet.CustomFields = append(fields, field)
		return state
	})
	return field, nil
}

// UpdateCustomField edits a custom field in place, keeping its id.
func (s *Service) UpdateCustomField(ctx context.Context, cmd CustomFieldCommand) error {
	if strings.TrimSpace(cmd.FieldName) == "" {
		return fmt.Errorf("field name is required")
	}
	if !hasCustomField(s.history.Current().CharacterSheet.CustomFields, cmd.FieldID) {
		return fmt.Errorf("update field %q: %w", cmd.FieldID, domain.ErrFieldNotFound)
	}

	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		fields := make([]domain.CustomField, len(state.CharacterSheet.CustomFields))
		for i, field := range state.CharacterSheet.CustomFields {
			if field.ID == cmd.FieldID {
				field.FieldName = cmd.FieldName
				field.FieldValue = cmd.FieldValue
			}
			fields[i] = field
		}
		state.CharacterSheet.CustomFields = fields
		return state
	})
	return nil
}

// DeleteCustomField removes a custom field by id.
func (s *Service) DeleteCustomField(ctx context.Context, id string) error {
	if !hasCustomField(s.history.Current().CharacterSheet.CustomFields, id) {
		return fmt.Errorf("delete field %q: %w", id, domain.ErrFieldNotFound)
	}

	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		fields := make([]domain.CustomField, 0, len(state.CharacterSheet.CustomFields)-1)
		for _, field := range state.CharacterSheet.CustomFields {
			if field.ID != id {
				fields = append(fields, field)
			}
		}
		state.CharacterSheet.CustomFields = fields
		return state
	})
	return nil
}

func hasCustomField(fields []domain.CustomField, id string) bool {
	for _, field := range fields {
		if field.ID == id {
			return true
		}
	}
	return false
}
