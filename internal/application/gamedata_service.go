package application

import (
	"context"

	"github.com/soloquest/soloquest-cli/internal/domain"
)

// LoadGameDataJSON sanitizes and loads a game-data package file. A package
// whose manifest lacks a game title is rejected and the session is left
// untouched.
func (s *Service) LoadGameDataJSON(ctx context.Context, data []byte) (domain.GameDataPackage, error) {
	pkg, err := s.san.GameDataJSON(data)
	if err != nil {
		return domain.GameDataPackage{}, err
	}
	if err := s.LoadGameData(ctx, pkg); err != nil {
		return domain.GameDataPackage{}, err
	}
	return pkg, nil
}

// LoadGameData loads a validated game-data package into the session.
// Template data never clobbers user data: custom fields, trackers, and
// tables are populated from the package only when the session's own are
// empty. The stats label always follows the template. Loading a different
// package gets a fresh load id.
func (s *Service) LoadGameData(ctx context.Context, pkg domain.GameDataPackage) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	loadID := s.ids.NewID()
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.LoadedGameData = &pkg
		state.GameDataLoadID = loadID
		state.CharacterSheet.StatsLabel = pkg.CharacterSheetTemplate.StatsLabel
		if state.CharacterSheet.StatsLabel == "" {
			state.CharacterSheet.StatsLabel = domain.DefaultStatsLabel
		}

		if len(state.CharacterSheet.CustomFields) == 0 {
			for _, template := range pkg.CharacterSheetTemplate.CustomFieldTemplates {
				state.CharacterSheet.CustomFields = append(state.CharacterSheet.CustomFields, domain.CustomField{
					ID:        s.templateID(template.ID),
					FieldName: template.Label,
				})
			}
		}

		if len(state.ResourceTrackers) == 0 {
			for _, template := range pkg.ResourceTrackers {
				state.ResourceTrackers = append(state.ResourceTrackers, domain.ResourceTracker{
					ID:    s.templateID(template.ID),
					Name:  template.Name,
					Value: template.InitialValue,
				})
			}
		}

		if len(state.Tables) == 0 {
			state.Tables = append([]domain.RandomTable(nil), pkg.RandomTables...)
		}

		return state
	})
	return nil
}

// ClearGameData unloads the package and resets the template-derived fields
// to application defaults.
func (s *Service) ClearGameData(ctx context.Context) {
	s.commit(ctx, func(state domain.SessionState) domain.SessionState {
		state.LoadedGameData = nil
		state.GameDataLoadID = ""
		state.CharacterSheet.StatsLabel = domain.DefaultStatsLabel
		state.CharacterSheet.CustomFields = nil
		state.ResourceTrackers = nil
		state.Tables = nil
		return state
	})
}

func (s *Service) templateID(id string) string {
	if id != "" {
		return id
	}
	return s.ids.NewID()
}
