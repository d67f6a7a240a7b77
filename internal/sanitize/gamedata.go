package sanitize

import (
	"encoding/json"
	"fmt"

	"github.com/soloquest/soloquest-cli/internal/domain"
)

// GameDataJSON decodes and sanitizes a game-data package file. Unlike
// sessions, packages have one hard requirement: a non-empty manifest game
// title. Anything else is defaulted.
func (s *Sanitizer) GameDataJSON(data []byte) (domain.GameDataPackage, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.GameDataPackage{}, fmt.Errorf("parse game data package: %w", err)
	}
	return s.GameData(raw)
}

// GameData sanitizes an arbitrary decoded JSON value into a
// GameDataPackage, rejecting it when the manifest game title is missing.
func (s *Sanitizer) GameData(v any) (domain.GameDataPackage, error) {
	pkg := s.gameData(object(v))
	if err := pkg.Validate(); err != nil {
		return domain.GameDataPackage{}, err
	}
	return pkg, nil
}

func (s *Sanitizer) gameData(m map[string]any) domain.GameDataPackage {
	manifest := object(m["manifest"])
	template := object(m["characterSheetTemplate"])

	pkg := domain.GameDataPackage{
		Manifest: domain.GameDataManifest{
			GameTitle:     str(manifest, "gameTitle", ""),
			Author:        str(manifest, "author", ""),
			Version:       str(manifest, "version", ""),
			Description:   str(manifest, "description", ""),
			FormatVersion: str(manifest, "formatVersion", ""),
		},
		CharacterSheetTemplate: domain.CharacterSheetTemplate{
			StatsLabel: str(template, "statsLabel", domain.DefaultStatsLabel),
			BaseStats:  str(template, "baseStats", ""),
		},
		RandomTables: s.tables(sequence(m, "randomTables")),
	}

	seenFields := seenIDs{}
	for _, item := range sequence(template, "customFieldTemplates") {
		fm := object(item)
		if fm == nil {
			continue
		}
		field := domain.CustomFieldTemplate{
			ID:    s.uniqueID(seenFields, fm, "id"),
			Label: str(fm, "label", ""),
			Type:  domain.FieldText,
		}
		if t := domain.FieldType(str(fm, "type", "")); t.Valid() {
			field.Type = t
		}
		pkg.CharacterSheetTemplate.CustomFieldTemplates = append(pkg.CharacterSheetTemplate.CustomFieldTemplates, field)
	}

	seenSections := seenIDs{}
	for _, item := range sequence(m, "rulebookSections") {
		sm := object(item)
		if sm == nil {
			continue
		}
		pkg.RulebookSections = append(pkg.RulebookSections, domain.RulebookSection{
			ID:      s.uniqueID(seenSections, sm, "id"),
			Title:   str(sm, "title", ""),
			Content: str(sm, "content", ""),
		})
	}

	seenTrackers := seenIDs{}
	for _, item := range sequence(m, "resourceTrackerTemplates") {
		tm := object(item)
		if tm == nil {
			continue
		}
		pkg.ResourceTrackers = append(pkg.ResourceTrackers, domain.TrackerTemplate{
			ID:           s.uniqueID(seenTrackers, tm, "id"),
			Name:         str(tm, "name", ""),
			InitialValue: number(tm, "initialValue", 0),
		})
	}

	return pkg
}
