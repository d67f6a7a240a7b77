package domain

import "strings"

// GameDataPackage is an externally authored content bundle (conventionally a
// .srgd file): rulebook text, table and tracker templates, and a character
// sheet template, loadable into a session without becoming part of the
// session's own authored data.
type GameDataPackage struct {
	Manifest               GameDataManifest       `json:"manifest"`
	CharacterSheetTemplate CharacterSheetTemplate `json:"characterSheetTemplate"`
	RulebookSections       []RulebookSection      `json:"rulebookSections"`
	RandomTables           []RandomTable          `json:"randomTables"`
	ResourceTrackers       []TrackerTemplate      `json:"resourceTrackerTemplates"`
}

type GameDataManifest struct {
	GameTitle     string `json:"gameTitle"`
	Author        string `json:"author,omitempty"`
	Version       string `json:"version,omitempty"`
	Description   string `json:"description,omitempty"`
	FormatVersion string `json:"formatVersion,omitempty"`
}

type CharacterSheetTemplate struct {
	StatsLabel           string                `json:"statsLabel"`
	BaseStats            string                `json:"baseStats"`
	CustomFieldTemplates []CustomFieldTemplate `json:"customFieldTemplates"`
}

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldNumber   FieldType = "number"
)

func (t FieldType) Valid() bool {
	return t == FieldText || t == FieldTextarea || t == FieldNumber
}

type CustomFieldTemplate struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

type RulebookSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type TrackerTemplate struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	InitialValue float64 `json:"initialValue"`
}

func (p GameDataPackage) Validate() error {
	if strings.TrimSpace(p.Manifest.GameTitle) == "" {
		return ErrGameTitleMissing
	}
	return nil
}
