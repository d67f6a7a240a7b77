package sanitize

import (
	"testing"

	"github.com/soloquest/soloquest-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameDataJSONRequiresGameTitle(t *testing.T) {
	s := newTestSanitizer(t)

	for _, input := range []string{
		`{}`,
		`null`,
		`{"manifest": {}}`,
		`{"manifest": {"gameTitle": "   "}}`,
		`{"manifest": "not an object"}`,
	} {
		t.Run(input, func(t *testing.T) {
			_, err := s.GameDataJSON([]byte(input))
			require.ErrorIs(t, err, domain.ErrGameTitleMissing)
		})
	}

	_, err := s.GameDataJSON([]byte("{broken"))
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrGameTitleMissing)
}

func TestGameDataSanitizeDefaultsStructure(t *testing.T) {
	s := newTestSanitizer(t)

	pkg, err := s.GameDataJSON([]byte(`{
		"manifest": {"gameTitle": "Ironlands", "author": "anonymous", "version": "1.2"},
		"characterSheetTemplate": {
			"customFieldTemplates": [
				{"id": "tmpl-edge", "label": "Edge", "type": "number"},
				{"label": "Notes", "type": "scroll"},
				"not an object"
			]
		},
		"rulebookSections": [
			{"id": "sec-1", "title": "Moves", "content": "..."},
			null
		],
		"randomTables": [{"id": "tbl-1", "name": "Oracle"}],
		"resourceTrackerTemplates": [{"name": "Momentum", "initialValue": 2}, 7]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Ironlands", pkg.Manifest.GameTitle)
	assert.Equal(t, "1.2", pkg.Manifest.Version)
	assert.Equal(t, domain.DefaultStatsLabel, pkg.CharacterSheetTemplate.StatsLabel)

	require.Len(t, pkg.CharacterSheetTemplate.CustomFieldTemplates, 2)
	assert.Equal(t, "tmpl-edge", pkg.CharacterSheetTemplate.CustomFieldTemplates[0].ID)
	assert.Equal(t, domain.FieldNumber, pkg.CharacterSheetTemplate.CustomFieldTemplates[0].Type)
	// Unknown field types fall back to text, missing ids get fresh ones.
	assert.Equal(t, domain.FieldText, pkg.CharacterSheetTemplate.CustomFieldTemplates[1].Type)
	assert.NotEmpty(t, pkg.CharacterSheetTemplate.CustomFieldTemplates[1].ID)

	require.Len(t, pkg.RulebookSections, 1)
	assert.Equal(t, "Moves", pkg.RulebookSections[0].Title)

	require.Len(t, pkg.RandomTables, 1)
	assert.Equal(t, "Oracle", pkg.RandomTables[0].Name)

	require.Len(t, pkg.ResourceTrackers, 1)
	assert.Equal(t, "Momentum", pkg.ResourceTrackers[0].Name)
	assert.Equal(t, 2.0, pkg.ResourceTrackers[0].InitialValue)
}

func TestGameDataSanitizeRegeneratesDuplicateTemplateIDs(t *testing.T) {
	s := newTestSanitizer(t)

	pkg, err := s.GameDataJSON([]byte(`{
		"manifest": {"gameTitle": "Ironlands"},
		"characterSheetTemplate": {
			"customFieldTemplates": [
				{"id": "tmpl", "label": "Edge"},
				{"id": "tmpl", "label": "Heart"}
			]
		},
		"resourceTrackerTemplates": [
			{"id": "trk", "name": "Momentum"},
			{"id": "trk", "name": "Supply"}
		]
	}`))
	require.NoError(t, err)

	fields := pkg.CharacterSheetTemplate.CustomFieldTemplates
	require.Len(t, fields, 2)
	assert.Equal(t, "tmpl", fields[0].ID)
	assert.NotEqual(t, "tmpl", fields[1].ID)

	trackers := pkg.ResourceTrackers
	require.Len(t, trackers, 2)
	assert.Equal(t, "trk", trackers[0].ID)
	assert.NotEqual(t, "trk", trackers[1].ID)
}
