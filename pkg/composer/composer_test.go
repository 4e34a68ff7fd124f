package composer

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/packsmith/pkg/models"
)

func entity(name, description string, health int, tags ...string) models.NamedData[*models.Entity] {
	e := models.NewEntity()
	e.SetDescription(description)
	e.SetTags(tags)
	e.Stats().SetHealth(health)
	return models.NamedData[*models.Entity]{Name: name, Data: e}
}

func TestComposePack(t *testing.T) {
	meta := models.NewPackMetadata()
	meta.SetTitle("Dungeon")
	meta.SetAuthor("ana")
	meta.SetVersion("1.0")

	cave := models.NewMap()
	cave.SetWidth(24)
	cave.SetHeight(16)
	cave.SetLayers([]string{"ground", "walls"})

	output, err := ComposePack(Sheet{
		Metadata: meta,
		Entities: []models.NamedData[*models.Entity]{
			entity("Lich", "Casts spells.", 135, "enemy/undead", "boss"),
			entity("Goblin", "", 7),
		},
		Maps: []models.NamedData[*models.Map]{{Name: "Cave", Data: cave}},
	})
	require.NoError(t, err)

	assert.Contains(t, output, "# Dungeon\n\n_by ana, version 1.0_\n\n")
	assert.Contains(t, output, "### Lich\n\nCasts spells.\n\n- Health: 135\n")
	assert.Contains(t, output, "- Tags: enemy/undead, boss\n")
	assert.Contains(t, output, "### Goblin\n\n- Health: 7\n")
	assert.Contains(t, output, "## Maps\n\n### Cave\n\n- Size: 24 x 16\n- Layers: ground, walls\n")
	assert.Less(t, strings.Index(output, "### Goblin"), strings.Index(output, "### Lich"), "entities sorted by name")
}

func TestComposePackWithoutDocuments(t *testing.T) {
	meta := models.NewPackMetadata()
	meta.SetTitle("Empty")

	output, err := ComposePack(Sheet{Metadata: meta})
	require.NoError(t, err)
	assert.Equal(t, "# Empty\n\n", output)
}

func TestComposePackRequiresMetadata(t *testing.T) {
	_, err := ComposePack(Sheet{})
	assert.Error(t, err)
}

func TestWriteSheet(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, WriteSheet(fs, "# Pack\n", "/out/sheet.md"))
	data, err := afero.ReadFile(fs, "/out/sheet.md")
	require.NoError(t, err)
	assert.Equal(t, "# Pack\n", string(data))

	require.NoError(t, WriteSheet(fs, "# Default\n", ""))
	exists, err := afero.Exists(fs, DefaultOutputFile)
	require.NoError(t, err)
	assert.True(t, exists)
}
