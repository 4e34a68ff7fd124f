package examples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	set, ok := Get("Dungeon")
	require.True(t, ok)
	assert.Equal(t, "dungeon", set.Name)
	assert.NotEmpty(t, set.Entities)
	assert.NotEmpty(t, set.Maps)

	_, ok = Get("space")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"dungeon", "village"}, Names())
}

func TestExampleNamesAreUnique(t *testing.T) {
	for _, name := range Names() {
		set, _ := Get(name)

		seen := map[string]bool{}
		for _, e := range set.Entities {
			assert.False(t, seen[e.Name], "%s: duplicate entity %s", name, e.Name)
			seen[e.Name] = true
		}
		seen = map[string]bool{}
		for _, m := range set.Maps {
			assert.False(t, seen[m.Name], "%s: duplicate map %s", name, m.Name)
			seen[m.Name] = true
		}
	}
}
