package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/packsmith/internal/cli"
)

const testPack = "/pack"

// execute runs the command tree against fs and returns what it wrote to its
// output stream.
func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	appFs = fs

	var out bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--pack", testPack, "--quiet"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newTestPack(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	_, err := execute(t, fs, "new", "--title", "Dungeon", "--author", "ana")
	require.NoError(t, err)
	return fs
}

func listEntries(t *testing.T, fs afero.Fs, args ...string) []cli.Entry {
	t.Helper()
	out, err := execute(t, fs, append([]string{"list", "-o", "json"}, args...)...)
	require.NoError(t, err)

	var entries []cli.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	return entries
}

func TestNewCreatesPack(t *testing.T) {
	fs := newTestPack(t)

	for _, dir := range []string{"entities", "maps", "images"} {
		exists, err := afero.DirExists(fs, filepath.Join(testPack, dir))
		require.NoError(t, err)
		assert.True(t, exists, dir)
	}

	data, err := afero.ReadFile(fs, filepath.Join(testPack, "pack.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Title":"Dungeon","Author":"ana","Version":"","Description":""}`, string(data))

	_, err = execute(t, fs, "new")
	assert.ErrorContains(t, err, "already exists")
}

func TestCommandsRequirePack(t *testing.T) {
	_, err := execute(t, afero.NewMemMapFs(), "list")
	assert.ErrorContains(t, err, "packsmith new")
}

func TestAddAndList(t *testing.T) {
	fs := newTestPack(t)

	_, err := execute(t, fs, "add", "entity", "Fire Rod")
	require.NoError(t, err)
	_, err = execute(t, fs, "add", "maps", "Cave")
	require.NoError(t, err)

	entries := listEntries(t, fs)
	require.Len(t, entries, 2)
	assert.Equal(t, "Fire Rod", entries[0].Name)
	assert.Equal(t, cli.KindEntity, entries[0].Kind)
	assert.Equal(t, "Cave", entries[1].Name)

	data, err := afero.ReadFile(fs, filepath.Join(testPack, "entities", entries[0].ID+".json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name": "Fire Rod"`)

	maps := listEntries(t, fs, "map")
	require.Len(t, maps, 1)
	assert.Equal(t, "Cave", maps[0].Name)
}

func TestAddRejectsDuplicateName(t *testing.T) {
	fs := newTestPack(t)
	_, err := execute(t, fs, "add", "entity", "Goblin")
	require.NoError(t, err)

	_, err = execute(t, fs, "add", "entity", "Goblin")
	assert.EqualError(t, err, "Name must be unique.")

	_, err = execute(t, fs, "add", "entity", "  ")
	assert.EqualError(t, err, "Name cannot be empty.")

	assert.Len(t, listEntries(t, fs), 1)
}

func TestAddRejectsUnknownKind(t *testing.T) {
	fs := newTestPack(t)

	_, err := execute(t, fs, "add", "sprite", "Orc")
	assert.ErrorContains(t, err, "invalid kind")
}

func TestRename(t *testing.T) {
	fs := newTestPack(t)
	_, err := execute(t, fs, "add", "entity", "Goblin")
	require.NoError(t, err)
	id := listEntries(t, fs)[0].ID

	_, err = execute(t, fs, "rename", "entity", "Goblin", "Goblin Chief")
	require.NoError(t, err)

	entries := listEntries(t, fs)
	require.Len(t, entries, 1)
	assert.Equal(t, "Goblin Chief", entries[0].Name)
	assert.Equal(t, id, entries[0].ID)

	_, err = execute(t, fs, "rename", "entity", "Nobody", "Somebody")
	assert.ErrorContains(t, err, "not found")
}

func TestDelete(t *testing.T) {
	fs := newTestPack(t)
	_, err := execute(t, fs, "add", "map", "Cave")
	require.NoError(t, err)
	id := listEntries(t, fs)[0].ID

	_, err = execute(t, fs, "delete", "map", "Cave", "--yes")
	require.NoError(t, err)

	assert.Empty(t, listEntries(t, fs))
	exists, err := afero.Exists(fs, filepath.Join(testPack, "maps", id+".json"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestShow(t *testing.T) {
	fs := newTestPack(t)
	_, err := execute(t, fs, "add", "entity", "Goblin")
	require.NoError(t, err)

	out, err := execute(t, fs, "show", "entity", "Goblin", "-o", "json")
	require.NoError(t, err)

	var record struct {
		Name string
		Data map[string]interface{}
	}
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "Goblin", record.Name)
	assert.Contains(t, record.Data, "Stats")

	out, err = execute(t, fs, "show", "entity", "Goblin")
	require.NoError(t, err)
	assert.Contains(t, out, "Entity - Goblin")

	out, err = execute(t, fs, "show", "entity", "Goblin", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Goblin")
}

func TestShowCopiesToClipboard(t *testing.T) {
	fs := newTestPack(t)
	_, err := execute(t, fs, "add", "entity", "Goblin")
	require.NoError(t, err)

	var copied string
	original := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = original })

	_, err = execute(t, fs, "show", "entity", "Goblin", "--copy")
	require.NoError(t, err)
	assert.Contains(t, copied, `"Name": "Goblin"`)
}

func TestTree(t *testing.T) {
	fs := newTestPack(t)
	_, err := execute(t, fs, "add", "entity", "Goblin")
	require.NoError(t, err)
	_, err = execute(t, fs, "add", "map", "Cave")
	require.NoError(t, err)

	out, err := execute(t, fs, "tree")
	require.NoError(t, err)

	assert.Contains(t, out, "Dungeon")
	assert.Contains(t, out, "entities/")
	assert.Contains(t, out, "Goblin [")
	assert.Contains(t, out, "maps/")
	assert.Contains(t, out, "Cave [")
}

func TestConfigInitAndShow(t *testing.T) {
	fs := newTestPack(t)

	_, err := execute(t, fs, "config", "init")
	require.NoError(t, err)
	exists, err := afero.Exists(fs, filepath.Join(testPack, "settings.yaml"))
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = execute(t, fs, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err := execute(t, fs, "config", "show", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"EntitiesDir": "entities"`)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Equal(t, "packsmith version test\n", out)
}

func TestTagEditsEntity(t *testing.T) {
	fs := newTestPack(t)
	_, err := execute(t, fs, "add", "entity", "Lich")
	require.NoError(t, err)

	out, err := execute(t, fs, "tag", "Lich", "--add", "Enemy/Undead", "--add", "boss")
	require.NoError(t, err)
	assert.Contains(t, out, "#enemy/undead")

	_, err = execute(t, fs, "tag", "Lich", "--remove", "boss")
	require.NoError(t, err)

	out, err = execute(t, fs, "tag", "Lich")
	require.NoError(t, err)
	assert.Contains(t, out, "#enemy/undead")
	assert.NotContains(t, out, "#boss")

	_, err = execute(t, fs, "tag", "Lich", "--add", "rare!")
	assert.ErrorContains(t, err, "invalid tag")

	_, err = execute(t, fs, "tag", "Nobody", "--add", "boss")
	assert.ErrorContains(t, err, "not found")
}

func TestTagsCountsUsage(t *testing.T) {
	fs := newTestPack(t)
	for _, name := range []string{"Lich", "Ghoul", "Dragon"} {
		_, err := execute(t, fs, "add", "entity", name)
		require.NoError(t, err)
	}
	_, err := execute(t, fs, "tag", "Lich", "--add", "undead", "--add", "boss")
	require.NoError(t, err)
	_, err = execute(t, fs, "tag", "Ghoul", "--add", "undead")
	require.NoError(t, err)

	out, err := execute(t, fs, "tags", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"tag":"undead","count":2},{"tag":"boss","count":1}]`, out)
}

func TestFind(t *testing.T) {
	fs := newTestPack(t)
	for _, name := range []string{"Lich", "Goblin"} {
		_, err := execute(t, fs, "add", "entity", name)
		require.NoError(t, err)
	}
	_, err := execute(t, fs, "add", "map", "Crypt")
	require.NoError(t, err)
	_, err = execute(t, fs, "tag", "Lich", "--add", "enemy/undead")
	require.NoError(t, err)

	names := func(args ...string) []string {
		out, err := execute(t, fs, append([]string{"find", "-o", "json"}, args...)...)
		require.NoError(t, err)
		var entries []cli.Entry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		var result []string
		for _, e := range entries {
			result = append(result, e.Name)
		}
		return result
	}

	assert.Equal(t, []string{"Lich"}, names("tag:enemy"))
	assert.ElementsMatch(t, []string{"Lich", "Crypt"}, names("tag:enemy", "OR", "kind:map"))
	assert.ElementsMatch(t, []string{"Goblin", "Crypt"}, names("NOT", "tag:enemy"))
	assert.Equal(t, []string{"Goblin"}, names("gob"))

	_, err = execute(t, fs, "find", "color:red")
	assert.ErrorContains(t, err, "invalid query")
}

func TestNewWithExamples(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := execute(t, fs, "new", "--example", "dungeon")
	require.NoError(t, err)

	var names []string
	for _, e := range listEntries(t, fs, "entity") {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"Goblin", "Goblin Chief", "Skeleton", "Lich"}, names)
	assert.Len(t, listEntries(t, fs, "map"), 2)

	out, err := execute(t, fs, "tag", "Lich")
	require.NoError(t, err)
	assert.Contains(t, out, "#caster")

	_, err = execute(t, afero.NewMemMapFs(), "new", "--example", "space")
	assert.ErrorContains(t, err, "unknown example set")
}

func TestExport(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := execute(t, fs, "new", "--title", "Crypt", "--example", "dungeon")
	require.NoError(t, err)

	out, err := execute(t, fs, "export", "--stdout")
	require.NoError(t, err)
	assert.Contains(t, out, "# Crypt\n")
	assert.Contains(t, out, "### Lich\n")
	assert.Contains(t, out, "- Size: 24 x 16\n")

	_, err = execute(t, fs, "export")
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, filepath.Join(testPack, "PACK.md"))
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}
