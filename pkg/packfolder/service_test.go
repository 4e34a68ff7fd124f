package packfolder

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/packsmith/pkg/dialog"
	"github.com/pluqqy/packsmith/pkg/docfile"
	"github.com/pluqqy/packsmith/pkg/document"
	"github.com/pluqqy/packsmith/pkg/files"
	"github.com/pluqqy/packsmith/pkg/models"
	"github.com/pluqqy/packsmith/pkg/observable"
)

type observableChange = observable.Change[uuid.UUID, docfile.Keyed[*models.Entity, uuid.UUID]]

type fixture struct {
	fs        afero.Fs
	pack      files.Folder
	dialogs   *dialog.Preset
	documents *document.Service
	entities  *Service[*models.Entity, uuid.UUID]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	pack, err := files.InitPackStructure(fs, "/pack")
	require.NoError(t, err)

	dialogs := &dialog.Preset{}
	documents := document.NewService(dialogs)
	entities := New(Config[*models.Entity, uuid.UUID]{
		Subfolder: files.EntitiesDir,
		Factory:   docfile.NewFactory(models.NewEntity, uuid.Parse),
		NewID:     uuid.New,
		Dialogs:   dialogs,
		Documents: documents,
	})
	t.Cleanup(entities.ClosePack)

	return &fixture{fs: fs, pack: pack, dialogs: dialogs, documents: documents, entities: entities}
}

func (f *fixture) add(t *testing.T, name string) docfile.Keyed[*models.Entity, uuid.UUID] {
	t.Helper()
	f.dialogs.Texts = []string{name}
	file, ok := f.entities.AddFile(context.Background())
	require.True(t, ok)
	return file
}

func (f *fixture) storageNames(t *testing.T) []string {
	t.Helper()
	folder, err := f.pack.GetFolder(files.EntitiesDir)
	require.NoError(t, err)
	items, err := folder.Items()
	require.NoError(t, err)
	var names []string
	for _, item := range items {
		names = append(names, item.Name())
	}
	return names
}

func readAll(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(b)
}

func TestNewPackHoldsOnlyNullFile(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.entities.NewPack(f.pack))

	entries := f.entities.Entries()
	require.Len(t, entries, 1)
	assert.True(t, docfile.IsNull(entries[0]))
	assert.Empty(t, f.entities.Files())
	exists, err := afero.DirExists(f.fs, "/pack/entities")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAddFileScenario(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))

	file := f.add(t, "Fire Rod")

	assert.Equal(t, "Fire Rod", file.FriendlyID())
	assert.Same(t, file, f.entities.GetFile(file.ID()))
	assert.Equal(t, "Entity - Fire Rod", f.documents.Open(file).Title())
	assert.JSONEq(t,
		`{"Name":"Fire Rod","Data":{"Description":"","Tags":[],"Stats":{"Health":100,"Speed":1}}}`,
		readAll(t, f.fs, "/pack/entities/"+file.ID().String()))
	assert.Equal(t, "Entity", f.entities.Kind())
}

func TestAddFileRejectsInvalidNames(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	f.add(t, "Goblin")

	f.dialogs.Texts = []string{"", "   ", "Goblin", docfile.NullFriendlyID}
	_, ok := f.entities.AddFile(context.Background())

	assert.False(t, ok)
	assert.Equal(t, []string{
		EmptyNameMessage,
		EmptyNameMessage,
		UniqueNameMessage,
		UniqueNameMessage,
	}, f.dialogs.Rejections)
	assert.Len(t, f.storageNames(t), 1)
	assert.Len(t, f.entities.Files(), 1)
}

func TestAddFileCancelled(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))

	_, ok := f.entities.AddFile(context.Background())

	assert.False(t, ok)
	assert.Empty(t, f.storageNames(t))
}

func TestAddFileWithoutPack(t *testing.T) {
	f := newFixture(t)
	f.dialogs.Texts = []string{"Goblin"}

	_, ok := f.entities.AddFile(context.Background())

	assert.False(t, ok)
	require.Len(t, f.dialogs.Errors, 1)
	assert.ErrorIs(t, f.dialogs.Errors[0], ErrNoPack)
}

func TestAddFileStorageFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	require.NoError(t, f.entities.NewPack(files.NewFolder(afero.NewReadOnlyFs(f.fs), "/pack")))
	f.dialogs.Texts = []string{"Goblin"}

	_, ok := f.entities.AddFile(context.Background())

	assert.False(t, ok)
	assert.Len(t, f.dialogs.Errors, 1)
	assert.Empty(t, f.entities.Files())
}

func TestOpenPackLoadsFiles(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	goblin := f.add(t, "Goblin")
	goblin.WorkingData().SetDescription("green")
	require.NoError(t, goblin.Save())
	f.add(t, "Orc")
	require.NoError(t, afero.WriteFile(f.fs, "/pack/entities/readme", []byte("not an entity"), 0644))
	f.entities.ClosePack()

	require.NoError(t, f.entities.OpenPack(f.pack))

	require.Len(t, f.entities.Files(), 2)
	loaded := f.entities.GetFile(goblin.ID())
	assert.Equal(t, "Goblin", loaded.FriendlyID())
	assert.Equal(t, "green", loaded.SavedData().Description())
	assert.NotSame(t, goblin, loaded)

	orc, ok := f.entities.FindByName("Orc")
	require.True(t, ok)
	assert.Equal(t, "Orc", orc.FriendlyID())
}

func TestOpenPackSkipsReservedID(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	f.add(t, "Goblin")
	require.NoError(t, afero.WriteFile(f.fs, "/pack/entities/"+uuid.Nil.String(), []byte(`{"Name":"Zero","Data":{}}`), 0644))
	f.entities.ClosePack()

	require.NoError(t, f.entities.OpenPack(f.pack))

	require.Len(t, f.entities.Entries(), 2)
	assert.True(t, docfile.IsNull(f.entities.GetFile(uuid.Nil)))
	require.Len(t, f.entities.Files(), 1)
	assert.Equal(t, "Goblin", f.entities.Files()[0].FriendlyID())
}

func TestOpenPackIgnoresNullData(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	id := uuid.New()
	require.NoError(t, afero.WriteFile(f.fs, "/pack/entities/"+id.String(), []byte(`{"Name":"Ghost","Data":null}`), 0644))
	f.entities.ClosePack()

	require.NotPanics(t, func() {
		require.NoError(t, f.entities.OpenPack(f.pack))
	})

	ghost := f.entities.GetFile(id)
	assert.False(t, docfile.IsNull(ghost))
	assert.Equal(t, "", ghost.FriendlyID())
}

func TestOpenPackWithoutSubfolder(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.entities.OpenPack(f.pack))

	assert.Len(t, f.entities.Entries(), 1)
	exists, err := afero.DirExists(f.fs, "/pack/entities")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClosePackEmptiesCollection(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	f.add(t, "Goblin")

	f.entities.ClosePack()
	f.entities.ClosePack()

	assert.Empty(t, f.entities.Entries())
}

func TestGetFileMissingReturnsNull(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))

	missing := f.entities.GetFile(uuid.New())

	assert.True(t, docfile.IsNull(missing))
	assert.Equal(t, "<none>", missing.FriendlyID())
}

func TestRenameFile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	goblin := f.add(t, "Goblin")
	f.add(t, "Orc")

	f.dialogs.Texts = []string{"Orc", "Hobgoblin"}
	assert.True(t, f.entities.RenameFile(context.Background(), goblin))

	assert.Equal(t, "Hobgoblin", goblin.FriendlyID())
	assert.Equal(t, []string{UniqueNameMessage}, f.dialogs.Rejections)
	assert.Contains(t, readAll(t, f.fs, "/pack/entities/"+goblin.ID().String()), `"Name": "Hobgoblin"`)
}

func TestRenameFileStorageFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	id := f.add(t, "Goblin").ID()
	require.NoError(t, f.entities.OpenPack(files.NewFolder(afero.NewReadOnlyFs(f.fs), "/pack")))
	goblin := f.entities.GetFile(id)
	f.dialogs.Texts = []string{"Hobgoblin"}

	assert.True(t, f.entities.RenameFile(context.Background(), goblin))

	assert.Len(t, f.dialogs.Errors, 1)
	assert.Equal(t, "Hobgoblin", goblin.FriendlyID())
	assert.Contains(t, readAll(t, f.fs, "/pack/entities/"+id.String()), `"Name": "Goblin"`)
}

func TestRenameFileKeepsOwnName(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	goblin := f.add(t, "Goblin")

	f.dialogs.Texts = []string{"Goblin"}

	assert.True(t, f.entities.RenameFile(context.Background(), goblin))
	assert.Empty(t, f.dialogs.Rejections)
}

func TestRenameNullFileIsIgnored(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	f.dialogs.Texts = []string{"x"}

	assert.False(t, f.entities.RenameFile(context.Background(), f.entities.GetFile(uuid.Nil)))
	assert.Len(t, f.dialogs.Texts, 1)
}

func TestDeleteFileNo(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	goblin := f.add(t, "Goblin")
	f.dialogs.Answers = []dialog.Choice{dialog.No}

	assert.False(t, f.entities.DeleteFile(context.Background(), goblin))

	assert.Same(t, goblin, f.entities.GetFile(goblin.ID()))
	assert.Equal(t, []string{goblin.ID().String()}, f.storageNames(t))
	assert.Equal(t, []string{"Are you sure you want to delete 'Goblin'?"}, f.dialogs.Questions)
}

func TestDeleteFileYes(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	goblin := f.add(t, "Goblin")
	f.documents.Open(goblin)
	f.dialogs.Answers = []dialog.Choice{dialog.Yes}

	assert.True(t, f.entities.DeleteFile(context.Background(), goblin))

	assert.True(t, docfile.IsNull(f.entities.GetFile(goblin.ID())))
	assert.Empty(t, f.storageNames(t))
	_, open := f.documents.Find(goblin)
	assert.False(t, open)
}

func TestDeleteFileStorageFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	goblin := f.add(t, "Goblin")
	require.NoError(t, f.fs.Remove("/pack/entities/"+goblin.ID().String()))
	f.dialogs.Answers = []dialog.Choice{dialog.Yes}

	assert.False(t, f.entities.DeleteFile(context.Background(), goblin))

	require.Len(t, f.dialogs.Errors, 1)
	assert.True(t, errors.Is(f.dialogs.Errors[0], files.ErrNotExist))
	assert.Empty(t, f.entities.Files())
}

func TestChangesStream(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.entities.NewPack(f.pack))
	var kinds []string
	f.entities.Changes().Subscribe(func(c observableChange) { kinds = append(kinds, c.Kind.String()) })

	goblin := f.add(t, "Goblin")
	f.dialogs.Answers = []dialog.Choice{dialog.Yes}
	f.entities.DeleteFile(context.Background(), goblin)

	assert.Equal(t, []string{"added", "removed"}, kinds)
}
