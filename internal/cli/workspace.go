package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pluqqy/packsmith/internal/config"
	"github.com/pluqqy/packsmith/pkg/dialog"
	"github.com/pluqqy/packsmith/pkg/docfile"
	"github.com/pluqqy/packsmith/pkg/document"
	"github.com/pluqqy/packsmith/pkg/models"
	"github.com/pluqqy/packsmith/pkg/pack"
	"github.com/pluqqy/packsmith/pkg/packfolder"
	"github.com/pluqqy/packsmith/pkg/search"
)

// Entry describes one document of a pack
type Entry struct {
	Kind string `json:"kind" yaml:"kind"`
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Kind gives the commands uniform access to one folder service
type Kind interface {
	Name() string
	Folder() string
	Entries() []Entry
	Add(ctx context.Context) (Entry, bool)
	Rename(ctx context.Context, name string) (Entry, bool, error)
	Delete(ctx context.Context, name string) (bool, error)
	// Record returns the persisted form of the named document.
	Record(name string) (title string, record interface{}, err error)
	Items() []search.Item
}

// folderKind adapts a folder service. describe returns the tags and free
// text searched in a document.
type folderKind[T models.Data[T]] struct {
	name     string
	service  *packfolder.Service[T, uuid.UUID]
	describe func(T) ([]string, string)
}

func (k *folderKind[T]) Name() string   { return k.name }
func (k *folderKind[T]) Folder() string { return k.service.Subfolder() }

func (k *folderKind[T]) entry(f docfile.Keyed[T, uuid.UUID]) Entry {
	return Entry{Kind: k.name, ID: f.ID().String(), Name: f.FriendlyID()}
}

func (k *folderKind[T]) Entries() []Entry {
	var entries []Entry
	for _, f := range k.service.Files() {
		entries = append(entries, k.entry(f))
	}
	return entries
}

func (k *folderKind[T]) find(name string) (docfile.Keyed[T, uuid.UUID], error) {
	f, ok := k.service.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("%s '%s' not found", k.name, name)
	}
	return f, nil
}

func (k *folderKind[T]) Add(ctx context.Context) (Entry, bool) {
	f, ok := k.service.AddFile(ctx)
	if !ok {
		return Entry{}, false
	}
	return k.entry(f), true
}

func (k *folderKind[T]) Rename(ctx context.Context, name string) (Entry, bool, error) {
	f, err := k.find(name)
	if err != nil {
		return Entry{}, false, err
	}
	if !k.service.RenameFile(ctx, f) {
		return Entry{}, false, nil
	}
	return k.entry(f), true, nil
}

func (k *folderKind[T]) Delete(ctx context.Context, name string) (bool, error) {
	f, err := k.find(name)
	if err != nil {
		return false, err
	}
	return k.service.DeleteFile(ctx, f), nil
}

func (k *folderKind[T]) Record(name string) (string, interface{}, error) {
	f, err := k.find(name)
	if err != nil {
		return "", nil, err
	}
	record := models.NamedData[T]{Name: f.FriendlyID(), Data: f.SavedData()}
	return f.TitlePrefix() + f.FriendlyID(), record, nil
}

func (k *folderKind[T]) Items() []search.Item {
	var items []search.Item
	for _, f := range k.service.Files() {
		tags, text := k.describe(f.SavedData())
		items = append(items, search.Item{
			Kind:   k.name,
			Folder: k.service.Subfolder(),
			ID:     f.ID().String(),
			Name:   f.FriendlyID(),
			Tags:   tags,
			Text:   text,
		})
	}
	return items
}

func describeEntity(e *models.Entity) ([]string, string) {
	return e.Tags(), e.Description()
}

func describeMap(m *models.Map) ([]string, string) {
	return nil, strings.Join(m.Layers(), " ")
}

// Workspace is the composition root of an opened pack
type Workspace struct {
	Settings  *config.Settings
	Dialogs   dialog.Service
	Documents *document.Service
	Entities  *packfolder.Service[*models.Entity, uuid.UUID]
	Maps      *packfolder.Service[*models.Map, uuid.UUID]
	Images    *pack.ImageManifestService
	Pack      *pack.Service
	kinds     []Kind
}

// NewWorkspace wires the services of a pack. No pack is opened yet.
func NewWorkspace(settings *config.Settings, dialogs dialog.Service) *Workspace {
	documents := document.NewService(dialogs)
	entities := packfolder.New(packfolder.Config[*models.Entity, uuid.UUID]{
		Subfolder: settings.Pack.EntitiesDir,
		Factory:   docfile.NewFactory(models.NewEntity, uuid.Parse),
		NewID:     uuid.New,
		Dialogs:   dialogs,
		Documents: documents,
	})
	maps := packfolder.New(packfolder.Config[*models.Map, uuid.UUID]{
		Subfolder: settings.Pack.MapsDir,
		Factory:   docfile.NewFactory(models.NewMap, uuid.Parse),
		NewID:     uuid.New,
		Dialogs:   dialogs,
		Documents: documents,
	})
	images := pack.NewImageManifestService()

	return &Workspace{
		Settings:  settings,
		Dialogs:   dialogs,
		Documents: documents,
		Entities:  entities,
		Maps:      maps,
		Images:    images,
		Pack: pack.NewService(pack.Config{
			Metadata:  pack.NewMetadataService(),
			Images:    images,
			Folders:   []pack.FolderService{entities, maps},
			Documents: documents,
		}),
		kinds: []Kind{
			&folderKind[*models.Entity]{name: KindEntity, service: entities, describe: describeEntity},
			&folderKind[*models.Map]{name: KindMap, service: maps, describe: describeMap},
		},
	}
}

// Kinds returns every document kind in display order
func (w *Workspace) Kinds() []Kind {
	return w.kinds
}

// Items returns the searchable view of every document
func (w *Workspace) Items() []search.Item {
	var items []search.Item
	for _, k := range w.kinds {
		items = append(items, k.Items()...)
	}
	return items
}

// Kind returns the kind with the given (possibly plural) name
func (w *Workspace) Kind(name string) (Kind, error) {
	if err := ValidateKind(name); err != nil {
		return nil, err
	}
	normalized := NormalizeKind(name)
	for _, k := range w.kinds {
		if k.Name() == normalized {
			return k, nil
		}
	}
	return nil, fmt.Errorf("invalid kind: %s", name)
}
