// Package packfolder manages the document files of one pack subfolder.
package packfolder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/pluqqy/packsmith/pkg/dialog"
	"github.com/pluqqy/packsmith/pkg/docfile"
	"github.com/pluqqy/packsmith/pkg/files"
	"github.com/pluqqy/packsmith/pkg/models"
	"github.com/pluqqy/packsmith/pkg/observable"
)

const (
	EmptyNameMessage  = "Name cannot be empty."
	UniqueNameMessage = "Name must be unique."
)

// ErrNoPack is reported when files are added before a pack is opened.
var ErrNoPack = errors.New("no pack is open")

// DocumentCloser closes open documents wrapping a file that is going away.
type DocumentCloser interface {
	CloseFile(file docfile.Handle)
}

func log() commonlog.Logger {
	return commonlog.GetLogger("packsmith.packfolder")
}

// Config holds the collaborators of a folder service.
type Config[T models.Data[T], ID docfile.Identifier] struct {
	// Subfolder is the folder name beneath the pack root.
	Subfolder string
	Factory   docfile.Factory[T, ID]
	NewID     func() ID
	Dialogs   dialog.Service
	// Documents is optional.
	Documents DocumentCloser
}

// Service is a keyed collection of the document files stored in one pack
// subfolder. Besides the real files it always holds the null file under the
// zero id, standing for "no selection".
type Service[T models.Data[T], ID docfile.Identifier] struct {
	cfg     Config[T, ID]
	folder  files.Folder
	entries *observable.OrderedMap[ID, docfile.Keyed[T, ID]]
}

// New creates a folder service with no pack open.
func New[T models.Data[T], ID docfile.Identifier](cfg Config[T, ID]) *Service[T, ID] {
	return &Service[T, ID]{
		cfg:     cfg,
		entries: observable.NewOrderedMap[ID, docfile.Keyed[T, ID]](),
	}
}

// Subfolder returns the name of the managed folder.
func (s *Service[T, ID]) Subfolder() string {
	return s.cfg.Subfolder
}

// Kind is the display name of the managed documents, derived from their
// title prefix.
func (s *Service[T, ID]) Kind() string {
	prefix := docfile.NullKeyed[T, ID]().TitlePrefix()
	return strings.TrimSpace(strings.TrimSuffix(prefix, " - "))
}

// NewPack creates the subfolder beneath packFolder if needed and starts with
// an empty collection.
func (s *Service[T, ID]) NewPack(packFolder files.Folder) error {
	folder, err := packFolder.GetFolder(s.cfg.Subfolder)
	if errors.Is(err, files.ErrNotExist) {
		folder, err = packFolder.CreateFolder(s.cfg.Subfolder)
	}
	if err != nil {
		return fmt.Errorf("failed to prepare %s folder: %w", s.cfg.Subfolder, err)
	}
	s.reset(folder)
	return nil
}

// OpenPack loads every document file of the subfolder. A missing subfolder
// is created as for NewPack. Storage files whose names are not ids, or are
// the reserved id of the null file, are skipped.
func (s *Service[T, ID]) OpenPack(packFolder files.Folder) error {
	folder, err := packFolder.GetFolder(s.cfg.Subfolder)
	if errors.Is(err, files.ErrNotExist) {
		return s.NewPack(packFolder)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s folder: %w", s.cfg.Subfolder, err)
	}
	s.reset(folder)

	storageFiles, err := files.Files(folder)
	if err != nil {
		s.ClosePack()
		return fmt.Errorf("failed to list %s folder: %w", s.cfg.Subfolder, err)
	}

	var zero ID
	for _, storage := range storageFiles {
		f, err := s.cfg.Factory(storage)
		if err != nil {
			log().Warningf("skipping %s: %s", storage.Path(), err.Error())
			continue
		}
		if f.ID() == zero {
			log().Warningf("skipping %s: reserved id", storage.Path())
			f.Close()
			continue
		}
		if err := f.Load(); err != nil {
			f.Close()
			s.ClosePack()
			return err
		}
		s.entries.Set(f.ID(), f)
	}

	log().Infof("opened %d %s files", len(s.Files()), s.Kind())
	return nil
}

// ClosePack disposes every file and empties the collection.
func (s *Service[T, ID]) ClosePack() {
	for _, f := range s.entries.Values() {
		f.Close()
	}
	s.entries.Clear()
	s.folder = nil
}

func (s *Service[T, ID]) reset(folder files.Folder) {
	s.ClosePack()
	s.folder = folder
	null := docfile.NullKeyed[T, ID]()
	s.entries.Set(null.ID(), null)
}

// GetFile returns the file with the given id, or the null file.
func (s *Service[T, ID]) GetFile(id ID) docfile.Keyed[T, ID] {
	if f, ok := s.entries.Get(id); ok {
		return f
	}
	return docfile.NullKeyed[T, ID]()
}

// FindByName returns the real file with the given friendly id.
func (s *Service[T, ID]) FindByName(name string) (docfile.Keyed[T, ID], bool) {
	for _, f := range s.Files() {
		if f.FriendlyID() == name {
			return f, true
		}
	}
	return nil, false
}

// Files returns the real files in collection order.
func (s *Service[T, ID]) Files() []docfile.Keyed[T, ID] {
	var result []docfile.Keyed[T, ID]
	for _, f := range s.entries.Values() {
		if !docfile.IsNull(f) {
			result = append(result, f)
		}
	}
	return result
}

// Entries returns the whole collection, null file included.
func (s *Service[T, ID]) Entries() []docfile.Keyed[T, ID] {
	return s.entries.Values()
}

// Changes streams additions and removals of files.
func (s *Service[T, ID]) Changes() observable.Source[observable.Change[ID, docfile.Keyed[T, ID]]] {
	return s.entries.Changes()
}

// NameValidationRules returns the rules a friendly id must pass. Names held
// by the files in exclude do not count as taken.
func (s *Service[T, ID]) NameValidationRules(exclude ...ID) []dialog.Rule {
	return []dialog.Rule{
		dialog.NotBlank(EmptyNameMessage),
		{
			Message: UniqueNameMessage,
			Check: func(name string) bool {
				for _, id := range s.entries.Keys() {
					if containsID(exclude, id) {
						continue
					}
					if f, _ := s.entries.Get(id); f.FriendlyID() == name {
						return false
					}
				}
				return true
			},
		},
	}
}

func containsID[ID comparable](ids []ID, id ID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// AddFile asks for a name and creates a new file with it. It returns false
// when the user cancelled or the file could not be created.
func (s *Service[T, ID]) AddFile(ctx context.Context) (docfile.Keyed[T, ID], bool) {
	if s.folder == nil {
		s.showError(ctx, "Add Failed", ErrNoPack)
		return nil, false
	}

	name, ok, err := s.cfg.Dialogs.PromptText(ctx, dialog.TextRequest{
		Title:   "New " + s.Kind(),
		Message: "Name",
		Rules:   s.NameValidationRules(),
	})
	if err != nil {
		log().Warningf("name dialog failed: %s", err.Error())
		return nil, false
	}
	if !ok {
		return nil, false
	}

	f, err := s.create(name)
	if err != nil {
		s.showError(ctx, "Add Failed", err)
		return nil, false
	}
	s.entries.Set(f.ID(), f)
	log().Infof("added %s %q", s.Kind(), name)
	return f, true
}

func (s *Service[T, ID]) create(name string) (docfile.Keyed[T, ID], error) {
	id := s.cfg.NewID()
	storage, err := s.folder.CreateFile(id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %q: %w", s.Kind(), name, err)
	}

	f, err := s.cfg.Factory(storage)
	if err != nil {
		storage.Delete()
		return nil, err
	}
	if err := f.Rename(name); err != nil {
		f.Close()
		storage.Delete()
		return nil, fmt.Errorf("failed to create %s %q: %w", s.Kind(), name, err)
	}
	return f, nil
}

// RenameFile asks for a new friendly id for f. It returns true once the new
// name has been applied, even if persisting it failed.
func (s *Service[T, ID]) RenameFile(ctx context.Context, f docfile.Keyed[T, ID]) bool {
	if docfile.IsNull(f) {
		return false
	}

	name, ok, err := s.cfg.Dialogs.PromptText(ctx, dialog.TextRequest{
		Title:   "Rename " + s.Kind(),
		Message: "Name",
		Initial: f.FriendlyID(),
		Rules:   s.NameValidationRules(f.ID()),
	})
	if err != nil {
		log().Warningf("name dialog failed: %s", err.Error())
		return false
	}
	if !ok {
		return false
	}

	if err := f.Rename(name); err != nil {
		s.showError(ctx, "Rename Failed", err)
	}
	return true
}

// DeleteFile asks for confirmation and deletes f, closing any document open
// on it. The file leaves the collection before its storage file is deleted;
// it is not restored when that deletion fails.
func (s *Service[T, ID]) DeleteFile(ctx context.Context, f docfile.Keyed[T, ID]) bool {
	if docfile.IsNull(f) {
		return false
	}

	yes, err := s.cfg.Dialogs.AskYesNo(ctx, "Delete "+s.Kind(),
		fmt.Sprintf("Are you sure you want to delete '%s'?", f.FriendlyID()))
	if err != nil {
		log().Warningf("delete dialog failed: %s", err.Error())
		return false
	}
	if !yes {
		return false
	}

	f.Close()
	s.entries.Remove(f.ID())
	if s.cfg.Documents != nil {
		s.cfg.Documents.CloseFile(f)
	}
	if err := f.Delete(); err != nil {
		log().Warningf("%s %q left on storage: %s", s.Kind(), f.FriendlyID(), err.Error())
		s.showError(ctx, "Delete Failed", err)
		return false
	}

	log().Infof("deleted %s %q", s.Kind(), f.FriendlyID())
	return true
}

func (s *Service[T, ID]) showError(ctx context.Context, title string, err error) {
	if derr := s.cfg.Dialogs.ShowError(ctx, title, err); derr != nil {
		log().Errorf("failed to show error %q: %s", err.Error(), derr.Error())
	}
}
