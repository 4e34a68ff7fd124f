package files

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

const (
	MetadataFile = "pack.json"
	EntitiesDir  = "entities"
	MapsDir      = "maps"
	ImagesDir    = "images"
	ManifestFile = "manifest.json"
	SettingsFile = "settings.yaml"
)

// ErrNotExist is returned when a file or folder is looked up but missing.
var ErrNotExist = fs.ErrNotExist

// Item is anything addressable inside a folder.
type Item interface {
	Name() string
	Path() string
	Exists() (bool, error)
}

// File is a single storage file.
type File interface {
	Item
	Delete() error
	OpenRead() (io.ReadCloser, error)
	// OpenWrite returns a writer that replaces the file's content once closed.
	OpenWrite() (io.WriteCloser, error)
}

// Folder is a storage folder.
type Folder interface {
	Item
	CreateFile(name string) (File, error)
	CreateFolder(name string) (Folder, error)
	GetFile(name string) (File, error)
	GetFolder(name string) (Folder, error)
	Items() ([]Item, error)
}

// NewFolder returns the folder at path on fsys. Use afero.NewOsFs for the
// real file system and afero.NewMemMapFs for an in-memory pack.
func NewFolder(fsys afero.Fs, path string) Folder {
	return &folder{fs: fsys, path: filepath.Clean(path)}
}

// NewFile returns the file at path on fsys.
func NewFile(fsys afero.Fs, path string) File {
	return &file{fs: fsys, path: filepath.Clean(path)}
}

// InitPackStructure creates the pack root and its subfolders.
func InitPackStructure(fsys afero.Fs, root string, subfolders ...string) (Folder, error) {
	dirs := []string{root}
	for _, sub := range subfolders {
		dirs = append(dirs, filepath.Join(root, sub))
	}

	for _, dir := range dirs {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return NewFolder(fsys, root), nil
}

type file struct {
	fs   afero.Fs
	path string
}

func (f *file) Name() string { return filepath.Base(f.path) }
func (f *file) Path() string { return f.path }

func (f *file) Exists() (bool, error) {
	info, err := f.fs.Stat(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", f.path, err)
	}
	return !info.IsDir(), nil
}

func (f *file) Delete() error {
	if err := f.fs.Remove(f.path); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", f.path, err)
	}
	return nil
}

func (f *file) OpenRead() (io.ReadCloser, error) {
	r, err := f.fs.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for reading: %w", f.path, err)
	}
	return r, nil
}

func (f *file) OpenWrite() (io.WriteCloser, error) {
	tmpPath := f.path + ".tmp"
	tmp, err := f.fs.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for writing: %w", f.path, err)
	}
	return &replaceOnClose{fs: f.fs, tmp: tmp, tmpPath: tmpPath, dest: f.path}, nil
}

// replaceOnClose writes to a sibling temp file and renames it over the
// destination on Close, so readers never observe a half-written document.
type replaceOnClose struct {
	fs      afero.Fs
	tmp     afero.File
	tmpPath string
	dest    string
	failed  error
	closed  bool
}

func (w *replaceOnClose) Write(p []byte) (int, error) {
	n, err := w.tmp.Write(p)
	if err != nil && w.failed == nil {
		w.failed = err
	}
	return n, err
}

func (w *replaceOnClose) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.failed != nil {
		w.tmp.Close()
		w.fs.Remove(w.tmpPath)
		return fmt.Errorf("failed to write %s: %w", w.dest, w.failed)
	}
	if err := w.tmp.Close(); err != nil {
		w.fs.Remove(w.tmpPath)
		return fmt.Errorf("failed to write %s: %w", w.dest, err)
	}
	if err := w.fs.Rename(w.tmpPath, w.dest); err != nil {
		w.fs.Remove(w.tmpPath)
		return fmt.Errorf("failed to replace %s: %w", w.dest, err)
	}
	return nil
}

type folder struct {
	fs   afero.Fs
	path string
}

func (d *folder) Name() string { return filepath.Base(d.path) }
func (d *folder) Path() string { return d.path }

func (d *folder) Exists() (bool, error) {
	ok, err := afero.DirExists(d.fs, d.path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", d.path, err)
	}
	return ok, nil
}

func (d *folder) CreateFile(name string) (File, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(d.path, name)
	if err := d.fs.MkdirAll(d.path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", d.path, err)
	}
	f, err := d.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	return NewFile(d.fs, path), nil
}

func (d *folder) CreateFolder(name string) (Folder, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(d.path, name)
	if err := d.fs.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return NewFolder(d.fs, path), nil
}

func (d *folder) GetFile(name string) (File, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	f := NewFile(d.fs, filepath.Join(d.path, name))
	ok, err := f.Exists()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("file %s: %w", f.Path(), ErrNotExist)
	}
	return f, nil
}

func (d *folder) GetFolder(name string) (Folder, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	sub := NewFolder(d.fs, filepath.Join(d.path, name))
	ok, err := sub.Exists()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", sub.Path(), ErrNotExist)
	}
	return sub, nil
}

// Items lists the folder's files and subfolders sorted by name. Leftover
// temp files from interrupted writes are skipped.
func (d *folder) Items() ([]Item, error) {
	entries, err := afero.ReadDir(d.fs, d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", d.path, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(d.path, entry.Name())
		if entry.IsDir() {
			items = append(items, NewFolder(d.fs, path))
			continue
		}
		if filepath.Ext(entry.Name()) == ".tmp" {
			continue
		}
		items = append(items, NewFile(d.fs, path))
	}
	return items, nil
}

// Files is a convenience filter over Items.
func Files(d Folder) ([]File, error) {
	items, err := d.Items()
	if err != nil {
		return nil, err
	}
	var out []File
	for _, item := range items {
		if f, ok := item.(File); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("invalid storage name %q", name)
	}
	return nil
}
