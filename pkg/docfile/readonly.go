package docfile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pluqqy/packsmith/pkg/files"
	"github.com/pluqqy/packsmith/pkg/models"
)

// ReadOnly is a single-buffer document file for content this package loads
// but never writes.
type ReadOnly[T models.Data[T]] struct {
	file       files.File
	newData    func() T
	named      bool
	friendlyID string
	data       T
}

// NewReadOnly creates a read-only file whose payload is stored directly.
func NewReadOnly[T models.Data[T]](file files.File, newData func() T) *ReadOnly[T] {
	return &ReadOnly[T]{file: file, newData: newData, data: newData()}
}

// NewReadOnlyNamed creates a read-only file stored as a models.NamedData record.
func NewReadOnlyNamed[T models.Data[T]](file files.File, newData func() T) *ReadOnly[T] {
	f := NewReadOnly(file, newData)
	f.named = true
	return f
}

func (f *ReadOnly[T]) StorageFile() files.File { return f.file }
func (f *ReadOnly[T]) FriendlyID() string      { return f.friendlyID }
func (f *ReadOnly[T]) TitlePrefix() string     { return staticTitlePrefix[T]() }

// Data returns the last successfully loaded payload, or the default payload
// when nothing was loaded yet.
func (f *ReadOnly[T]) Data() T { return f.data }

// Load parses the backing file and replaces Data. Malformed content keeps the
// previous Data.
func (f *ReadOnly[T]) Load() error {
	r, err := f.file.OpenRead()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", f.file.Path(), err)
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", f.file.Path(), err)
	}

	data := f.newData()
	if f.named {
		name, err := decodeNamed(content, data)
		if err != nil {
			log().Warningf("ignoring malformed document %s: %s", f.file.Path(), err.Error())
			return nil
		}
		f.friendlyID = name
		f.data = data
		return nil
	}

	if err := json.Unmarshal(content, data); err != nil {
		log().Warningf("ignoring malformed document %s: %s", f.file.Path(), err.Error())
		return nil
	}
	f.data = data
	return nil
}

// ReadOnlyKeyed is a named read-only file with an id parsed from its
// storage file name.
type ReadOnlyKeyed[T models.Data[T], ID Identifier] struct {
	*ReadOnly[T]
	id ID
}

// NewReadOnlyKeyed creates a keyed read-only file.
func NewReadOnlyKeyed[T models.Data[T], ID Identifier](file files.File, newData func() T, parseID func(string) (ID, error)) (*ReadOnlyKeyed[T, ID], error) {
	id, err := parseID(file.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to parse document id from %q: %w", file.Name(), err)
	}
	return &ReadOnlyKeyed[T, ID]{ReadOnly: NewReadOnlyNamed(file, newData), id: id}, nil
}

func (f *ReadOnlyKeyed[T, ID]) ID() ID { return f.id }
