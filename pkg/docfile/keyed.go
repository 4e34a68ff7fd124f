package docfile

import (
	"fmt"

	"github.com/pluqqy/packsmith/pkg/files"
	"github.com/pluqqy/packsmith/pkg/models"
)

// KeyedFile is an editable document file stored as a models.NamedData record
// whose storage file name is the canonical form of its id.
type KeyedFile[T models.Data[T], ID Identifier] struct {
	*File[T]
	id ID
}

// Factory builds a keyed document file around a storage file. Folder services
// receive one instead of resolving constructors by type.
type Factory[T models.Data[T], ID Identifier] func(file files.File) (Keyed[T, ID], error)

// NewKeyed creates a keyed document file. The id is parsed once from the
// storage file name and never changes afterwards.
func NewKeyed[T models.Data[T], ID Identifier](file files.File, newData func() T, parseID func(string) (ID, error)) (*KeyedFile[T, ID], error) {
	id, err := parseID(file.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to parse document id from %q: %w", file.Name(), err)
	}
	return &KeyedFile[T, ID]{File: newFile(file, newData, true), id: id}, nil
}

// NewFactory binds newData and parseID into a Factory.
func NewFactory[T models.Data[T], ID Identifier](newData func() T, parseID func(string) (ID, error)) Factory[T, ID] {
	return func(file files.File) (Keyed[T, ID], error) {
		f, err := NewKeyed(file, newData, parseID)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

func (f *KeyedFile[T, ID]) ID() ID { return f.id }
