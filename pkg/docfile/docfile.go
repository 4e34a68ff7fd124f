// Package docfile wraps storage files holding JSON documents.
//
// An editable document file keeps two independent copies of its payload:
// the saved buffer mirrors what was last persisted and the working buffer
// holds in-progress edits. Revert and Save move values between them.
package docfile

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/pluqqy/packsmith/pkg/models"
)

// ErrUnsupported is reported by every data-bearing member of a null file.
var ErrUnsupported = fmt.Errorf("null document file: %w", errors.ErrUnsupported)

var errNullData = errors.New("record has null Data")

// NullFriendlyID is the friendly id of every null file.
const NullFriendlyID = "<none>"

// Identifier is the key type of keyed document files. String must return the
// canonical form that is used as the storage file name.
type Identifier interface {
	comparable
	String() string
}

// ChangeKind tells which part of a file changed.
type ChangeKind int

const (
	SavedChanged ChangeKind = iota
	WorkingChanged
	NameChanged
	OpenCountChanged
)

// Change is emitted on a file's change stream.
type Change struct {
	Kind ChangeKind
}

// Handle is the payload-agnostic view of a document file used by the
// document service.
type Handle interface {
	FriendlyID() string
	TitlePrefix() string
	IsUnsaved() bool
	OpenedInDocuments() int
	IsOpened() bool
	IncrementOpen()
	DecrementOpen()
	Revert()
	Save() error
	Subscribe(handler func(Change)) (unsubscribe func())
}

// Editable is a document file with saved and working buffers.
type Editable[T models.Data[T]] interface {
	Handle
	SavedData() T
	WorkingData() T
	SetOpenedInDocuments(n int)
	Load() error
	Rename(name string) error
	Delete() error
	Close() error
}

// Keyed is an editable document file identified by an id parsed from its
// storage file name.
type Keyed[T models.Data[T], ID Identifier] interface {
	Editable[T]
	ID() ID
}

func log() commonlog.Logger {
	return commonlog.GetLogger("packsmith.docfile")
}

// staticTitlePrefix returns T's title prefix. Payload title prefixes are
// per-type, so the zero (nil pointer) value is enough to ask for it.
func staticTitlePrefix[T any]() string {
	var zero T
	return models.TitlePrefixOf(zero)
}
