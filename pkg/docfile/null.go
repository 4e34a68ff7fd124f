package docfile

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/pluqqy/packsmith/pkg/models"
)

// nullFile stands in wherever "no file selected" must be represented. Only
// FriendlyID, ID, TitlePrefix and Close are served; touching anything that
// carries data is a programming error and fails loudly.
type nullFile[T models.Data[T], ID Identifier] struct {
	// Non-zero size so distinct allocations never share an address.
	_ byte
}

// noID is the id type of non-keyed null files.
type noID struct{}

func (noID) String() string { return "" }

var nulls sync.Map // reflect.Type -> null file

// NullKeyed returns the process-wide null file for the payload and id types.
func NullKeyed[T models.Data[T], ID Identifier]() Keyed[T, ID] {
	key := reflect.TypeOf((*nullFile[T, ID])(nil))
	if v, ok := nulls.Load(key); ok {
		return v.(*nullFile[T, ID])
	}
	v, _ := nulls.LoadOrStore(key, &nullFile[T, ID]{})
	return v.(*nullFile[T, ID])
}

// Null returns the process-wide null file for a non-keyed payload type.
func Null[T models.Data[T]]() Editable[T] {
	return NullKeyed[T, noID]()
}

// IsNull reports whether h is a null file.
func IsNull(h Handle) bool {
	_, ok := h.(interface{ isNull() })
	return ok
}

func unsupported(member string) error {
	return fmt.Errorf("%s: %w", member, ErrUnsupported)
}

func (*nullFile[T, ID]) isNull() {}

func (*nullFile[T, ID]) ID() ID {
	var zero ID
	return zero
}

func (*nullFile[T, ID]) FriendlyID() string  { return NullFriendlyID }
func (*nullFile[T, ID]) TitlePrefix() string { return staticTitlePrefix[T]() }

// Close is a no-op so owning collections can dispose every entry uniformly.
func (*nullFile[T, ID]) Close() error { return nil }

func (*nullFile[T, ID]) SavedData() T             { panic(unsupported("SavedData")) }
func (*nullFile[T, ID]) WorkingData() T           { panic(unsupported("WorkingData")) }
func (*nullFile[T, ID]) IsUnsaved() bool          { panic(unsupported("IsUnsaved")) }
func (*nullFile[T, ID]) OpenedInDocuments() int   { panic(unsupported("OpenedInDocuments")) }
func (*nullFile[T, ID]) IsOpened() bool           { panic(unsupported("IsOpened")) }
func (*nullFile[T, ID]) SetOpenedInDocuments(int) { panic(unsupported("SetOpenedInDocuments")) }
func (*nullFile[T, ID]) IncrementOpen()           { panic(unsupported("IncrementOpen")) }
func (*nullFile[T, ID]) DecrementOpen()           { panic(unsupported("DecrementOpen")) }
func (*nullFile[T, ID]) Revert()                  { panic(unsupported("Revert")) }

func (*nullFile[T, ID]) Subscribe(func(Change)) func() {
	panic(unsupported("Subscribe"))
}

func (*nullFile[T, ID]) Load() error         { return unsupported("Load") }
func (*nullFile[T, ID]) Save() error         { return unsupported("Save") }
func (*nullFile[T, ID]) Rename(string) error { return unsupported("Rename") }
func (*nullFile[T, ID]) Delete() error       { return unsupported("Delete") }
