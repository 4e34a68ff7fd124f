package docfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pluqqy/packsmith/pkg/files"
	"github.com/pluqqy/packsmith/pkg/models"
	"github.com/pluqqy/packsmith/pkg/observable"
)

// File is an editable document file.
type File[T models.Data[T]] struct {
	file        files.File
	newData     func() T
	named       bool
	friendlyID  string
	saved       T
	working     T
	opened      int
	changes     observable.Emitter[Change]
	unsubscribe []func()
	closed      bool
}

var _ Editable[*models.PackMetadata] = (*File[*models.PackMetadata])(nil)

// New creates a single-instance document file. Its payload is stored
// directly, without a name wrapper, and its friendly id is empty.
func New[T models.Data[T]](file files.File, newData func() T) *File[T] {
	return newFile(file, newData, false)
}

func newFile[T models.Data[T]](file files.File, newData func() T, named bool) *File[T] {
	f := &File[T]{
		file:    file,
		newData: newData,
		named:   named,
		saved:   newData(),
		working: newData(),
	}
	f.unsubscribe = []func(){
		f.saved.Changes().Subscribe(func(observable.Signal) {
			f.changes.Emit(Change{Kind: SavedChanged})
		}),
		f.working.Changes().Subscribe(func(observable.Signal) {
			f.changes.Emit(Change{Kind: WorkingChanged})
		}),
	}
	return f
}

// StorageFile returns the backing storage file.
func (f *File[T]) StorageFile() files.File { return f.file }

// FriendlyID returns the user-visible name, empty for single-instance files.
func (f *File[T]) FriendlyID() string { return f.friendlyID }

// TitlePrefix returns the document title prefix of the payload type.
func (f *File[T]) TitlePrefix() string { return staticTitlePrefix[T]() }

// SavedData returns the buffer matching the stored content.
func (f *File[T]) SavedData() T { return f.saved }

// WorkingData returns the buffer edits are made to.
func (f *File[T]) WorkingData() T { return f.working }

// IsUnsaved reports whether the working buffer differs from the saved one.
func (f *File[T]) IsUnsaved() bool {
	return !f.saved.ValueEquals(f.working)
}

// OpenedInDocuments returns the number of documents referencing this file.
func (f *File[T]) OpenedInDocuments() int { return f.opened }

// IsOpened reports whether any document references this file.
func (f *File[T]) IsOpened() bool { return f.opened > 0 }

// SetOpenedInDocuments sets the number of documents referencing this file.
// Going from zero to any positive count discards stale working edits by
// reverting to the saved buffer. Negative counts are clamped to zero.
func (f *File[T]) SetOpenedInDocuments(n int) {
	if n < 0 {
		n = 0
	}
	if n == f.opened {
		return
	}
	wasClosed := f.opened == 0
	f.opened = n
	if wasClosed && n > 0 {
		f.Revert()
	}
	f.changes.Emit(Change{Kind: OpenCountChanged})
}

func (f *File[T]) IncrementOpen() { f.SetOpenedInDocuments(f.opened + 1) }

func (f *File[T]) DecrementOpen() {
	if f.opened == 0 {
		log().Warningf("open count of %s is already zero", f.file.Path())
		return
	}
	f.SetOpenedInDocuments(f.opened - 1)
}

// Subscribe registers handler on the file's change stream.
func (f *File[T]) Subscribe(handler func(Change)) func() {
	return f.changes.Subscribe(handler)
}

// Load reads the backing file into both buffers. A file that cannot be parsed
// leaves every buffer and the friendly id untouched and is not reported as
// an error; only failures to read the file are.
func (f *File[T]) Load() error {
	r, err := f.file.OpenRead()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", f.file.Path(), err)
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", f.file.Path(), err)
	}

	name, data, ok := f.decode(content)
	if !ok {
		return nil
	}

	if f.named {
		f.setFriendlyID(name)
	}
	f.saved.MakeEqualTo(data)
	f.working.MakeEqualTo(data)
	log().Debugf("loaded %s", f.file.Path())
	return nil
}

func (f *File[T]) decode(content []byte) (string, T, bool) {
	data := f.newData()
	if f.named {
		name, err := decodeNamed(content, data)
		if err != nil {
			log().Warningf("ignoring malformed document %s: %s", f.file.Path(), err.Error())
			return "", data, false
		}
		return name, data, true
	}
	if err := json.Unmarshal(content, data); err != nil {
		log().Warningf("ignoring malformed document %s: %s", f.file.Path(), err.Error())
		return "", data, false
	}
	return "", data, true
}

// decodeNamed parses a keyed record into data. A missing Data member keeps
// the defaults of data; a null one is rejected.
func decodeNamed[T any](content []byte, data T) (string, error) {
	var record models.NamedData[json.RawMessage]
	if err := json.Unmarshal(content, &record); err != nil {
		return "", err
	}
	if bytes.Equal(bytes.TrimSpace(record.Data), []byte("null")) {
		return "", errNullData
	}
	if len(record.Data) > 0 {
		if err := json.Unmarshal(record.Data, data); err != nil {
			return "", err
		}
	}
	return record.Name, nil
}

// Revert discards working edits. It does nothing when the buffers are equal.
func (f *File[T]) Revert() {
	if f.working.ValueEquals(f.saved) {
		return
	}
	f.working.MakeEqualTo(f.saved)
}

// Save persists the working buffer and then makes the saved buffer equal to it.
func (f *File[T]) Save() error {
	if err := f.write(f.working); err != nil {
		return err
	}
	f.saved.MakeEqualTo(f.working)
	log().Debugf("saved %s", f.file.Path())
	return nil
}

// Rename changes the friendly id and persists it together with the saved
// buffer. Pending working edits are not saved.
func (f *File[T]) Rename(name string) error {
	f.setFriendlyID(name)
	return f.write(f.saved)
}

// Delete removes the backing storage file. Callers remove the file from any
// owning collection first.
func (f *File[T]) Delete() error {
	if err := f.file.Delete(); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Close releases the subscriptions to the payload buffers. It is safe to call
// more than once.
func (f *File[T]) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	for _, unsubscribe := range f.unsubscribe {
		unsubscribe()
	}
	f.unsubscribe = nil
	return nil
}

func (f *File[T]) setFriendlyID(name string) {
	if f.friendlyID == name {
		return
	}
	f.friendlyID = name
	f.changes.Emit(Change{Kind: NameChanged})
}

func (f *File[T]) write(data T) error {
	var record any = data
	if f.named {
		record = models.NamedData[T]{Name: f.friendlyID, Data: data}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to encode %s: %w", f.file.Path(), err)
	}

	w, err := f.file.OpenWrite()
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", f.file.Path(), err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		return fmt.Errorf("failed to save %s: %w", f.file.Path(), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", f.file.Path(), err)
	}
	return nil
}
