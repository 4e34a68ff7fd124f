// Package document tracks the documents open in the editor's two panes.
package document

import (
	"github.com/tliron/commonlog"

	"github.com/pluqqy/packsmith/pkg/docfile"
	"github.com/pluqqy/packsmith/pkg/observable"
)

// UnsavedMarker is appended to the title of a document with unsaved edits.
const UnsavedMarker = "*"

// Side identifies one of the two panes a document can occupy.
type Side int

const (
	Left Side = iota
	Right
)

// Other returns the opposite pane.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

func log() commonlog.Logger {
	return commonlog.GetLogger("packsmith.document")
}

// Document is an open view over a document file. While a document exists it
// holds one reference on the file's open count.
type Document struct {
	file    docfile.Handle
	side    Side
	title   string
	unsaved bool

	changes     observable.Emitter[observable.Signal]
	unsubscribe func()
	disposed    bool
}

func newDocument(file docfile.Handle, side Side) *Document {
	d := &Document{file: file, side: side}
	file.IncrementOpen()
	d.title, d.unsaved = d.Title(), file.IsUnsaved()
	d.unsubscribe = file.Subscribe(func(docfile.Change) { d.refresh() })
	return d
}

// File returns the wrapped document file.
func (d *Document) File() docfile.Handle {
	return d.file
}

// Side returns the pane the document is shown in.
func (d *Document) Side() Side {
	return d.side
}

func (d *Document) IsUnsaved() bool {
	return d.file.IsUnsaved()
}

// BaseTitle is the file's title prefix followed by its friendly name.
func (d *Document) BaseTitle() string {
	return d.file.TitlePrefix() + d.file.FriendlyID()
}

// Title is BaseTitle with the unsaved marker when there are unsaved edits.
func (d *Document) Title() string {
	if d.IsUnsaved() {
		return d.BaseTitle() + UnsavedMarker
	}
	return d.BaseTitle()
}

// Subscribe registers handler for title, dirty state and pane changes.
func (d *Document) Subscribe(handler func(observable.Signal)) func() {
	return d.changes.Subscribe(handler)
}

func (d *Document) setSide(side Side) {
	if d.side == side {
		return
	}
	d.side = side
	d.changes.Emit(observable.Signal{})
}

func (d *Document) refresh() {
	title, unsaved := d.Title(), d.IsUnsaved()
	if title == d.title && unsaved == d.unsaved {
		return
	}
	d.title, d.unsaved = title, unsaved
	d.changes.Emit(observable.Signal{})
}

func (d *Document) dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	d.unsubscribe()
	d.file.DecrementOpen()
}
