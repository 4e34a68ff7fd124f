package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/pluqqy/packsmith/pkg/dialog"
	"github.com/pluqqy/packsmith/pkg/docfile"
	"github.com/pluqqy/packsmith/pkg/observable"
)

// ErrNotOpen is returned for operations on documents that are not open.
var ErrNotOpen = errors.New("document is not open")

// Service owns the open documents and the active document of each pane.
//
// Activation is requested on a per-pane channel; the service listens on both
// channels itself and records the requested document as the pane's active
// document before any other listener runs.
type Service struct {
	dialogs    dialog.Service
	docs       *observable.OrderedMap[docfile.Handle, *Document]
	active     [2]*Document
	activation [2]observable.Emitter[*Document]
	focused    Side
	closingAll bool
}

// NewService creates a document service asking questions through dialogs.
func NewService(dialogs dialog.Service) *Service {
	s := &Service{
		dialogs: dialogs,
		docs:    observable.NewOrderedMap[docfile.Handle, *Document](),
	}
	for _, side := range []Side{Left, Right} {
		s.activation[side].Subscribe(func(d *Document) {
			s.active[side] = d
			s.focused = side
		})
	}
	return s
}

// Documents returns the open documents in the order they were opened.
func (s *Service) Documents() []*Document {
	return s.docs.Values()
}

// DocumentsOn returns the open documents shown in side.
func (s *Service) DocumentsOn(side Side) []*Document {
	var docs []*Document
	for _, d := range s.docs.Values() {
		if d.side == side {
			docs = append(docs, d)
		}
	}
	return docs
}

// Active returns the active document of side, or nil.
func (s *Service) Active(side Side) *Document {
	return s.active[side]
}

// Focused returns the pane that last had a document activated.
func (s *Service) Focused() Side {
	return s.focused
}

// Find returns the open document wrapping file.
func (s *Service) Find(file docfile.Handle) (*Document, bool) {
	return s.docs.Get(file)
}

// Changes streams additions, updates and removals of open documents.
func (s *Service) Changes() observable.Source[observable.Change[docfile.Handle, *Document]] {
	return s.docs.Changes()
}

// ActivationRequests streams the documents activated in side.
func (s *Service) ActivationRequests(side Side) observable.Source[*Document] {
	return &s.activation[side]
}

func (s *Service) isOpen(d *Document) bool {
	if d == nil {
		return false
	}
	open, ok := s.docs.Get(d.file)
	return ok && open == d
}

// Open activates the document wrapping file, opening one in the focused pane
// if there is none yet.
func (s *Service) Open(file docfile.Handle) *Document {
	return s.OpenOn(file, s.focused)
}

// OpenOn is Open with an explicit pane for a newly opened document. An
// already open document stays in its pane.
func (s *Service) OpenOn(file docfile.Handle, side Side) *Document {
	d, ok := s.docs.Get(file)
	if !ok {
		d = newDocument(file, side)
		s.docs.Set(file, d)
		log().Debugf("opened %q on the %s pane", d.BaseTitle(), side)
	}
	s.Activate(d)
	return d
}

// Activate requests activation of d in its pane. Documents that are not
// open are ignored.
func (s *Service) Activate(d *Document) {
	if !s.isOpen(d) {
		return
	}
	s.activation[d.side].Emit(d)
}

// MoveToOtherSide moves d to the opposite pane and activates it there.
func (s *Service) MoveToOtherSide(d *Document) {
	if !s.isOpen(d) {
		return
	}
	s.mergingPanes(func() {
		if s.active[d.side] == d {
			s.active[d.side] = nil
		}
		d.setSide(d.side.Other())
		s.docs.Set(d.file, d)
		s.Activate(d)
	})
}

// TryHandleUnsavedChanges gives the user a chance to save d. It returns false
// when the user cancelled or saving failed, and true when the caller may
// proceed.
func (s *Service) TryHandleUnsavedChanges(ctx context.Context, d *Document) bool {
	if !s.isOpen(d) || !d.IsUnsaved() {
		return true
	}
	s.Activate(d)

	choice, err := s.dialogs.AskYesNoCancel(ctx, "Unsaved Changes",
		fmt.Sprintf("Do you want to save the changes to %s?", d.BaseTitle()))
	if err != nil {
		log().Warningf("unsaved changes dialog failed: %s", err)
		return false
	}

	switch choice {
	case dialog.Yes:
		if err := d.file.Save(); err != nil {
			s.showError(ctx, "Save Failed", fmt.Errorf("failed to save %s: %w", d.BaseTitle(), err))
			return false
		}
		return true
	case dialog.No:
		return true
	default:
		return false
	}
}

// TryHandleAllUnsavedChanges runs TryHandleUnsavedChanges over every open
// document and stops at the first one that does not allow proceeding.
func (s *Service) TryHandleAllUnsavedChanges(ctx context.Context) bool {
	for _, d := range s.Documents() {
		if !s.TryHandleUnsavedChanges(ctx, d) {
			return false
		}
	}
	return true
}

// TryClose closes d unless handling its unsaved changes was cancelled.
func (s *Service) TryClose(ctx context.Context, d *Document) bool {
	if !s.TryHandleUnsavedChanges(ctx, d) {
		return false
	}
	s.Close(d)
	return true
}

// Close closes d without asking about unsaved changes.
func (s *Service) Close(d *Document) {
	if !s.isOpen(d) {
		return
	}
	s.mergingPanes(func() {
		s.docs.Remove(d.file)
		if s.active[d.side] == d {
			s.active[d.side] = nil
		}
		d.dispose()
		log().Debugf("closed %q", d.BaseTitle())
	})
}

// CloseFile closes the document wrapping file, if any.
func (s *Service) CloseFile(file docfile.Handle) {
	if d, ok := s.docs.Get(file); ok {
		s.Close(d)
	}
}

// CloseAll closes every open document.
func (s *Service) CloseAll() {
	s.closingAll = true
	defer func() { s.closingAll = false }()

	for _, d := range s.Documents() {
		s.Close(d)
	}
}

// Save saves the file of an open document.
func (s *Service) Save(d *Document) error {
	if !s.isOpen(d) {
		return ErrNotOpen
	}
	if err := d.file.Save(); err != nil {
		return fmt.Errorf("failed to save %s: %w", d.BaseTitle(), err)
	}
	return nil
}

// SaveAll saves every open document with unsaved changes, stopping at the
// first failure.
func (s *Service) SaveAll() error {
	for _, d := range s.Documents() {
		if !d.IsUnsaved() {
			continue
		}
		if err := s.Save(d); err != nil {
			return err
		}
	}
	return nil
}

// mergingPanes runs op and then, if op emptied the left pane, docks every
// document of the right pane on the left.
func (s *Service) mergingPanes(op func()) {
	leftBefore := len(s.DocumentsOn(Left))
	op()
	if s.closingAll || leftBefore == 0 || len(s.DocumentsOn(Left)) > 0 {
		return
	}

	right := s.DocumentsOn(Right)
	if len(right) == 0 {
		return
	}
	wasActive := s.active[Right]
	s.active[Right] = nil
	for _, d := range right {
		d.setSide(Left)
		s.docs.Set(d.file, d)
	}
	log().Debugf("docked %d documents on the left pane", len(right))
	if wasActive != nil {
		s.Activate(wasActive)
	}
}

func (s *Service) showError(ctx context.Context, title string, err error) {
	log().Errorf("%s", err)
	if derr := s.dialogs.ShowError(ctx, title, err); derr != nil {
		log().Warningf("failed to show error dialog: %s", derr)
	}
}
