package cli

import (
	"context"
	"fmt"

	"github.com/pluqqy/packsmith/pkg/dialog"
	"github.com/pluqqy/packsmith/pkg/docfile"
	"github.com/pluqqy/packsmith/pkg/examples"
)

// ExampleDialogs answers the name prompts of InstallExamples for set.
func ExampleDialogs(set examples.ExampleSet) *dialog.Preset {
	preset := &dialog.Preset{Default: dialog.Cancel}
	for _, e := range set.Entities {
		preset.Texts = append(preset.Texts, e.Name)
	}
	for _, m := range set.Maps {
		preset.Texts = append(preset.Texts, m.Name)
	}
	return preset
}

// InstallExamples adds the documents of set to the open pack. The workspace
// must have been created with ExampleDialogs(set).
func (w *Workspace) InstallExamples(ctx context.Context, set examples.ExampleSet) error {
	for _, tmpl := range set.Entities {
		f, ok := w.Entities.AddFile(ctx)
		if !ok {
			return w.exampleError(tmpl.Name)
		}
		err := w.editDocument(f, func() {
			e := f.WorkingData()
			e.SetDescription(tmpl.Description)
			e.SetTags(tmpl.Tags)
			e.Stats().SetHealth(tmpl.Health)
			e.Stats().SetSpeed(tmpl.Speed)
		})
		if err != nil {
			return err
		}
	}

	for _, tmpl := range set.Maps {
		f, ok := w.Maps.AddFile(ctx)
		if !ok {
			return w.exampleError(tmpl.Name)
		}
		err := w.editDocument(f, func() {
			m := f.WorkingData()
			m.SetWidth(tmpl.Width)
			m.SetHeight(tmpl.Height)
			m.SetLayers(tmpl.Layers)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// editDocument opens f as a document, applies edit to its working buffer and
// saves it.
func (w *Workspace) editDocument(f docfile.Handle, edit func()) error {
	doc := w.Documents.Open(f)
	defer w.Documents.Close(doc)

	edit()
	if !doc.IsUnsaved() {
		return nil
	}
	return w.Documents.Save(doc)
}

func (w *Workspace) exampleError(name string) error {
	if err := DialogError(w.Dialogs); err != nil {
		return fmt.Errorf("failed to add example '%s': %w", name, err)
	}
	return fmt.Errorf("failed to add example '%s'", name)
}
