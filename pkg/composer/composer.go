// Package composer renders a pack as a single Markdown sheet.
package composer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/pluqqy/packsmith/pkg/models"
)

// DefaultOutputFile is where WriteSheet writes when no path is given
const DefaultOutputFile = "PACK.md"

// Sheet is the saved content of a pack
type Sheet struct {
	Metadata *models.PackMetadata
	Entities []models.NamedData[*models.Entity]
	Maps     []models.NamedData[*models.Map]
}

// ComposePack renders sheet as Markdown. Documents are sorted by name.
func ComposePack(sheet Sheet) (string, error) {
	if sheet.Metadata == nil {
		return "", fmt.Errorf("pack metadata is nil")
	}

	var output strings.Builder
	meta := sheet.Metadata
	output.WriteString(fmt.Sprintf("# %s\n\n", meta.Title()))

	var byline []string
	if meta.Author() != "" {
		byline = append(byline, "by "+meta.Author())
	}
	if meta.Version() != "" {
		byline = append(byline, "version "+meta.Version())
	}
	if len(byline) > 0 {
		output.WriteString(fmt.Sprintf("_%s_\n\n", strings.Join(byline, ", ")))
	}
	if meta.Description() != "" {
		output.WriteString(strings.TrimSpace(meta.Description()))
		output.WriteString("\n\n")
	}

	entities := sortedByName(sheet.Entities)
	if len(entities) > 0 {
		output.WriteString("## Entities\n\n")
		for i, e := range entities {
			writeEntity(&output, e)
			if i < len(entities)-1 {
				output.WriteString("\n---\n\n")
			}
		}
		output.WriteString("\n")
	}

	maps := sortedByName(sheet.Maps)
	if len(maps) > 0 {
		output.WriteString("## Maps\n\n")
		for i, m := range maps {
			writeMap(&output, m)
			if i < len(maps)-1 {
				output.WriteString("\n---\n\n")
			}
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func writeEntity(output *strings.Builder, e models.NamedData[*models.Entity]) {
	output.WriteString(fmt.Sprintf("### %s\n\n", e.Name))
	if desc := strings.TrimSpace(e.Data.Description()); desc != "" {
		output.WriteString(desc)
		output.WriteString("\n\n")
	}
	output.WriteString(fmt.Sprintf("- Health: %d\n", e.Data.Stats().Health()))
	output.WriteString(fmt.Sprintf("- Speed: %d\n", e.Data.Stats().Speed()))
	if tags := e.Data.Tags(); len(tags) > 0 {
		output.WriteString(fmt.Sprintf("- Tags: %s\n", strings.Join(tags, ", ")))
	}
}

func writeMap(output *strings.Builder, m models.NamedData[*models.Map]) {
	output.WriteString(fmt.Sprintf("### %s\n\n", m.Name))
	output.WriteString(fmt.Sprintf("- Size: %d x %d\n", m.Data.Width(), m.Data.Height()))
	if layers := m.Data.Layers(); len(layers) > 0 {
		output.WriteString(fmt.Sprintf("- Layers: %s\n", strings.Join(layers, ", ")))
	}
}

func sortedByName[T any](docs []models.NamedData[T]) []models.NamedData[T] {
	sorted := make([]models.NamedData[T], len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted
}

// WriteSheet writes the composed sheet to outputPath
func WriteSheet(fsys afero.Fs, content string, outputPath string) error {
	if outputPath == "" {
		outputPath = DefaultOutputFile
	}

	if err := fsys.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(outputPath), err)
	}
	if err := afero.WriteFile(fsys, outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	return nil
}
