package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
	"github.com/pluqqy/packsmith/pkg/composer"
	"github.com/pluqqy/packsmith/pkg/models"
)

var (
	exportFile   string
	exportStdout bool
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the pack as a Markdown sheet",
		Long: `Render the saved metadata, entities and maps of the pack as one Markdown
document.

Examples:
  # Write PACK.md into the pack folder
  packsmith export

  # Write to a specific file
  packsmith export -f docs/dungeon.md

  # Print to the terminal
  packsmith export --stdout`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportFile, "file", "f", "", "Output file (default: PACK.md in the pack folder)")
	cmd.Flags().BoolVar(&exportStdout, "stdout", false, "Print the sheet instead of writing a file")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	return ctx.WithPack(cmd.Context(), ctx.Dialogs(false, nil, nil), func(_ context.Context, w *cli.Workspace) error {
		sheet := composer.Sheet{Metadata: w.Pack.Metadata().File().SavedData()}
		for _, f := range w.Entities.Files() {
			sheet.Entities = append(sheet.Entities, models.NamedData[*models.Entity]{Name: f.FriendlyID(), Data: f.SavedData()})
		}
		for _, f := range w.Maps.Files() {
			sheet.Maps = append(sheet.Maps, models.NamedData[*models.Map]{Name: f.FriendlyID(), Data: f.SavedData()})
		}

		content, err := composer.ComposePack(sheet)
		if err != nil {
			return err
		}

		if exportStdout {
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		}

		path := exportFile
		if path == "" {
			path = filepath.Join(ctx.PackPath, composer.DefaultOutputFile)
		}
		if err := composer.WriteSheet(appFs, content, path); err != nil {
			return err
		}
		cli.PrintSuccess("Exported %s", path)
		return nil
	})
}
