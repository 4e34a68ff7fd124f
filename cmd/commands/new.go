package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
	"github.com/pluqqy/packsmith/pkg/examples"
	"github.com/pluqqy/packsmith/pkg/files"
)

var (
	newTitle   string
	newAuthor  string
	newExample string
)

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [dir]",
		Short: "Create a new pack",
		Long: `Create a new pack in the given folder (default: the --pack folder).

Creates pack.json, the entity and map folders and the images folder.

Examples:
  # Create a pack in a new folder
  packsmith new dungeon

  # Create a pack with metadata
  packsmith new dungeon --title "The Dungeon" --author ana

  # Create a pack with starter content
  packsmith new crypt --example dungeon`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if newExample == "" {
				return nil
			}
			if _, ok := examples.Get(newExample); !ok {
				return fmt.Errorf("unknown example set: %s (available: %s)", newExample, strings.Join(examples.Names(), ", "))
			}
			return nil
		},
		RunE: runNew,
	}

	cmd.Flags().StringVar(&newTitle, "title", "", "Pack title (default: folder name)")
	cmd.Flags().StringVar(&newAuthor, "author", "", "Pack author")
	cmd.Flags().StringVar(&newExample, "example", "", "Install an example set ("+strings.Join(examples.Names(), ", ")+")")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		packPath = args[0]
	}
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	metadataPath := filepath.Join(ctx.PackPath, files.MetadataFile)
	if exists, _ := afero.Exists(appFs, metadataPath); exists {
		return fmt.Errorf("a pack already exists in %s", ctx.PackPath)
	}

	folder, err := files.InitPackStructure(appFs, ctx.PackPath)
	if err != nil {
		return err
	}

	set, withExamples := examples.Get(newExample)
	dialogs := ctx.Dialogs(false, nil, nil)
	if withExamples {
		dialogs = cli.ExampleDialogs(set)
	}

	w := cli.NewWorkspace(ctx.LoadSettingsWithDefault(), dialogs)
	if err := w.Pack.NewPack(folder); err != nil {
		return err
	}
	defer w.Pack.ClosePack()

	metadata := w.Pack.Metadata().File()
	if newTitle != "" {
		metadata.WorkingData().SetTitle(newTitle)
	}
	if newAuthor != "" {
		metadata.WorkingData().SetAuthor(newAuthor)
	}
	if withExamples {
		metadata.WorkingData().SetDescription(set.Description)
	}
	if metadata.IsUnsaved() {
		if err := metadata.Save(); err != nil {
			return err
		}
	}

	if withExamples {
		if err := w.InstallExamples(cmd.Context(), set); err != nil {
			return err
		}
		cli.PrintInfo("Installed %d entities and %d maps from the '%s' examples", len(set.Entities), len(set.Maps), set.Name)
	}

	cli.PrintSuccess("Created pack '%s' in %s", metadata.SavedData().Title(), ctx.PackPath)
	cli.PrintInfo("Run 'packsmith add entity <name>' to add your first entity")
	return nil
}
