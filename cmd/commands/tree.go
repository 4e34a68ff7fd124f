package commands

import (
	"context"
	"fmt"

	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
)

// NewTreeCommand creates the tree command
func NewTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the pack as a tree",
		Long: `Show the documents and images of a pack as a tree.

Examples:
  packsmith tree
  packsmith tree --pack ./dungeon`,
		Args: cobra.NoArgs,
		RunE: runTree,
	}

	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	return ctx.WithPack(cmd.Context(), ctx.Dialogs(false, nil, nil), func(_ context.Context, w *cli.Workspace) error {
		fmt.Fprint(cmd.OutOrStdout(), buildTree(w).Print())
		return nil
	})
}

func buildTree(w *cli.Workspace) gotree.Tree {
	title := w.Pack.Metadata().File().SavedData().Title()
	root := gotree.New(fmt.Sprintf("%s (%s)", title, w.Pack.Root().Path()))

	for _, k := range w.Kinds() {
		branch := root.Add(k.Folder() + "/")
		for _, e := range k.Entries() {
			branch.Add(fmt.Sprintf("%s [%s]", e.Name, e.ID))
		}
	}

	images := w.Images.Images()
	if len(images) > 0 {
		branch := root.Add("images/")
		for _, img := range images {
			branch.Add(fmt.Sprintf("%s -> %s", img.ID, img.Path))
		}
	}

	return root
}
