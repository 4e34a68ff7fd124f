package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <kind> <name> [new-name]",
		Short: "Rename an entity or map",
		Long: `Rename an entity or map. Its identifier, and so its file, stays the same.

Examples:
  # Rename an entity
  packsmith rename entity Goblin "Goblin Chief"

  # Rename a map, asking for the new name
  packsmith rename map Cave`,
		Args: cobra.RangeArgs(2, 3),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateKind(args[0])
		},
		RunE: runRename,
	}

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	dialogs := ctx.Dialogs(interactive, args[2:], nil)
	return ctx.WithPack(cmd.Context(), dialogs, func(c context.Context, w *cli.Workspace) error {
		k, err := w.Kind(args[0])
		if err != nil {
			return err
		}

		entry, ok, err := k.Rename(c, args[1])
		if err != nil {
			return err
		}
		if !ok {
			return cancelledOr(cli.DialogError(dialogs))
		}
		if err := cli.DialogError(dialogs); err != nil {
			return err
		}

		cli.PrintSuccess("Renamed %s '%s' to '%s'", entry.Kind, args[1], entry.Name)
		return nil
	})
}
