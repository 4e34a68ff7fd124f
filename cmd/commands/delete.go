package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
	"github.com/pluqqy/packsmith/pkg/dialog"
)

var (
	deleteYes bool
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <kind> <name>",
		Short: "Delete an entity or map",
		Long: `Permanently delete an entity or map document.

This action cannot be undone.

Examples:
  # Delete an entity (with confirmation)
  packsmith delete entity Goblin

  # Delete without confirmation
  packsmith delete map Cave --yes`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateKind(args[0])
		},
		RunE: runDelete,
	}

	cmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	var answers []dialog.Choice
	if deleteYes {
		answers = []dialog.Choice{dialog.Yes}
	}
	dialogs := ctx.Dialogs(interactive, nil, answers)

	return ctx.WithPack(cmd.Context(), dialogs, func(c context.Context, w *cli.Workspace) error {
		k, err := w.Kind(args[0])
		if err != nil {
			return err
		}

		deleted, err := k.Delete(c, args[1])
		if err != nil {
			return err
		}
		if !deleted {
			if err := cli.DialogError(dialogs); err != nil {
				return err
			}
			cli.PrintInfo("Deletion cancelled")
			return nil
		}

		cli.PrintSuccess("Deleted %s '%s'", k.Name(), args[1])
		return nil
	})
}
