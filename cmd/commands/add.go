package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
)

var errCancelled = errors.New("cancelled")

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <kind> [name]",
		Short: "Add an entity or map to the pack",
		Long: `Add a new entity or map document to the pack.

The name must not be empty and must be unique within its kind. When no
name is given you are asked for one.

Examples:
  # Add an entity
  packsmith add entity "Fire Rod"

  # Add a map, asking for the name
  packsmith add map`,
		Args: cobra.RangeArgs(1, 2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateKind(args[0])
		},
		RunE: runAdd,
	}

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	dialogs := ctx.Dialogs(interactive, args[1:], nil)
	return ctx.WithPack(cmd.Context(), dialogs, func(c context.Context, w *cli.Workspace) error {
		k, err := w.Kind(args[0])
		if err != nil {
			return err
		}

		entry, ok := k.Add(c)
		if !ok {
			return cancelledOr(cli.DialogError(dialogs))
		}

		cli.PrintSuccess("Added %s '%s' (%s)", entry.Kind, entry.Name, entry.ID)
		return nil
	})
}

// cancelledOr returns err, or errCancelled when the user simply backed out.
func cancelledOr(err error) error {
	if err != nil {
		return err
	}
	return errCancelled
}
