package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
)

var (
	listOutput string
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [kind]",
		Short: "List the documents of a pack",
		Long: `List the entities and maps of a pack.

Examples:
  # List everything
  packsmith list

  # List only maps
  packsmith list maps

  # Output as JSON
  packsmith list -o json`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := cli.ValidateKind(args[0]); err != nil {
					return err
				}
			}
			return cli.ValidateOutputFormat(listOutput)
		},
		RunE: runList,
	}

	cmd.Flags().StringVarP(&listOutput, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	return ctx.WithPack(cmd.Context(), ctx.Dialogs(false, nil, nil), func(_ context.Context, w *cli.Workspace) error {
		kinds := w.Kinds()
		if len(args) == 1 {
			k, err := w.Kind(args[0])
			if err != nil {
				return err
			}
			kinds = []cli.Kind{k}
		}

		entries := []cli.Entry{}
		for _, k := range kinds {
			entries = append(entries, k.Entries()...)
		}

		if listOutput != string(cli.FormatText) {
			return cli.OutputResults(cmd.OutOrStdout(), listOutput, entries)
		}

		if len(entries) == 0 {
			cli.PrintInfo("No documents found")
			return nil
		}
		table := cli.NewTableFormatter(cmd.OutOrStdout())
		table.Header("KIND", "NAME", "ID")
		for _, e := range entries {
			table.Row(e.Kind, cli.TruncateString(e.Name, 40), e.ID)
		}
		table.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d documents\n", len(entries))
		return nil
	})
}
