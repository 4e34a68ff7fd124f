package commands

import (
	"bytes"
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
)

var (
	showOutput string
	showCopy   bool

	// writeClipboard is swapped out in tests
	writeClipboard = clipboard.WriteAll
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <kind> <name>",
		Short: "Show the saved contents of an entity or map",
		Long: `Show the saved record of an entity or map.

Examples:
  # Show an entity
  packsmith show entity Goblin

  # Show a map as YAML
  packsmith show map Cave -o yaml

  # Copy an entity's JSON record to the clipboard
  packsmith show entity Goblin --copy`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateKind(args[0]); err != nil {
				return err
			}
			return cli.ValidateOutputFormat(showOutput)
		},
		RunE: runShow,
	}

	cmd.Flags().StringVarP(&showOutput, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&showCopy, "copy", false, "Copy the JSON record to the clipboard")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	return ctx.WithPack(cmd.Context(), ctx.Dialogs(false, nil, nil), func(_ context.Context, w *cli.Workspace) error {
		k, err := w.Kind(args[0])
		if err != nil {
			return err
		}
		title, record, err := k.Record(args[1])
		if err != nil {
			return err
		}

		var content bytes.Buffer
		if err := cli.OutputResults(&content, string(cli.FormatJSON), record); err != nil {
			return err
		}

		if showCopy {
			if err := writeClipboard(content.String()); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			cli.PrintSuccess("Copied %s to clipboard", title)
			return nil
		}

		out := cmd.OutOrStdout()
		switch showOutput {
		case string(cli.FormatText):
			fmt.Fprintf(out, "%s\n\n", title)
			_, err = out.Write(content.Bytes())
			return err
		default:
			return cli.OutputResults(out, showOutput, record)
		}
	})
}
