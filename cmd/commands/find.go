package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
	"github.com/pluqqy/packsmith/pkg/search"
)

var (
	findOutput string
)

// NewFindCommand creates the find command
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Find documents matching a query",
		Long: `Find entities and maps matching a query.

Query syntax:
  tag:<tag>      Documents tagged <tag> or a tag nested below it
  kind:<kind>    entity or map
  name:<text>    Name contains <text>
  text:<text>    Name or description contains <text>
  <text>         Same as text:<text>

Conditions are joined with AND unless OR is given, and are combined left to
right. NOT negates the next condition. Quote values containing spaces.

Examples:
  packsmith find tag:enemy/undead
  packsmith find 'tag:boss OR kind:map'
  packsmith find 'NOT tag:boss "fire rod"'`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(findOutput)
		},
		RunE: runFind,
	}

	cmd.Flags().StringVarP(&findOutput, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	query, err := search.NewParser().Parse(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	return ctx.WithPack(cmd.Context(), ctx.Dialogs(false, nil, nil), func(_ context.Context, w *cli.Workspace) error {
		matched := search.Filter(query, w.Items())

		if findOutput != string(cli.FormatText) {
			results := []cli.Entry{}
			for _, item := range matched {
				results = append(results, cli.Entry{Kind: item.Kind, ID: item.ID, Name: item.Name})
			}
			return cli.OutputResults(cmd.OutOrStdout(), findOutput, results)
		}

		if len(matched) == 0 {
			cli.PrintInfo("No documents match '%s'", query.Raw)
			return nil
		}
		table := cli.NewTableFormatter(cmd.OutOrStdout())
		table.Header("KIND", "NAME", "TAGS")
		for _, item := range matched {
			table.Row(item.Kind, cli.TruncateString(item.Name, 40), strings.Join(item.Tags, ", "))
		}
		table.Flush()
		return nil
	})
}
