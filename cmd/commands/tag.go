package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
	"github.com/pluqqy/packsmith/pkg/tags"
)

var (
	tagAdd     []string
	tagRemove  []string
	tagsOutput string
)

// NewTagCommand creates the tag command
func NewTagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag <entity>",
		Short: "Show or edit the tags of an entity",
		Long: `Show or edit the tags of an entity.

Tags are normalized to lowercase with hyphens. Use '/' to nest tags, for
example enemy/undead.

Examples:
  # Show tags
  packsmith tag Lich

  # Add and remove tags
  packsmith tag Lich --add enemy/undead --add boss --remove draft`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range tagAdd {
				if err := tags.Validate(t); err != nil {
					return fmt.Errorf("invalid tag '%s': %w", t, err)
				}
			}
			return nil
		},
		RunE: runTag,
	}

	cmd.Flags().StringArrayVar(&tagAdd, "add", nil, "Tag to add (repeatable)")
	cmd.Flags().StringArrayVar(&tagRemove, "remove", nil, "Tag to remove (repeatable)")

	return cmd
}

func runTag(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	dialogs := ctx.Dialogs(interactive, nil, nil)
	return ctx.WithPack(cmd.Context(), dialogs, func(c context.Context, w *cli.Workspace) error {
		file, ok := w.Entities.FindByName(args[0])
		if !ok {
			return fmt.Errorf("entity '%s' not found", args[0])
		}

		if len(tagAdd) == 0 && len(tagRemove) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), renderTags(file.SavedData().Tags()))
			return nil
		}

		doc := w.Documents.Open(file)
		defer w.Documents.Close(doc)

		entity := file.WorkingData()
		list := entity.Tags()
		for _, t := range tagAdd {
			list = tags.Add(list, t)
		}
		for _, t := range tagRemove {
			list = tags.Remove(list, t)
		}
		entity.SetTags(list)

		if !doc.IsUnsaved() {
			cli.PrintInfo("Tags of '%s' unchanged", file.FriendlyID())
			return nil
		}
		if err := w.Documents.Save(doc); err != nil {
			return err
		}

		cli.PrintSuccess("Updated %s", doc.BaseTitle())
		fmt.Fprintln(cmd.OutOrStdout(), renderTags(list))
		return nil
	})
}

// NewTagsCommand creates the tags command
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tags used by entities",
		Long: `List every tag used by the entities of the pack with the number of
entities carrying it.

Examples:
  packsmith tags
  packsmith tags -o json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(tagsOutput)
		},
		RunE: runTags,
	}

	cmd.Flags().StringVarP(&tagsOutput, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runTags(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	return ctx.WithPack(cmd.Context(), ctx.Dialogs(false, nil, nil), func(_ context.Context, w *cli.Workspace) error {
		var lists [][]string
		for _, f := range w.Entities.Files() {
			lists = append(lists, f.SavedData().Tags())
		}
		usage := tags.CountUsage(lists)

		if tagsOutput != string(cli.FormatText) {
			return cli.OutputResults(cmd.OutOrStdout(), tagsOutput, usage)
		}

		if len(usage) == 0 {
			cli.PrintInfo("No tags in use")
			return nil
		}
		table := cli.NewTableFormatter(cmd.OutOrStdout())
		table.Header("TAG", "ENTITIES")
		for _, u := range usage {
			table.Row(u.Tag, fmt.Sprint(u.Count))
		}
		table.Flush()
		return nil
	})
}

// renderTags draws tags as colored chips.
func renderTags(list []string) string {
	if len(list) == 0 {
		return "(no tags)"
	}
	chips := make([]string, 0, len(list))
	for _, t := range list {
		chips = append(chips, lipgloss.NewStyle().
			Foreground(lipgloss.Color(tags.Color(t))).
			Render("#"+t))
	}
	return strings.Join(chips, " ")
}
