package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/pluqqy/packsmith/internal/cli"
)

// Global flags shared by every command
var (
	packPath    string
	interactive bool
	quiet       bool
	noColor     bool
	verbose     int
	logFile     string

	// appFs is the file system packs live on
	appFs afero.Fs = afero.NewOsFs()
)

// NewRootCommand creates the packsmith command tree
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packsmith",
		Short: "Author game content packs from the terminal",
		Long: `Packsmith manages game content packs: folders of entity and map documents
stored as JSON, together with pack metadata and an image manifest.

Names and confirmations can be passed as arguments and flags, or answered
at the prompt. Use --interactive for full-screen dialogs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.SetGlobalFlags(quiet, noColor)
			return configureLogging(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&packPath, "pack", "p", ".", "Pack folder")
	flags.BoolVarP(&interactive, "interactive", "i", false, "Use full-screen dialogs")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	flags.BoolVar(&noColor, "no-color", false, "Disable symbols and colors")
	flags.CountVarP(&verbose, "verbose", "v", "Increase log verbosity (repeatable)")
	flags.StringVar(&logFile, "log-file", "", "Write logs to a file instead of stderr")

	cmd.AddCommand(
		NewNewCommand(),
		NewListCommand(),
		NewTreeCommand(),
		NewAddCommand(),
		NewRenameCommand(),
		NewDeleteCommand(),
		NewShowCommand(),
		NewFindCommand(),
		NewTagCommand(),
		NewTagsCommand(),
		NewExportCommand(),
		NewConfigCommand(),
		NewVersionCommand(version),
	)

	return cmd
}

// configureLogging applies the log settings, letting flags win over the
// settings file.
func configureLogging(cmd *cobra.Command) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()

	verbosity := settings.Log.Verbosity
	if cmd.Flags().Changed("verbose") {
		verbosity = verbose
	}
	path := settings.Log.File
	if logFile != "" {
		path = logFile
	}

	if path != "" {
		commonlog.Configure(verbosity, &path)
	} else {
		commonlog.Configure(verbosity, nil)
	}
	return nil
}

func newCommandContext() (*cli.CommandContext, error) {
	ctx, err := cli.NewCommandContext(appFs, packPath)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare command: %w", err)
	}
	return ctx, nil
}
