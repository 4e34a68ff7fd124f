package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pluqqy/packsmith/internal/cli"
	"github.com/pluqqy/packsmith/internal/config"
	"github.com/pluqqy/packsmith/pkg/files"
)

var (
	configGlobal bool
	configOutput string
	configForce  bool
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage packsmith settings",
		Long: `Manage packsmith settings.

Settings are read from settings.yaml in the pack folder, then from the user
config folder. PACKSMITH_* environment variables override both, for example
PACKSMITH_LOG_VERBOSITY=2.`,
	}

	cmd.AddCommand(newConfigInitCommand(), newConfigShowCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default values",
		Long: `Write settings.yaml with the default values.

Examples:
  # Settings for the current pack
  packsmith config init

  # Settings for every pack of this user
  packsmith config init --global`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVar(&configGlobal, "global", false, "Write to the user config folder")
	cmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing settings file")
	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	dir := ctx.PackPath
	if configGlobal {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to find user config folder: %w", err)
		}
		dir = filepath.Join(userDir, "packsmith")
	} else if err := ctx.ValidatePack(); err != nil {
		return err
	}

	path := filepath.Join(dir, files.SettingsFile)
	if exists, _ := afero.Exists(appFs, path); exists && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Write(appFs, path, config.DefaultSettings()); err != nil {
		return err
	}

	cli.PrintSuccess("Wrote %s", path)
	return nil
}

func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(configOutput)
		},
		RunE: runConfigShow,
	}

	cmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "Output format (text, json, yaml)")
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := newCommandContext()
	if err != nil {
		return err
	}

	settings, source, err := config.Load(appFs, config.SearchPaths(ctx.PackPath)...)
	if err != nil {
		return err
	}
	if source == "" {
		source = "defaults"
	}
	cli.PrintInfo("Settings from %s", source)

	out := cmd.OutOrStdout()
	if configOutput == string(cli.FormatText) {
		table := cli.NewTableFormatter(out)
		table.Header("SETTING", "VALUE")
		table.Row("pack.entities_dir", settings.Pack.EntitiesDir)
		table.Row("pack.maps_dir", settings.Pack.MapsDir)
		table.Row("ui.interactive", fmt.Sprint(settings.UI.Interactive))
		table.Row("log.verbosity", fmt.Sprint(settings.Log.Verbosity))
		table.Row("log.file", settings.Log.File)
		table.Flush()
		return nil
	}
	return cli.OutputResults(out, configOutput, settings)
}
