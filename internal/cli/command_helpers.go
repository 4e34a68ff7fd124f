package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pluqqy/packsmith/internal/config"
	"github.com/pluqqy/packsmith/pkg/dialog"
	"github.com/pluqqy/packsmith/pkg/files"
)

// CommandContext manages pack validation and common command context
type CommandContext struct {
	PackPath       string
	Fs             afero.Fs
	Settings       *config.Settings
	SettingsSource string
	validated      bool
}

// NewCommandContext creates a new command context for the pack at packPath
func NewCommandContext(fsys afero.Fs, packPath string) (*CommandContext, error) {
	abs, err := filepath.Abs(packPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pack path: %w", err)
	}
	return &CommandContext{
		PackPath: abs,
		Fs:       fsys,
	}, nil
}

// ValidatePack ensures the pack is initialized
func (c *CommandContext) ValidatePack() error {
	if c.validated {
		return nil
	}

	exists, err := afero.Exists(c.Fs, filepath.Join(c.PackPath, files.MetadataFile))
	if err != nil {
		return fmt.Errorf("failed to check pack: %w", err)
	}
	if !exists {
		return fmt.Errorf("no %s found in %s. Run 'packsmith new' first", files.MetadataFile, c.PackPath)
	}

	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *config.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, source, err := config.Load(c.Fs, config.SearchPaths(c.PackPath)...)
	if err != nil {
		PrintWarning("Using default settings: %v", err)
		settings = config.DefaultSettings()
	}

	c.Settings = settings
	c.SettingsSource = source
	return settings
}

// PackFolder returns the storage folder of the pack
func (c *CommandContext) PackFolder() files.Folder {
	return files.NewFolder(c.Fs, c.PackPath)
}

// OpenWorkspace validates the pack and opens it with every service wired to
// dialogs.
func (c *CommandContext) OpenWorkspace(dialogs dialog.Service) (*Workspace, error) {
	if err := c.ValidatePack(); err != nil {
		return nil, err
	}
	w := NewWorkspace(c.LoadSettingsWithDefault(), dialogs)
	if err := w.Pack.OpenPack(c.PackFolder()); err != nil {
		return nil, err
	}
	return w, nil
}

// Dialogs picks how questions are asked. Answers given on the command line
// are replayed without prompting; otherwise the user is asked on the
// terminal.
func (c *CommandContext) Dialogs(interactive bool, texts []string, answers []dialog.Choice) dialog.Service {
	if len(texts) > 0 || len(answers) > 0 {
		return &dialog.Preset{
			Texts:   texts,
			Answers: answers,
			Default: dialog.Cancel,
		}
	}
	return dialog.ForStdio(interactive || c.LoadSettingsWithDefault().UI.Interactive)
}

// DialogError returns the first rejected answer or reported error of a
// preset dialog. Other dialogs have already shown them to the user.
func DialogError(dialogs dialog.Service) error {
	preset, ok := dialogs.(*dialog.Preset)
	if !ok {
		return nil
	}
	if len(preset.Errors) > 0 {
		return preset.Errors[0]
	}
	if len(preset.Rejections) > 0 {
		return errors.New(preset.Rejections[0])
	}
	return nil
}

// WithPack runs fn against the opened pack and closes it afterwards.
func (c *CommandContext) WithPack(ctx context.Context, dialogs dialog.Service, fn func(ctx context.Context, w *Workspace) error) error {
	w, err := c.OpenWorkspace(dialogs)
	if err != nil {
		return err
	}
	defer w.Pack.ClosePack()
	return fn(ctx, w)
}
