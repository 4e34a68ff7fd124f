package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/packsmith/pkg/files"
)

// EnvPrefix prefixes the environment variables overriding settings, e.g.
// PACKSMITH_LOG_VERBOSITY.
const EnvPrefix = "PACKSMITH"

// Settings represents the application configuration
type Settings struct {
	Pack PackSettings `yaml:"pack" mapstructure:"pack"`
	UI   UISettings   `yaml:"ui" mapstructure:"ui"`
	Log  LogSettings  `yaml:"log" mapstructure:"log"`
}

// PackSettings names the document folders inside a pack
type PackSettings struct {
	EntitiesDir string `yaml:"entities_dir" mapstructure:"entities_dir"`
	MapsDir     string `yaml:"maps_dir" mapstructure:"maps_dir"`
}

// UISettings controls how questions are asked
type UISettings struct {
	Interactive bool `yaml:"interactive" mapstructure:"interactive"`
}

// LogSettings controls diagnostic logging
type LogSettings struct {
	Verbosity int    `yaml:"verbosity" mapstructure:"verbosity"`
	File      string `yaml:"file" mapstructure:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Pack: PackSettings{
			EntitiesDir: files.EntitiesDir,
			MapsDir:     files.MapsDir,
		},
		UI: UISettings{
			Interactive: false,
		},
		Log: LogSettings{
			Verbosity: 0,
		},
	}
}

// SearchPaths returns the folders searched for the settings file: the pack
// root first, then the user config folder.
func SearchPaths(packRoot string) []string {
	paths := []string{packRoot}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "packsmith"))
	}
	return paths
}

// Load reads settings.yaml from the first of paths that has one, applies
// PACKSMITH_* environment overrides and fills everything else with defaults.
// It returns the file the settings came from, or "" when none was found.
func Load(fsys afero.Fs, paths ...string) (*Settings, string, error) {
	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigName(strings.TrimSuffix(files.SettingsFile, filepath.Ext(files.SettingsFile)))
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("pack.entities_dir", defaults.Pack.EntitiesDir)
	v.SetDefault("pack.maps_dir", defaults.Pack.MapsDir)
	v.SetDefault("ui.interactive", defaults.UI.Interactive)
	v.SetDefault("log.verbosity", defaults.Log.Verbosity)
	v.SetDefault("log.file", defaults.Log.File)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("failed to read settings: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, "", fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, v.ConfigFileUsed(), nil
}

// Write saves settings as YAML at path.
func Write(fsys afero.Fs, path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
