package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/obsidian2org/internal/fileutil"
	"github.com/alnah/obsidian2org/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Limits for configuration values.
const (
	MaxPathLength  = 4096  // PATH_MAX on Linux
	MaxWorkers     = 64    // Each worker may hold one pandoc process
	MaxDebounceMs  = 60000 // One minute
	DefaultPandoc  = "pandoc"
	DefaultWorkers = 1
	// DefaultDebounceMs is the watch window used to coalesce editor saves.
	DefaultDebounceMs = 300
)

// AppName is used for the user config directory (~/.config/obsidian2org).
const AppName = "obsidian2org"

// Config holds all configuration for vault conversion.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Pandoc  PandocConfig  `yaml:"pandoc"`
	Convert ConvertConfig `yaml:"convert"`
	Watch   WatchConfig   `yaml:"watch"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default vault directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = "out")
}

// PandocConfig defines how the external converter is invoked.
type PandocConfig struct {
	Path string `yaml:"path"` // Binary name or absolute path
}

// ConvertConfig defines conversion behavior.
type ConvertConfig struct {
	Workers     int  `yaml:"workers"`     // 0 = auto, 1 = sequential
	KeepIDs     bool `yaml:"keepIds"`     // Reuse :ID: of existing output files
	Tags        bool `yaml:"tags"`        // Emit #+filetags:
	Attachments bool `yaml:"attachments"` // Copy non-Markdown files
}

// WatchConfig defines watch mode options.
type WatchConfig struct {
	DebounceMs int `yaml:"debounceMs"`
}

// Validate checks every section. Called automatically by LoadConfig, but
// available for callers who build a Config by hand.
func (c *Config) Validate() error {
	validators := []validation.Validatable{&c.Input, &c.Output, &c.Pandoc, &c.Convert, &c.Watch}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
		}
	}
	return nil
}

// Validate validates the input configuration.
func (c *InputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultDir, validation.Length(0, MaxPathLength)),
	)
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultDir, validation.Length(0, MaxPathLength)),
	)
}

// Validate validates the pandoc configuration.
func (c *PandocConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required, validation.Length(1, MaxPathLength)),
	)
}

// Validate validates the conversion configuration.
func (c *ConvertConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Min(0), validation.Max(MaxWorkers)),
	)
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DebounceMs, validation.Min(0), validation.Max(MaxDebounceMs)),
	)
}

// DefaultConfig returns the configuration used when no file is given:
// sequential conversion, tags and attachments on, fresh identifiers.
func DefaultConfig() *Config {
	return &Config{
		Pandoc: PandocConfig{Path: DefaultPandoc},
		Convert: ConvertConfig{
			Workers:     DefaultWorkers,
			Tags:        true,
			Attachments: true,
		},
		Watch: WatchConfig{DebounceMs: DefaultDebounceMs},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations LoadConfig tries for a config name,
// in order: current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in SearchPaths order.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
