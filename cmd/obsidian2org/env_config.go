package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/obsidian2org/internal/config"
)

// envPrefix is shared by every recognized environment variable.
const envPrefix = "OBSIDIAN2ORG_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
// A .env file in the working directory is loaded into the environment first.
type envConfig struct {
	ConfigPath string // OBSIDIAN2ORG_CONFIG: config file name or path
	Pandoc     string // OBSIDIAN2ORG_PANDOC: pandoc binary
	InputDir   string // OBSIDIAN2ORG_INPUT_DIR: default vault directory
	OutputDir  string // OBSIDIAN2ORG_OUTPUT_DIR: default output directory
	Workers    int    // OBSIDIAN2ORG_WORKERS: parallel workers (0 = unset)

	KeepIDs     *bool // OBSIDIAN2ORG_KEEP_IDS
	Tags        *bool // OBSIDIAN2ORG_TAGS
	Attachments *bool // OBSIDIAN2ORG_ATTACHMENTS

	DebounceMs int // OBSIDIAN2ORG_DEBOUNCE_MS: watch debounce window
}

// knownEnvVars lists valid OBSIDIAN2ORG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"OBSIDIAN2ORG_CONFIG":      true,
	"OBSIDIAN2ORG_PANDOC":      true,
	"OBSIDIAN2ORG_INPUT_DIR":   true,
	"OBSIDIAN2ORG_OUTPUT_DIR":  true,
	"OBSIDIAN2ORG_WORKERS":     true,
	"OBSIDIAN2ORG_KEEP_IDS":    true,
	"OBSIDIAN2ORG_TAGS":        true,
	"OBSIDIAN2ORG_ATTACHMENTS": true,
	"OBSIDIAN2ORG_DEBOUNCE_MS": true,
	"OBSIDIAN2ORG_CONTAINER":   true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and booleans are ignored, not errors.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("OBSIDIAN2ORG_CONFIG"),
		Pandoc:      os.Getenv("OBSIDIAN2ORG_PANDOC"),
		InputDir:    os.Getenv("OBSIDIAN2ORG_INPUT_DIR"),
		OutputDir:   os.Getenv("OBSIDIAN2ORG_OUTPUT_DIR"),
		KeepIDs:     envBool("OBSIDIAN2ORG_KEEP_IDS"),
		Tags:        envBool("OBSIDIAN2ORG_TAGS"),
		Attachments: envBool("OBSIDIAN2ORG_ATTACHMENTS"),
	}

	if workers := os.Getenv("OBSIDIAN2ORG_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if debounce := os.Getenv("OBSIDIAN2ORG_DEBOUNCE_MS"); debounce != "" {
		if d, err := strconv.Atoi(debounce); err == nil && d > 0 {
			cfg.DebounceMs = d
		}
	}

	return cfg
}

// envBool parses a boolean variable; nil when unset or invalid.
func envBool(name string) *bool {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// warnUnknownEnvVars logs warnings for unrecognized OBSIDIAN2ORG_* variables.
// Helps catch typos like OBSIDIAN2ORG_WORKER instead of OBSIDIAN2ORG_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Environment values override the config file; CLI flags are applied
// later and override both: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Pandoc != "" {
		cfg.Pandoc.Path = env.Pandoc
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Convert.Workers = env.Workers
	}
	if env.KeepIDs != nil {
		cfg.Convert.KeepIDs = *env.KeepIDs
	}
	if env.Tags != nil {
		cfg.Convert.Tags = *env.Tags
	}
	if env.Attachments != nil {
		cfg.Convert.Attachments = *env.Attachments
	}
	if env.DebounceMs > 0 {
		cfg.Watch.DebounceMs = env.DebounceMs
	}
}
