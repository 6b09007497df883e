package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/obsidian2org"
	"github.com/alnah/obsidian2org/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, base configuration and the document converter.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config // Base config when no config file is given

	// DocConverter replaces pandoc when set (tests, alternative backends).
	DocConverter obsidian2org.DocumentConverter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
	}
}
