// Package config provides configuration management for the inklist CLI.
//
// This package layers environment variables and command-line flags over
// the project file, on top of the shared defaults from internal/config.
// Surfaces that only need the project-level settings consume them through
// ProjectConfig.
package config

import (
	intconfig "github.com/inkstone-labs/inklist/internal/config"
	"github.com/inkstone-labs/inklist/pkg/list"
)

// Config holds all CLI configuration options.
type Config struct {
	Markers      []string `koanf:"markers"`
	ColonMarker  string   `koanf:"colon_marker"`
	Filetypes    []string `koanf:"filetypes"`
	IndentWidth  int      `koanf:"indent_width"`
	UseTabs      bool     `koanf:"use_tabs"`
	LogLevel     string   `koanf:"log_level"`
	LogFormat    string   `koanf:"log_format"`
	HistoryFile  string   `koanf:"history_file"`
	Verbose      bool     `koanf:"verbose"`
	OutputFormat string   `koanf:"output"`

	// ProjectRoot is resolved at load time, never read from a file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultIndentWidth = intconfig.DefaultIndentWidth
	DefaultLogLevel    = intconfig.DefaultLogLevel
	DefaultLogFormat   = intconfig.DefaultLogFormat
	DefaultHistoryFile = ".inklist/history"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// ProjectConfig returns the shared project view of the CLI configuration.
func (c *Config) ProjectConfig() *intconfig.ProjectConfig {
	return &intconfig.ProjectConfig{
		Markers:     c.Markers,
		ColonMarker: c.ColonMarker,
		Filetypes:   c.Filetypes,
		IndentWidth: c.IndentWidth,
		UseTabs:     c.UseTabs,
		LogLevel:    c.LogLevel,
		LogFormat:   c.LogFormat,
	}
}

// IndentUnit returns one level of indentation as text.
func (c *Config) IndentUnit() string {
	return c.ProjectConfig().IndentUnit()
}

// ListConfig compiles the marker settings for the engine.
func (c *Config) ListConfig() (*list.Config, error) {
	return c.ProjectConfig().ListConfig()
}
