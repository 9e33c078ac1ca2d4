// Package config provides shared configuration types for inklist.
// This package is decoupled from CLI concerns and can be used by the
// gesture server and other tools that need to load project configuration.
package config

import (
	"strings"

	"github.com/inkstone-labs/inklist/pkg/list"
)

// ProjectConfig holds the project configuration shared by every surface.
type ProjectConfig struct {
	// Markers are the unordered list markers, in declaration order. The
	// order is the match priority and the depth-to-marker lookup.
	Markers []string `koanf:"markers" yaml:"markers"`

	// ColonMarker is the marker used for children of colon-terminated
	// lines. Empty falls back to Markers[0].
	ColonMarker string `koanf:"colon_marker" yaml:"colon_marker"`

	// Filetypes lists the document types gestures are active for. An
	// explicitly empty list activates them everywhere.
	Filetypes []string `koanf:"filetypes" yaml:"filetypes"`

	// IndentWidth is the number of spaces per indent level when UseTabs
	// is false.
	IndentWidth int `koanf:"indent_width" yaml:"indent_width"`

	// UseTabs makes a single tab the indent unit.
	UseTabs bool `koanf:"use_tabs" yaml:"use_tabs"`

	LogLevel  string `koanf:"log_level" yaml:"log_level"`
	LogFormat string `koanf:"log_format" yaml:"log_format"`
}

// IndentUnit returns one level of indentation as text.
func (c *ProjectConfig) IndentUnit() string {
	if c.UseTabs {
		return "\t"
	}
	width := c.IndentWidth
	if width <= 0 {
		width = DefaultIndentWidth
	}
	return strings.Repeat(" ", width)
}

// ListConfig compiles the marker settings into the immutable grammar
// configuration the engine consumes.
func (c *ProjectConfig) ListConfig() (*list.Config, error) {
	markers := c.Markers
	if len(markers) == 0 {
		markers = list.DefaultMarkers()
	}
	return list.NewConfig(markers, c.ColonMarker)
}

// Validate checks that the configuration can serve the engine.
func (c *ProjectConfig) Validate() error {
	_, err := c.ListConfig()
	return err
}

// ActiveFor reports whether gestures are enabled for a document type.
// Matching is case-insensitive; an empty list matches everything.
func (c *ProjectConfig) ActiveFor(filetype string) bool {
	if len(c.Filetypes) == 0 {
		return true
	}
	for _, ft := range c.Filetypes {
		if strings.EqualFold(ft, filetype) {
			return true
		}
	}
	return false
}
