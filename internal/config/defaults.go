package config

import "github.com/inkstone-labs/inklist/pkg/list"

// Default configuration values.
const (
	DefaultIndentWidth = 2
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// DefaultFiletypes returns the document types gestures are active for
// out of the box.
func DefaultFiletypes() []string {
	return []string{"markdown"}
}

// Default returns a ProjectConfig with every default applied.
func Default() *ProjectConfig {
	cfg := &ProjectConfig{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a ProjectConfig. A nil Filetypes
// slice gets the default list; an explicitly empty one is kept, since it
// means "active everywhere".
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.Markers == nil {
		c.Markers = list.DefaultMarkers()
	}
	if c.Filetypes == nil {
		c.Filetypes = DefaultFiletypes()
	}
	if c.IndentWidth <= 0 {
		c.IndentWidth = DefaultIndentWidth
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
}
