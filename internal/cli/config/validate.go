package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// validLogLevels enumerates the accepted log_level values.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats enumerates the accepted log_format values.
var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// validOutputFormats enumerates the accepted --output values.
var validOutputFormats = map[string]bool{
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	// The marker set must compile into a grammar before any command runs.
	if _, err := c.ListConfig(); err != nil {
		return err
	}

	if c.IndentWidth < 1 {
		return fmt.Errorf("indent_width must be at least 1, got %d", c.IndentWidth)
	}

	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q (expected debug, info, warn, or error)", c.LogLevel)
	}
	if c.LogFormat != "" && !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format %q (expected text or json)", c.LogFormat)
	}
	if c.OutputFormat != "" && !validOutputFormats[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (expected auto, text, markdown, or json)", c.OutputFormat)
	}

	return nil
}

// EnsureHistoryDir creates the directory holding the REPL history file.
func (c *Config) EnsureHistoryDir() error {
	if c.HistoryFile == "" {
		return nil
	}
	dir := filepath.Dir(c.HistoryFile)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create history directory %s: %w", dir, err)
	}
	return nil
}
