package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSchemaDocs generates the configuration reference.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	// Create output directory
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generate configuration reference
	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "grammar", "editor", "logging", "cli"
}

// getConfigSchema returns the configuration schema definition.
// This is based on internal/config/types.go ProjectConfig and the CLI
// overlay in internal/cli/config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		// List grammar
		{Name: "markers", Type: "[]string", Default: `["-", "*", "+", ">"]`, Description: "Unordered list markers in priority order; position selects the marker per indent depth", Category: "grammar"},
		{Name: "colon_marker", Type: "string", Default: "markers[0]", Description: "Marker used for children of colon-terminated lines", Category: "grammar"},

		// Editor behavior
		{Name: "filetypes", Type: "[]string", Default: `["markdown"]`, Description: "Document types gestures are active for; an empty list activates them everywhere", Category: "editor"},
		{Name: "indent_width", Type: "int", Default: "2", Description: "Spaces per indent level", Category: "editor"},
		{Name: "use_tabs", Type: "bool", Default: "false", Description: "Indent with a single tab per level", Category: "editor"},

		// Logging
		{Name: "log_level", Type: "string", Default: "info", Description: "Log level: debug, info, warn, error", Category: "logging"},
		{Name: "log_format", Type: "string", Default: "text", Description: "Log format: text, json", Category: "logging"},

		// CLI-only settings
		{Name: "history_file", Type: "string", Default: ".inklist/history", Description: "REPL history file, relative to the project root", Category: "cli"},
		{Name: "output", Type: "string", Default: "auto", Description: "Default output format: auto, text, markdown, json", Category: "cli"},
	}
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	// Frontmatter
	w.Frontmatter("Configuration", "inklist configuration reference")
	w.GeneratedMarker()

	// Title and intro
	w.Header(1, "Configuration")
	w.Paragraph("inklist is configured via `inklist.yaml` in your project root. Every key can also be set with an `INKLIST_` environment variable or the matching command-line flag; flags win over environment variables, which win over the file.")

	fields := getConfigSchema()
	writeCategory := func(title, intro, category string) {
		w.Header(2, title)
		w.Paragraph(intro)

		headers := []string{"Field", "Type", "Default", "Description"}
		var rows [][]string
		for _, f := range fields {
			if f.Category != category {
				continue
			}
			defVal := f.Default
			if defVal == "" {
				defVal = "-"
			}
			rows = append(rows, []string{
				InlineCode(f.Name),
				f.Type,
				InlineCode(defVal),
				f.Description,
			})
		}
		w.Table(headers, rows)
	}

	writeCategory("List Grammar", "Markers define which characters start a list item and which marker each indent depth uses:", "grammar")

	w.Header(3, "Marker Example")
	w.CodeBlock("yaml", `# Depth 0 uses "-", depth 1 uses "*", deeper levels reuse "+"
markers:
  - "-"
  - "*"
  - "+"

# Children of "groceries:" lines start with "-"
colon_marker: "-"`)

	writeCategory("Editor Behavior", "How gestures interpret and produce indentation:", "editor")
	writeCategory("Logging", "Diagnostic output for the CLI and the gesture server:", "logging")
	writeCategory("CLI Settings", "Settings only the command-line surface reads:", "cli")

	// Full example
	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# inklist.yaml

markers:
  - "-"
  - "*"
  - "+"
colon_marker: "-"

filetypes:
  - markdown
  - text

indent_width: 2
use_tabs: false

log_level: info
log_format: text

history_file: ${XDG_STATE_HOME}/inklist/history`)

	// Environment variables
	w.Header(2, "Environment Variables")
	w.Paragraph("Use `${VAR_NAME}` syntax to reference environment variables in path values:")
	w.CodeBlock("yaml", `history_file: ${XDG_STATE_HOME}/inklist/history`)

	// Write file
	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
