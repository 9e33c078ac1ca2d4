package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inkstone-labs/inklist/internal/cli/output"
	intconfig "github.com/inkstone-labs/inklist/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize an inklist project",
		Long: `Initialize an inklist project with a starter configuration.

This creates:
  - inklist.yaml with the default markers, indentation, and filetypes

Use --example to also create a sample document to try gestures on.`,
		Example: `  # Initialize in current directory
  inklist init

  # Initialize with a sample document
  inklist init --example

  # Initialize in a new directory
  inklist init my-notes

  # Force overwrite existing config
  inklist init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			if example {
				return runInitExample(r, dir, force)
			}
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Also create a sample document")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	configPath, err := writeStarterConfig(dir, force)
	if err != nil {
		return err
	}
	r.StatusLine(configPath, "success", "")

	r.Println("")
	r.Success("inklist project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Adjust markers and indentation in inklist.yaml")
	r.Println("  2. Run 'inklist classify <file>' to inspect a document")
	r.Println("  3. Run 'inklist repl' to try gestures interactively")
	r.Println("  4. Run 'inklist doctor' to verify the configuration")

	return nil
}

func runInitExample(r *output.Renderer, dir string, force bool) error {
	configPath, err := writeStarterConfig(dir, force)
	if err != nil {
		return err
	}

	r.Header(2, "Configuration")
	r.StatusLine(configPath, "success", "")

	r.Println("")
	r.Header(2, "Documents")
	docPath := filepath.Join(dir, "notes.md")
	if _, err := os.Stat(docPath); err == nil && !force {
		r.StatusLine(docPath, "warn", "exists, skipped")
	} else {
		if err := os.WriteFile(docPath, []byte(sampleDocument), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", docPath, err)
		}
		r.StatusLine(docPath, "success", "")
	}

	r.Println("")
	r.Success("inklist project initialized with a sample document!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  inklist classify notes.md              Inspect the sample lines")
	r.Println("  inklist transform -g confirm -l 1 notes.md --apply")
	r.Println("                                         Continue the first item")
	r.Println("  inklist edit notes.md                  Open the demo editor")

	return nil
}

// writeStarterConfig renders the default configuration to
// <dir>/inklist.yaml and returns the path written.
func writeStarterConfig(dir string, force bool) (string, error) {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}

	content, err := renderStarterConfig()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	return configPath, nil
}

// renderStarterConfig marshals the default project configuration with a
// comment banner, so the starter file round-trips through the loader.
func renderStarterConfig() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(starterBanner)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(intconfig.Default()); err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return buf.Bytes(), nil
}

const starterBanner = `# inklist project configuration.
#
# markers: unordered markers in priority order; position doubles as the
#   depth-to-marker lookup for indent and outdent.
# colon_marker: marker for children of colon-terminated lines (defaults
#   to the first marker when empty).
# filetypes: document types gestures are active for; an empty list
#   activates them everywhere.
#
# Environment variables (INKLIST_*) and flags override these values.
`

const sampleDocument = `- groceries
  - apples
  - bread
- hardware:
  - screws
  - wing nuts
1. pick up parcel
2. return library books
things to try:
`
