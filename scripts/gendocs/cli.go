package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inkstone-labs/inklist/internal/cli"
)

var flagHeaders = []string{"Option", "Short", "Default", "Description"}

// generateCLIDocs renders one page per visible command plus an index,
// all derived from the live Cobra command tree.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()

	if err := writeIndexPage(root, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range visibleCommands(root) {
		if err := writeCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

func writeIndexPage(root *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for inklist")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("inklist provides a command-line interface for classifying list items, applying editing gestures, and serving editor integrations.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/inkstone-labs/inklist/cmd/inklist@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", "inklist <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(root) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	w.Table(flagHeaders, flagRows(root.PersistentFlags()))

	w.Header(2, "Environment Variables")
	w.Paragraph("inklist respects these environment variables:")
	w.Table([]string{"Variable", "Description"}, [][]string{
		{InlineCode("INKLIST_MARKERS"), "Unordered list markers, comma separated"},
		{InlineCode("INKLIST_COLON_MARKER"), "Marker for children of colon-terminated lines"},
		{InlineCode("INKLIST_FILETYPES"), "Document types gestures are active for, comma separated"},
		{InlineCode("INKLIST_INDENT_WIDTH"), "Spaces per indent level"},
		{InlineCode("INKLIST_USE_TABS"), "Indent with tabs instead of spaces"},
		{InlineCode("INKLIST_HISTORY_FILE"), "REPL history file path"},
		{InlineCode("INKLIST_LOG_LEVEL"), "Log level"},
		{InlineCode("INKLIST_OUTPUT"), "Default output format"},
	})
	w.Paragraph("Command-line flags take precedence over environment variables.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error (check stderr for details)"},
	})

	w.Header(2, "Getting Help")
	w.CodeBlock("bash", `# General help
inklist help
inklist --help

# Command-specific help
inklist transform --help`)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

func writeCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	use := cmd.UseLine()
	switch {
	case cmd.HasSubCommands():
		use = fmt.Sprintf("inklist %s <subcommand> [options]", cmd.Name())
	case !strings.HasPrefix(use, "inklist"):
		use = "inklist " + use
	}
	w.CodeBlock("bash", use)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, 0, len(cmd.Aliases))
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.BulletList(aliases)
	}

	if cmd.HasSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if sub.Hidden {
				continue
			}
			rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		w.Table(flagHeaders, flagRows(cmd.LocalFlags()))
	}

	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		w.Table(flagHeaders, flagRows(cmd.InheritedFlags()))
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	return os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), w.Bytes(), 0600)
}

// visibleCommands filters out hidden commands and Cobra's built-ins.
func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// flagRows converts a flag set into table rows, skipping hidden flags.
// String defaults are shown as inline code so empty ones stay visibly empty.
func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		def := f.DefValue
		if f.Value.Type() == "string" && def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)})
	})
	return rows
}

// dedent strips the common leading whitespace shared by all non-blank
// lines, so indented Example blocks render flush left.
func dedent(text string) string {
	lines := strings.Split(text, "\n")

	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common == -1 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return strings.TrimSpace(text)
	}

	for i, line := range lines {
		if len(line) >= common {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
