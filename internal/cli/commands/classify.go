package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/inkstone-labs/inklist/internal/cli/output"
	"github.com/inkstone-labs/inklist/pkg/list"
)

// ClassifyOptions holds options for the classify command.
type ClassifyOptions struct {
	Format string // Output format: text, markdown, json
	Line   int    // Classify a single line (1-based), 0 for all
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand() *cobra.Command {
	opts := &ClassifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Classify the list structure of a document",
		Long: `Classify every line of a document against the marker grammar.

Each line is reported with its item kind, nesting depth, marker, and
content. Lines that match no grammar rule are reported as plain text.
Reads from stdin when no file is given or the file is "-".

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Classify a document
  inklist classify notes.md

  # Classify from stdin
  cat notes.md | inklist classify

  # Classify a single line
  inklist classify notes.md --line 3

  # Output as JSON
  inklist classify notes.md --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runClassify(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().IntVar(&opts.Line, "line", 0, "Classify only this line (1-based)")

	return cmd
}

// LineClass is the classification of one document line.
type LineClass struct {
	Line  int        `json:"line"`
	Text  string     `json:"text"`
	Depth int        `json:"depth"`
	Item  *list.Item `json:"item"`
}

// ClassifyOutput is the JSON output for the classify command.
type ClassifyOutput struct {
	Source string         `json:"source"`
	Lines  []LineClass    `json:"lines"`
	Counts map[string]int `json:"counts"`
}

func runClassify(cmd *cobra.Command, path string, opts *ClassifyOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	lines, source, err := readDocument(cmd, path)
	if err != nil {
		return err
	}

	if opts.Line != 0 {
		if opts.Line < 1 || opts.Line > len(lines) {
			return fmt.Errorf("line %d out of range (document has %d lines)", opts.Line, len(lines))
		}
		lines = lines[opts.Line-1 : opts.Line]
	}

	out := classifyLines(cmdCtx, lines, source, opts.Line)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		renderClassifyMarkdown(r, out)
	default:
		renderClassifyTable(cmd.OutOrStdout(), r, out)
	}
	return nil
}

// classifyLines classifies each line. firstLine shifts the reported line
// numbers when a single line was selected.
func classifyLines(cmdCtx *CommandContext, lines []string, source string, firstLine int) *ClassifyOutput {
	unit := cmdCtx.Cfg.IndentUnit()
	start := 1
	if firstLine != 0 {
		start = firstLine
	}

	out := &ClassifyOutput{
		Source: source,
		Lines:  make([]LineClass, 0, len(lines)),
		Counts: make(map[string]int),
	}
	for i, text := range lines {
		it := cmdCtx.List.Classify(text)
		lc := LineClass{Line: start + i, Text: text, Item: it}
		if it != nil {
			lc.Depth = list.Depth(it.Indent, unit)
			out.Counts[it.Kind.String()]++
		} else {
			out.Counts["none"]++
		}
		out.Lines = append(out.Lines, lc)
	}
	return out
}

func renderClassifyTable(w io.Writer, r *output.Renderer, out *ClassifyOutput) {
	styles := r.Styles()

	r.Println(styles.Header1.Render("Classification: " + out.Source))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Line", "Kind", "Depth", "Marker", "Content"})

	for _, lc := range out.Lines {
		if lc.Item == nil {
			t.AppendRow(table.Row{lc.Line, "-", "", "", truncateText(lc.Text, 50)})
			continue
		}
		t.AppendRow(table.Row{
			lc.Line,
			lc.Item.Kind.String(),
			lc.Depth,
			markerColumn(lc.Item),
			truncateText(lc.Item.Content, 50),
		})
	}
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render(summaryLine(out)))
}

func renderClassifyMarkdown(r *output.Renderer, out *ClassifyOutput) {
	r.Println(output.FormatHeader(1, "Classification: "+out.Source))
	r.Println("")
	r.Println("| Line | Kind | Depth | Marker | Content |")
	r.Println("| --- | --- | --- | --- | --- |")
	for _, lc := range out.Lines {
		if lc.Item == nil {
			r.Printf("| %d | - | | | %s |\n", lc.Line, escapePipes(truncateText(lc.Text, 50)))
			continue
		}
		r.Printf("| %d | %s | %d | %s | %s |\n",
			lc.Line, lc.Item.Kind, lc.Depth,
			escapePipes(markerColumn(lc.Item)),
			escapePipes(truncateText(lc.Item.Content, 50)))
	}
	r.Println("")
	r.Println(summaryLine(out))
}

// markerColumn renders the marker cell: the literal marker for unordered
// kinds, the number and separator for ordered ones.
func markerColumn(it *list.Item) string {
	if it.Kind.IsOrdered() {
		return fmt.Sprintf("%d%s", it.Number, it.Separator)
	}
	return it.Marker
}

func summaryLine(out *ClassifyOutput) string {
	items := len(out.Lines) - out.Counts["none"]
	return fmt.Sprintf("%d lines, %d list items", len(out.Lines), items)
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// readDocument loads the lines of path, or stdin for "" and "-".
// The final newline does not produce a trailing empty line.
func readDocument(cmd *cobra.Command, path string) ([]string, string, error) {
	var data []byte
	var err error
	source := path

	if path == "" || path == "-" {
		source = "stdin"
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read document: %w", err)
	}

	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return []string{}, source, nil
	}
	return strings.Split(text, "\n"), source, nil
}
