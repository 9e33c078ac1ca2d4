package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkstone-labs/inklist/internal/buffer"
	"github.com/inkstone-labs/inklist/internal/cli/output"
	"github.com/inkstone-labs/inklist/pkg/edit"
)

// TransformOptions holds options for the transform command.
type TransformOptions struct {
	Gesture string // Gesture name
	Line    int    // Target line (1-based)
	Apply   bool   // Apply the directive and print the document
	Format  string // Output format: text, markdown, json
}

// NewTransformCommand creates the transform command.
func NewTransformCommand() *cobra.Command {
	opts := &TransformOptions{}
	cmd := &cobra.Command{
		Use:   "transform [file]",
		Short: "Apply an editing gesture to a document line",
		Long: `Run one editing gesture against a line and report the result.

By default the command prints the edit directive: the ordered buffer
edits, the cursor placement, and whether the host should fall through
to its default behavior. With --apply the directive is executed and the
transformed document is printed instead.

The cursor is assumed to sit at the end of the target line.
Reads from stdin when no file is given or the file is "-".`,
		Example: `  # Show the directive for pressing Enter on line 2
  inklist transform notes.md --gesture confirm --line 2

  # Apply an indent and print the new document
  inklist transform notes.md --gesture indent --line 3 --apply

  # Pipe a document through a gesture
  cat notes.md | inklist transform --gesture open-below --line 1 --apply`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runTransform(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Gesture, "gesture", "g", "", "Gesture to apply (confirm|open-below|open-above|indent|outdent)")
	cmd.Flags().IntVarP(&opts.Line, "line", "l", 0, "Target line (1-based)")
	cmd.Flags().BoolVar(&opts.Apply, "apply", false, "Apply the directive and print the document")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	_ = cmd.MarkFlagRequired("gesture")
	_ = cmd.MarkFlagRequired("line")

	_ = cmd.RegisterFlagCompletionFunc("gesture", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return edit.GestureNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// TransformOutput is the JSON output for the transform command.
type TransformOutput struct {
	Source    string         `json:"source"`
	Gesture   string         `json:"gesture"`
	Line      int            `json:"line"`
	Directive edit.Directive `json:"directive"`
	Result    *ApplyResult   `json:"result,omitempty"`
}

// ApplyResult is the document state after applying a directive.
type ApplyResult struct {
	Text   string      `json:"text"`
	Cursor edit.Cursor `json:"cursor"`
}

func runTransform(cmd *cobra.Command, path string, opts *TransformOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	g, ok := edit.ParseGesture(opts.Gesture)
	if !ok {
		return fmt.Errorf("unknown gesture %q (expected one of: %s)", opts.Gesture, strings.Join(edit.GestureNames(), ", "))
	}

	lines, source, err := readDocument(cmd, path)
	if err != nil {
		return err
	}

	buf := buffer.New(lines...)
	if opts.Line < 1 || opts.Line > buf.Len() {
		return fmt.Errorf("line %d out of range (document has %d lines)", opts.Line, buf.Len())
	}

	eng := edit.NewEngine(cmdCtx.List, edit.NewSiblingScanner(cmdCtx.List, buf))
	line, _ := buf.Line(opts.Line)
	d := eng.Apply(g, line, opts.Line, cmdCtx.Cfg.IndentUnit())

	out := &TransformOutput{
		Source:    source,
		Gesture:   g.String(),
		Line:      opts.Line,
		Directive: d,
	}

	if opts.Apply {
		cur := buf.Apply(d, edit.Cursor{Line: opts.Line, Column: len(line)})
		if d.Passthrough && g == edit.Confirm {
			// The host default for confirm: split the line at the cursor.
			cur = buf.SplitAt(cur.Line, cur.Column)
		}
		out.Result = &ApplyResult{Text: buf.Text(), Cursor: cur}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		renderTransformMarkdown(r, out)
	default:
		renderTransformText(r, out)
	}
	return nil
}

func renderTransformText(r *output.Renderer, out *TransformOutput) {
	styles := r.Styles()

	r.Println(styles.Header1.Render(fmt.Sprintf("%s at line %d", out.Gesture, out.Line)))
	r.Println("")

	d := out.Directive
	if d.Passthrough {
		r.Println(styles.Bold.Render("passthrough") + "  host default behavior still runs")
	}
	if len(d.Edits) == 0 {
		r.Println(styles.Muted.Render("no edits"))
	}
	for i, e := range d.Edits {
		r.Printf("%d. %s line %d: %q\n", i+1, e.Op, e.Line, e.Text)
	}
	if d.Cursor != nil {
		r.Printf("cursor: line %d, column %d\n", d.Cursor.Line, d.Cursor.Column)
	}
	if d.ColumnShift != 0 {
		r.Printf("column shift: %+d\n", d.ColumnShift)
	}
	if d.EnterInsert {
		r.Println("enter insert mode")
	}

	if out.Result != nil {
		r.Println("")
		r.Println(styles.Header2.Render("Result"))
		for i, line := range strings.Split(out.Result.Text, "\n") {
			marker := "  "
			if i+1 == out.Result.Cursor.Line {
				marker = styles.Success.Render("> ")
			}
			r.Printf("%s%s\n", marker, line)
		}
	}
}

func renderTransformMarkdown(r *output.Renderer, out *TransformOutput) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("%s at line %d", out.Gesture, out.Line)))
	r.Println("")

	d := out.Directive
	r.Println(output.FormatKeyValue("Passthrough", fmt.Sprintf("%t", d.Passthrough)))
	r.Println(output.FormatKeyValue("Edits", fmt.Sprintf("%d", len(d.Edits))))
	for _, e := range d.Edits {
		r.Printf("  - %s line %d: `%s`\n", e.Op, e.Line, e.Text)
	}
	if d.Cursor != nil {
		r.Println(output.FormatKeyValue("Cursor", fmt.Sprintf("line %d, column %d", d.Cursor.Line, d.Cursor.Column)))
	}
	if d.ColumnShift != 0 {
		r.Println(output.FormatKeyValue("Column shift", fmt.Sprintf("%+d", d.ColumnShift)))
	}
	r.Println(output.FormatKeyValue("Enter insert", fmt.Sprintf("%t", d.EnterInsert)))

	if out.Result != nil {
		r.Println("")
		r.Println(output.FormatHeader(2, "Result"))
		r.Println("")
		r.Println("```")
		r.Println(out.Result.Text)
		r.Println("```")
	}
}
