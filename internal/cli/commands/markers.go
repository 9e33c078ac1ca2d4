package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/inkstone-labs/inklist/internal/cli/output"
)

// MarkersOptions holds options for the markers command.
type MarkersOptions struct {
	Depths int    // Number of depth levels to show
	Format string // Output format: text, markdown, json
}

// NewMarkersCommand creates the markers command.
func NewMarkersCommand() *cobra.Command {
	opts := &MarkersOptions{}
	cmd := &cobra.Command{
		Use:   "markers",
		Short: "Show the active marker configuration",
		Long: `Display the configured list markers and how they map to depth.

The marker list is both the match priority and the depth lookup: the
first marker belongs to top-level items, the second to their children,
and so on. Depths beyond the list reuse the last marker. Children of
colon-terminated lines use the colon marker.`,
		Example: `  # Show markers for the current project
  inklist markers

  # Show more depth levels
  inklist markers --depths 8

  # Output as JSON
  inklist markers --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMarkers(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Depths, "depths", 6, "Number of depth levels to show")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// DepthMarker is one row of the depth-to-marker mapping.
type DepthMarker struct {
	Depth   int    `json:"depth"`
	Marker  string `json:"marker"`
	Example string `json:"example"`
}

// MarkersOutput is the JSON output for the markers command.
type MarkersOutput struct {
	Markers     []string      `json:"markers"`
	ColonMarker string        `json:"colon_marker"`
	IndentUnit  string        `json:"indent_unit"`
	Depths      []DepthMarker `json:"depths"`
}

func runMarkers(cmd *cobra.Command, opts *MarkersOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if opts.Depths < 1 {
		opts.Depths = 1
	}

	unit := cmdCtx.Cfg.IndentUnit()
	out := &MarkersOutput{
		Markers:     cmdCtx.List.Markers(),
		ColonMarker: cmdCtx.List.ColonMarker(),
		IndentUnit:  unit,
		Depths:      make([]DepthMarker, 0, opts.Depths),
	}
	for depth := 0; depth < opts.Depths; depth++ {
		marker := cmdCtx.List.MarkerForDepth(depth)
		out.Depths = append(out.Depths, DepthMarker{
			Depth:   depth,
			Marker:  marker,
			Example: strings.Repeat(unit, depth) + marker + " item",
		})
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		renderMarkersMarkdown(r, out)
	default:
		renderMarkersTable(cmd.OutOrStdout(), r, out)
	}
	return nil
}

func renderMarkersTable(w io.Writer, r *output.Renderer, out *MarkersOutput) {
	styles := r.Styles()

	r.Println(styles.Header1.Render("Marker Configuration"))
	r.Println("")
	r.Printf("%s %s\n", styles.Bold.Render("Markers:"), strings.Join(out.Markers, " "))
	r.Printf("%s %s\n", styles.Bold.Render("Colon marker:"), out.ColonMarker)
	r.Printf("%s %q\n", styles.Bold.Render("Indent unit:"), out.IndentUnit)
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Depth", "Marker", "Example"})
	for _, d := range out.Depths {
		t.AppendRow(table.Row{d.Depth, d.Marker, d.Example})
	}
	t.Render()
}

func renderMarkersMarkdown(r *output.Renderer, out *MarkersOutput) {
	r.Println(output.FormatHeader(1, "Marker Configuration"))
	r.Println("")
	r.Println(output.FormatKeyValue("Markers", strings.Join(out.Markers, " ")))
	r.Println(output.FormatKeyValue("Colon marker", out.ColonMarker))
	r.Println(output.FormatKeyValue("Indent unit", fmt.Sprintf("%q", out.IndentUnit)))
	r.Println("")
	r.Println("| Depth | Marker | Example |")
	r.Println("| --- | --- | --- |")
	for _, d := range out.Depths {
		r.Printf("| %d | %s | `%s` |\n", d.Depth, escapePipes(d.Marker), escapePipes(d.Example))
	}
}
