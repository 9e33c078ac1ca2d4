package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Renderer writes command output in the configured mode.
// Normal output goes to out, notices and errors to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	mode   OutputMode
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Tests use this to pin down the effective mode.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	var lip *lipgloss.Renderer
	if isTTY {
		lip = lipgloss.NewRenderer(out, termenv.WithTTY(true), termenv.WithColorCache(true))
	} else {
		// Styles become no-ops so piped output carries no escape codes.
		lip = lipgloss.NewRenderer(out, termenv.WithProfile(termenv.Ascii))
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		isTTY:  isTTY,
		mode:   mode,
		styles: newStyles(lip),
	}
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Styles returns the style set bound to the output terminal.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// JSON writes v as indented JSON to standard output.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Header writes a section header at the given level. Text mode uses the
// terminal styles, every other mode falls back to markdown headers.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() != ModeText {
		_, _ = fmt.Fprintln(r.out, FormatHeader(level, text))
		return
	}
	style := r.styles.Header1
	if level > 1 {
		style = r.styles.Header2
	}
	_, _ = fmt.Fprintln(r.out, style.Render(text))
}

// StatusLine writes a per-item status line: a status icon followed by the
// name and an optional muted detail.
func (r *Renderer) StatusLine(name, status, detail string) {
	icon := r.styles.StatusSuccess.String()
	switch status {
	case "warn":
		icon = r.styles.Warning.Render("!")
	case "error", "fail":
		icon = r.styles.StatusFailed.String()
	}
	line := "  " + icon + " " + name
	if detail != "" {
		line += " " + r.styles.Muted.Render("("+detail+")")
	}
	_, _ = fmt.Fprintln(r.out, line)
}

// Success writes a success notice to standard output.
func (r *Renderer) Success(msg string) {
	_, _ = fmt.Fprintln(r.out, r.styles.StatusSuccess.String()+" "+msg)
}

// Info writes an informational notice to standard output.
func (r *Renderer) Info(msg string) {
	_, _ = fmt.Fprintln(r.out, r.styles.Info.Render(msg))
}

// Muted writes de-emphasized text to standard output.
func (r *Renderer) Muted(msg string) {
	_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render(msg))
}

// Warning writes a warning notice to the error stream.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: ")+msg)
}

// Error writes an error notice to the error stream.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("error: ")+msg)
}
