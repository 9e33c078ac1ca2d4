package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/inkstone-labs/inklist/internal/buffer"
	"github.com/inkstone-labs/inklist/pkg/edit"
	"github.com/inkstone-labs/inklist/pkg/list"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl [file]",
		Short: "Interactive playground for the list engine",
		Long: `Start an interactive session against an in-memory document.

Typed lines append to the document. Dot-commands inspect it, apply
gestures, and load or save files. Gesture results show the full
document with the cursor position marked.`,
		Example: `  # Start with an empty document
  inklist repl

  # Start with a file loaded
  inklist repl notes.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runREPL(cmd, path)
		},
	}

	return cmd
}

// replSession holds the REPL's mutable state.
type replSession struct {
	buf  *buffer.Buffer
	cfg  *list.Config
	unit string
}

func runREPL(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	session := &replSession{
		buf:  buffer.New(),
		cfg:  cmdCtx.List,
		unit: cmdCtx.Cfg.IndentUnit(),
	}

	if path != "" {
		if err := session.load(path); err != nil {
			return err
		}
	}

	// Setup history file (project-local)
	if err := cmdCtx.Cfg.EnsureHistoryDir(); err != nil {
		cmdCtx.Logger.Warn("history disabled", "error", err)
	}

	// Configure readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "inklist> ",
		HistoryFile:     cmdCtx.Cfg.HistoryFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Print welcome message
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "inklist REPL (markers: %s)\n", strings.Join(session.cfg.Markers(), " "))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type lines to build a document, .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	// REPL loop
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Handle dot-commands
		if strings.HasPrefix(trimmed, ".") {
			if quit := handleREPLCommand(cmd, session, trimmed); quit {
				break
			}
			continue
		}

		// Everything else appends to the document, preserving the typed
		// indentation.
		session.append(strings.TrimRight(line, " \t"))
		session.echoKind(cmd.OutOrStdout(), line)
	}

	return nil
}

// append adds a line at the end of the document. A fresh buffer holds a
// single empty line, which the first append replaces.
func (s *replSession) append(line string) {
	if s.buf.Len() == 1 {
		if only, _ := s.buf.Line(1); only == "" {
			s.buf.SetLine(1, line)
			return
		}
	}
	s.buf.InsertAfter(s.buf.Len(), line)
}

// echoKind prints the classification of a just-typed line.
func (s *replSession) echoKind(w io.Writer, line string) {
	it := s.cfg.Classify(line)
	if it == nil {
		_, _ = fmt.Fprintf(w, "  [%d] text\n", s.buf.Len())
		return
	}
	_, _ = fmt.Fprintf(w, "  [%d] %s depth %d\n", s.buf.Len(), it.Kind, list.Depth(it.Indent, s.unit))
}

func (s *replSession) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	s.buf = buffer.FromText(strings.TrimSuffix(string(data), "\n"))
	return nil
}

func (s *replSession) save(path string) error {
	return os.WriteFile(path, []byte(s.buf.Text()+"\n"), 0600)
}

func handleREPLCommand(cmd *cobra.Command, s *replSession, line string) (quit bool) {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(out)

	case ".show", ".buffer":
		printDocument(out, s.buf, 0)

	case ".classify":
		for n := 1; n <= s.buf.Len(); n++ {
			text, _ := s.buf.Line(n)
			it := s.cfg.Classify(text)
			if it == nil {
				_, _ = fmt.Fprintf(out, "%3d  %-15s %s\n", n, "text", text)
				continue
			}
			_, _ = fmt.Fprintf(out, "%3d  %-15s depth=%d %s\n", n, it.Kind, list.Depth(it.Indent, s.unit), text)
		}

	case ".gesture", ".g":
		if len(parts) < 3 {
			_, _ = fmt.Fprintln(errOut, "Usage: .gesture <confirm|open-below|open-above|indent|outdent> <line>")
			return false
		}
		g, ok := edit.ParseGesture(parts[1])
		if !ok {
			_, _ = fmt.Fprintf(errOut, "Unknown gesture: %s\n", parts[1])
			return false
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 || n > s.buf.Len() {
			_, _ = fmt.Fprintf(errOut, "Bad line number: %s (document has %d lines)\n", parts[2], s.buf.Len())
			return false
		}

		eng := edit.NewEngine(s.cfg, edit.NewSiblingScanner(s.cfg, s.buf))
		text, _ := s.buf.Line(n)
		d := eng.Apply(g, text, n, s.unit)
		cur := s.buf.Apply(d, edit.Cursor{Line: n, Column: len(text)})
		if d.Passthrough && g == edit.Confirm {
			cur = s.buf.SplitAt(cur.Line, cur.Column)
		}
		printDocument(out, s.buf, cur.Line)
		if d.EnterInsert {
			_, _ = fmt.Fprintln(out, "  (insert mode)")
		}

	case ".load":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .load <file>")
			return false
		}
		if err := s.load(parts[1]); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(out, "Loaded %s (%d lines)\n", parts[1], s.buf.Len())

	case ".save":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .save <file>")
			return false
		}
		if err := s.save(parts[1]); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(out, "Saved %s\n", parts[1])

	case ".indent":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(out, "Indent unit: %q\n", s.unit)
			return false
		}
		switch arg := parts[1]; arg {
		case "tab":
			s.unit = "\t"
		default:
			width, err := strconv.Atoi(arg)
			if err != nil || width < 1 {
				_, _ = fmt.Fprintln(errOut, "Usage: .indent [tab|<width>]")
				return false
			}
			s.unit = strings.Repeat(" ", width)
		}
		_, _ = fmt.Fprintf(out, "Indent unit set to %q\n", s.unit)

	case ".config":
		_, _ = fmt.Fprintf(out, "Markers:      %s\n", strings.Join(s.cfg.Markers(), " "))
		_, _ = fmt.Fprintf(out, "Colon marker: %s\n", s.cfg.ColonMarker())
		_, _ = fmt.Fprintf(out, "Indent unit:  %q\n", s.unit)

	case ".reset":
		s.buf = buffer.New()
		_, _ = fmt.Fprintln(out, "Document cleared")

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", command)
	}

	return false
}

// printDocument writes the buffer with line numbers; cursorLine (if > 0)
// is marked.
func printDocument(w io.Writer, buf *buffer.Buffer, cursorLine int) {
	for n := 1; n <= buf.Len(); n++ {
		text, _ := buf.Line(n)
		marker := " "
		if n == cursorLine {
			marker = ">"
		}
		_, _ = fmt.Fprintf(w, "%s%3d  %s\n", marker, n, text)
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help                     Show this help message
  .show / .buffer           Print the document with line numbers
  .classify                 Classify every line
  .gesture <name> <line>    Apply a gesture (.g for short)
  .indent [tab|<width>]     Show or set the indent unit
  .config                   Show the effective marker configuration
  .load <file>              Replace the document with a file
  .save <file>              Write the document to a file
  .reset                    Clear the document
  .clear                    Clear the screen
  .quit / .exit             Exit the REPL

Tips:
  - Typed lines append to the document, indentation included
  - Gestures: confirm, open-below, open-above, indent, outdent
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter creates a readline completer for dot-commands.
func newREPLCompleter() *readline.PrefixCompleter {
	gestures := make([]readline.PrefixCompleterInterface, 0, len(edit.GestureNames()))
	for _, name := range edit.GestureNames() {
		gestures = append(gestures, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".show"),
		readline.PcItem(".buffer"),
		readline.PcItem(".classify"),
		readline.PcItem(".gesture", gestures...),
		readline.PcItem(".g", gestures...),
		readline.PcItem(".indent", readline.PcItem("tab")),
		readline.PcItem(".config"),
		readline.PcItem(".load"),
		readline.PcItem(".save"),
		readline.PcItem(".reset"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
