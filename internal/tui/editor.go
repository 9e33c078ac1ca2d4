// Package tui implements the interactive demo editor behind "inklist edit".
// It is a small modal line editor wired straight into the gesture engine, so
// Enter, Tab and Shift-Tab behave the way the engine drives them in a real
// editor host, and everything else falls back to plain editing.
package tui

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkstone-labs/inklist/internal/buffer"
	"github.com/inkstone-labs/inklist/pkg/edit"
	"github.com/inkstone-labs/inklist/pkg/list"
)

// Mode is the editor input mode.
type Mode int

// Input modes.
const (
	ModeNormal Mode = iota
	ModeInsert
)

func (m Mode) String() string {
	if m == ModeInsert {
		return "INSERT"
	}
	return "NORMAL"
}

// Options configures a new editor session.
type Options struct {
	// Path is the file to edit. Empty opens a scratch buffer; a missing
	// file opens empty and is created on save.
	Path string
	// Config selects the marker set. Nil falls back to the defaults.
	Config *list.Config
	// IndentUnit is the indentation step. Empty falls back to two spaces.
	IndentUnit string
}

// Model is the bubbletea model for the editor.
type Model struct {
	buf    *buffer.Buffer
	engine *edit.Engine
	unit   string

	path   string
	cursor edit.Cursor
	mode   Mode
	dirty  bool

	keys   KeyMap
	help   help.Model
	styles Styles

	width  int
	height int

	status      string
	quitPending bool
}

// New builds an editor model, loading the file at opts.Path when it exists.
func New(opts Options) (Model, error) {
	buf := buffer.New()
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		switch {
		case err == nil:
			buf = buffer.FromText(strings.TrimSuffix(string(data), "\n"))
		case !os.IsNotExist(err):
			return Model{}, fmt.Errorf("failed to open %s: %w", opts.Path, err)
		}
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = list.Default()
	}
	unit := opts.IndentUnit
	if unit == "" {
		unit = edit.DefaultIndentUnit
	}

	return Model{
		buf:    buf,
		engine: edit.NewEngine(cfg, edit.NewSiblingScanner(cfg, buf)),
		unit:   unit,
		path:   opts.Path,
		cursor: edit.Cursor{Line: 1, Column: 0},
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: DefaultStyles(),
	}, nil
}

// Run opens the editor in the alternate screen and blocks until the user
// quits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		pending := m.quitPending
		m.quitPending = false
		m.status = ""
		if m.mode == ModeInsert {
			return m.updateInsert(msg)
		}
		return m.updateNormal(msg, pending)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg, quitPending bool) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty && !quitPending {
			m.quitPending = true
			m.status = m.styles.Warn.Render("unsaved changes: ctrl+s to save, q again to discard")
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		m.save()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveVertical(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveVertical(1)
	case key.Matches(msg, m.keys.Left):
		m.moveLeft()
	case key.Matches(msg, m.keys.Right):
		m.moveRight()
	case key.Matches(msg, m.keys.LineStart):
		m.cursor.Column = 0
	case key.Matches(msg, m.keys.LineEnd):
		m.cursor.Column = len(m.currentLine())

	case key.Matches(msg, m.keys.Insert):
		m.mode = ModeInsert
	case key.Matches(msg, m.keys.Append):
		m.moveRight()
		m.mode = ModeInsert

	case key.Matches(msg, m.keys.Confirm):
		m.runGesture(edit.Confirm)
	case key.Matches(msg, m.keys.OpenBelow):
		m.runGesture(edit.OpenBelow)
	case key.Matches(msg, m.keys.OpenAbove):
		m.runGesture(edit.OpenAbove)
	case key.Matches(msg, m.keys.Indent):
		m.runGesture(edit.Indent)
	case key.Matches(msg, m.keys.Outdent):
		m.runGesture(edit.Outdent)

	case key.Matches(msg, m.keys.DeleteChar):
		m.deleteChar()
	case key.Matches(msg, m.keys.DeleteLine):
		m.deleteLine()
	}

	m.clampCursor()
	return m, nil
}

func (m Model) updateInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal

	case tea.KeyEnter:
		m.runGesture(edit.Confirm)
	case tea.KeyTab:
		m.runGesture(edit.Indent)
	case tea.KeyShiftTab:
		m.runGesture(edit.Outdent)

	case tea.KeyBackspace:
		m.backspace()
	case tea.KeyCtrlS:
		m.save()

	case tea.KeyUp:
		m.moveVertical(-1)
	case tea.KeyDown:
		m.moveVertical(1)
	case tea.KeyLeft:
		m.moveLeft()
	case tea.KeyRight:
		m.moveRight()
	case tea.KeyHome:
		m.cursor.Column = 0
	case tea.KeyEnd:
		m.cursor.Column = len(m.currentLine())

	case tea.KeySpace:
		m.insertText(" ")
	case tea.KeyRunes:
		m.insertText(string(msg.Runes))
	}

	m.clampCursor()
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	helpView := m.help.View(m.keys)
	rows := m.height - 1 - lipgloss.Height(helpView)
	if rows < 1 {
		rows = 1
	}
	// Follow the cursor: scroll just far enough to keep it in the window.
	top := 1
	if m.cursor.Line > rows {
		top = m.cursor.Line - rows + 1
	}

	gutter := len(fmt.Sprintf("%d", m.buf.Len()))
	var b strings.Builder
	for row := 0; row < rows; row++ {
		n := top + row
		if n > m.buf.Len() {
			b.WriteString(m.styles.LineNumber.Render("~"))
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.renderLine(n, gutter))
		b.WriteString("\n")
	}
	b.WriteString(m.statusBar())
	b.WriteString("\n")
	b.WriteString(helpView)
	return b.String()
}

func (m Model) renderLine(n, gutter int) string {
	num := fmt.Sprintf("%*d", gutter, n)
	numStyle := m.styles.LineNumber
	text, _ := m.buf.Line(n)
	if n == m.cursor.Line {
		numStyle = m.styles.CurrentLine
		text = m.renderCursor(text)
	}
	return " " + numStyle.Render(num) + " " + text
}

// renderCursor paints the cursor cell with a reverse-video style. A cursor
// past the end of the line gets a painted space.
func (m Model) renderCursor(text string) string {
	col := m.cursor.Column
	if col > len(text) {
		col = len(text)
	}
	if col == len(text) {
		return text + m.styles.Cursor.Render(" ")
	}
	_, size := utf8.DecodeRuneInString(text[col:])
	return text[:col] + m.styles.Cursor.Render(text[col:col+size]) + text[col+size:]
}

func (m Model) statusBar() string {
	mode := m.styles.ModeNormal.Render(m.mode.String())
	if m.mode == ModeInsert {
		mode = m.styles.ModeInsert.Render(m.mode.String())
	}

	name := m.path
	if name == "" {
		name = "[scratch]"
	}
	if m.dirty {
		name += " [+]"
	}

	line := m.currentLine()
	col := m.cursor.Column
	if col > len(line) {
		col = len(line)
	}
	pos := fmt.Sprintf("%d:%d", m.cursor.Line, utf8.RuneCountInString(line[:col])+1)

	out := mode + " " + m.styles.StatusBar.Render(name) + "  " + m.styles.StatusDetail.Render(pos)
	if m.status != "" {
		out += "  " + m.status
	}
	return out
}

// runGesture feeds the current line through the engine and applies the
// resulting directive. A passthrough directive falls back to this editor's
// own default for the gesture, which depends on the input mode.
func (m *Model) runGesture(g edit.Gesture) {
	line, ok := m.buf.Line(m.cursor.Line)
	if !ok {
		return
	}
	d := m.engine.Apply(g, line, m.cursor.Line, m.unit)
	if len(d.Edits) > 0 {
		m.dirty = true
	}
	m.cursor = m.buf.Apply(d, m.cursor)
	if d.Passthrough {
		m.passthrough(g)
		return
	}
	if d.EnterInsert {
		m.mode = ModeInsert
	}
}

// passthrough is the editor's native behavior for a gesture the engine
// declined to handle.
func (m *Model) passthrough(g edit.Gesture) {
	switch g {
	case edit.Confirm:
		if m.mode == ModeInsert {
			m.cursor = m.buf.SplitAt(m.cursor.Line, m.cursor.Column)
			m.dirty = true
			return
		}
		if m.cursor.Line < m.buf.Len() {
			m.cursor = edit.Cursor{Line: m.cursor.Line + 1, Column: 0}
		}
	case edit.Indent:
		if m.mode == ModeInsert {
			m.insertText(m.unit)
		}
	case edit.OpenBelow:
		if m.mode == ModeNormal {
			m.buf.InsertAfter(m.cursor.Line, "")
			m.cursor = edit.Cursor{Line: m.cursor.Line + 1, Column: 0}
			m.mode = ModeInsert
			m.dirty = true
		}
	case edit.OpenAbove:
		if m.mode == ModeNormal {
			m.buf.InsertBefore(m.cursor.Line, "")
			m.cursor = edit.Cursor{Line: m.cursor.Line, Column: 0}
			m.mode = ModeInsert
			m.dirty = true
		}
	}
}

func (m *Model) insertText(s string) {
	line := m.currentLine()
	col := m.cursor.Column
	if col > len(line) {
		col = len(line)
	}
	m.buf.SetLine(m.cursor.Line, line[:col]+s+line[col:])
	m.cursor.Column = col + len(s)
	m.dirty = true
}

// backspace deletes the rune before the cursor, joining with the previous
// line at column zero.
func (m *Model) backspace() {
	line := m.currentLine()
	if m.cursor.Column > 0 {
		_, size := utf8.DecodeLastRuneInString(line[:m.cursor.Column])
		col := m.cursor.Column - size
		m.buf.SetLine(m.cursor.Line, line[:col]+line[m.cursor.Column:])
		m.cursor.Column = col
		m.dirty = true
		return
	}
	if m.cursor.Line > 1 {
		prev, _ := m.buf.Line(m.cursor.Line - 1)
		m.buf.SetLine(m.cursor.Line-1, prev+line)
		m.buf.Remove(m.cursor.Line)
		m.cursor = edit.Cursor{Line: m.cursor.Line - 1, Column: len(prev)}
		m.dirty = true
	}
}

func (m *Model) deleteChar() {
	line := m.currentLine()
	if m.cursor.Column >= len(line) {
		return
	}
	_, size := utf8.DecodeRuneInString(line[m.cursor.Column:])
	m.buf.SetLine(m.cursor.Line, line[:m.cursor.Column]+line[m.cursor.Column+size:])
	m.dirty = true
}

func (m *Model) deleteLine() {
	m.buf.Remove(m.cursor.Line)
	m.cursor.Column = 0
	m.dirty = true
}

func (m *Model) save() {
	if m.path == "" {
		m.status = m.styles.Warn.Render("no file name: start the editor with a path to save")
		return
	}
	if err := os.WriteFile(m.path, []byte(m.buf.Text()+"\n"), 0644); err != nil {
		m.status = m.styles.Warn.Render("write failed: " + err.Error())
		return
	}
	m.dirty = false
	m.status = m.styles.Message.Render(fmt.Sprintf("wrote %s (%d lines)", m.path, m.buf.Len()))
}

func (m *Model) moveVertical(delta int) {
	m.cursor.Line += delta
}

func (m *Model) moveLeft() {
	line := m.currentLine()
	if m.cursor.Column > 0 && m.cursor.Column <= len(line) {
		_, size := utf8.DecodeLastRuneInString(line[:m.cursor.Column])
		m.cursor.Column -= size
	}
}

func (m *Model) moveRight() {
	line := m.currentLine()
	if m.cursor.Column < len(line) {
		_, size := utf8.DecodeRuneInString(line[m.cursor.Column:])
		m.cursor.Column += size
	}
}

func (m *Model) currentLine() string {
	line, _ := m.buf.Line(m.cursor.Line)
	return line
}

// clampCursor keeps the cursor on a valid line and on a rune boundary.
func (m *Model) clampCursor() {
	if m.cursor.Line < 1 {
		m.cursor.Line = 1
	}
	if m.cursor.Line > m.buf.Len() {
		m.cursor.Line = m.buf.Len()
	}
	line := m.currentLine()
	if m.cursor.Column < 0 {
		m.cursor.Column = 0
	}
	if m.cursor.Column > len(line) {
		m.cursor.Column = len(line)
	}
	m.cursor.Column = snapColumn(line, m.cursor.Column)
}

// snapColumn rounds a byte column down to the nearest rune boundary.
func snapColumn(line string, col int) int {
	at := 0
	for at < col {
		_, size := utf8.DecodeRuneInString(line[at:])
		if size == 0 || at+size > col {
			break
		}
		at += size
	}
	return at
}
