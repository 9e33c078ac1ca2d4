// Package buffer is an in-memory line buffer that applies edit
// directives. It is the reference host adapter: the REPL, the demo
// editor, and the gesture server all mutate their text through it.
package buffer

import (
	"strings"

	"github.com/inkstone-labs/inklist/pkg/edit"
)

// Buffer holds document lines. Line numbers are 1-based throughout; an
// empty buffer still has one empty line, matching how editors model an
// empty file.
type Buffer struct {
	lines []string
}

// New creates a buffer from individual lines.
func New(lines ...string) *Buffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	owned := make([]string, len(lines))
	copy(owned, lines)
	return &Buffer{lines: owned}
}

// FromText creates a buffer by splitting text on newlines.
func FromText(text string) *Buffer {
	return &Buffer{lines: strings.Split(text, "\n")}
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Line returns the 1-based line n. Implements edit.LineSource.
func (b *Buffer) Line(n int) (string, bool) {
	if n < 1 || n > len(b.lines) {
		return "", false
	}
	return b.lines[n-1], true
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text returns the buffer joined with newlines.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// SetLine replaces line n. Out-of-range lines are ignored.
func (b *Buffer) SetLine(n int, text string) {
	if n < 1 || n > len(b.lines) {
		return
	}
	b.lines[n-1] = text
}

// InsertAfter inserts text as a new line below line n. n is clamped to
// the buffer, so inserting after 0 prepends and after Len() appends.
func (b *Buffer) InsertAfter(n int, text string) {
	if n < 0 {
		n = 0
	}
	if n > len(b.lines) {
		n = len(b.lines)
	}
	b.lines = append(b.lines, "")
	copy(b.lines[n+1:], b.lines[n:])
	b.lines[n] = text
}

// InsertBefore inserts text as a new line above line n.
func (b *Buffer) InsertBefore(n int, text string) {
	b.InsertAfter(n-1, text)
}

// Remove deletes line n. The buffer never drops below one line, so
// removing the last remaining line clears it instead.
func (b *Buffer) Remove(n int) {
	if n < 1 || n > len(b.lines) {
		return
	}
	if len(b.lines) == 1 {
		b.lines[0] = ""
		return
	}
	b.lines = append(b.lines[:n-1], b.lines[n:]...)
}

// SplitAt splits line n at a byte column, the default newline behavior a
// real editor applies on a passthrough confirm. It returns the cursor at
// the start of the new line.
func (b *Buffer) SplitAt(n, col int) edit.Cursor {
	text, ok := b.Line(n)
	if !ok {
		return edit.Cursor{Line: clampLine(n, len(b.lines)), Column: 0}
	}
	if col < 0 {
		col = 0
	}
	if col > len(text) {
		col = len(text)
	}
	b.lines[n-1] = text[:col]
	b.InsertAfter(n, text[col:])
	return edit.Cursor{Line: n + 1, Column: 0}
}

// Apply runs a directive's edits in order and returns the new cursor
// position. cur is the cursor before the gesture; it is used when the
// directive carries only a column shift, and returned (clamped) when the
// directive says nothing about the cursor. Passthrough handling is the
// caller's job: a surface that has a default behavior runs it after the
// edits.
func (b *Buffer) Apply(d edit.Directive, cur edit.Cursor) edit.Cursor {
	for _, e := range d.Edits {
		switch e.Op {
		case edit.OpReplaceLine:
			b.SetLine(e.Line, e.Text)
		case edit.OpInsertAfter:
			b.InsertAfter(e.Line, e.Text)
		case edit.OpInsertBefore:
			b.InsertBefore(e.Line, e.Text)
		}
	}
	if d.Cursor != nil {
		return b.clampCursor(*d.Cursor)
	}
	cur.Column += d.ColumnShift
	return b.clampCursor(cur)
}

// clampCursor keeps a cursor inside the buffer.
func (b *Buffer) clampCursor(c edit.Cursor) edit.Cursor {
	c.Line = clampLine(c.Line, len(b.lines))
	if c.Column < 0 {
		c.Column = 0
	}
	if text := b.lines[c.Line-1]; c.Column > len(text) {
		c.Column = len(text)
	}
	return c
}

func clampLine(n, max int) int {
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}
