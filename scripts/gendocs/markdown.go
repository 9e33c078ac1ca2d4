package main

import (
	"bytes"
	"fmt"
	"strings"
)

// MarkdownWriter builds a markdown document incrementally.
type MarkdownWriter struct {
	buf bytes.Buffer
}

// NewMarkdownWriter creates an empty markdown writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Frontmatter writes a YAML frontmatter block with title and description.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	w.buf.WriteString("---\n")
	fmt.Fprintf(&w.buf, "title: %s\n", title)
	fmt.Fprintf(&w.buf, "description: %s\n", description)
	w.buf.WriteString("---\n\n")
}

// GeneratedMarker writes a comment warning that the file is generated.
func (w *MarkdownWriter) GeneratedMarker() {
	w.buf.WriteString("<!-- Generated by scripts/gendocs. DO NOT EDIT. -->\n\n")
}

// Header writes a markdown header at the given level.
func (w *MarkdownWriter) Header(level int, text string) {
	fmt.Fprintf(&w.buf, "%s %s\n\n", strings.Repeat("#", level), text)
}

// Paragraph writes a paragraph followed by a blank line.
func (w *MarkdownWriter) Paragraph(text string) {
	w.buf.WriteString(text)
	w.buf.WriteString("\n\n")
}

// CodeBlock writes a fenced code block with a language tag.
func (w *MarkdownWriter) CodeBlock(lang, code string) {
	fmt.Fprintf(&w.buf, "```%s\n%s\n```\n\n", lang, strings.TrimRight(code, "\n"))
}

// BulletList writes an unordered list.
func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		fmt.Fprintf(&w.buf, "- %s\n", item)
	}
	w.buf.WriteString("\n")
}

// Table writes a pipe table with a header row.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	w.buf.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	w.buf.WriteString("| " + strings.Join(seps, " | ") + " |\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.ReplaceAll(cell, "|", "\\|")
		}
		w.buf.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	w.buf.WriteString("\n")
}

// Bytes returns the accumulated document.
func (w *MarkdownWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// InlineCode wraps text in backticks.
func InlineCode(text string) string {
	return "`" + text + "`"
}

// cleanDescription collapses a description onto one line for table cells.
func cleanDescription(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
