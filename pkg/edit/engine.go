package edit

import (
	"strconv"
	"strings"

	"github.com/inkstone-labs/inklist/pkg/list"
)

// DefaultIndentUnit is the indent unit assumed when a caller supplies
// none.
const DefaultIndentUnit = "  "

// Engine turns gestures into directives. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	cfg     *list.Config
	numbers NumberScanner
}

// NewEngine builds an engine over a marker configuration. A nil cfg uses
// the default markers; a nil scanner numbers every collapsed ordered item
// from 1.
func NewEngine(cfg *list.Config, numbers NumberScanner) *Engine {
	if cfg == nil {
		cfg = list.Default()
	}
	if numbers == nil {
		numbers = firstNumber{}
	}
	return &Engine{cfg: cfg, numbers: numbers}
}

// Config returns the engine's marker configuration.
func (e *Engine) Config() *list.Config {
	return e.cfg
}

// Apply computes the directive for a gesture on one line. lineNum is the
// 1-based buffer position of the line; indentUnit is one level of
// indentation as configured in the host ("" falls back to
// DefaultIndentUnit). Lines that classify as nothing pass through.
func (e *Engine) Apply(g Gesture, line string, lineNum int, indentUnit string) Directive {
	if indentUnit == "" {
		indentUnit = DefaultIndentUnit
	}
	it := e.cfg.Classify(line)
	if it == nil {
		return Directive{Passthrough: true}
	}
	switch g {
	case Confirm:
		return e.confirm(it, lineNum, indentUnit)
	case OpenBelow:
		return e.openBelow(it, lineNum, indentUnit)
	case OpenAbove:
		return e.openAbove(it, lineNum)
	case Indent:
		return e.reindent(it, lineNum, indentUnit, +1)
	case Outdent:
		return e.reindent(it, lineNum, indentUnit, -1)
	default:
		return Directive{Passthrough: true}
	}
}

// confirm continues the list at end of line: a child under colon lines, a
// collapse for empty items, a sibling otherwise. The colon branch fires on
// line text alone, wherever the cursor sits on the line.
func (e *Engine) confirm(it *list.Item, lineNum int, unit string) Directive {
	if it.Kind.IsColon() {
		return e.childBelow(it, lineNum, unit)
	}
	if it.Empty {
		return e.collapseEmpty(it, lineNum)
	}
	return insertBelow(lineNum, it.Indent+e.siblingPrefix(it))
}

// openBelow is confirm without the empty-item collapse: an empty item
// simply gets a sibling too.
func (e *Engine) openBelow(it *list.Item, lineNum int, unit string) Directive {
	if it.Kind.IsColon() {
		return e.childBelow(it, lineNum, unit)
	}
	return insertBelow(lineNum, it.Indent+e.siblingPrefix(it))
}

// openAbove inserts a sibling before the line. Colon lines pass through:
// colon-driven nesting is only ever created below. Opening above an
// ordered item gives the new line the current number and pushes the
// current line down as number+1.
func (e *Engine) openAbove(it *list.Item, lineNum int) Directive {
	switch {
	case it.Kind.IsColon():
		return Directive{Passthrough: true}
	case it.Kind.IsOrdered():
		renumbered := it.Indent + strconv.Itoa(it.Number+1) + it.Separator + it.Trail() + it.Content
		text := it.Indent + strconv.Itoa(it.Number) + it.Separator + " "
		return Directive{
			Edits: []Edit{
				{Op: OpReplaceLine, Line: lineNum, Text: renumbered},
				{Op: OpInsertBefore, Line: lineNum, Text: text},
			},
			Cursor:      &Cursor{Line: lineNum, Column: len(text)},
			EnterInsert: true,
		}
	default:
		return insertAbove(lineNum, it.Indent+it.Marker+" ")
	}
}

// reindent moves a list item one level in either direction and rebuilds
// its prefix with the marker for the new depth. Plain colon lines carry no
// list prefix and pass through. Outdenting with no indent left reproduces
// the line at level zero.
func (e *Engine) reindent(it *list.Item, lineNum int, unit string, dir int) Directive {
	if !it.Kind.IsListItem() {
		return Directive{Passthrough: true}
	}
	var newIndent string
	if dir > 0 {
		newIndent = it.Indent + unit
	} else if len(it.Indent) >= len(unit) {
		newIndent = it.Indent[:len(it.Indent)-len(unit)]
	}
	marker := e.cfg.MarkerForDepth(list.Depth(newIndent, unit))
	rest := it.Content
	if it.Kind.IsColon() {
		rest += ":"
	}
	text := newIndent + marker + " " + rest
	return Directive{
		Edits:       []Edit{{Op: OpReplaceLine, Line: lineNum, Text: text}},
		ColumnShift: len(newIndent) - len(it.Indent),
	}
}

// childBelow starts an indented child list under a colon-terminated line,
// one level deeper, using the colon marker.
func (e *Engine) childBelow(it *list.Item, lineNum int, unit string) Directive {
	return insertBelow(lineNum, it.Indent+unit+e.cfg.ColonMarker()+" ")
}

// collapseEmpty handles confirm on an item with no content. Indented items
// move one level out; a top-level empty item clears its line and defers
// the newline itself to the host.
func (e *Engine) collapseEmpty(it *list.Item, lineNum int) Directive {
	if it.Indent == "" {
		return Directive{
			Edits:       []Edit{{Op: OpReplaceLine, Line: lineNum, Text: ""}},
			Passthrough: true,
		}
	}
	reduced := reduceIndent(it.Indent)
	var text string
	if it.Kind.IsOrdered() {
		n := e.numbers.NextSiblingNumber(reduced, lineNum)
		text = reduced + strconv.Itoa(n) + it.Separator + " "
	} else {
		text = reduced + it.Marker + " "
	}
	return Directive{
		Edits:  []Edit{{Op: OpReplaceLine, Line: lineNum, Text: text}},
		Cursor: &Cursor{Line: lineNum, Column: len(text)},
	}
}

// siblingPrefix renders the list prefix for the next sibling of an item:
// the same marker for unordered items, number+1 for ordered ones.
func (e *Engine) siblingPrefix(it *list.Item) string {
	if it.Kind.IsOrdered() {
		return strconv.Itoa(it.Number+1) + it.Separator + " "
	}
	return it.Marker + " "
}

// reduceIndent strips one level from an empty item's indent: one tab when
// the indent is all tabs, otherwise exactly two characters, whatever
// indent width the host is configured with.
func reduceIndent(indent string) string {
	unit := 2
	if strings.Trim(indent, "\t") == "" {
		unit = 1
	}
	if len(indent) <= unit {
		return ""
	}
	return indent[:len(indent)-unit]
}

func insertBelow(lineNum int, text string) Directive {
	return Directive{
		Edits:       []Edit{{Op: OpInsertAfter, Line: lineNum, Text: text}},
		Cursor:      &Cursor{Line: lineNum + 1, Column: len(text)},
		EnterInsert: true,
	}
}

func insertAbove(lineNum int, text string) Directive {
	return Directive{
		Edits:       []Edit{{Op: OpInsertBefore, Line: lineNum, Text: text}},
		Cursor:      &Cursor{Line: lineNum, Column: len(text)},
		EnterInsert: true,
	}
}
