package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstone-labs/inklist/pkg/list"
)

func TestApply_Confirm(t *testing.T) {
	e := NewEngine(nil, nil)

	tests := []struct {
		name string
		line string
		want Directive
	}{
		{
			name: "unordered continues with same marker",
			line: "* Item 1",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 1, Text: "* "}},
				Cursor:      &Cursor{Line: 2, Column: 2},
				EnterInsert: true,
			},
		},
		{
			name: "ordered continues with next number",
			line: "1. First item",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 1, Text: "2. "}},
				Cursor:      &Cursor{Line: 2, Column: 3},
				EnterInsert: true,
			},
		},
		{
			name: "ordered keeps its separator",
			line: "4) fourth",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 1, Text: "5) "}},
				Cursor:      &Cursor{Line: 2, Column: 3},
				EnterInsert: true,
			},
		},
		{
			name: "nested item keeps its indent",
			line: "  - nested",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 1, Text: "  - "}},
				Cursor:      &Cursor{Line: 2, Column: 4},
				EnterInsert: true,
			},
		},
		{
			name: "plain colon opens a child list",
			line: "Topics:",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 1, Text: "  - "}},
				Cursor:      &Cursor{Line: 2, Column: 4},
				EnterInsert: true,
			},
		},
		{
			name: "unordered colon opens a child list",
			line: "- groceries:",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 1, Text: "  - "}},
				Cursor:      &Cursor{Line: 2, Column: 4},
				EnterInsert: true,
			},
		},
		{
			name: "indented ordered colon nests one level deeper",
			line: "  2. phases:",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 1, Text: "    - "}},
				Cursor:      &Cursor{Line: 2, Column: 6},
				EnterInsert: true,
			},
		},
		{
			name: "plain text passes through",
			line: "just a sentence",
			want: Directive{Passthrough: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Apply(Confirm, tt.line, 1, "  ")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_ConfirmEmptyItem(t *testing.T) {
	e := NewEngine(nil, nil)

	tests := []struct {
		name string
		line string
		want Directive
	}{
		{
			name: "top level clears line and defers the newline",
			line: "* ",
			want: Directive{
				Edits:       []Edit{{Op: OpReplaceLine, Line: 1, Text: ""}},
				Passthrough: true,
			},
		},
		{
			name: "indented unordered outdents one level",
			line: "  * ",
			want: Directive{
				Edits:  []Edit{{Op: OpReplaceLine, Line: 1, Text: "* "}},
				Cursor: &Cursor{Line: 1, Column: 2},
			},
		},
		{
			name: "two levels drop to one",
			line: "    - ",
			want: Directive{
				Edits:  []Edit{{Op: OpReplaceLine, Line: 1, Text: "  - "}},
				Cursor: &Cursor{Line: 1, Column: 4},
			},
		},
		{
			name: "tab indent drops one tab",
			line: "\t\t- ",
			want: Directive{
				Edits:  []Edit{{Op: OpReplaceLine, Line: 1, Text: "\t- "}},
				Cursor: &Cursor{Line: 1, Column: 3},
			},
		},
		{
			name: "single tab drops to top level",
			line: "\t- ",
			want: Directive{
				Edits:  []Edit{{Op: OpReplaceLine, Line: 1, Text: "- "}},
				Cursor: &Cursor{Line: 1, Column: 2},
			},
		},
		{
			name: "indented ordered renumbers at the outer level",
			line: "  3. ",
			want: Directive{
				Edits:  []Edit{{Op: OpReplaceLine, Line: 1, Text: "1. "}},
				Cursor: &Cursor{Line: 1, Column: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Apply(Confirm, tt.line, 1, "  ")
			assert.Equal(t, tt.want, got)
		})
	}
}

// The collapse path hardcodes a two-space removal for space indents. A
// four-space host indent still loses exactly two characters here, while
// indent and outdent honor the full four-space unit.
func TestApply_CollapseIgnoresConfiguredWidth(t *testing.T) {
	e := NewEngine(nil, nil)
	const unit = "    "

	got := e.Apply(Confirm, "    * ", 1, unit)
	want := Directive{
		Edits:  []Edit{{Op: OpReplaceLine, Line: 1, Text: "  * "}},
		Cursor: &Cursor{Line: 1, Column: 4},
	}
	assert.Equal(t, want, got, "collapse drops two spaces, not one unit")

	got = e.Apply(Outdent, "    * x", 1, unit)
	want = Directive{
		Edits:       []Edit{{Op: OpReplaceLine, Line: 1, Text: "- x"}},
		ColumnShift: -4,
	}
	assert.Equal(t, want, got, "outdent drops one full unit")
}

func TestApply_OpenBelow(t *testing.T) {
	e := NewEngine(nil, nil)

	tests := []struct {
		name string
		line string
		want Directive
	}{
		{
			name: "unordered sibling",
			line: "- milk",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 3, Text: "- "}},
				Cursor:      &Cursor{Line: 4, Column: 2},
				EnterInsert: true,
			},
		},
		{
			name: "empty item gets a plain sibling, no collapse",
			line: "  * ",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 3, Text: "  * "}},
				Cursor:      &Cursor{Line: 4, Column: 4},
				EnterInsert: true,
			},
		},
		{
			name: "empty ordered increments",
			line: "2. ",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 3, Text: "3. "}},
				Cursor:      &Cursor{Line: 4, Column: 3},
				EnterInsert: true,
			},
		},
		{
			name: "colon opens a child",
			line: "Agenda:",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertAfter, Line: 3, Text: "  - "}},
				Cursor:      &Cursor{Line: 4, Column: 4},
				EnterInsert: true,
			},
		},
		{
			name: "plain text passes through",
			line: "nothing here",
			want: Directive{Passthrough: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Apply(OpenBelow, tt.line, 3, "  ")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_OpenAbove(t *testing.T) {
	e := NewEngine(nil, nil)

	tests := []struct {
		name string
		line string
		want Directive
	}{
		{
			name: "unordered sibling above, current line untouched",
			line: "- milk",
			want: Directive{
				Edits:       []Edit{{Op: OpInsertBefore, Line: 2, Text: "- "}},
				Cursor:      &Cursor{Line: 2, Column: 2},
				EnterInsert: true,
			},
		},
		{
			name: "ordered takes the current number and pushes the line down",
			line: "2. Second",
			want: Directive{
				Edits: []Edit{
					{Op: OpReplaceLine, Line: 2, Text: "3. Second"},
					{Op: OpInsertBefore, Line: 2, Text: "2. "},
				},
				Cursor:      &Cursor{Line: 2, Column: 3},
				EnterInsert: true,
			},
		},
		{
			name: "renumbering preserves wide spacing",
			line: "2.   Second",
			want: Directive{
				Edits: []Edit{
					{Op: OpReplaceLine, Line: 2, Text: "3.   Second"},
					{Op: OpInsertBefore, Line: 2, Text: "2. "},
				},
				Cursor:      &Cursor{Line: 2, Column: 3},
				EnterInsert: true,
			},
		},
		{
			name: "plain colon passes through",
			line: "Topics:",
			want: Directive{Passthrough: true},
		},
		{
			name: "unordered colon passes through",
			line: "- groceries:",
			want: Directive{Passthrough: true},
		},
		{
			name: "ordered colon passes through",
			line: "1. phases:",
			want: Directive{Passthrough: true},
		},
		{
			name: "plain text passes through",
			line: "prose",
			want: Directive{Passthrough: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Apply(OpenAbove, tt.line, 2, "  ")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_IndentOutdent(t *testing.T) {
	e := NewEngine(nil, nil)

	tests := []struct {
		name    string
		gesture Gesture
		line    string
		unit    string
		want    Directive
	}{
		{
			name:    "indent one level swaps to the depth marker",
			gesture: Indent,
			line:    "- foo",
			unit:    "  ",
			want: Directive{
				Edits:       []Edit{{Op: OpReplaceLine, Line: 1, Text: "  * foo"}},
				ColumnShift: 2,
			},
		},
		{
			name:    "indent beyond the marker list clamps to the last marker",
			gesture: Indent,
			line:    "        > deep",
			unit:    "  ",
			want: Directive{
				Edits:       []Edit{{Op: OpReplaceLine, Line: 1, Text: "          > deep"}},
				ColumnShift: 2,
			},
		},
		{
			name:    "outdent one level",
			gesture: Outdent,
			line:    "  * foo",
			unit:    "  ",
			want: Directive{
				Edits:       []Edit{{Op: OpReplaceLine, Line: 1, Text: "- foo"}},
				ColumnShift: -2,
			},
		},
		{
			name:    "outdent at zero indent reproduces the line",
			gesture: Outdent,
			line:    "- foo",
			unit:    "  ",
			want: Directive{
				Edits: []Edit{{Op: OpReplaceLine, Line: 1, Text: "- foo"}},
			},
		},
		{
			name:    "ordered item gains the depth marker",
			gesture: Indent,
			line:    "1. foo",
			unit:    "  ",
			want: Directive{
				Edits:       []Edit{{Op: OpReplaceLine, Line: 1, Text: "  * foo"}},
				ColumnShift: 2,
			},
		},
		{
			name:    "colon item keeps its colon",
			gesture: Indent,
			line:    "- groceries:",
			unit:    "  ",
			want: Directive{
				Edits:       []Edit{{Op: OpReplaceLine, Line: 1, Text: "  * groceries:"}},
				ColumnShift: 2,
			},
		},
		{
			name:    "tab unit",
			gesture: Indent,
			line:    "\t- foo",
			unit:    "\t",
			want: Directive{
				Edits:       []Edit{{Op: OpReplaceLine, Line: 1, Text: "\t\t+ foo"}},
				ColumnShift: 1,
			},
		},
		{
			name:    "plain colon line passes through",
			gesture: Indent,
			line:    "Topics:",
			unit:    "  ",
			want:    Directive{Passthrough: true},
		},
		{
			name:    "plain text passes through",
			gesture: Outdent,
			line:    "prose",
			unit:    "  ",
			want:    Directive{Passthrough: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Apply(tt.gesture, tt.line, 1, tt.unit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_OutdentFixedPoint(t *testing.T) {
	e := NewEngine(nil, nil)

	// One outdent normalizes the marker; further outdents change nothing.
	d := e.Apply(Outdent, "* foo", 1, "  ")
	require.Len(t, d.Edits, 1)
	assert.Equal(t, "- foo", d.Edits[0].Text)

	d = e.Apply(Outdent, d.Edits[0].Text, 1, "  ")
	require.Len(t, d.Edits, 1)
	assert.Equal(t, "- foo", d.Edits[0].Text)
	assert.Equal(t, 0, d.ColumnShift)
}

func TestApply_ColonMarkerOverride(t *testing.T) {
	cfg, err := list.NewConfig([]string{"-", "*"}, ">")
	require.NoError(t, err)
	e := NewEngine(cfg, nil)

	got := e.Apply(Confirm, "Topics:", 1, "  ")
	want := Directive{
		Edits:       []Edit{{Op: OpInsertAfter, Line: 1, Text: "  > "}},
		Cursor:      &Cursor{Line: 2, Column: 4},
		EnterInsert: true,
	}
	assert.Equal(t, want, got)
}

func TestApply_ColonChildDepth(t *testing.T) {
	e := NewEngine(nil, nil)

	tests := []struct {
		line string
		unit string
	}{
		{line: "Topics:", unit: "  "},
		{line: "  - sub:", unit: "  "},
		{line: "\t1. phase:", unit: "\t"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			it := e.Config().Classify(tt.line)
			require.NotNil(t, it)

			d := e.Apply(Confirm, tt.line, 1, tt.unit)
			require.Len(t, d.Edits, 1)

			child := e.Config().Classify(d.Edits[0].Text)
			require.NotNil(t, child)
			parentDepth := list.Depth(it.Indent, tt.unit)
			assert.Equal(t, parentDepth+1, list.Depth(child.Indent, tt.unit))
			assert.Equal(t, e.Config().ColonMarker(), child.Marker)
		})
	}
}

func TestApply_MetacharacterMarkerConfig(t *testing.T) {
	cfg, err := list.NewConfig([]string{"+", "*"}, "")
	require.NoError(t, err)
	e := NewEngine(cfg, nil)

	got := e.Apply(Confirm, "+ item", 1, "  ")
	want := Directive{
		Edits:       []Edit{{Op: OpInsertAfter, Line: 1, Text: "+ "}},
		Cursor:      &Cursor{Line: 2, Column: 2},
		EnterInsert: true,
	}
	assert.Equal(t, want, got)
}

func TestApply_DefaultIndentUnit(t *testing.T) {
	e := NewEngine(nil, nil)

	got := e.Apply(Confirm, "Topics:", 1, "")
	require.Len(t, got.Edits, 1)
	assert.Equal(t, "  - ", got.Edits[0].Text)
}

func TestApply_LineNumberFlowsThrough(t *testing.T) {
	e := NewEngine(nil, nil)

	got := e.Apply(Confirm, "- milk", 41, "  ")
	want := Directive{
		Edits:       []Edit{{Op: OpInsertAfter, Line: 41, Text: "- "}},
		Cursor:      &Cursor{Line: 42, Column: 2},
		EnterInsert: true,
	}
	assert.Equal(t, want, got)
}
