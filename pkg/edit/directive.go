package edit

// EditOp identifies one kind of buffer mutation.
type EditOp string

// Buffer mutation operations.
const (
	// OpReplaceLine replaces the text of an existing line.
	OpReplaceLine EditOp = "replace_line"
	// OpInsertAfter inserts a new line below an existing one.
	OpInsertAfter EditOp = "insert_after"
	// OpInsertBefore inserts a new line above an existing one.
	OpInsertBefore EditOp = "insert_before"
)

// Edit is a single buffer mutation. Line numbers are 1-based.
type Edit struct {
	Op   EditOp `json:"op"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// Cursor is a buffer position: 1-based line, 0-based byte column. A column
// equal to the line length places the cursor at end of line.
type Cursor struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Directive describes the outcome of one gesture. The engine only ever
// describes mutations; the host owns the buffer and applies them.
//
// Edits apply in order against the evolving buffer, so a later edit sees
// the line numbering produced by an earlier one. Passthrough combined with
// edits means: apply the edits first, then run the host's default behavior
// for the originating gesture.
type Directive struct {
	Passthrough bool    `json:"passthrough,omitempty"`
	Edits       []Edit  `json:"edits,omitempty"`
	Cursor      *Cursor `json:"cursor,omitempty"`
	ColumnShift int     `json:"column_shift,omitempty"`
	EnterInsert bool    `json:"enter_insert,omitempty"`
}
