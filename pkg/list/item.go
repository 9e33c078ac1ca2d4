package list

import "strings"

// =============================================================================
// Kind
// =============================================================================

// Kind identifies which grammar rule a line matched.
type Kind int

// Classification kinds, in grammar priority order.
const (
	// Unordered is a marker-prefixed item, e.g. "- milk".
	Unordered Kind = iota
	// Ordered is a numbered item, e.g. "2. milk" or "2) milk".
	Ordered
	// UnorderedColon is a marker-prefixed item ending in a colon.
	UnorderedColon
	// OrderedColon is a numbered item ending in a colon.
	OrderedColon
	// Colon is a plain line ending in a colon, with no list prefix.
	Colon
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Unordered:
		return "unordered"
	case Ordered:
		return "ordered"
	case UnorderedColon:
		return "unordered-colon"
	case OrderedColon:
		return "ordered-colon"
	case Colon:
		return "colon"
	default:
		return "unknown"
	}
}

// IsColon reports whether the kind is one of the colon-terminated variants.
func (k Kind) IsColon() bool {
	return k == UnorderedColon || k == OrderedColon || k == Colon
}

// IsOrdered reports whether the kind carries a number and separator.
func (k Kind) IsOrdered() bool {
	return k == Ordered || k == OrderedColon
}

// IsUnordered reports whether the kind carries a literal marker.
func (k Kind) IsUnordered() bool {
	return k == Unordered || k == UnorderedColon
}

// IsListItem reports whether the line has a list prefix. Plain colon lines
// classify but are not list items.
func (k Kind) IsListItem() bool {
	return k != Colon
}

// MarshalJSON encodes the kind as its string form.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// =============================================================================
// Item
// =============================================================================

// Item describes one classified line. Values are immutable once produced;
// a fresh Item is built per classification call.
//
// Indent + Prefix + Content (plus a trailing ":" for colon kinds)
// reconstructs the original line exactly.
type Item struct {
	Kind Kind `json:"kind"`

	// Indent is the leading whitespace run, verbatim (spaces and/or tabs).
	Indent string `json:"indent"`

	// Marker is the literal marker matched. Set for Unordered and
	// UnorderedColon.
	Marker string `json:"marker,omitempty"`

	// Number and Separator are set for Ordered and OrderedColon.
	// Separator is "." or ")".
	Number    int    `json:"number,omitempty"`
	Separator string `json:"separator,omitempty"`

	// Prefix is the marker text as matched, including the whitespace that
	// follows it, e.g. "- " or "2) ". Empty for the Colon kind.
	Prefix string `json:"prefix"`

	// Content is the text after the prefix. Colon kinds carry it with the
	// trailing colon stripped.
	Content string `json:"content"`

	// Empty is true iff Content is "". Only set for the Unordered and
	// Ordered kinds.
	Empty bool `json:"empty,omitempty"`
}

// String reconstructs the original line.
func (it *Item) String() string {
	var b strings.Builder
	b.WriteString(it.Indent)
	b.WriteString(it.Prefix)
	b.WriteString(it.Content)
	if it.Kind.IsColon() {
		b.WriteByte(':')
	}
	return b.String()
}

// Trail returns the whitespace between the marker (or separator) and the
// content, as matched.
func (it *Item) Trail() string {
	if it.Kind.IsOrdered() {
		if i := strings.IndexAny(it.Prefix, ".)"); i >= 0 {
			return it.Prefix[i+1:]
		}
		return ""
	}
	return strings.TrimPrefix(it.Prefix, it.Marker)
}
