package edit

import "strings"

// Gesture identifies the editing action a host key event maps to.
type Gesture int

// Gestures understood by the engine.
const (
	// Confirm continues a list at the end of a line, typically bound to
	// Enter.
	Confirm Gesture = iota
	// OpenBelow starts a sibling or child item below the current line.
	OpenBelow
	// OpenAbove starts a sibling item above the current line.
	OpenAbove
	// Indent moves the item one level deeper.
	Indent
	// Outdent moves the item one level shallower.
	Outdent
)

// String returns the string representation of the gesture.
func (g Gesture) String() string {
	switch g {
	case Confirm:
		return "confirm"
	case OpenBelow:
		return "open-below"
	case OpenAbove:
		return "open-above"
	case Indent:
		return "indent"
	case Outdent:
		return "outdent"
	default:
		return "unknown"
	}
}

// ParseGesture converts a string to a Gesture value. Underscores are
// accepted in place of hyphens. Returns the gesture and true if valid, or
// Confirm and false if invalid.
func ParseGesture(s string) (Gesture, bool) {
	switch strings.ReplaceAll(strings.ToLower(s), "_", "-") {
	case "confirm":
		return Confirm, true
	case "open-below":
		return OpenBelow, true
	case "open-above":
		return OpenAbove, true
	case "indent":
		return Indent, true
	case "outdent":
		return Outdent, true
	default:
		return Confirm, false
	}
}

// GestureNames returns all gesture names in declaration order.
func GestureNames() []string {
	return []string{"confirm", "open-below", "open-above", "indent", "outdent"}
}
