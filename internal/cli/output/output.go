// Package output provides mode-aware rendering for the inklist CLI.
//
// Commands render through a Renderer that adapts to the environment:
// styled text on a terminal, markdown when piped, JSON when requested.
// The renderer never panics on unknown modes; anything unrecognized
// falls back to auto-detection.
package output

// OutputMode determines how command output is formatted.
type OutputMode int

const (
	// ModeAuto detects the mode from the environment: text on a TTY,
	// markdown otherwise.
	ModeAuto OutputMode = iota
	// ModeText renders styled human-readable output.
	ModeText
	// ModeMarkdown renders plain markdown suitable for piping.
	ModeMarkdown
	// ModeJSON renders machine-readable JSON.
	ModeJSON
)

// String returns the mode name as used on the command line.
func (m OutputMode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeMarkdown:
		return "markdown"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// Mode parses a mode name from config or flags. Unknown names map to
// ModeAuto so a bad value degrades to sensible output instead of failing.
func Mode(s string) OutputMode {
	switch s {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// ModeNames lists the accepted --output values for flag completion.
func ModeNames() []string {
	return []string{"auto", "text", "markdown", "json"}
}
