package list

import "fmt"

// DefaultMarkers returns the marker set used when no configuration
// overrides it.
func DefaultMarkers() []string {
	return []string{"-", "*", "+", ">"}
}

// Config holds the marker configuration and the grammar compiled from it.
// It is read-only after construction and safe for concurrent use.
type Config struct {
	markers     []string
	colonMarker string
	matchers    []matcher
}

// NewConfig builds a configuration from an ordered marker list and an
// optional colon marker. Declaration order is significant: it is both the
// match priority and the depth lookup order. An empty colonMarker falls
// back to markers[0].
func NewConfig(markers []string, colonMarker string) (*Config, error) {
	if len(markers) == 0 {
		return nil, fmt.Errorf("at least one marker is required")
	}
	seen := make(map[string]struct{}, len(markers))
	for i, m := range markers {
		if m == "" {
			return nil, fmt.Errorf("marker %d is empty", i)
		}
		if _, dup := seen[m]; dup {
			return nil, fmt.Errorf("duplicate marker %q", m)
		}
		seen[m] = struct{}{}
	}
	owned := make([]string, len(markers))
	copy(owned, markers)
	return &Config{
		markers:     owned,
		colonMarker: colonMarker,
		matchers:    buildMatchers(owned),
	}, nil
}

// Default returns the configuration with the default marker set.
func Default() *Config {
	m := DefaultMarkers()
	return &Config{markers: m, matchers: buildMatchers(m)}
}

// Markers returns a copy of the configured marker list.
func (c *Config) Markers() []string {
	out := make([]string, len(c.markers))
	copy(out, c.markers)
	return out
}

// MarkerForDepth returns the marker for a nesting level. Levels beyond the
// configured list clamp to the last marker rather than cycling.
func (c *Config) MarkerForDepth(level int) string {
	if level < 0 {
		level = 0
	}
	if level >= len(c.markers) {
		level = len(c.markers) - 1
	}
	return c.markers[level]
}

// ColonMarker returns the marker used for children of colon-terminated
// lines: the configured override if set, else markers[0].
func (c *Config) ColonMarker() string {
	if c.colonMarker != "" {
		return c.colonMarker
	}
	return c.markers[0]
}

// Depth converts an indent string to a nesting level given the host's
// indent unit: floor(len(indent) / len(unit)). A zero-length unit yields
// depth zero.
func Depth(indent, unit string) int {
	if len(unit) == 0 {
		return 0
	}
	return len(indent) / len(unit)
}
