package edit

import "github.com/inkstone-labs/inklist/pkg/list"

// LineSource is read access to a line buffer. Line numbers are 1-based;
// the second return is false past either end of the buffer.
type LineSource interface {
	Line(n int) (string, bool)
}

// NumberScanner supplies the number for the next ordered item at a given
// indent. The engine consults it when an empty ordered item collapses to a
// shallower level and needs to rejoin the surrounding list.
type NumberScanner interface {
	// NextSiblingNumber returns max+1 over the ordered siblings at exactly
	// this indent near fromLine, or 1 when there are none.
	NextSiblingNumber(indent string, fromLine int) int
}

// SiblingScanner resolves sibling numbers by scanning a buffer upward from
// the line in question.
//
// Scan policy: walk from fromLine-1 toward the top. Items indented deeper
// than the target indent are children of some sibling and are skipped.
// Ordered items at exactly the target indent contribute their number;
// unordered items at that indent keep the block alive without
// contributing. Anything else (plain text, a colon heading, a shallower
// item, buffer start) ends the block.
type SiblingScanner struct {
	cfg *list.Config
	src LineSource
}

// NewSiblingScanner builds a scanner over src using cfg's grammar.
func NewSiblingScanner(cfg *list.Config, src LineSource) *SiblingScanner {
	if cfg == nil {
		cfg = list.Default()
	}
	return &SiblingScanner{cfg: cfg, src: src}
}

// NextSiblingNumber implements NumberScanner.
func (s *SiblingScanner) NextSiblingNumber(indent string, fromLine int) int {
	max := 0
	if s.src != nil {
		for n := fromLine - 1; n >= 1; n-- {
			text, ok := s.src.Line(n)
			if !ok {
				break
			}
			it := s.cfg.Classify(text)
			if it == nil || !it.Kind.IsListItem() {
				break
			}
			if len(it.Indent) > len(indent) {
				continue
			}
			if it.Indent != indent {
				break
			}
			if it.Kind.IsOrdered() && it.Number > max {
				max = it.Number
			}
		}
	}
	return max + 1
}

// firstNumber is the fallback scanner when no buffer is available: every
// collapsed item starts a fresh list at 1.
type firstNumber struct{}

func (firstNumber) NextSiblingNumber(string, int) int { return 1 }
