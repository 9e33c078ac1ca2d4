package list

import (
	"fmt"
	"regexp"
	"strconv"
)

// The grammar is an ordered list of matchers evaluated top-down with
// first-match-wins semantics. Marker-bearing rules are expanded per marker
// in declaration order, so the marker list is an explicit tie-break, not an
// accident of pattern alternation. A colon rule only fires when the colon
// is the final character of the line.
//
// Rule order:
//  1. unordered colon, one rule per marker
//  2. ordered colon
//  3. unordered, one rule per marker
//  4. ordered
//  5. plain colon
type matcher struct {
	kind   Kind
	marker string
	re     *regexp.Regexp
}

// Marker-independent rules. Marker literals are quoted before compilation,
// so markers such as "*" or "+" match as text, not as pattern operators.
var (
	// orderedColonRe matches "2. heading:" or "2) heading:".
	orderedColonRe = regexp.MustCompile(`^([ \t]*)(\d+)([.)])([ \t]+)(.*):$`)
	// orderedRe matches "2. item", "2) item", or the empty item "2. ".
	orderedRe = regexp.MustCompile(`^([ \t]*)(\d+)([.)])([ \t]+)(.*)$`)
	// colonRe matches any remaining non-empty line ending in a colon.
	colonRe = regexp.MustCompile(`^([ \t]*)(.+):$`)
)

func buildMatchers(markers []string) []matcher {
	ms := make([]matcher, 0, 2*len(markers)+3)
	for _, m := range markers {
		q := regexp.QuoteMeta(m)
		re := regexp.MustCompile(fmt.Sprintf(`^([ \t]*)(%s)([ \t]+)(.*):$`, q))
		ms = append(ms, matcher{kind: UnorderedColon, marker: m, re: re})
	}
	ms = append(ms, matcher{kind: OrderedColon, re: orderedColonRe})
	for _, m := range markers {
		q := regexp.QuoteMeta(m)
		re := regexp.MustCompile(fmt.Sprintf(`^([ \t]*)(%s)([ \t]+)(.*)$`, q))
		ms = append(ms, matcher{kind: Unordered, marker: m, re: re})
	}
	ms = append(ms, matcher{kind: Ordered, re: orderedRe})
	ms = append(ms, matcher{kind: Colon, re: colonRe})
	return ms
}

// Classify maps a line to its list-item descriptor, or nil when no grammar
// rule matches. It is total: no input fails.
func (c *Config) Classify(line string) *Item {
	for i := range c.matchers {
		m := &c.matchers[i]
		groups := m.re.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		it, ok := m.item(groups)
		if !ok {
			continue
		}
		return it
	}
	return nil
}

// item builds the descriptor from a rule's submatches. Ordered rules
// reject digit runs that overflow int, falling through to later rules.
func (m *matcher) item(groups []string) (*Item, bool) {
	switch m.kind {
	case Unordered, UnorderedColon:
		it := &Item{
			Kind:    m.kind,
			Indent:  groups[1],
			Marker:  groups[2],
			Prefix:  groups[2] + groups[3],
			Content: groups[4],
		}
		if m.kind == Unordered {
			it.Empty = it.Content == ""
		}
		return it, true
	case Ordered, OrderedColon:
		n, err := strconv.Atoi(groups[2])
		if err != nil {
			return nil, false
		}
		it := &Item{
			Kind:      m.kind,
			Indent:    groups[1],
			Number:    n,
			Separator: groups[3],
			Prefix:    groups[2] + groups[3] + groups[4],
			Content:   groups[5],
		}
		if m.kind == Ordered {
			it.Empty = it.Content == ""
		}
		return it, true
	case Colon:
		return &Item{
			Kind:    m.kind,
			Indent:  groups[1],
			Content: groups[2],
		}, true
	default:
		return nil, false
	}
}
