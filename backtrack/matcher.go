package backtrack

import (
	"bytes"
	"unicode/utf8"

	"github.com/coregx/btgrep/syntax"
)

// continuation is the part of the pattern still to be matched after the
// current node sequence is exhausted. Frames form a stack that mirrors the
// nesting of groups and '?' operands being matched.
type continuation struct {
	nodes []syntax.Node
	next  *continuation

	// group is the capture id to bind when this frame is resumed, or 0.
	// The bound text runs from start to the position of the resume.
	group int
	start int
}

// Matcher runs pattern node sequences against a fixed text.
//
// A Matcher is cheap to create and must not be shared between goroutines.
//
// Example:
//
//	pat, _ := syntax.ParseString(`(\d+) apples`)
//	m := backtrack.NewMatcher([]byte("3 apples"), backtrack.NewCaptures())
//	end, ok := m.MatchHere(0, pat.Body())
//	// end == 8, ok == true, group 1 bound to "3"
type Matcher struct {
	text []byte
	caps *Captures
}

// NewMatcher creates a matcher over text that records bindings in caps.
func NewMatcher(text []byte, caps *Captures) *Matcher {
	return &Matcher{text: text, caps: caps}
}

// Reset points the matcher at new text and bindings.
func (m *Matcher) Reset(text []byte, caps *Captures) {
	m.text = text
	m.caps = caps
}

// MatchHere tries to match nodes starting exactly at byte offset pos,
// which must be a rune boundary.
//
// On success it returns the end offset of the match, so the consumed text
// is text[pos:end], and the bindings of the successful path remain in the
// capture map. On failure the capture map is left as it was on entry.
func (m *Matcher) MatchHere(pos int, nodes []syntax.Node) (int, bool) {
	return m.match(pos, nodes, nil)
}

func (m *Matcher) match(pos int, nodes []syntax.Node, k *continuation) (int, bool) {
	if len(nodes) == 0 {
		if k == nil {
			return pos, true
		}
		return m.resume(pos, k)
	}

	rest := nodes[1:]
	switch n := nodes[0].(type) {
	case syntax.RuneMatcher:
		r, size := m.decode(pos)
		if size == 0 || !n.MatchRune(r) {
			return -1, false
		}
		return m.match(pos+size, rest, k)

	case *syntax.StartAnchor:
		invariant("MatchHere", "start anchor reached the matcher")

	case *syntax.EndAnchor:
		if pos != len(m.text) || !exhausted(rest, k) {
			return -1, false
		}
		// Resume pending frames so their groups still bind.
		return m.match(pos, rest, k)

	case *syntax.OneOrMore:
		return m.matchOneOrMore(pos, n.Sub, rest, k)

	case *syntax.ZeroOrOne:
		if end, ok := m.match(pos, []syntax.Node{n.Sub}, &continuation{nodes: rest, next: k}); ok {
			return end, true
		}
		return m.match(pos, rest, k)

	case *syntax.CaptureGroup:
		for _, opt := range n.Options {
			frame := &continuation{nodes: rest, next: k, group: n.ID, start: pos}
			if end, ok := m.match(pos, opt, frame); ok {
				return end, true
			}
		}
		return -1, false

	case *syntax.BackReference:
		text, ok := m.caps.Get(n.ID)
		if !ok {
			// The group did not take part in this path.
			return -1, false
		}
		if !bytes.HasPrefix(m.text[pos:], text) {
			return -1, false
		}
		return m.match(pos+len(text), rest, k)

	default:
		invariant("MatchHere", "unexpected node %s", nodes[0])
	}
	return -1, false
}

// resume continues with the innermost pending frame, binding its group
// first. The binding is undone if the remainder fails.
func (m *Matcher) resume(pos int, k *continuation) (int, bool) {
	if k.group == 0 {
		return m.match(pos, k.nodes, k.next)
	}

	m.caps.Bind(k.group, m.text[k.start:pos])
	end, ok := m.match(pos, k.nodes, k.next)
	if !ok {
		m.caps.Unbind(k.group)
	}
	return end, ok
}

// matchOneOrMore matches sub greedily: it measures the longest run of sub
// at pos, then tries the rest of the pattern after each run length from
// longest to one occurrence.
func (m *Matcher) matchOneOrMore(pos int, sub syntax.Node, rest []syntax.Node, k *continuation) (int, bool) {
	var ends []int
	switch sub := sub.(type) {
	case syntax.RuneMatcher:
		for p := pos; ; {
			r, size := m.decode(p)
			if size == 0 || !sub.MatchRune(r) {
				break
			}
			p += size
			ends = append(ends, p)
		}

	case *syntax.BackReference:
		text, ok := m.caps.Get(sub.ID)
		if !ok {
			return -1, false
		}
		if len(text) == 0 {
			// An empty occurrence repeats forever; one is enough.
			return m.match(pos, rest, k)
		}
		for p := pos; bytes.HasPrefix(m.text[p:], text); {
			p += len(text)
			ends = append(ends, p)
		}

	default:
		invariant("OneOrMore", "unsupported operand %s", sub)
	}

	for i := len(ends) - 1; i >= 0; i-- {
		if end, ok := m.match(ends[i], rest, k); ok {
			return end, true
		}
	}
	return -1, false
}

// decode returns the rune at pos and its width, or width 0 at end of text.
func (m *Matcher) decode(pos int) (rune, int) {
	if pos >= len(m.text) {
		return utf8.RuneError, 0
	}
	if c := m.text[pos]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRune(m.text[pos:])
}

// exhausted reports whether nothing of the pattern remains: neither in
// nodes nor in any pending frame.
func exhausted(nodes []syntax.Node, k *continuation) bool {
	if len(nodes) != 0 {
		return false
	}
	for ; k != nil; k = k.next {
		if len(k.nodes) != 0 {
			return false
		}
	}
	return true
}
