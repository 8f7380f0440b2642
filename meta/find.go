package meta

import (
	"sync/atomic"
	"unicode/utf8"
)

// Find returns the first match in the haystack, or nil if there is none.
//
// The first match is the one starting at the lowest offset; at that offset
// the matcher's first successful path decides where it ends.
//
// Example:
//
//	engine, _ := meta.Compile(`\d+`)
//	match := engine.Find([]byte("age: 42"))
//	if match != nil {
//	    println(match.String()) // "42"
//	}
func (e *Engine) Find(haystack []byte) *Match {
	return e.FindAt(haystack, 0)
}

// FindAt returns the first match starting at or after offset at, which must
// be a rune boundary. The whole haystack stays visible to the pattern, so
// '$' still refers to its end.
func (e *Engine) FindAt(haystack []byte, at int) *Match {
	if e.literalLen > 0 {
		start, end, found := e.findLiteral(haystack, at)
		if !found {
			return nil
		}
		return NewMatch(start, end, haystack)
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	start, end, found := e.searchAt(state, haystack, at)
	if !found {
		return nil
	}
	return NewMatch(start, end, haystack)
}

// findLiteral answers a search from the prefilter alone. It is valid only
// when the pattern is an alternation of literals that all have length
// e.literalLen, so the leftmost hit is the match whichever option wins.
func (e *Engine) findLiteral(haystack []byte, at int) (start, end int, found bool) {
	atomic.AddUint64(&e.stats.PrefilterShortcuts, 1)
	pos := e.prefilter.Find(haystack, at)
	if pos < 0 {
		return -1, -1, false
	}
	return pos, pos + e.literalLen, true
}

// FindSubmatch returns the first match together with the text of every
// capture group, or nil if there is no match.
//
// Example:
//
//	engine, _ := meta.Compile(`(\d+) (\w+)`)
//	match := engine.FindSubmatch([]byte("I see 3 dogs"))
//	// match.Group(1) == "3", match.Group(2) == "dogs"
func (e *Engine) FindSubmatch(haystack []byte) *Match {
	state := e.getSearchState()
	defer e.putSearchState(state)

	start, end, found := e.searchAt(state, haystack, 0)
	if !found {
		return nil
	}

	m := NewMatch(start, end, haystack)
	m.groups = make([][]byte, e.pattern.NumGroups)
	for id := 1; id <= e.pattern.NumGroups; id++ {
		if text, ok := state.caps.Get(id); ok {
			m.groups[id-1] = text
		}
	}
	return m
}

// searchAt runs the driver loop from offset at. On success the bindings of
// the matching attempt are left in state.
func (e *Engine) searchAt(state *SearchState, haystack []byte, at int) (start, end int, found bool) {
	atomic.AddUint64(&e.stats.Searches, 1)
	state.matcher.Reset(haystack, state.caps)

	if at < 0 || at > len(haystack) {
		return -1, -1, false
	}

	if e.isStartAnchored {
		if at != 0 {
			return -1, -1, false
		}
		end, found = e.tryAt(state, 0)
		return 0, end, found
	}

	pos := at
	for pos <= len(haystack) {
		if e.prefilter != nil {
			candidate := e.prefilter.Find(haystack, pos)
			if candidate < 0 {
				return -1, -1, false
			}
			atomic.AddUint64(&e.stats.PrefilterHits, 1)
			pos = candidate
		}

		if end, ok := e.tryAt(state, pos); ok {
			return pos, end, true
		}
		if e.prefilter != nil {
			atomic.AddUint64(&e.stats.PrefilterMisses, 1)
		}

		if pos == len(haystack) {
			break
		}
		_, width := utf8.DecodeRune(haystack[pos:])
		pos += width
	}
	return -1, -1, false
}

// tryAt runs one matching attempt at pos with fresh bindings.
func (e *Engine) tryAt(state *SearchState, pos int) (int, bool) {
	atomic.AddUint64(&e.stats.Attempts, 1)
	state.caps.Reset()
	return state.matcher.MatchHere(pos, e.body)
}
