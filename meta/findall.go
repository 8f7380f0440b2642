package meta

import "unicode/utf8"

// FindAllIndices returns the [start, end) pairs of successive
// non-overlapping matches. If n > 0, at most n matches are returned.
//
// An empty match directly after the previous non-empty match is skipped,
// as in the standard library: "a?" on "ab" yields [0 1] and [2 2].
//
// Example:
//
//	engine, _ := meta.Compile(`\d+`)
//	engine.FindAllIndices([]byte("1 22 333"), -1)
//	// [[0 1] [2 4] [5 8]]
func (e *Engine) FindAllIndices(haystack []byte, n int) [][2]int {
	if n == 0 {
		return nil
	}

	var results [][2]int
	pos := 0
	lastMatchEnd := -1

	// One state for the whole loop.
	state := e.getSearchState()
	defer e.putSearchState(state)

	for n < 0 || len(results) < n {
		var start, end int
		var found bool
		if e.literalLen > 0 {
			start, end, found = e.findLiteral(haystack, pos)
		} else {
			start, end, found = e.searchAt(state, haystack, pos)
		}
		if !found {
			break
		}

		accept := !(start == end && start == lastMatchEnd)
		if accept {
			results = append(results, [2]int{start, end})
			if start != end {
				lastMatchEnd = end
			}
		}

		switch {
		case start == end:
			if end == len(haystack) {
				return results
			}
			_, width := utf8.DecodeRune(haystack[end:])
			pos = end + width
		default:
			pos = end
		}
	}

	return results
}

// FindAll returns successive non-overlapping matches. If n > 0, at most n
// matches are returned.
func (e *Engine) FindAll(haystack []byte, n int) []*Match {
	indices := e.FindAllIndices(haystack, n)
	if indices == nil {
		return nil
	}
	matches := make([]*Match, len(indices))
	for i, idx := range indices {
		matches[i] = NewMatch(idx[0], idx[1], haystack)
	}
	return matches
}

// Count returns the number of non-overlapping matches in the haystack.
// If n > 0, counts at most n matches.
//
// Example:
//
//	engine, _ := meta.Compile(`\d+`)
//	count := engine.Count([]byte("1 2 3 4 5"), -1)
//	// count == 5
func (e *Engine) Count(haystack []byte, n int) int {
	return len(e.FindAllIndices(haystack, n))
}
