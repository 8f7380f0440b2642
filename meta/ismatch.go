package meta

import "sync/atomic"

// IsMatch reports whether the haystack contains any match of the pattern.
//
// When the pattern is exactly an alternation of literals, a prefilter hit
// is itself a match and the matcher is not run.
//
// Example:
//
//	engine, _ := meta.Compile(`^(\w+) \1$`)
//	engine.IsMatch([]byte("hey hey")) // true
func (e *Engine) IsMatch(haystack []byte) bool {
	if e.prefilter != nil && e.prefilter.IsComplete() {
		atomic.AddUint64(&e.stats.PrefilterShortcuts, 1)
		return e.prefilter.Find(haystack, 0) >= 0
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	_, _, found := e.searchAt(state, haystack, 0)
	return found
}
