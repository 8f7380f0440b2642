package meta

import (
	"sync/atomic"

	"github.com/coregx/btgrep/prefilter"
	"github.com/coregx/btgrep/syntax"
)

// Engine is a compiled pattern ready for searching.
//
// Thread safety: the pattern tree and prefilter are immutable after
// compilation. Per-search mutable state (capture bindings, matcher) is
// managed via sync.Pool, so multiple goroutines can call search methods on
// the same Engine concurrently.
//
// Example:
//
//	engine, err := meta.Compile(`(\d+) (\w+)`)
//	if err != nil {
//	    return err
//	}
//
//	match := engine.Find([]byte("I see 3 dogs"))
//	if match != nil {
//	    println(match.String()) // "3 dogs"
//	}
type Engine struct {
	// stats MUST be first for 8-byte alignment of its atomics on 32-bit platforms.
	stats Stats

	pattern         *syntax.Pattern
	body            []syntax.Node
	isStartAnchored bool
	prefilter       prefilter.Prefilter
	literalLen      int // match length when every prefilter hit is a match, else 0
	config          Config
	statePool       *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Searches counts calls that ran the driver loop
	Searches uint64

	// Attempts counts matcher invocations, one per starting offset tried
	Attempts uint64

	// PrefilterHits counts candidates the prefilter reported
	PrefilterHits uint64

	// PrefilterMisses counts candidates that did not match
	PrefilterMisses uint64

	// PrefilterShortcuts counts searches answered by the prefilter alone
	PrefilterShortcuts uint64

	// PrefilterHeapBytes is the heap memory held by the prefilter. It is
	// fixed at compilation and ResetStats leaves it alone.
	PrefilterHeapBytes uint64
}

// Pattern returns the compiled pattern tree.
func (e *Engine) Pattern() *syntax.Pattern {
	return e.pattern
}

// IsStartAnchored returns true if the pattern is anchored at the start (^).
// Start-anchored patterns can only match at position 0.
func (e *Engine) IsStartAnchored() bool {
	return e.isStartAnchored
}

// NumCaptures returns the number of capture groups in the pattern, not
// counting the whole match.
func (e *Engine) NumCaptures() int {
	return e.pattern.NumGroups
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// HasPrefilter reports whether searches skip offsets with a prefilter.
func (e *Engine) HasPrefilter() bool {
	return e.prefilter != nil
}

// Stats returns a snapshot of execution statistics.
//
// Example:
//
//	stats := engine.Stats()
//	println("attempts:", stats.Attempts)
func (e *Engine) Stats() Stats {
	s := Stats{
		Searches:           atomic.LoadUint64(&e.stats.Searches),
		Attempts:           atomic.LoadUint64(&e.stats.Attempts),
		PrefilterHits:      atomic.LoadUint64(&e.stats.PrefilterHits),
		PrefilterMisses:    atomic.LoadUint64(&e.stats.PrefilterMisses),
		PrefilterShortcuts: atomic.LoadUint64(&e.stats.PrefilterShortcuts),
	}
	if e.prefilter != nil {
		s.PrefilterHeapBytes = uint64(e.prefilter.HeapBytes())
	}
	return s
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Searches, 0)
	atomic.StoreUint64(&e.stats.Attempts, 0)
	atomic.StoreUint64(&e.stats.PrefilterHits, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
	atomic.StoreUint64(&e.stats.PrefilterShortcuts, 0)
}

// getSearchState retrieves a SearchState from the pool.
// Caller must call putSearchState when done.
func (e *Engine) getSearchState() *SearchState {
	return e.statePool.get()
}

// putSearchState returns a SearchState to the pool.
func (e *Engine) putSearchState(state *SearchState) {
	e.statePool.put(state)
}
