package meta

import (
	"sync"

	"github.com/coregx/btgrep/backtrack"
)

// SearchState holds per-search mutable state for thread-safe concurrent
// searches. It is obtained from a sync.Pool so that one compiled Engine can
// serve many goroutines.
//
// Usage pattern:
//
//	state := engine.getSearchState()
//	defer engine.putSearchState(state)
//	// use state for search operations
//
// A SearchState must not be shared between goroutines.
type SearchState struct {
	// caps holds the bindings of the current starting-offset attempt.
	caps *backtrack.Captures

	// matcher is reset to the searched text at the start of every search.
	matcher *backtrack.Matcher
}

func newSearchState() *SearchState {
	caps := backtrack.NewCaptures()
	return &SearchState{
		caps:    caps,
		matcher: backtrack.NewMatcher(nil, caps),
	}
}

// reset prepares the SearchState for reuse.
// Called when returning state to the pool.
func (s *SearchState) reset() {
	s.caps.Reset()
	// Drop the text reference so pooled states do not pin haystacks.
	s.matcher.Reset(nil, s.caps)
}

// searchStatePool manages a pool of SearchState instances for thread-safe reuse.
// This follows the stdlib regexp pattern of using sync.Pool for concurrent safety.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool() *searchStatePool {
	p := &searchStatePool{}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState()
		},
	}
	return p
}

// get retrieves a SearchState from the pool, creating one if necessary.
func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

// put returns a SearchState to the pool for reuse.
func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	state.reset()
	p.pool.Put(state)
}
