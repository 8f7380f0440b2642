// Package prefilter provides fast candidate filtering for pattern search
// using extracted prefix literals.
//
// A prefilter finds the next offset in a line where one of the prefix
// literals occurs. Offsets before it cannot begin a match, so the driver
// skips them without running the backtracking matcher. A prefilter never
// changes which lines match, only how many starting offsets are tried.
//
// The package selects the strategy based on the extracted literals:
//   - Single byte → memchr
//   - Two or three single bytes → memchr2 / memchr3
//   - Single substring → memmem
//   - Several literals sharing a prefix of 2+ bytes → memmem on the prefix
//   - Anything else → Aho-Corasick automaton
//
// Example usage:
//
//	pat, _ := syntax.ParseString("(hello|world)")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(pat)
//
//	pf := prefilter.NewBuilder(prefixes).Build()
//
//	haystack := []byte("foo hello bar world baz")
//	pos := pf.Find(haystack, 0)
//	// pos == 4 (position of "hello")
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/btgrep/literal"
	"github.com/coregx/btgrep/simd"
)

// Prefilter is used to quickly find candidate match positions before running
// the backtracking matcher.
//
// Key methods:
//   - Find: returns the next candidate position
//   - IsComplete: indicates if a prefilter hit is itself a match
//   - HeapBytes: returns memory usage for profiling
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or
	// -1 if no candidate exists.
	//
	// A candidate is a position where one of the prefilter literals begins.
	// It does NOT guarantee a match: the caller must verify it with the
	// matcher unless IsComplete() is true.
	//
	// Example:
	//
	//	pos := pf.Find(haystack, 0)
	//	for pos != -1 {
	//	    if matchesAt(haystack, pos) {
	//	        return pos
	//	    }
	//	    pos = pf.Find(haystack, pos+1)
	//	}
	Find(haystack []byte, start int) int

	// IsComplete returns true if a candidate guarantees a match, which is the
	// case when the pattern is exactly an alternation of the literals.
	IsComplete() bool

	// LiteralLen returns the length of the matched literal when IsComplete()
	// is true and all literals have the same length, otherwise 0.
	LiteralLen() int

	// HeapBytes returns the number of bytes of heap memory used by this
	// prefilter.
	HeapBytes() int
}

// Builder constructs the prefilter for a set of prefix literals.
//
// Example:
//
//	pf := prefilter.NewBuilder(prefixes).Build()
//	if pf != nil {
//	    pos := pf.Find(haystack, 0)
//	}
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a new prefilter builder from extracted prefix literals.
// prefixes may be nil.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build constructs the best prefilter for the given literals.
//
// Returns nil if no prefilter can be built (no literals, or an empty
// literal that would make every position a candidate).
func (b *Builder) Build() Prefilter {
	if b.prefixes.IsEmpty() {
		return nil
	}
	seq := b.prefixes.Clone()
	// Measured before Minimize: dropping "ab" in favor of "a" would
	// report the wrong length for a pattern that prefers "ab".
	litLen := uniformLen(seq)
	seq.Minimize()
	return selectPrefilter(seq, litLen)
}

// selectPrefilter chooses the prefilter strategy for a minimized sequence.
func selectPrefilter(seq *literal.Seq, litLen int) Prefilter {
	if minLen(seq) == 0 {
		return nil
	}
	complete := seq.AllComplete()

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], complete, litLen)
		}
		return newMemmemPrefilter(lit.Bytes, complete, litLen)
	}

	if seq.Len() <= 3 && maxLen(seq) == 1 {
		set := make([]byte, seq.Len())
		for i := range set {
			set[i] = seq.Get(i).Bytes[0]
		}
		return newByteSetPrefilter(set, complete, litLen)
	}

	// Every literal starts with the shared prefix, so its occurrences are
	// exactly the candidates. A hit no longer proves a match.
	if lcp := seq.LongestCommonPrefix(); len(lcp) >= 2 {
		return newMemmemPrefilter(lcp, false, 0)
	}

	pf, err := newAhoCorasickPrefilter(seq, complete, litLen)
	if err != nil {
		return nil
	}
	return pf
}

// uniformLen returns the common length of the literals when all of them
// are complete and equally long, otherwise 0.
func uniformLen(seq *literal.Seq) int {
	if !seq.AllComplete() || minLen(seq) != maxLen(seq) {
		return 0
	}
	return maxLen(seq)
}

func minLen(seq *literal.Seq) int {
	n := -1
	for i := 0; i < seq.Len(); i++ {
		if l := seq.Get(i).Len(); n < 0 || l < n {
			n = l
		}
	}
	return n
}

func maxLen(seq *literal.Seq) int {
	n := 0
	for i := 0; i < seq.Len(); i++ {
		n = max(n, seq.Get(i).Len())
	}
	return n
}

// memchrPrefilter wraps simd.Memchr as a Prefilter.
//
// Example patterns:
//
//	/a+b/     → search for 'a'
//	/[x]\d/   → search for 'x'
type memchrPrefilter struct {
	needle     byte
	complete   bool
	literalLen int
}

func newMemchrPrefilter(needle byte, complete bool, literalLen int) Prefilter {
	return &memchrPrefilter{
		needle:     needle,
		complete:   complete,
		literalLen: literalLen,
	}
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	return p.literalLen
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

// byteSetPrefilter searches for any of two or three bytes with
// simd.Memchr2 or simd.Memchr3.
//
// Example patterns:
//
//	/(a|b)\d/   → search for 'a' or 'b'
//	/[xyz]+/    → search for 'x', 'y' or 'z'
type byteSetPrefilter struct {
	set        []byte
	complete   bool
	literalLen int
}

func newByteSetPrefilter(set []byte, complete bool, literalLen int) Prefilter {
	return &byteSetPrefilter{
		set:        set,
		complete:   complete,
		literalLen: literalLen,
	}
}

// Find implements Prefilter.Find.
func (p *byteSetPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	var idx int
	if len(p.set) == 2 {
		idx = simd.Memchr2(haystack[start:], p.set[0], p.set[1])
	} else {
		idx = simd.Memchr3(haystack[start:], p.set[0], p.set[1], p.set[2])
	}
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *byteSetPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *byteSetPrefilter) LiteralLen() int {
	return p.literalLen
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *byteSetPrefilter) HeapBytes() int {
	return len(p.set)
}

// memmemPrefilter wraps simd.Memmem as a Prefilter.
//
// Example patterns:
//
//	/hello/       → search for "hello"
//	/error: \d+/  → search for "error: "
type memmemPrefilter struct {
	needle     []byte
	complete   bool
	literalLen int
}

// newMemmemPrefilter creates a new Memmem-based prefilter.
// The needle slice is copied to prevent aliasing issues.
func newMemmemPrefilter(needle []byte, complete bool, literalLen int) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)

	return &memmemPrefilter{
		needle:     needleCopy,
		complete:   complete,
		literalLen: literalLen,
	}
}

// Find implements Prefilter.Find using simd.Memmem.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	return p.literalLen
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

// ahoCorasickPrefilter searches for many literals at once with an
// Aho-Corasick automaton.
//
// Example patterns:
//
//	/(cat|dog|bird) \d/   → search for "cat", "dog" or "bird"
//	/[abcd]x/             → search for "ax", "bx", "cx" or "dx"
type ahoCorasickPrefilter struct {
	auto       *ahocorasick.Automaton
	literals   [][]byte
	maxLen     int
	literalLen int
	complete   bool
	heapBytes  int
}

func newAhoCorasickPrefilter(seq *literal.Seq, complete bool, literalLen int) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	literals := make([][]byte, seq.Len())
	heap := 0
	for i := range literals {
		lit := seq.Get(i)
		literals[i] = lit.Bytes
		builder.AddPattern(lit.Bytes)
		heap += lit.Len()
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}

	return &ahoCorasickPrefilter{
		auto:       auto,
		literals:   literals,
		maxLen:     maxLen(seq),
		literalLen: literalLen,
		complete:   complete,
		heapBytes:  heap,
	}, nil
}

// Find implements Prefilter.Find.
//
// The automaton stops at the occurrence that ends first, which need not
// be the one that starts first: in "abcd" with literals "abcd" and "bc",
// it reports "bc" at 1. An occurrence starting earlier ends no sooner, so
// it starts at or after End-maxLen; that window is checked directly.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	for pos := max(start, m.End-p.maxLen); pos < m.Start; pos++ {
		if p.literalAt(haystack, pos) {
			return pos
		}
	}
	return m.Start
}

// literalAt reports whether one of the literals begins at pos.
func (p *ahoCorasickPrefilter) literalAt(haystack []byte, pos int) bool {
	for _, lit := range p.literals {
		if bytes.HasPrefix(haystack[pos:], lit) {
			return true
		}
	}
	return false
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	return p.literalLen
}

// HeapBytes implements Prefilter.HeapBytes. It counts the pattern bytes
// handed to the automaton; the automaton's own tables are not exposed.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.heapBytes
}
