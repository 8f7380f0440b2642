package literal

import (
	"unicode/utf8"

	"github.com/coregx/btgrep/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals
//   - MaxClassSize: prevents expanding large character classes
type ExtractorConfig struct {
	// MaxLiterals limits the number of alternative literals. When a group
	// would push the set past it, extraction stops before the group.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal in bytes.
	// Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// [abc] expands to "a", "b", "c"; larger classes stop extraction.
	// Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
//
// Example:
//
//	extractor := literal.New(literal.DefaultConfig())
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts prefix literals from pattern trees.
//
// Algorithm overview:
//  1. Walk the top-level node sequence left to right
//  2. Literal runs extend every literal of the set
//  3. A capture group multiplies the set by its options' prefixes
//  4. The first node that is not a fixed literal choice stops the walk
//
// Example:
//
//	pat, _ := syntax.ParseString(`(cat|dog)s? \d`)
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(pat)
//	// prefixes = ["cat", "dog"], both incomplete
type Extractor struct {
	config ExtractorConfig
}

// New creates an extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns literals one of which every match of pat starts
// with. The result is empty when no such set exists or when the pattern is
// anchored, since an anchored pattern is only tried at offset 0.
//
// A literal is complete when the pattern matches exactly the literal set, so
// an occurrence of it is itself a match.
func (e *Extractor) ExtractPrefixes(pat *syntax.Pattern) *Seq {
	if pat == nil || pat.Anchored() {
		return NewSeq()
	}

	lits, complete := e.prefixes(pat.Nodes)
	seq := NewSeq()
	for _, lit := range lits {
		if len(lit) == 0 {
			// Some match starts with anything at all.
			return NewSeq()
		}
		seq.literals = append(seq.literals, NewLiteral(lit, complete))
	}
	return seq
}

// prefixes walks nodes and returns the literal set reached and whether the
// whole sequence was consumed.
func (e *Extractor) prefixes(nodes []syntax.Node) ([][]byte, bool) {
	lits := [][]byte{{}}
	for _, n := range nodes {
		alts, full, ok := e.nodePrefixes(n)
		if !ok {
			return lits, false
		}
		crossed, ok := e.cross(lits, alts)
		if !ok {
			return lits, false
		}
		lits = crossed
		if !full {
			return lits, false
		}
	}
	return lits, true
}

// nodePrefixes returns the alternatives a node can start with. full reports
// that the alternatives are exactly what the node matches; ok is false when
// the node offers no usable literal.
func (e *Extractor) nodePrefixes(n syntax.Node) (alts [][]byte, full, ok bool) {
	switch n := n.(type) {
	case *syntax.Literal:
		if !validRune(n.Char) {
			return nil, false, false
		}
		return [][]byte{utf8.AppendRune(nil, n.Char)}, true, true

	case *syntax.CharClass:
		alts, ok := e.classPrefixes(n)
		return alts, true, ok

	case *syntax.OneOrMore:
		// The first occurrence is required; what follows it is not fixed.
		switch sub := n.Sub.(type) {
		case *syntax.Literal:
			if !validRune(sub.Char) {
				return nil, false, false
			}
			return [][]byte{utf8.AppendRune(nil, sub.Char)}, false, true
		case *syntax.CharClass:
			alts, ok := e.classPrefixes(sub)
			return alts, false, ok
		}
		return nil, false, false

	case *syntax.CaptureGroup:
		full = true
		for _, opt := range n.Options {
			lits, complete := e.prefixes(opt)
			for _, lit := range lits {
				if len(lit) == 0 {
					return nil, false, false
				}
			}
			if len(alts)+len(lits) > e.config.MaxLiterals {
				return nil, false, false
			}
			alts = append(alts, lits...)
			full = full && complete
		}
		return alts, full, len(alts) > 0
	}
	return nil, false, false
}

func (e *Extractor) classPrefixes(n *syntax.CharClass) ([][]byte, bool) {
	if n.Negated || len(n.Chars) == 0 || len(n.Chars) > e.config.MaxClassSize {
		return nil, false
	}
	alts := make([][]byte, 0, len(n.Chars))
	seen := make(map[rune]bool, len(n.Chars))
	for _, c := range n.Chars {
		if !validRune(c) {
			return nil, false
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		alts = append(alts, utf8.AppendRune(nil, c))
	}
	return alts, true
}

// cross appends every alternative to every literal. It fails when the
// product exceeds the configured limits.
func (e *Extractor) cross(lits, alts [][]byte) ([][]byte, bool) {
	if len(lits)*len(alts) > e.config.MaxLiterals {
		return nil, false
	}
	out := make([][]byte, 0, len(lits)*len(alts))
	for _, lit := range lits {
		for _, alt := range alts {
			if len(lit)+len(alt) > e.config.MaxLiteralLen {
				return nil, false
			}
			joined := make([]byte, 0, len(lit)+len(alt))
			joined = append(joined, lit...)
			joined = append(joined, alt...)
			out = append(out, joined)
		}
	}
	return out, true
}

// validRune reports whether r encodes to the bytes it was decoded from.
// Invalid input bytes decode as U+FFFD, so a literal U+FFFD would not find
// them with a byte search.
func validRune(r rune) bool {
	return r != utf8.RuneError && utf8.ValidRune(r)
}
