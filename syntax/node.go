package syntax

import (
	"strconv"
	"strings"
)

// Op identifies the kind of a pattern node.
type Op uint8

const (
	OpLiteral       Op = iota + 1 // single rune
	OpDigit                       // \d
	OpWord                        // \w
	OpWildcard                    // .
	OpCharClass                   // [abc] or [^abc]
	OpStartAnchor                 // leading ^
	OpEndAnchor                   // $
	OpOneOrMore                   // x+
	OpZeroOrOne                   // x?
	OpCaptureGroup                // (a|b)
	OpBackReference               // \N
)

var opNames = [...]string{
	OpLiteral:       "Literal",
	OpDigit:         "Digit",
	OpWord:          "Word",
	OpWildcard:      "Wildcard",
	OpCharClass:     "CharClass",
	OpStartAnchor:   "StartAnchor",
	OpEndAnchor:     "EndAnchor",
	OpOneOrMore:     "OneOrMore",
	OpZeroOrOne:     "ZeroOrOne",
	OpCaptureGroup:  "CaptureGroup",
	OpBackReference: "BackReference",
}

// String returns the name of the op.
func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// Node is one element of a pattern tree.
//
// The set of implementations is closed: Literal, Digit, Word, Wildcard,
// CharClass, StartAnchor, EndAnchor, OneOrMore, ZeroOrOne, CaptureGroup
// and BackReference.
type Node interface {
	Op() Op
	String() string
	node()
}

// RuneMatcher is implemented by nodes that consume exactly one rune.
type RuneMatcher interface {
	Node
	MatchRune(r rune) bool
}

// Literal matches a single specific rune.
type Literal struct {
	Char rune
}

// Digit matches one ASCII digit.
type Digit struct{}

// Word matches one ASCII letter, digit or underscore.
type Word struct{}

// Wildcard matches any single rune.
type Wildcard struct{}

// CharClass matches one rune in Chars, or one rune not in Chars when Negated.
type CharClass struct {
	Chars   []rune
	Negated bool
}

// StartAnchor constrains the match to begin at text offset 0.
type StartAnchor struct{}

// EndAnchor matches only at the end of the text.
type EndAnchor struct{}

// OneOrMore matches Sub one or more times, greedily.
type OneOrMore struct {
	Sub Node
}

// ZeroOrOne matches Sub once or not at all, preferring once.
type ZeroOrOne struct {
	Sub Node
}

// CaptureGroup matches the first of Options that lets the rest of the
// pattern match, and binds the consumed text to ID.
type CaptureGroup struct {
	Options [][]Node
	ID      int
}

// BackReference matches the text most recently bound to group ID.
type BackReference struct {
	ID int
}

func (*Literal) Op() Op       { return OpLiteral }
func (*Digit) Op() Op         { return OpDigit }
func (*Word) Op() Op          { return OpWord }
func (*Wildcard) Op() Op      { return OpWildcard }
func (*CharClass) Op() Op     { return OpCharClass }
func (*StartAnchor) Op() Op   { return OpStartAnchor }
func (*EndAnchor) Op() Op     { return OpEndAnchor }
func (*OneOrMore) Op() Op     { return OpOneOrMore }
func (*ZeroOrOne) Op() Op     { return OpZeroOrOne }
func (*CaptureGroup) Op() Op  { return OpCaptureGroup }
func (*BackReference) Op() Op { return OpBackReference }

func (*Literal) node()       {}
func (*Digit) node()         {}
func (*Word) node()          {}
func (*Wildcard) node()      {}
func (*CharClass) node()     {}
func (*StartAnchor) node()   {}
func (*EndAnchor) node()     {}
func (*OneOrMore) node()     {}
func (*ZeroOrOne) node()     {}
func (*CaptureGroup) node()  {}
func (*BackReference) node() {}

// MatchRune implements RuneMatcher.
func (n *Literal) MatchRune(r rune) bool { return n.Char == r }

// MatchRune implements RuneMatcher.
func (*Digit) MatchRune(r rune) bool { return IsDigit(r) }

// MatchRune implements RuneMatcher.
func (*Word) MatchRune(r rune) bool { return IsWord(r) }

// MatchRune implements RuneMatcher.
func (*Wildcard) MatchRune(rune) bool { return true }

// MatchRune implements RuneMatcher.
func (n *CharClass) MatchRune(r rune) bool {
	return IsAnyOf(n.Chars, r) != n.Negated
}

func (n *Literal) String() string {
	return "Literal(" + strconv.QuoteRune(n.Char) + ")"
}

func (*Digit) String() string       { return "Digit" }
func (*Word) String() string        { return "Word" }
func (*Wildcard) String() string    { return "Wildcard" }
func (*StartAnchor) String() string { return "StartAnchor" }
func (*EndAnchor) String() string   { return "EndAnchor" }

func (n *CharClass) String() string {
	var b strings.Builder
	b.WriteString("CharClass[")
	if n.Negated {
		b.WriteByte('^')
	}
	b.WriteString(string(n.Chars))
	b.WriteByte(']')
	return b.String()
}

func (n *OneOrMore) String() string {
	return "OneOrMore(" + n.Sub.String() + ")"
}

func (n *ZeroOrOne) String() string {
	return "ZeroOrOne(" + n.Sub.String() + ")"
}

func (n *CaptureGroup) String() string {
	var b strings.Builder
	b.WriteString("CaptureGroup#")
	b.WriteString(strconv.Itoa(n.ID))
	b.WriteByte('(')
	for i, opt := range n.Options {
		if i > 0 {
			b.WriteString(" | ")
		}
		writeNodes(&b, opt)
	}
	b.WriteByte(')')
	return b.String()
}

func (n *BackReference) String() string {
	return "BackReference(" + strconv.Itoa(n.ID) + ")"
}

func writeNodes(b *strings.Builder, nodes []Node) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.String())
	}
}

// Pattern is a compiled pattern tree.
type Pattern struct {
	// Nodes is the top-level node sequence. A StartAnchor can only
	// appear as Nodes[0].
	Nodes []Node

	// NumGroups is the number of capture groups; ids run from 1 to NumGroups.
	NumGroups int
}

// Anchored reports whether the pattern begins with a start anchor.
func (p *Pattern) Anchored() bool {
	if len(p.Nodes) == 0 {
		return false
	}
	_, ok := p.Nodes[0].(*StartAnchor)
	return ok
}

// Body returns the node sequence without a leading start anchor.
func (p *Pattern) Body() []Node {
	if p.Anchored() {
		return p.Nodes[1:]
	}
	return p.Nodes
}

// String renders the pattern tree for debugging.
func (p *Pattern) String() string {
	var b strings.Builder
	writeNodes(&b, p.Nodes)
	return b.String()
}
