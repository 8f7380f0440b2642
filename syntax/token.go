// Package syntax parses btgrep patterns into pattern trees.
//
// Parsing happens in two stages:
//   - Tokenize maps every rune of the pattern to exactly one Token
//   - Parse consumes the tokens left to right and builds a Pattern
//
// The supported syntax is a restricted extended regular expression:
// literals, \d, \w, \\, [...] and [^...] classes, '.', a leading '^',
// '$', postfix '+' and '?', parenthesized alternation with implicit
// capture numbering, and \N backreferences.
//
// A Pattern is immutable once built and may be shared between goroutines.
package syntax

// TokenKind identifies the syntactic role of a single pattern rune.
type TokenKind uint8

const (
	// TokenLiteral is any rune without special meaning.
	TokenLiteral TokenKind = iota
	TokenBackslash
	TokenOpenParen
	TokenCloseParen
	TokenOpenBracket
	TokenCloseBracket
	TokenCaret
	TokenDollar
	TokenPlus
	TokenQuestion
	TokenDot
	TokenBar
)

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "Literal"
	case TokenBackslash:
		return "Backslash"
	case TokenOpenParen:
		return "OpenParen"
	case TokenCloseParen:
		return "CloseParen"
	case TokenOpenBracket:
		return "OpenBracket"
	case TokenCloseBracket:
		return "CloseBracket"
	case TokenCaret:
		return "Caret"
	case TokenDollar:
		return "Dollar"
	case TokenPlus:
		return "Plus"
	case TokenQuestion:
		return "QuestionMark"
	case TokenDot:
		return "Dot"
	case TokenBar:
		return "Bar"
	default:
		return "Unknown"
	}
}

// Token is one syntactic unit of a pattern.
// Char holds the source rune for every kind, so tokens can be rendered
// back into the pattern text they came from.
type Token struct {
	Kind TokenKind
	Char rune
}

// String returns the source rune of the token.
func (t Token) String() string {
	return string(t.Char)
}

// IsLiteral reports whether t is a literal token.
func (t Token) IsLiteral() bool {
	return t.Kind == TokenLiteral
}

// specialKinds maps the special runes to their token kinds.
var specialKinds = map[rune]TokenKind{
	'\\': TokenBackslash,
	'(':  TokenOpenParen,
	')':  TokenCloseParen,
	'[':  TokenOpenBracket,
	']':  TokenCloseBracket,
	'^':  TokenCaret,
	'$':  TokenDollar,
	'+':  TokenPlus,
	'?':  TokenQuestion,
	'.':  TokenDot,
	'|':  TokenBar,
}

// Tokenize converts a pattern into its token sequence.
//
// Every rune produces exactly one token. Runes outside the special set
// \ ( ) [ ] ^ $ + ? . | become TokenLiteral. Tokenize never fails:
// validity is checked by Parse.
//
// Example:
//
//	toks := syntax.Tokenize(`[^ab]\d`)
//	// [OpenBracket Caret Literal(a) Literal(b) CloseBracket Backslash Literal(d)]
func Tokenize(pattern string) []Token {
	tokens := make([]Token, 0, len(pattern))
	for _, r := range pattern {
		kind, ok := specialKinds[r]
		if !ok {
			kind = TokenLiteral
		}
		tokens = append(tokens, Token{Kind: kind, Char: r})
	}
	return tokens
}
