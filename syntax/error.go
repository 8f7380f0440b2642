package syntax

import "errors"

// ErrPattern is matched by every pattern syntax error:
//
//	if errors.Is(err, syntax.ErrPattern) { ... }
var ErrPattern = errors.New("invalid pattern")

// ErrorCode describes a failure to parse a pattern.
type ErrorCode string

const (
	ErrMissingBracket        ErrorCode = "missing closing ]"
	ErrMissingParen          ErrorCode = "missing closing )"
	ErrMismatchedBrackets    ErrorCode = "mismatched bracket kinds"
	ErrInvalidClassToken     ErrorCode = "invalid token in character class"
	ErrInvalidEscape         ErrorCode = "unrecognized escape sequence"
	ErrTrailingBackslash     ErrorCode = "trailing backslash at end of expression"
	ErrMissingRepeatArgument ErrorCode = "quantifier without preceding atom"
	ErrNestedRepeat          ErrorCode = "nested quantifiers unsupported"
	ErrInvalidRepeatArgument ErrorCode = "invalid quantifier argument"
	ErrInvalidBackref        ErrorCode = "backreference to undefined group"
	ErrUnexpectedToken       ErrorCode = "unexpected token"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error describes a failure to parse a pattern and gives the offending
// expression.
type Error struct {
	Code ErrorCode
	Expr string
}

func (e *Error) Error() string {
	return "error parsing pattern: " + e.Code.String() + ": `" + e.Expr + "`"
}

// Is makes every *Error match ErrPattern.
func (e *Error) Is(target error) bool {
	return target == ErrPattern
}

func newError(code ErrorCode, toks []Token) *Error {
	return &Error{Code: code, Expr: tokensString(toks)}
}

func tokensString(toks []Token) string {
	rs := make([]rune, len(toks))
	for i, t := range toks {
		rs[i] = t.Char
	}
	return string(rs)
}
