package meta

import (
	"errors"

	"github.com/coregx/btgrep/literal"
	"github.com/coregx/btgrep/prefilter"
	"github.com/coregx/btgrep/syntax"
)

// Compile compiles a pattern string into an executable Engine.
//
// Steps:
//  1. Tokenize and parse the pattern into a pattern tree
//  2. Extract prefix literals
//  3. Build a prefilter (if literals exist)
//
// Example:
//
//	engine, err := meta.Compile(`(\w+) and \1`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.MaxLiterals = 8
//	engine, err := meta.CompileWithConfig("(a|b|c)x", config)
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	pat, err := syntax.ParseString(pattern)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}

	return CompilePattern(pat, config)
}

// CompilePattern builds an Engine from an already parsed pattern tree.
// The tree must not be modified afterwards.
func CompilePattern(pat *syntax.Pattern, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var pf prefilter.Prefilter
	if config.EnablePrefilter {
		extractor := literal.New(literal.ExtractorConfig{
			MaxLiterals:   config.MaxLiterals,
			MaxLiteralLen: config.MaxLiteralLen,
			MaxClassSize:  literal.DefaultConfig().MaxClassSize,
		})
		pf = prefilter.NewBuilder(extractor.ExtractPrefixes(pat)).Build()
	}

	literalLen := 0
	if pf != nil && pf.IsComplete() {
		literalLen = pf.LiteralLen()
	}

	return &Engine{
		pattern:         pat,
		body:            pat.Body(),
		isStartAnchored: pat.Anchored(),
		prefilter:       pf,
		literalLen:      literalLen,
		config:          config,
		statePool:       newSearchStatePool(),
	}, nil
}

// CompileError represents a pattern compilation error.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
// Parse errors are returned unchanged since they already carry the pattern.
func (e *CompileError) Error() string {
	var syntaxErr *syntax.Error
	if errors.As(e.Err, &syntaxErr) {
		return e.Err.Error()
	}
	return "btgrep: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
