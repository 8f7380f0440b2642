// Package btgrep provides a backtracking pattern matcher for filtering
// lines of text, with the syntax of a small subset of extended regular
// expressions.
//
// Supported syntax:
//   - literal characters, '.' wildcard
//   - \d digit, \w word character (ASCII letters, digits, underscore), \\ backslash
//   - [abc] and [^abc] character classes (no ranges)
//   - ^ start anchor (first position of the pattern only), $ end anchor
//   - + one or more, ? zero or one (postfix, not nested)
//   - (a|b|...) alternation with a numbered capture group
//   - \1 .. \9 backreferences
//
// Matching is classic recursive backtracking, so backreferences are
// supported and the worst case is exponential in the pattern size.
//
// Basic usage:
//
//	re, err := btgrep.Compile(`(\d+) (\w+) squares and \1 \2 circles`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if re.MatchString("3 red squares and 3 red circles") {
//	    fmt.Println("matched!")
//	}
//
// Advanced usage:
//
//	// Try every offset instead of skipping with the literal prefilter
//	config := btgrep.DefaultConfig()
//	config.EnablePrefilter = false
//	re, err := btgrep.CompileWithConfig(`error: \w+`, config)
package btgrep

import (
	"github.com/coregx/btgrep/meta"
)

// Regex represents a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := btgrep.MustCompile(`hello`)
//	if re.Match([]byte("hello world")) {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a pattern.
//
// Returns an error if the pattern is invalid; errors.Is(err,
// syntax.ErrPattern) holds for every syntax error.
//
// Example:
//
//	re, err := btgrep.Compile(`\d+ apples?`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, meta.DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var dateLine = btgrep.MustCompile(`^\d\d\d\d-\d\d-\d\d `)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("btgrep: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := btgrep.DefaultConfig()
//	config.MaxLiterals = 8
//	re, err := btgrep.CompileWithConfig("(a|b|c)x", config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass to CompileWithConfig.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// MatchString reports whether the string s contains any match of pattern.
// More complicated queries need to use Compile and the full Regex interface.
//
// Example:
//
//	ok, err := btgrep.MatchString(`^log`, "log in")
//	// ok == true, err == nil
func MatchString(pattern string, s string) (matched bool, err error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// Match reports whether the byte slice b contains any match of pattern.
func Match(pattern string, b []byte) (matched bool, err error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.Match(b), nil
}

// Match reports whether the byte slice b contains any match of the pattern.
//
// Example:
//
//	re := btgrep.MustCompile(`\d+`)
//	re.Match([]byte("hello 123")) // true
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether the string s contains any match of the pattern.
//
// Example:
//
//	re := btgrep.MustCompile(`dogs?$`)
//	re.MatchString("hot dog") // true
func (r *Regex) MatchString(s string) bool {
	return r.engine.IsMatch([]byte(s))
}

// Find returns a slice holding the text of the first match in b.
// Returns nil if no match is found.
//
// Example:
//
//	re := btgrep.MustCompile(`\d+`)
//	match := re.Find([]byte("age: 42"))
//	// match = []byte("42")
func (r *Regex) Find(b []byte) []byte {
	match := r.engine.Find(b)
	if match == nil {
		return nil
	}
	return match.Bytes()
}

// FindString returns a string holding the text of the first match in s.
// Returns empty string if no match is found.
func (r *Regex) FindString(s string) string {
	match := r.engine.Find([]byte(s))
	if match == nil {
		return ""
	}
	return match.String()
}

// FindIndex returns a two-element slice of integers defining the location of
// the first match in b: b[loc[0]:loc[1]].
// Returns nil if no match is found.
//
// Example:
//
//	re := btgrep.MustCompile(`dog`)
//	loc := re.FindIndex([]byte("hot dog"))
//	// loc = [4, 7]
func (r *Regex) FindIndex(b []byte) []int {
	match := r.engine.Find(b)
	if match == nil {
		return nil
	}
	return []int{match.Start(), match.End()}
}

// FindStringIndex returns a two-element slice of integers defining the
// location of the first match in s.
// Returns nil if no match is found.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindSubmatch returns a slice holding the text of the first match and the
// text of every capture group.
//
// A return value of nil indicates no match.
// Result[0] is the entire match, result[i] is the ith capture group.
// Groups that did not take part in the match are nil.
//
// Example:
//
//	re := btgrep.MustCompile(`(\w+)@(\w+)`)
//	match := re.FindSubmatch([]byte("mail bob@host"))
//	// match[0] = "bob@host"
//	// match[1] = "bob"
//	// match[2] = "host"
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	match := r.engine.FindSubmatch(b)
	if match == nil {
		return nil
	}

	result := make([][]byte, match.NumGroups()+1)
	for i := range result {
		result[i] = match.Group(i)
	}
	return result
}

// FindStringSubmatch returns a slice of strings holding the text of the
// first match and the text of every capture group. Groups that did not
// take part in the match are empty strings.
func (r *Regex) FindStringSubmatch(s string) []string {
	match := r.engine.FindSubmatch([]byte(s))
	if match == nil {
		return nil
	}

	result := make([]string, match.NumGroups()+1)
	for i := range result {
		result[i] = string(match.Group(i))
	}
	return result
}

// FindAll returns a slice of all successive non-overlapping matches of the
// pattern in b. If n > 0, it returns at most n matches. If n < 0, it
// returns all matches.
//
// Example:
//
//	re := btgrep.MustCompile(`\d+`)
//	matches := re.FindAll([]byte("1 2 3"), -1)
//	// matches = [[]byte("1"), []byte("2"), []byte("3")]
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	indices := r.engine.FindAllIndices(b, n)
	if indices == nil {
		return nil
	}

	matches := make([][]byte, len(indices))
	for i, idx := range indices {
		matches[i] = b[idx[0]:idx[1]:idx[1]]
	}
	return matches
}

// FindAllString returns a slice of all successive matches of the pattern in s.
// If n > 0, it returns at most n matches. If n < 0, it returns all matches.
func (r *Regex) FindAllString(s string, n int) []string {
	indices := r.engine.FindAllIndices([]byte(s), n)
	if indices == nil {
		return nil
	}

	result := make([]string, len(indices))
	for i, idx := range indices {
		result[i] = s[idx[0]:idx[1]]
	}
	return result
}

// FindAllIndex returns the index pairs of all successive matches of the
// pattern in b. If n > 0, it returns at most n matches.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	indices := r.engine.FindAllIndices(b, n)
	if indices == nil {
		return nil
	}

	result := make([][]int, len(indices))
	for i, idx := range indices {
		result[i] = []int{idx[0], idx[1]}
	}
	return result
}

// Count returns the number of non-overlapping matches in b.
// If n > 0, counts at most n matches.
func (r *Regex) Count(b []byte, n int) int {
	return r.engine.Count(b, n)
}

// String returns the source text used to compile the pattern.
//
// Example:
//
//	re := btgrep.MustCompile(`\d+`)
//	println(re.String()) // `\d+`
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of capture groups in the pattern.
//
// Example:
//
//	re := btgrep.MustCompile(`(a(b|c))\2`)
//	println(re.NumSubexp()) // 2
func (r *Regex) NumSubexp() int {
	return r.engine.NumCaptures()
}

// Stats returns the engine's execution statistics.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}
