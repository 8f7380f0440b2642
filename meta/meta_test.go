package meta

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/coregx/btgrep/syntax"
)

func mustCompile(t testing.TB, pattern string, config Config) *Engine {
	t.Helper()
	engine, err := CompileWithConfig(pattern, config)
	if err != nil {
		t.Fatalf("CompileWithConfig(%q): %v", pattern, err)
	}
	return engine
}

func noPrefilter() Config {
	config := DefaultConfig()
	config.EnablePrefilter = false
	return config
}

var isMatchTests = []struct {
	pattern string
	text    string
	want    bool
}{
	// Single characters
	{"d", "dog", true},
	{"f", "dog", false},
	{"g", "dog", true},
	{"é", "café", true},

	// Classes
	{`\d`, "abc123", true},
	{`\d`, "abc", false},
	{`\w`, "$!?w", true},
	{`\w`, "$!?", false},
	{`\w`, "_", true},
	{"[abc]", "xyzb", true},
	{"[abc]", "xyz", false},
	{"[^abc]", "abcd", true},
	{"[^abc]", "cab", false},
	{"[^abc]", "", false},
	{"[]", "anything", false},
	{"[^]", "x", true},

	// Anchors
	{"^log", "log", true},
	{"^log", "slog", false},
	{"dog$", "dog", true},
	{"dog$", "dogs", false},
	{"^$", "", true},
	{"^$", "x", false},
	{"$", "abc", true},
	{"^", "abc", true},
	{"^a^", "a^b", true},

	// Quantifiers
	{"ca+ts", "caats", true},
	{"ca+ts", "cts", false},
	{"dogs?", "dog", true},
	{"dogs?", "dogs", true},
	{"ca?t", "ct", true},
	{"a+a", "aaa", true},
	{"a+a", "a", false},
	{".+", "", false},
	{"x?", "", true},

	// Wildcard
	{"d.g", "dog", true},
	{"d.g", "dg", false},
	{"g.+gol", "goøö0Ogol", true},

	// Alternation, capture, backreference
	{"(cat|dog)", "a dog", true},
	{"(cat|dog)", "a cow", false},
	{`(cat) and \1`, "cat and cat", true},
	{`(cat) and \1`, "cat and dog", false},
	{`(\d+) (\w+) squares and \1 \2 circles`, "3 red squares and 3 red circles", true},
	{`(\d+) (\w+) squares and \1 \2 circles`, "3 red squares and 4 red circles", false},
	{`(\d+) (\w+) squares and \1 \2 circles`, "3 red squares and 3 blue circles", false},
	{`^(\w+) starts and ends with \1$`, "this starts and ends with this", true},
	{`^(\w+) starts and ends with \1$`, "that starts and ends with this", false},
	{`(a|b)?\1`, "x", false},

	// Overlapping prefix literals
	{`(abcd|bc)\d`, "abcd1", true},
	{`(abcd|bc)\d`, "abcdx", false},
	{`(abcd|bc)\d`, "abcx1", false},
	{`(abcdef|cd|de)!`, "abcdef!", true},
	{`(north|south|east|west) wind`, "a cold northwest wind", true},

	// Offsets are by rune
	{"^日", "日本", true},
	{"本$", "日本", true},
	{"語", "日本語", true},
}

func TestIsMatch(t *testing.T) {
	for _, tt := range isMatchTests {
		for _, config := range []Config{DefaultConfig(), noPrefilter()} {
			name := fmt.Sprintf("%s/%s/prefilter=%v", tt.pattern, tt.text, config.EnablePrefilter)
			t.Run(name, func(t *testing.T) {
				engine := mustCompile(t, tt.pattern, config)
				if got := engine.IsMatch([]byte(tt.text)); got != tt.want {
					t.Errorf("IsMatch(%q) = %v, want %v", tt.text, got, tt.want)
				}
				if got := engine.Find([]byte(tt.text)) != nil; got != tt.want {
					t.Errorf("Find(%q) != nil is %v, want %v", tt.text, got, tt.want)
				}
			})
		}
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		pattern   string
		text      string
		wantStart int
		wantEnd   int
	}{
		{"dog", "hot dog stand", 4, 7},
		{`\d+`, "age: 42 years", 5, 7},
		{"a+", "baaab", 1, 4},
		{"(a|ab)", "ab", 0, 1},
		{"(ab|a)", "ab", 0, 2},
		{"x?", "abc", 0, 0},
		{"$", "abc", 3, 3},
		{"^ab", "abab", 0, 2},
		{"本", "日本", 3, 6},
		{`(\w+) \1`, "say bye bye now", 4, 11},
	}

	for _, tt := range tests {
		for _, config := range []Config{DefaultConfig(), noPrefilter()} {
			t.Run(fmt.Sprintf("%s/prefilter=%v", tt.pattern, config.EnablePrefilter), func(t *testing.T) {
				engine := mustCompile(t, tt.pattern, config)
				m := engine.Find([]byte(tt.text))
				if m == nil {
					t.Fatalf("Find(%q) = nil", tt.text)
				}
				if m.Start() != tt.wantStart || m.End() != tt.wantEnd {
					t.Errorf("Find(%q) = [%d, %d], want [%d, %d]", tt.text, m.Start(), m.End(), tt.wantStart, tt.wantEnd)
				}
			})
		}
	}
}

func TestFindAt(t *testing.T) {
	engine := mustCompile(t, "ab", DefaultConfig())
	hay := []byte("ab ab")

	if m := engine.FindAt(hay, 1); m == nil || m.Start() != 3 {
		t.Errorf("FindAt(1) = %v, want start 3", m)
	}
	if m := engine.FindAt(hay, 4); m != nil {
		t.Errorf("FindAt(4) = %v, want nil", m)
	}
	if m := engine.FindAt(hay, 99); m != nil {
		t.Errorf("FindAt(99) = %v, want nil", m)
	}

	anchored := mustCompile(t, "^ab", DefaultConfig())
	if m := anchored.FindAt(hay, 3); m != nil {
		t.Errorf("anchored FindAt(3) = %v, want nil", m)
	}

	end := mustCompile(t, "b$", DefaultConfig())
	if m := end.FindAt(hay, 2); m == nil || m.Start() != 4 {
		t.Errorf("FindAt with $ = %v, want start 4", m)
	}
}

func TestFindSubmatch(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		groups  []string // nil entry written as "<nil>"
	}{
		{`(\d+) (\w+)`, "I see 3 dogs", []string{"3 dogs", "3", "dogs"}},
		{`(\w+)@(\w+)`, "mail bob@host now", []string{"bob@host", "bob", "host"}},
		{`(a(b|c))d`, "xacd", []string{"acd", "ac", "c"}},
		{`x(y)?z`, "xz", []string{"xz", "<nil>"}},
		{`(cat|dog)s?`, "dogs", []string{"dogs", "dog"}},
		{`no groups`, "no groups here", []string{"no groups"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			engine := mustCompile(t, tt.pattern, DefaultConfig())
			m := engine.FindSubmatch([]byte(tt.text))
			if m == nil {
				t.Fatalf("FindSubmatch(%q) = nil", tt.text)
			}
			if m.NumGroups() != len(tt.groups)-1 {
				t.Fatalf("NumGroups() = %d, want %d", m.NumGroups(), len(tt.groups)-1)
			}
			for i, want := range tt.groups {
				got := m.Group(i)
				if want == "<nil>" {
					if got != nil {
						t.Errorf("Group(%d) = %q, want nil", i, got)
					}
					continue
				}
				if string(got) != want {
					t.Errorf("Group(%d) = %q, want %q", i, got, want)
				}
			}
		})
	}

	engine := mustCompile(t, `(a)`, DefaultConfig())
	if m := engine.FindSubmatch([]byte("xyz")); m != nil {
		t.Errorf("FindSubmatch(xyz) = %v, want nil", m)
	}
}

// Bindings made at a failed offset must not leak into the next one.
func TestFreshBindingsPerOffset(t *testing.T) {
	engine := mustCompile(t, `(a|b)x\1`, noPrefilter())
	m := engine.FindSubmatch([]byte("ay bxb"))
	if m == nil {
		t.Fatal("FindSubmatch = nil")
	}
	if m.Start() != 3 || string(m.Group(1)) != "b" {
		t.Errorf("match at %d group %q, want 3 and \"b\"", m.Start(), m.Group(1))
	}
}

func TestFindAllIndices(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		n       int
		want    [][2]int
	}{
		{`\d+`, "1 22 333", -1, [][2]int{{0, 1}, {2, 4}, {5, 8}}},
		{`\d+`, "1 22 333", 2, [][2]int{{0, 1}, {2, 4}}},
		{`\d+`, "1 22 333", 0, nil},
		{`\d+`, "none", -1, nil},
		{"a?", "ab", -1, [][2]int{{0, 1}, {2, 2}}},
		{"x?", "日本", -1, [][2]int{{0, 0}, {3, 3}, {6, 6}}},
		{"^a", "aaa", -1, [][2]int{{0, 1}}},
		{"(cat|dog)", "cat dog cow", -1, [][2]int{{0, 3}, {4, 7}}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s/%d", tt.pattern, tt.text, tt.n), func(t *testing.T) {
			engine := mustCompile(t, tt.pattern, DefaultConfig())
			got := engine.FindAllIndices([]byte(tt.text), tt.n)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("FindAllIndices = %v, want %v", got, tt.want)
			}
			if c := engine.Count([]byte(tt.text), tt.n); c != len(tt.want) {
				t.Errorf("Count = %d, want %d", c, len(tt.want))
			}
		})
	}

	engine := mustCompile(t, "o+", DefaultConfig())
	matches := engine.FindAll([]byte("foo boo"), -1)
	var texts []string
	for _, m := range matches {
		texts = append(texts, m.String())
	}
	if strings.Join(texts, ",") != "oo,oo" {
		t.Errorf("FindAll = %q, want [oo oo]", texts)
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("(abc")
	if err == nil {
		t.Fatal("Compile((abc) succeeded")
	}
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not *CompileError", err)
	}
	if ce.Pattern != "(abc" {
		t.Errorf("Pattern = %q", ce.Pattern)
	}
	if !errors.Is(err, syntax.ErrPattern) {
		t.Error("errors.Is(err, syntax.ErrPattern) = false")
	}
	var se *syntax.Error
	if !errors.As(err, &se) || se.Code != syntax.ErrMissingParen {
		t.Errorf("syntax error code = %v, want %v", se, syntax.ErrMissingParen)
	}
	if err.Error() != se.Error() {
		t.Errorf("Error() = %q, want the parse error %q", err.Error(), se.Error())
	}
}

func TestEngineAccessors(t *testing.T) {
	engine := mustCompile(t, `^(a|(b))\2`, DefaultConfig())
	if !engine.IsStartAnchored() {
		t.Error("IsStartAnchored() = false")
	}
	if engine.NumCaptures() != 2 {
		t.Errorf("NumCaptures() = %d, want 2", engine.NumCaptures())
	}
	if engine.HasPrefilter() {
		t.Error("anchored pattern has a prefilter")
	}
	if engine.Pattern() == nil {
		t.Error("Pattern() = nil")
	}

	if !mustCompile(t, "hello", DefaultConfig()).HasPrefilter() {
		t.Error("literal pattern has no prefilter")
	}
	if mustCompile(t, "hello", noPrefilter()).HasPrefilter() {
		t.Error("prefilter built with EnablePrefilter=false")
	}
	if got := mustCompile(t, "x", noPrefilter()).Config(); got.EnablePrefilter {
		t.Errorf("Config() = %+v", got)
	}
}

func TestStats(t *testing.T) {
	engine := mustCompile(t, `ab\d`, DefaultConfig())
	engine.IsMatch([]byte("ab ab ab1"))

	stats := engine.Stats()
	if stats.Searches != 1 {
		t.Errorf("Searches = %d, want 1", stats.Searches)
	}
	if stats.PrefilterHits != 3 || stats.PrefilterMisses != 2 {
		t.Errorf("PrefilterHits = %d, PrefilterMisses = %d, want 3 and 2", stats.PrefilterHits, stats.PrefilterMisses)
	}
	if stats.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", stats.Attempts)
	}

	if stats.PrefilterHeapBytes != 2 {
		t.Errorf("PrefilterHeapBytes = %d, want 2", stats.PrefilterHeapBytes)
	}

	engine.ResetStats()
	if engine.Stats() != (Stats{PrefilterHeapBytes: 2}) {
		t.Errorf("after ResetStats: %+v", engine.Stats())
	}

	literalOnly := mustCompile(t, "(cat|dog)", DefaultConfig())
	literalOnly.IsMatch([]byte("hotdog"))
	if s := literalOnly.Stats(); s.PrefilterShortcuts != 1 || s.Attempts != 0 {
		t.Errorf("literal IsMatch stats = %+v, want one shortcut and no attempts", s)
	}
}

// A pattern that is an alternation of equal-length literals is answered by
// the prefilter alone, with the same results as the matcher.
func TestFindCompleteLiterals(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
	}{
		{"dog", "hot dog, cold dog"},
		{"(nw|ne|sw|se)!", "go ne! then sw! or nw"},
		{"(abcd|xbcy|bc|zz)", "abcd xbcy bc"},
		{"[abc]", "xaybzc"},
		{"本", "日本日本"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			fast := mustCompile(t, tt.pattern, DefaultConfig())
			slow := mustCompile(t, tt.pattern, noPrefilter())
			hay := []byte(tt.text)

			got := fast.FindAllIndices(hay, -1)
			want := slow.FindAllIndices(hay, -1)
			if fmt.Sprint(got) != fmt.Sprint(want) {
				t.Errorf("FindAllIndices = %v, want %v", got, want)
			}
			if m := fast.Find(hay); m == nil || m.Start() != want[0][0] || m.End() != want[0][1] {
				t.Errorf("Find = %v, want %v", m, want[0])
			}
		})
	}

	engine := mustCompile(t, "(nw|ne|sw|se)!", DefaultConfig())
	engine.FindAllIndices([]byte("ne! sw!"), -1)
	if s := engine.Stats(); s.Attempts != 0 || s.PrefilterShortcuts != 3 {
		t.Errorf("stats = %+v, want no attempts and three shortcuts", s)
	}

	// Options of different lengths still go through the matcher.
	mixed := mustCompile(t, "(ab|a)", DefaultConfig())
	if m := mixed.Find([]byte("xab")); m == nil || m.End() != 3 {
		t.Errorf("Find(xab) = %v, want [1, 3]", m)
	}
	if mixed.Stats().Attempts == 0 {
		t.Error("(ab|a) skipped the matcher")
	}
}

// Without a prefilter every rune boundary is tried, including the end.
func TestAttemptsEveryOffset(t *testing.T) {
	engine := mustCompile(t, `\d`, noPrefilter())
	engine.IsMatch([]byte("日本x"))
	if got := engine.Stats().Attempts; got != 4 {
		t.Errorf("Attempts = %d, want 4", got)
	}

	anchored := mustCompile(t, `^\d`, noPrefilter())
	anchored.IsMatch([]byte("abc"))
	if got := anchored.Stats().Attempts; got != 1 {
		t.Errorf("anchored Attempts = %d, want 1", got)
	}
}

func BenchmarkIsMatch(b *testing.B) {
	line := []byte(strings.Repeat("lorem ipsum dolor sit amet ", 20) + "user=alice id=42")
	for _, pattern := range []string{`id=\d+`, `(user|admin)=\w+`, `\d+$`} {
		for _, config := range []Config{DefaultConfig(), noPrefilter()} {
			engine := mustCompile(b, pattern, config)
			b.Run(fmt.Sprintf("%s/prefilter=%v", pattern, config.EnablePrefilter), func(b *testing.B) {
				b.SetBytes(int64(len(line)))
				for i := 0; i < b.N; i++ {
					engine.IsMatch(line)
				}
			})
		}
	}
}
