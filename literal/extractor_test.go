package literal

import (
	"sort"
	"testing"

	"github.com/coregx/btgrep/syntax"
)

func extractPrefixes(t *testing.T, config ExtractorConfig, pattern string) *Seq {
	t.Helper()
	pat, err := syntax.ParseString(pattern)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", pattern, err)
	}
	return New(config).ExtractPrefixes(pat)
}

func seqStrings(s *Seq) []string {
	out := make([]string, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		out = append(out, string(s.Get(i).Bytes))
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		pattern  string
		want     []string
		complete bool
	}{
		// Literal runs
		{"hello", []string{"hello"}, true},
		{"hello world", []string{"hello world"}, true},
		{"日本", []string{"日本"}, true},
		{`a\\b`, []string{`a\b`}, true},

		// Stops at the first non-literal node
		{`abc\d`, []string{"abc"}, false},
		{"abc.", []string{"abc"}, false},
		{"abc$", []string{"abc"}, false},
		{"cats?", []string{"cat"}, false},
		{"ca+t", []string{"ca"}, false},
		{"a+", []string{"a"}, false},

		// Alternation
		{"(cat|dog)", []string{"cat", "dog"}, true},
		{"(cat|dog)s", []string{"cats", "dogs"}, true},
		{`(cat|dog) \d`, []string{"cat ", "dog "}, false},
		{"x(a|b)(c|d)", []string{"xac", "xad", "xbc", "xbd"}, true},
		{"(a(b|c)|d)e", []string{"abe", "ace", "de"}, true},
		{"(ab?|c)d", []string{"a", "c"}, false},

		// Small classes expand
		{"[abc]x", []string{"ax", "bx", "cx"}, true},
		{"[aa]", []string{"a"}, true},
		{"[ab]+c", []string{"a", "b"}, false},

		// No usable prefix
		{`\d+`, nil, false},
		{`\w`, nil, false},
		{".", nil, false},
		{"a?b", nil, false},
		{"(a|b?)c", nil, false},
		{"(a|)c", nil, false},
		{"[^abc]", nil, false},
		{"[]", nil, false},
		{"[abcdefghijk]", nil, false},
		{"$", nil, false},
		{"", nil, false},

		// Anchored patterns are tried at offset 0 only
		{"^abc", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			seq := extractPrefixes(t, DefaultConfig(), tt.pattern)
			got := seqStrings(seq)
			if !equalStrings(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Fatalf("ExtractPrefixes(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
			if seq.AllComplete() != tt.complete {
				t.Errorf("ExtractPrefixes(%q).AllComplete() = %v, want %v", tt.pattern, seq.AllComplete(), tt.complete)
			}
		})
	}
}

func TestExtractPrefixesBackreference(t *testing.T) {
	seq := extractPrefixes(t, DefaultConfig(), `(a+) \1`)
	if got := seqStrings(seq); !equalStrings(got, []string{"a"}) {
		t.Errorf("got %q, want [a]", got)
	}
	if seq.AllComplete() {
		t.Error("backreference pattern reported complete")
	}
}

func TestExtractPrefixesReplacementChar(t *testing.T) {
	seq := extractPrefixes(t, DefaultConfig(), "a�b")
	if got := seqStrings(seq); !equalStrings(got, []string{"a"}) {
		t.Errorf("got %q, want [a]", got)
	}
	seq = extractPrefixes(t, DefaultConfig(), "�")
	if !seq.IsEmpty() {
		t.Errorf("got %q, want empty", seqStrings(seq))
	}
}

func TestExtractPrefixesLimits(t *testing.T) {
	t.Run("max literals", func(t *testing.T) {
		config := DefaultConfig()
		config.MaxLiterals = 3
		seq := extractPrefixes(t, config, "x(a|b)(c|d)")
		if got := seqStrings(seq); !equalStrings(got, []string{"xa", "xb"}) {
			t.Errorf("got %q, want [xa xb]", got)
		}
		if seq.AllComplete() {
			t.Error("truncated set reported complete")
		}
	})

	t.Run("group wider than limit", func(t *testing.T) {
		config := DefaultConfig()
		config.MaxLiterals = 2
		seq := extractPrefixes(t, config, "(a|b|c)")
		if !seq.IsEmpty() {
			t.Errorf("got %q, want empty", seqStrings(seq))
		}
	})

	t.Run("max literal length", func(t *testing.T) {
		config := DefaultConfig()
		config.MaxLiteralLen = 4
		seq := extractPrefixes(t, config, "abcdefgh")
		if got := seqStrings(seq); !equalStrings(got, []string{"abcd"}) {
			t.Errorf("got %q, want [abcd]", got)
		}
		if seq.AllComplete() {
			t.Error("truncated literal reported complete")
		}
	})

	t.Run("class size", func(t *testing.T) {
		config := DefaultConfig()
		config.MaxClassSize = 2
		seq := extractPrefixes(t, config, "x[abc]")
		if got := seqStrings(seq); !equalStrings(got, []string{"x"}) {
			t.Errorf("got %q, want [x]", got)
		}
	})
}

func TestExtractPrefixesNil(t *testing.T) {
	if seq := New(DefaultConfig()).ExtractPrefixes(nil); !seq.IsEmpty() {
		t.Error("ExtractPrefixes(nil) is not empty")
	}
}
