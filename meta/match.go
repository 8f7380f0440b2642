package meta

// Match represents a successful match with position information.
//
// A Match contains:
//   - Start position (inclusive)
//   - End position (exclusive)
//   - Reference to the original haystack
//   - Capture group texts, when produced by FindSubmatch
//
// Example:
//
//	match := meta.NewMatch(5, 11, []byte("test foo123 end"))
//	println(match.String()) // "foo123"
//	println(match.Start(), match.End()) // 5, 11
type Match struct {
	start    int
	end      int
	haystack []byte

	// groups[i] is the text of capture group i+1, nil if unbound.
	groups [][]byte
}

// NewMatch creates a new Match from start and end positions.
//
// The haystack is stored by reference (not copied).
// Callers must ensure the haystack remains valid for the lifetime of the Match.
func NewMatch(start, end int, haystack []byte) *Match {
	return &Match{
		start:    start,
		end:      end,
		haystack: haystack,
	}
}

// Start returns the inclusive start position of the match.
func (m *Match) Start() int {
	return m.start
}

// End returns the exclusive end position of the match.
func (m *Match) End() int {
	return m.end
}

// Len returns the length of the match in bytes.
func (m *Match) Len() int {
	return m.end - m.start
}

// Bytes returns the matched bytes as a slice.
//
// The returned slice is a view into the original haystack (not a copy).
func (m *Match) Bytes() []byte {
	if m.start < 0 || m.end > len(m.haystack) || m.start > m.end {
		return nil
	}
	return m.haystack[m.start:m.end]
}

// String returns the matched text as a string.
func (m *Match) String() string {
	return string(m.Bytes())
}

// IsEmpty returns true if the match has zero length.
//
// Empty matches occur with patterns like "a?" or "$" that can match
// without consuming input.
func (m *Match) IsEmpty() bool {
	return m.start == m.end
}

// Contains returns true if start <= pos < end.
func (m *Match) Contains(pos int) bool {
	return pos >= m.start && pos < m.end
}

// NumGroups returns the number of capture groups recorded in the match.
// It is zero for matches returned by Find.
func (m *Match) NumGroups() int {
	return len(m.groups)
}

// Group returns the text of capture group i. Group 0 is the whole match.
// An unbound group, or an index out of range, returns nil.
//
// Example:
//
//	engine, _ := meta.Compile(`(\w+)@(\w+)`)
//	m := engine.FindSubmatch([]byte("mail bob@host now"))
//	println(string(m.Group(2))) // "host"
func (m *Match) Group(i int) []byte {
	if i == 0 {
		return m.Bytes()
	}
	if i < 0 || i > len(m.groups) {
		return nil
	}
	return m.groups[i-1]
}
