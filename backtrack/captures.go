package backtrack

// Captures maps capture group ids to the text they matched during one
// matching attempt.
//
// Each id is bound at most once at any moment. Binding a bound id or
// unbinding an unbound id panics with *InvariantError.
//
// Captures is not safe for concurrent use; every search owns its own.
type Captures struct {
	groups map[int][]byte
}

// NewCaptures returns an empty binding map.
func NewCaptures() *Captures {
	return &Captures{groups: make(map[int][]byte)}
}

// Bind records text as the match of group id.
func (c *Captures) Bind(id int, text []byte) {
	if _, ok := c.groups[id]; ok {
		invariant("Bind", "capture group %d is already bound", id)
	}
	c.groups[id] = text
}

// Unbind removes the binding of group id.
func (c *Captures) Unbind(id int) {
	if _, ok := c.groups[id]; !ok {
		invariant("Unbind", "capture group %d is not bound", id)
	}
	delete(c.groups, id)
}

// Get returns the text bound to group id.
func (c *Captures) Get(id int) ([]byte, bool) {
	text, ok := c.groups[id]
	return text, ok
}

// Len returns the number of bound groups.
func (c *Captures) Len() int {
	return len(c.groups)
}

// Reset removes all bindings.
func (c *Captures) Reset() {
	clear(c.groups)
}
