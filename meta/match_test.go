package meta

import "testing"

func TestMatch(t *testing.T) {
	hay := []byte("test foo123 end")
	m := NewMatch(5, 11, hay)

	if m.Start() != 5 || m.End() != 11 || m.Len() != 6 {
		t.Errorf("Start/End/Len = %d/%d/%d, want 5/11/6", m.Start(), m.End(), m.Len())
	}
	if m.String() != "foo123" {
		t.Errorf("String() = %q, want foo123", m.String())
	}
	if m.IsEmpty() {
		t.Error("IsEmpty() = true")
	}
	if !m.Contains(7) || m.Contains(11) || m.Contains(4) {
		t.Error("Contains is wrong at 4, 7 or 11")
	}
	if m.NumGroups() != 0 || m.Group(1) != nil {
		t.Errorf("NumGroups() = %d, Group(1) = %q", m.NumGroups(), m.Group(1))
	}
	if string(m.Group(0)) != "foo123" {
		t.Errorf("Group(0) = %q", m.Group(0))
	}
}

func TestMatchEmptyAndInvalid(t *testing.T) {
	if m := NewMatch(3, 3, []byte("abcdef")); !m.IsEmpty() || m.String() != "" {
		t.Errorf("empty match: IsEmpty=%v String=%q", m.IsEmpty(), m.String())
	}
	if m := NewMatch(2, 10, []byte("abc")); m.Bytes() != nil {
		t.Errorf("out of range Bytes() = %q, want nil", m.Bytes())
	}
	if m := NewMatch(1, 2, []byte("abc")); m.Group(-1) != nil {
		t.Error("Group(-1) != nil")
	}
}
