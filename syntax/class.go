package syntax

// Character predicates shared by the parser and the matcher.
// Classification is ASCII-only: runes outside ASCII are never digits,
// letters or word runes.

func isInRange(lo, hi, r rune) bool {
	return lo <= r && r <= hi
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return isInRange('0', '9', r)
}

// IsLetter reports whether r is an ASCII letter.
func IsLetter(r rune) bool {
	return isInRange('a', 'z', r) || isInRange('A', 'Z', r)
}

// IsWord reports whether r is an ASCII letter, digit or underscore (\w).
func IsWord(r rune) bool {
	return IsDigit(r) || IsLetter(r) || r == '_'
}

// IsAnyOf reports whether r is a member of set.
func IsAnyOf(set []rune, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}
