package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present. It is equivalent to bytes.Index.
//
// The search picks the needle byte least likely to occur in text (see
// byteFrequencies), scans for it with Memchr and verifies the full needle around
// each hit.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab"))
//	// pos == 4
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare, offset := rareByte(needle)
	last := len(haystack) - len(needle)
	for from := offset; from < len(haystack); {
		hit := Memchr(haystack[from:], rare)
		if hit < 0 {
			return -1
		}
		start := from + hit - offset
		if start > last {
			return -1
		}
		if bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		from += hit + 1
	}
	return -1
}

// rareByte returns the byte of needle with the lowest frequency rank and
// its index. Ties go to the later byte.
func rareByte(needle []byte) (byte, int) {
	best := len(needle) - 1
	for i := len(needle) - 2; i >= 0; i-- {
		if byteFrequencies[needle[i]] < byteFrequencies[needle[best]] {
			best = i
		}
	}
	return needle[best], best
}
