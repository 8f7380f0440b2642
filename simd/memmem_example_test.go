package simd_test

import (
	"fmt"

	"github.com/coregx/btgrep/simd"
)

func ExampleMemmem() {
	pos := simd.Memmem([]byte("3 red squares"), []byte("squares"))
	fmt.Println(pos)
	// Output: 6
}

func ExampleMemchr2() {
	pos := simd.Memchr2([]byte("grep -E pattern"), '-', ' ')
	fmt.Println(pos)
	// Output: 4
}
