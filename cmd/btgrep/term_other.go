//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package main

// isTerminal always reports false; --color=auto never colors here.
func isTerminal(uintptr) bool {
	return false
}
