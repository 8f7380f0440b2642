// Command btgrep prints the lines of its input that match a pattern.
//
// Usage:
//
//	btgrep [-r] [-o] [-v] [-c] [-H] [-h] [--color=auto|always|never] [--debug] -E pattern [path...]
//
// With no path the standard input is searched. With -r every regular file
// below each path is searched, and "." is used when no path is given.
// Output lines carry a "path:" prefix when more than one file can be
// searched; -H forces the prefix and -h suppresses it. Flags may follow
// paths, and "--" ends flag parsing.
//
// The exit status is 0 if a line was selected, 1 if none was, and 2 if an
// error occurred.
package main

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/coregx/btgrep"
)

// Exit statuses.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitTrouble = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitMatch
	}
	if err != nil {
		return exitTrouble
	}

	logger := newLogger(stderr, opts.debug)

	re, err := btgrep.Compile(opts.pattern)
	if err != nil {
		logger.Error("invalid pattern", "pattern", opts.pattern, "err", err)
		return exitTrouble
	}
	logger.Debug("compiled pattern",
		"pattern", re.String(),
		"groups", re.NumSubexp(),
		"prefilter_bytes", re.Stats().PrefilterHeapBytes,
	)

	out := bufio.NewWriter(stdout)
	g := &grep{
		re:       re,
		opts:     opts,
		out:      out,
		logger:   logger,
		color:    useColor(opts.color, stdout),
		withName: opts.withFilename(),
	}
	g.searchAll(stdin)

	if err := out.Flush(); err != nil {
		logger.Error("write failed", "err", err)
		g.trouble = true
	}

	stats := re.Stats()
	logger.Debug("search finished",
		"searches", stats.Searches,
		"attempts", stats.Attempts,
		"prefilter_hits", stats.PrefilterHits,
		"prefilter_misses", stats.PrefilterMisses,
		"prefilter_shortcuts", stats.PrefilterShortcuts,
	)

	switch {
	case g.trouble:
		return exitTrouble
	case g.matched:
		return exitMatch
	default:
		return exitNoMatch
	}
}

// newLogger returns a text logger for diagnostics. Records carry no
// timestamp so that output is stable across runs.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// useColor resolves a --color mode against the output stream.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case colorAlways:
		return true
	case colorAuto:
		f, ok := w.(*os.File)
		return ok && isTerminal(f.Fd())
	default:
		return false
	}
}
