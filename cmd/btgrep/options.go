package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

var errMissingPattern = errors.New("missing -E pattern")

type options struct {
	pattern      string
	paths        []string
	recursive    bool
	onlyMatching bool
	invert       bool
	count        bool
	forceName    bool
	suppressName bool
	color        string
	debug        bool
}

// withFilename reports whether output lines carry a "path:" prefix.
func (o *options) withFilename() bool {
	if o.suppressName {
		return false
	}
	return o.forceName || o.recursive || len(o.paths) > 1
}

// parseArgs parses the command line (without the program name). Errors are
// reported to stderr together with the usage text before returning.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	flags := flag.NewFlagSet("btgrep", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: btgrep [-r] [-o] [-v] [-c] [-H] [-h] [--color=auto|always|never] [--debug] -E pattern [path...]")
		fmt.Fprintln(flags.Output(), "flags may follow paths; use -- before a path that starts with '-'")
		flags.PrintDefaults()
	}

	flags.StringVar(&opts.pattern, "E", "", "search for `pattern`")
	flags.BoolVar(&opts.recursive, "r", false, "search directories recursively")
	flags.BoolVar(&opts.onlyMatching, "o", false, "print only the matched parts of a line")
	flags.BoolVar(&opts.invert, "v", false, "select non-matching lines")
	flags.BoolVar(&opts.count, "c", false, "print only a count of selected lines per input")
	flags.BoolVar(&opts.forceName, "H", false, "print the file name for each match")
	flags.BoolVar(&opts.suppressName, "h", false, "never print file names")
	flags.StringVar(&opts.color, "color", colorAuto, "highlight matches: auto, always or never")
	flags.BoolVar(&opts.debug, "debug", false, "log debug diagnostics to stderr")

	operands, err := parseInterspersed(flags, args)
	if err != nil {
		return nil, err
	}

	switch {
	case !isFlagSet(flags, "E"):
		err = errMissingPattern
	case opts.color != colorAuto && opts.color != colorAlways && opts.color != colorNever:
		err = fmt.Errorf("invalid --color value %q: want auto, always or never", opts.color)
	}
	if err != nil {
		fmt.Fprintf(flags.Output(), "btgrep: %v\n", err)
		flags.Usage()
		return nil, err
	}

	opts.paths = operands
	if opts.recursive && len(opts.paths) == 0 {
		opts.paths = []string{"."}
	}
	return opts, nil
}

// parseInterspersed parses flags that may follow operands, as grep accepts
// "btgrep -E pat file -r". Everything after "--" is an operand.
func parseInterspersed(flags *flag.FlagSet, args []string) ([]string, error) {
	var operands []string
	for {
		if err := flags.Parse(args); err != nil {
			return nil, err
		}
		rest := flags.Args()
		if len(rest) == 0 {
			return operands, nil
		}
		// Parse consumes a "--" terminator and stops there.
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(operands, rest...), nil
		}
		operands = append(operands, rest[0])
		args = rest[1:]
	}
}

// isFlagSet reports whether the named flag appeared on the command line.
// An explicit empty pattern is valid and matches every line.
func isFlagSet(flags *flag.FlagSet, name string) bool {
	found := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
