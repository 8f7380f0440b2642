package main

import (
	"bufio"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/coregx/btgrep"
)

// stdinLabel names the standard input in prefixes and diagnostics.
const stdinLabel = "(standard input)"

// maxLineSize bounds the length of a single input line.
const maxLineSize = 64 << 20

// SGR sequences in the form GNU grep emits them.
const (
	sgrMatch = "\x1b[01;31m\x1b[K"
	sgrName  = "\x1b[35m\x1b[K"
	sgrSep   = "\x1b[36m\x1b[K"
	sgrReset = "\x1b[m\x1b[K"
)

// grep searches inputs line by line and writes selected lines.
type grep struct {
	re       *btgrep.Regex
	opts     *options
	out      *bufio.Writer
	logger   *slog.Logger
	color    bool
	withName bool

	matched bool // a line was selected
	trouble bool // an input could not be read
}

func (g *grep) searchAll(stdin io.Reader) {
	if len(g.opts.paths) == 0 {
		g.searchReader(stdinLabel, stdin)
		return
	}

	for _, path := range g.opts.paths {
		if g.opts.recursive {
			g.walk(path)
			continue
		}
		g.searchFile(path)
	}
}

// walk searches every regular file below root in lexical order. Entries
// that cannot be read are reported and skipped.
func (g *grep) walk(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			g.fail("walk failed", path, err)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		g.searchFile(path)
		return nil
	})
	if err != nil {
		g.fail("walk failed", root, err)
	}
}

func (g *grep) searchFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		g.fail("open failed", path, err)
		return
	}
	defer f.Close()

	g.searchReader(path, f)
}

func (g *grep) searchReader(name string, r io.Reader) {
	g.logger.Debug("searching", "input", name)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	selected := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if g.re.Match(line) == g.opts.invert {
			continue
		}
		selected++
		if !g.opts.count {
			g.printLine(name, line)
		}
	}
	if err := scanner.Err(); err != nil {
		g.fail("read failed", name, err)
	}

	if g.opts.count {
		g.writePrefix(name)
		g.out.WriteString(strconv.Itoa(selected))
		g.out.WriteByte('\n')
	}
	if selected > 0 {
		g.matched = true
	}
}

func (g *grep) printLine(name string, line []byte) {
	if g.opts.onlyMatching {
		// Inverted lines have no matched parts to print.
		if g.opts.invert {
			return
		}
		for _, loc := range g.re.FindAllIndex(line, -1) {
			if loc[0] == loc[1] {
				continue
			}
			g.writePrefix(name)
			g.writeMatch(line[loc[0]:loc[1]])
			g.out.WriteByte('\n')
		}
		return
	}

	g.writePrefix(name)
	if g.color && !g.opts.invert {
		g.writeHighlighted(line)
	} else {
		g.out.Write(line)
	}
	g.out.WriteByte('\n')
}

// writeHighlighted writes line with every non-empty match colored.
func (g *grep) writeHighlighted(line []byte) {
	last := 0
	for _, loc := range g.re.FindAllIndex(line, -1) {
		if loc[0] == loc[1] {
			continue
		}
		g.out.Write(line[last:loc[0]])
		g.writeMatch(line[loc[0]:loc[1]])
		last = loc[1]
	}
	g.out.Write(line[last:])
}

func (g *grep) writeMatch(m []byte) {
	if !g.color {
		g.out.Write(m)
		return
	}
	g.out.WriteString(sgrMatch)
	g.out.Write(m)
	g.out.WriteString(sgrReset)
}

func (g *grep) writePrefix(name string) {
	if !g.withName {
		return
	}
	if !g.color {
		g.out.WriteString(name)
		g.out.WriteByte(':')
		return
	}
	g.out.WriteString(sgrName + name + sgrReset + sgrSep + ":" + sgrReset)
}

func (g *grep) fail(msg, path string, err error) {
	g.logger.Error(msg, "path", path, "err", err)
	g.trouble = true
}
