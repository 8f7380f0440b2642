package syntax

// parser holds the token stream and the capture id counter shared by all
// recursive calls of one parse.
type parser struct {
	tokens    []Token
	numGroups int
}

// ParseString tokenizes and parses pattern.
func ParseString(pattern string) (*Pattern, error) {
	return Parse(Tokenize(pattern))
}

// Parse builds a pattern tree from tokens.
//
// A Caret is a start anchor only as the very first token of the whole
// pattern. Everywhere else, including the first token of a group option,
// it is the literal rune '^'.
//
// Capture ids are assigned in the order groups are opened, so an outer
// group always has a lower id than the groups nested inside it.
//
// Returns a *Error for malformed patterns.
//
// Example:
//
//	pat, err := syntax.Parse(syntax.Tokenize(`(\d+) apples`))
//	// pat.Nodes: CaptureGroup#1(OneOrMore(Digit)) Literal(' ') Literal('a') ...
func Parse(tokens []Token) (*Pattern, error) {
	p := &parser{tokens: tokens}

	var nodes []Node
	start := 0
	if len(tokens) > 0 && tokens[0].Kind == TokenCaret {
		nodes = append(nodes, &StartAnchor{})
		start = 1
	}

	body, err := p.parseSeq(start, len(tokens))
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, body...)

	if err := checkBackrefs(nodes, p.numGroups); err != nil {
		return nil, err
	}

	return &Pattern{Nodes: nodes, NumGroups: p.numGroups}, nil
}

// parseSeq parses tokens[lo:hi] into a node sequence.
func (p *parser) parseSeq(lo, hi int) ([]Node, error) {
	var nodes []Node
	for i := lo; i < hi; {
		tok := p.tokens[i]
		next := i
		var err error

		switch tok.Kind {
		case TokenOpenBracket:
			var n Node
			n, next, err = p.parseClass(i, hi)
			if err == nil {
				nodes = append(nodes, n)
			}
		case TokenOpenParen:
			var n Node
			n, next, err = p.parseGroup(i, hi)
			if err == nil {
				nodes = append(nodes, n)
			}
		case TokenBackslash:
			var n Node
			n, next, err = p.parseEscape(i, hi)
			if err == nil {
				nodes = append(nodes, n)
			}
		case TokenPlus, TokenQuestion:
			nodes, err = p.repeat(nodes, i)
			next = i + 1
		case TokenDot:
			nodes = append(nodes, &Wildcard{})
			next = i + 1
		case TokenDollar:
			nodes = append(nodes, &EndAnchor{})
			next = i + 1
		case TokenCaret, TokenLiteral:
			nodes = append(nodes, &Literal{Char: tok.Char})
			next = i + 1
		default:
			// ')' ']' '|' outside the construct they belong to
			err = newError(ErrUnexpectedToken, p.tokens[i:i+1])
		}

		if err != nil {
			return nil, err
		}
		if next <= i {
			panic("syntax: parser made no progress at token " + tok.Kind.String())
		}
		i = next
	}
	return nodes, nil
}

// parseClass parses a character class starting at the '[' at tokens[i].
// Returns the node and the index just past the closing ']'.
func (p *parser) parseClass(i, hi int) (Node, int, error) {
	end := -1
	for j := i + 1; j < hi; j++ {
		if p.tokens[j].Kind == TokenCloseBracket {
			end = j
			break
		}
	}
	if end < 0 {
		return nil, 0, newError(ErrMissingBracket, p.tokens[i:hi])
	}

	cc := &CharClass{Chars: []rune{}}
	j := i + 1
	if j < end && p.tokens[j].Kind == TokenCaret {
		cc.Negated = true
		j++
	}
	for ; j < end; j++ {
		if !p.tokens[j].IsLiteral() {
			return nil, 0, newError(ErrInvalidClassToken, p.tokens[i:end+1])
		}
		cc.Chars = append(cc.Chars, p.tokens[j].Char)
	}
	return cc, end + 1, nil
}

// parseGroup parses a capture group starting at the '(' at tokens[i].
// Returns the node and the index just past the closing ')'.
func (p *parser) parseGroup(i, hi int) (Node, int, error) {
	end, bars, err := p.findGroupEnd(i, hi)
	if err != nil {
		return nil, 0, err
	}

	// The id is taken before the options are parsed so that nested
	// groups number after their parent.
	p.numGroups++
	group := &CaptureGroup{ID: p.numGroups}

	lo := i + 1
	for _, bar := range append(bars, end) {
		opt, err := p.parseSeq(lo, bar)
		if err != nil {
			return nil, 0, err
		}
		group.Options = append(group.Options, opt)
		lo = bar + 1
	}
	return group, end + 1, nil
}

// findGroupEnd locates the ')' closing the '(' at tokens[i] and the '|'
// tokens that separate its top-level options. Parentheses and square
// brackets are tracked as independent kinds; closing one kind while the
// other is open is an error.
func (p *parser) findGroupEnd(i, hi int) (int, []int, error) {
	var open []TokenKind
	var bars []int
	for j := i + 1; j < hi; j++ {
		switch kind := p.tokens[j].Kind; kind {
		case TokenOpenParen, TokenOpenBracket:
			open = append(open, kind)
		case TokenCloseParen:
			if len(open) == 0 {
				return j, bars, nil
			}
			if open[len(open)-1] != TokenOpenParen {
				return 0, nil, newError(ErrMismatchedBrackets, p.tokens[i:j+1])
			}
			open = open[:len(open)-1]
		case TokenCloseBracket:
			if len(open) == 0 || open[len(open)-1] != TokenOpenBracket {
				return 0, nil, newError(ErrMismatchedBrackets, p.tokens[i:j+1])
			}
			open = open[:len(open)-1]
		case TokenBar:
			if len(open) == 0 {
				bars = append(bars, j)
			}
		}
	}
	return 0, nil, newError(ErrMissingParen, p.tokens[i:hi])
}

// parseEscape parses the escape sequence starting at the '\' at tokens[i].
func (p *parser) parseEscape(i, hi int) (Node, int, error) {
	if i+1 >= hi {
		return nil, 0, newError(ErrTrailingBackslash, p.tokens[i:hi])
	}

	tok := p.tokens[i+1]
	if tok.Kind == TokenBackslash {
		return &Literal{Char: '\\'}, i + 2, nil
	}
	if tok.IsLiteral() {
		switch {
		case tok.Char == 'd':
			return &Digit{}, i + 2, nil
		case tok.Char == 'w':
			return &Word{}, i + 2, nil
		case IsDigit(tok.Char):
			return &BackReference{ID: int(tok.Char - '0')}, i + 2, nil
		}
	}
	return nil, 0, newError(ErrInvalidEscape, p.tokens[i:i+2])
}

// repeat wraps the last parsed node in the quantifier at tokens[i].
func (p *parser) repeat(nodes []Node, i int) ([]Node, error) {
	tok := p.tokens[i]
	if len(nodes) == 0 {
		return nil, newError(ErrMissingRepeatArgument, p.tokens[i:i+1])
	}

	last := nodes[len(nodes)-1]
	switch last.(type) {
	case *OneOrMore, *ZeroOrOne:
		return nil, newError(ErrNestedRepeat, p.tokens[i-1:i+1])
	case *StartAnchor, *EndAnchor:
		return nil, newError(ErrInvalidRepeatArgument, p.tokens[i-1:i+1])
	case *CaptureGroup:
		// Repeating a group would bind its id more than once.
		if tok.Kind == TokenPlus {
			return nil, newError(ErrInvalidRepeatArgument, p.tokens[i:i+1])
		}
	}

	if tok.Kind == TokenPlus {
		nodes[len(nodes)-1] = &OneOrMore{Sub: last}
	} else {
		nodes[len(nodes)-1] = &ZeroOrOne{Sub: last}
	}
	return nodes, nil
}

// checkBackrefs verifies that every backreference names a group that
// exists somewhere in the pattern.
func checkBackrefs(nodes []Node, numGroups int) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *BackReference:
			if n.ID < 1 || n.ID > numGroups {
				return &Error{Code: ErrInvalidBackref, Expr: `\` + string(rune('0'+n.ID))}
			}
		case *OneOrMore:
			if err := checkBackrefs([]Node{n.Sub}, numGroups); err != nil {
				return err
			}
		case *ZeroOrOne:
			if err := checkBackrefs([]Node{n.Sub}, numGroups); err != nil {
				return err
			}
		case *CaptureGroup:
			for _, opt := range n.Options {
				if err := checkBackrefs(opt, numGroups); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
