package parser

import (
	"fmt"
	"strings"

	"github.com/vyPal/pasc/lib/token"
)

// SyntaxError reports the first token that did not fit the grammar.
type SyntaxError struct {
	Pos      token.Position
	Found    token.Token
	Expected []token.Kind // empty when Msg says it all
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", token.FormatPos(e.Pos), e.Msg)
}

func (p *Parser) unexpected(expected ...token.Kind) *SyntaxError {
	names := make([]string, len(expected))
	for i, k := range expected {
		if k == token.EOF {
			names[i] = "end of input"
		} else {
			names[i] = fmt.Sprintf("%q", string(k))
		}
	}
	return &SyntaxError{
		Pos:      p.cur.Pos,
		Found:    p.cur,
		Expected: expected,
		Msg:      fmt.Sprintf("expected %s, found %s", strings.Join(names, " or "), p.cur),
	}
}

func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: p.cur.Pos, Found: p.cur, Msg: fmt.Sprintf(format, args...)}
}
