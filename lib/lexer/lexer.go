package lexer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/pasc/lib/token"
)

// Definition is the rule set for Pascal source text. Rules are tried in
// order, so Real must come before Int and ":=" before ":".
var Definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `\{[^}]*\}`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Real", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `:=|[-+*/(),;:.]`},
})

var symbols = Definition.Symbols()

// Error is a lexical error: input no rule matches, or a literal that does
// not fit its type.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: lexical error: %s", token.FormatPos(e.Pos), e.Msg)
}

// Lexer is a token.Source over Pascal text. Comments and whitespace never
// reach the parser.
type Lexer struct {
	lex lexer.Lexer
	eof *token.Token
}

var _ token.Source = (*Lexer)(nil)

// New lexes everything r produces. filename only labels positions.
func New(filename string, r io.Reader) (*Lexer, error) {
	lex, err := Definition.Lex(filename, r)
	if err != nil {
		return nil, wrapError(err)
	}
	return &Lexer{lex: lex}, nil
}

// NewString returns a lexer over a string.
func NewString(filename, s string) (*Lexer, error) {
	return New(filename, strings.NewReader(s))
}

// Next returns the next token. Once EOF has been produced, every further
// call returns the same EOF token.
func (l *Lexer) Next() (token.Token, error) {
	if l.eof != nil {
		return *l.eof, nil
	}
	for {
		t, err := l.lex.Next()
		if err != nil {
			return token.Token{}, wrapError(err)
		}
		switch t.Type {
		case lexer.EOF:
			eof := token.Token{Kind: token.EOF, Pos: t.Pos}
			l.eof = &eof
			return eof, nil
		case symbols["Comment"], symbols["Whitespace"]:
			continue
		case symbols["Int"]:
			n, err := strconv.ParseInt(t.Value, 10, 64)
			if err != nil {
				return token.Token{}, &Error{Pos: t.Pos, Msg: fmt.Sprintf("integer literal %s out of range", t.Value)}
			}
			return token.Token{Kind: token.INTEGER_CONST, Text: t.Value, Int: n, Pos: t.Pos}, nil
		case symbols["Real"]:
			f, err := strconv.ParseFloat(t.Value, 64)
			if err != nil {
				return token.Token{}, &Error{Pos: t.Pos, Msg: fmt.Sprintf("real literal %s out of range", t.Value)}
			}
			return token.Token{Kind: token.REAL_CONST, Text: t.Value, Real: f, Pos: t.Pos}, nil
		case symbols["Ident"]:
			return token.Token{Kind: token.LookupIdent(t.Value), Text: t.Value, Pos: t.Pos}, nil
		case symbols["Punct"]:
			k, ok := token.LookupPunct(t.Value)
			if !ok {
				return token.Token{}, &Error{Pos: t.Pos, Msg: fmt.Sprintf("unexpected %q", t.Value)}
			}
			return token.Token{Kind: k, Text: t.Value, Pos: t.Pos}, nil
		default:
			return token.Token{}, &Error{Pos: t.Pos, Msg: fmt.Sprintf("unexpected %q", t.Value)}
		}
	}
}

// Tokens drains a source up to and including its EOF token.
func Tokens(src token.Source) ([]token.Token, error) {
	var toks []token.Token
	for {
		t, err := src.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks, nil
		}
	}
}

func wrapError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &Error{Pos: perr.Position(), Msg: perr.Message()}
	}
	return &Error{Msg: err.Error()}
}
