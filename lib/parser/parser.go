package parser

import (
	"fmt"
	"os"

	"github.com/vyPal/pasc/lib/ast"
	"github.com/vyPal/pasc/lib/lexer"
	"github.com/vyPal/pasc/lib/token"
)

// Parser is a predictive recursive-descent parser with one token of
// lookahead. A Parser reads exactly one token stream.
type Parser struct {
	src token.Source
	cur token.Token
}

// New returns a parser positioned on the first token of src.
func New(src token.Source) (*Parser, error) {
	p := &Parser{src: src}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.src.Next()
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	p.cur = tok
	return nil
}

// expect consumes the lookahead if it is of kind k. It is the only place
// the token stream moves forward.
func (p *Parser) expect(k token.Kind) error {
	if p.cur.Kind != k {
		return p.unexpected(k)
	}
	return p.advance()
}

// Parse parses a whole program and requires that nothing follows its
// final dot.
func (p *Parser) Parse() (*ast.Program, error) {
	prog, err := p.program()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.EOF {
		return nil, p.unexpected(token.EOF)
	}
	return prog, nil
}

// Parse reads a program from src.
func Parse(src token.Source) (*ast.Program, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ParseString parses Pascal source held in memory. filename labels
// positions in errors and may be empty.
func ParseString(filename, code string) (*ast.Program, error) {
	l, err := lexer.NewString(filename, code)
	if err != nil {
		return nil, err
	}
	return Parse(l)
}

func ParseFile(filename string) (*ast.Program, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := lexer.New(filename, f)
	if err != nil {
		return nil, err
	}
	return Parse(l)
}

// ParseExpr parses a single expression followed by end of input.
func ParseExpr(filename, code string) (ast.Expr, error) {
	l, err := lexer.NewString(filename, code)
	if err != nil {
		return nil, err
	}
	p, err := New(l)
	if err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.EOF {
		return nil, p.unexpected(token.EOF)
	}
	return e, nil
}
