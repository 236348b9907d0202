package parser

import (
	"github.com/vyPal/pasc/lib/ast"
	"github.com/vyPal/pasc/lib/token"
)

// Precedence is structural: expr handles + and -, term handles the
// multiplying operators, factor the operands. Both loops fold to the left.

var addOps = map[token.Kind]ast.Op{
	token.PLUS:  ast.Plus,
	token.MINUS: ast.Minus,
}

var mulOps = map[token.Kind]ast.Op{
	token.MUL:         ast.Mul,
	token.INTEGER_DIV: ast.IntDiv,
	token.FLOAT_DIV:   ast.RealDiv,
}

// expr: term ((PLUS | MINUS) term)*
func (p *Parser) expr() (ast.Expr, error) {
	node, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := addOps[p.cur.Kind]
		if !ok {
			return node, nil
		}
		if err := p.expect(p.cur.Kind); err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		node = &ast.BinOp{Left: node, Op: op, Right: right, Pos: node.Position()}
	}
}

// term: factor ((MUL | INTEGER_DIV | FLOAT_DIV) factor)*
func (p *Parser) term() (ast.Expr, error) {
	node, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := mulOps[p.cur.Kind]
		if !ok {
			return node, nil
		}
		if err := p.expect(p.cur.Kind); err != nil {
			return nil, err
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		node = &ast.BinOp{Left: node, Op: op, Right: right, Pos: node.Position()}
	}
}

// factor: (PLUS | MINUS) factor | INTEGER_CONST | REAL_CONST | LPAREN expr RPAREN | variable
func (p *Parser) factor() (ast.Expr, error) {
	tok := p.cur

	switch tok.Kind {
	case token.PLUS, token.MINUS:
		if err := p.expect(tok.Kind); err != nil {
			return nil, err
		}
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: addOps[tok.Kind], Operand: operand, Pos: tok.Pos}, nil

	case token.INTEGER_CONST:
		if err := p.expect(token.INTEGER_CONST); err != nil {
			return nil, err
		}
		return &ast.Num{Kind: ast.Integer, Int: tok.Int, Pos: tok.Pos}, nil

	case token.REAL_CONST:
		if err := p.expect(token.REAL_CONST); err != nil {
			return nil, err
		}
		return &ast.Num{Kind: ast.Real, Real: tok.Real, Pos: tok.Pos}, nil

	case token.LPAREN:
		if err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		node, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return node, nil

	default:
		v, err := p.variable()
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
