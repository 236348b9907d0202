package parser

import (
	"github.com/vyPal/pasc/lib/ast"
	"github.com/vyPal/pasc/lib/token"
)

// program: PROGRAM variable SEMI block DOT
func (p *Parser) program() (*ast.Program, error) {
	pos := p.cur.Pos
	if err := p.expect(token.PROGRAM); err != nil {
		return nil, err
	}
	name, err := p.variable()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.DOT); err != nil {
		return nil, err
	}
	return &ast.Program{Name: name.Name, Block: block, Pos: pos}, nil
}

// block: declarations compound_statement
func (p *Parser) block() (*ast.Block, error) {
	pos := p.cur.Pos
	decls, err := p.declarations()
	if err != nil {
		return nil, err
	}
	body, err := p.compoundStatement()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Declarations: decls, Body: body, Pos: pos}, nil
}

// declarations: (VAR (variable_declaration SEMI)*)? (PROCEDURE ID SEMI block SEMI)*
func (p *Parser) declarations() ([]ast.Decl, error) {
	var decls []ast.Decl

	if p.cur.Kind == token.VAR {
		if err := p.expect(token.VAR); err != nil {
			return nil, err
		}
		for p.cur.Kind == token.ID {
			vars, err := p.variableDeclaration()
			if err != nil {
				return nil, err
			}
			for _, v := range vars {
				decls = append(decls, v)
			}
			if err := p.expect(token.SEMI); err != nil {
				return nil, err
			}
		}
	}

	for p.cur.Kind == token.PROCEDURE {
		proc, err := p.procedureDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, proc)
	}

	return decls, nil
}

// variable_declaration: ID (COMMA ID)* COLON type_spec
func (p *Parser) variableDeclaration() ([]*ast.VarDecl, error) {
	first, err := p.variable()
	if err != nil {
		return nil, err
	}
	vars := []*ast.Var{first}

	for p.cur.Kind == token.COMMA {
		if err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		v, err := p.variable()
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}

	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	typ, err := p.typeSpec()
	if err != nil {
		return nil, err
	}

	decls := make([]*ast.VarDecl, len(vars))
	for i, v := range vars {
		decls[i] = &ast.VarDecl{Var: v, Type: typ}
	}
	return decls, nil
}

// procedure_declaration: PROCEDURE ID SEMI block SEMI
func (p *Parser) procedureDeclaration() (*ast.ProcedureDecl, error) {
	pos := p.cur.Pos
	if err := p.expect(token.PROCEDURE); err != nil {
		return nil, err
	}
	name := p.cur.Text
	if err := p.expect(token.ID); err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ProcedureDecl{Name: name, Block: block, Pos: pos}, nil
}

// type_spec: INTEGER | REAL
func (p *Parser) typeSpec() (*ast.Type, error) {
	typ := &ast.Type{Pos: p.cur.Pos}
	switch p.cur.Kind {
	case token.INTEGER:
		typ.Kind = ast.Integer
	case token.REAL:
		typ.Kind = ast.Real
	default:
		return nil, p.unexpected(token.INTEGER, token.REAL)
	}
	if err := p.expect(p.cur.Kind); err != nil {
		return nil, err
	}
	return typ, nil
}

// compound_statement: BEGIN statement_list END
func (p *Parser) compoundStatement() (*ast.Compound, error) {
	pos := p.cur.Pos
	if err := p.expect(token.BEGIN); err != nil {
		return nil, err
	}
	stmts, err := p.statementList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.END); err != nil {
		return nil, err
	}
	return &ast.Compound{Statements: stmts, Pos: pos}, nil
}

// statement_list: statement (SEMI statement)*
func (p *Parser) statementList() ([]ast.Stmt, error) {
	first, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmts := []ast.Stmt{first}

	for p.cur.Kind == token.SEMI {
		if err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}

	// An identifier here started a statement that was never separated
	// from the previous one.
	if p.cur.Kind == token.ID {
		return nil, p.errorf("missing %q before %s", string(token.SEMI), p.cur)
	}
	return stmts, nil
}

// statement: compound_statement | assignment_statement | empty
func (p *Parser) statement() (ast.Stmt, error) {
	switch p.cur.Kind {
	case token.BEGIN:
		c, err := p.compoundStatement()
		if err != nil {
			return nil, err
		}
		return c, nil
	case token.ID:
		a, err := p.assignmentStatement()
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return &ast.NoOp{Pos: p.cur.Pos}, nil
	}
}

// assignment_statement: variable ASSIGN expr
func (p *Parser) assignmentStatement() (*ast.Assign, error) {
	target, err := p.variable()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Target: target, Value: value, Pos: target.Pos}, nil
}

// variable: ID
func (p *Parser) variable() (*ast.Var, error) {
	v := &ast.Var{Name: p.cur.Text, Pos: p.cur.Pos}
	if err := p.expect(token.ID); err != nil {
		return nil, err
	}
	return v, nil
}
