// Package analyzer resolves names and types in a parsed program.
package analyzer

import (
	"fmt"

	"github.com/vyPal/pasc/lib/ast"
	"github.com/vyPal/pasc/lib/token"
)

// Error is a semantic error in an otherwise well-formed program.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", token.FormatPos(e.Pos), e.Msg)
}

func errorAt(pos token.Position, msg string) *Error {
	return &Error{Pos: pos, Msg: msg}
}

// Info is what analysis learns about a program.
type Info struct {
	Uses   map[*ast.Var]*Symbol      // variable references in statements
	Defs   map[*ast.Var]*Symbol      // variables in declarations
	Types  map[ast.Expr]ast.TypeKind // every expression
	Scopes map[ast.Node]*Scope       // *ast.Program and *ast.ProcedureDecl
	Unused []*Symbol                 // variables never referenced, in declaration order
}

// Root is the program-level scope.
func (i *Info) Root(p *ast.Program) *Scope {
	return i.Scopes[p]
}

type analyzer struct {
	info     *Info
	declared []*Symbol
	used     map[*Symbol]bool
}

// Analyze checks p and returns what it learned. The first error found
// stops the analysis.
func Analyze(p *ast.Program) (*Info, error) {
	a := &analyzer{
		info: &Info{
			Uses:   make(map[*ast.Var]*Symbol),
			Defs:   make(map[*ast.Var]*Symbol),
			Types:  make(map[ast.Expr]ast.TypeKind),
			Scopes: make(map[ast.Node]*Scope),
		},
		used: make(map[*Symbol]bool),
	}

	scope := NewScope(p.Name)
	a.info.Scopes[p] = scope
	if err := a.block(p.Block, scope); err != nil {
		return nil, err
	}

	for _, sym := range a.declared {
		if !a.used[sym] {
			a.info.Unused = append(a.info.Unused, sym)
		}
	}
	return a.info, nil
}

func (a *analyzer) block(b *ast.Block, s *Scope) error {
	if err := a.scanDeclarations(b, s); err != nil {
		return err
	}
	for _, d := range b.Declarations {
		switch d := d.(type) {
		case *ast.VarDecl:
			sym, _ := s.LookupLocal(d.Var.Name)
			a.info.Defs[d.Var] = sym
		case *ast.ProcedureDecl:
			inner := s.NewScope(d.Name)
			a.info.Scopes[d] = inner
			if err := a.block(d.Block, inner); err != nil {
				return err
			}
		}
	}
	return a.stmt(b.Body, s)
}

func (a *analyzer) stmt(st ast.Stmt, s *Scope) error {
	switch st := st.(type) {
	case *ast.Compound:
		for _, child := range st.Statements {
			if err := a.stmt(child, s); err != nil {
				return err
			}
		}
	case *ast.Assign:
		target, err := a.variable(st.Target, s)
		if err != nil {
			return err
		}
		typ, err := a.expr(st.Value, s)
		if err != nil {
			return err
		}
		if !assignable(target.Type, typ) {
			return errorAt(st.Pos, fmt.Sprintf("cannot assign %s value to %s variable %s", typ, target.Type, st.Target.Name))
		}
	case *ast.NoOp:
	}
	return nil
}

func (a *analyzer) variable(v *ast.Var, s *Scope) (*Symbol, error) {
	sym, ok := s.Lookup(v.Name)
	if !ok {
		return nil, errorAt(v.Pos, fmt.Sprintf("undeclared variable %s", v.Name))
	}
	if sym.Kind != VarSymbol {
		return nil, errorAt(v.Pos, fmt.Sprintf("%s is a procedure, not a variable", v.Name))
	}
	a.info.Uses[v] = sym
	a.used[sym] = true
	return sym, nil
}

func (a *analyzer) expr(e ast.Expr, s *Scope) (ast.TypeKind, error) {
	var typ ast.TypeKind
	switch e := e.(type) {
	case *ast.Num:
		typ = e.Kind
	case *ast.Var:
		sym, err := a.variable(e, s)
		if err != nil {
			return 0, err
		}
		typ = sym.Type
	case *ast.UnaryOp:
		t, err := a.expr(e.Operand, s)
		if err != nil {
			return 0, err
		}
		typ = t
	case *ast.BinOp:
		l, err := a.expr(e.Left, s)
		if err != nil {
			return 0, err
		}
		r, err := a.expr(e.Right, s)
		if err != nil {
			return 0, err
		}
		t, ok := binaryType(e.Op, l, r)
		if !ok {
			return 0, errorAt(e.Pos, fmt.Sprintf("operands of %s must be INTEGER, have %s and %s", e.Op, l, r))
		}
		typ = t
	default:
		return 0, fmt.Errorf("analyzer: unexpected expression %T", e)
	}
	a.info.Types[e] = typ
	return typ, nil
}
