package ast

import "fmt"

// Visitor is called for each node Walk reaches. If Visit returns a non-nil
// w, Walk visits the children of n with w and then calls w.Visit(nil).
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// Walk traverses the tree rooted at n depth-first in source order.
func Walk(v Visitor, n Node) {
	if v = v.Visit(n); v == nil {
		return
	}

	switch n := n.(type) {
	case *Program:
		Walk(v, n.Block)
	case *Block:
		for _, d := range n.Declarations {
			Walk(v, d)
		}
		Walk(v, n.Body)
	case *VarDecl:
		Walk(v, n.Var)
		Walk(v, n.Type)
	case *ProcedureDecl:
		Walk(v, n.Block)
	case *Compound:
		for _, s := range n.Statements {
			Walk(v, s)
		}
	case *Assign:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *UnaryOp:
		Walk(v, n.Operand)
	case *BinOp:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *Type, *NoOp, *Var, *Num:
		// leaves
	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect calls f for every node in the tree and for nil after a node's
// children. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}

// Equal reports whether two trees have the same shape and values.
// Positions are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Program:
		b, ok := b.(*Program)
		return ok && a.Name == b.Name && Equal(a.Block, b.Block)
	case *Block:
		b, ok := b.(*Block)
		if !ok || len(a.Declarations) != len(b.Declarations) {
			return false
		}
		for i := range a.Declarations {
			if !Equal(a.Declarations[i], b.Declarations[i]) {
				return false
			}
		}
		return Equal(a.Body, b.Body)
	case *VarDecl:
		b, ok := b.(*VarDecl)
		return ok && Equal(a.Var, b.Var) && Equal(a.Type, b.Type)
	case *ProcedureDecl:
		b, ok := b.(*ProcedureDecl)
		return ok && a.Name == b.Name && Equal(a.Block, b.Block)
	case *Type:
		b, ok := b.(*Type)
		return ok && a.Kind == b.Kind
	case *Compound:
		b, ok := b.(*Compound)
		if !ok || len(a.Statements) != len(b.Statements) {
			return false
		}
		for i := range a.Statements {
			if !Equal(a.Statements[i], b.Statements[i]) {
				return false
			}
		}
		return true
	case *Assign:
		b, ok := b.(*Assign)
		return ok && Equal(a.Target, b.Target) && Equal(a.Value, b.Value)
	case *NoOp:
		_, ok := b.(*NoOp)
		return ok
	case *Var:
		b, ok := b.(*Var)
		return ok && a.Name == b.Name
	case *Num:
		b, ok := b.(*Num)
		return ok && a.Kind == b.Kind && a.Int == b.Int && a.Real == b.Real
	case *UnaryOp:
		b, ok := b.(*UnaryOp)
		return ok && a.Op == b.Op && Equal(a.Operand, b.Operand)
	case *BinOp:
		b, ok := b.(*BinOp)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	default:
		panic(fmt.Sprintf("ast.Equal: unexpected node type %T", a))
	}
}
