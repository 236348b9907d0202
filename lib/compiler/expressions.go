package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/pasc/lib/ast"
)

func (ctx *Context) compileExpression(e ast.Expr) (value.Value, error) {
	switch e := e.(type) {
	case *ast.Num:
		if e.Kind == ast.Real {
			return constant.NewFloat(types.Double, e.Real), nil
		}
		return constant.NewInt(types.I64, e.Int), nil
	case *ast.Var:
		g, sym, err := ctx.lookupVariable(e)
		if err != nil {
			return nil, err
		}
		return ctx.NewLoad(llType(sym.Type), g), nil
	case *ast.UnaryOp:
		return ctx.compileUnary(e)
	case *ast.BinOp:
		return ctx.compileBinary(e)
	default:
		return nil, fmt.Errorf("unknown expression %T", e)
	}
}

func (ctx *Context) compileUnary(u *ast.UnaryOp) (value.Value, error) {
	operand, err := ctx.compileExpression(u.Operand)
	if err != nil {
		return nil, err
	}
	if u.Op == ast.Plus {
		return operand, nil
	}
	if ctx.info.Types[u.Operand] == ast.Real {
		return ctx.NewFNeg(operand), nil
	}
	return ctx.NewSub(constant.NewInt(types.I64, 0), operand), nil
}

func (ctx *Context) compileBinary(b *ast.BinOp) (value.Value, error) {
	left, err := ctx.compileExpression(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := ctx.compileExpression(b.Right)
	if err != nil {
		return nil, err
	}

	result := ctx.info.Types[b]
	if result == ast.Real {
		left = ctx.convert(left, ctx.info.Types[b.Left], ast.Real)
		right = ctx.convert(right, ctx.info.Types[b.Right], ast.Real)
		switch b.Op {
		case ast.Plus:
			return ctx.NewFAdd(left, right), nil
		case ast.Minus:
			return ctx.NewFSub(left, right), nil
		case ast.Mul:
			return ctx.NewFMul(left, right), nil
		case ast.RealDiv:
			return ctx.NewFDiv(left, right), nil
		}
		return nil, posError(b.Pos, "operator %s has no REAL form", b.Op)
	}

	switch b.Op {
	case ast.Plus:
		return ctx.NewAdd(left, right), nil
	case ast.Minus:
		return ctx.NewSub(left, right), nil
	case ast.Mul:
		return ctx.NewMul(left, right), nil
	case ast.IntDiv:
		return ctx.NewSDiv(left, right), nil
	}
	return nil, posError(b.Pos, "operator %s has no INTEGER form", b.Op)
}

// convert widens v from one type to another. Only INTEGER to REAL is a
// real conversion; the analyzer rejects the other direction.
func (ctx *Context) convert(v value.Value, from, to ast.TypeKind) value.Value {
	if from == ast.Integer && to == ast.Real {
		if c, ok := v.(*constant.Int); ok {
			return constant.NewFloat(types.Double, float64(c.X.Int64()))
		}
		return ctx.NewSIToFP(v, types.Double)
	}
	return v
}
