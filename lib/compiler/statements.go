package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/pasc/lib/analyzer"
	"github.com/vyPal/pasc/lib/ast"
)

func (ctx *Context) compileStatement(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Compound:
		return ctx.compileCompound(s)
	case *ast.Assign:
		return ctx.compileAssign(s)
	case *ast.NoOp:
		return nil
	default:
		return fmt.Errorf("unknown statement %T", s)
	}
}

func (ctx *Context) compileCompound(c *ast.Compound) error {
	for _, s := range c.Statements {
		if err := ctx.compileStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *Context) compileAssign(a *ast.Assign) error {
	g, sym, err := ctx.lookupVariable(a.Target)
	if err != nil {
		return err
	}
	val, err := ctx.compileExpression(a.Value)
	if err != nil {
		return err
	}
	val = ctx.convert(val, ctx.info.Types[a.Value], sym.Type)
	ctx.NewStore(val, g)
	return nil
}

// printVariable emits printf("name = value\n") for sym.
func (ctx *Context) printVariable(sym *analyzer.Symbol) {
	verb := "%ld"
	if sym.Type == ast.Real {
		verb = "%f"
	}
	format := ctx.stringConstant(sym.Name + " = " + verb + "\n")
	val := ctx.NewLoad(llType(sym.Type), ctx.globals[sym])
	ctx.NewCall(ctx.printf, format, val)
}

// stringConstant adds a NUL-terminated private string to the module and
// returns a pointer to its first byte.
func (c *Compiler) stringConstant(s string) value.Value {
	arr := constant.NewCharArrayFromString(s + "\x00")
	g := c.Module.NewGlobalDef(fmt.Sprintf(".str.%d", c.strs), arr)
	g.Immutable = true
	c.strs++

	zero := constant.NewInt(types.I64, 0)
	return constant.NewGetElementPtr(g.ContentType, g, zero, zero)
}
