// Package compiler lowers an analyzed program to LLVM IR.
package compiler

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/vyPal/pasc/lib/analyzer"
	"github.com/vyPal/pasc/lib/ast"
)

type Context struct {
	*ir.Block
	*Compiler
	parent *Context
	scope  *analyzer.Scope
}

func NewContext(b *ir.Block, comp *Compiler, scope *analyzer.Scope) *Context {
	return &Context{
		Block:    b,
		Compiler: comp,
		scope:    scope,
	}
}

func (c *Context) NewContext(b *ir.Block, scope *analyzer.Scope) *Context {
	ctx := NewContext(b, c.Compiler, scope)
	ctx.parent = c
	return ctx
}

// lookupVariable returns the global backing a resolved variable reference.
func (c *Context) lookupVariable(v *ast.Var) (*ir.Global, *analyzer.Symbol, error) {
	sym, ok := c.info.Uses[v]
	if !ok {
		return nil, nil, posError(v.Pos, "unresolved variable %s", v.Name)
	}
	g, ok := c.globals[sym]
	if !ok {
		return nil, nil, posError(v.Pos, "no storage for %s", sym.Qualified)
	}
	return g, sym, nil
}

type Compiler struct {
	Module  *ir.Module
	AST     *ast.Program
	info    *analyzer.Info
	globals map[*analyzer.Symbol]*ir.Global
	printf  *ir.Func
	strs    int
}

func NewCompiler() *Compiler {
	return &Compiler{
		Module:  ir.NewModule(),
		globals: make(map[*analyzer.Symbol]*ir.Global),
	}
}

// Compile emits one global per variable, a void function per procedure and
// a main function that runs the program body and prints its variables.
func (c *Compiler) Compile(program *ast.Program, info *analyzer.Info) error {
	c.AST = program
	c.info = info

	root := info.Root(program)
	if root == nil {
		return posError(program.Pos, "program %s has not been analyzed", program.Name)
	}

	c.printf = c.Module.NewFunc("printf", types.I32, ir.NewParam("format", types.NewPointer(types.I8)))
	c.printf.Sig.Variadic = true

	c.declareGlobals(program.Block, root)

	fn := c.Module.NewFunc("main", types.I32)
	ctx := NewContext(fn.NewBlock(""), c, root)
	if err := ctx.compileProcedures(program.Block); err != nil {
		return err
	}
	if err := ctx.compileCompound(program.Block.Body); err != nil {
		return err
	}
	for _, sym := range root.Variables() {
		ctx.printVariable(sym)
	}
	if ctx.Term == nil {
		ctx.NewRet(constant.NewInt(types.I32, 0))
	}
	return nil
}

// declareGlobals walks declarations depth-first so globals appear in
// source order.
func (c *Compiler) declareGlobals(b *ast.Block, scope *analyzer.Scope) {
	for _, d := range b.Declarations {
		switch d := d.(type) {
		case *ast.VarDecl:
			sym := c.info.Defs[d.Var]
			g := c.Module.NewGlobalDef(sym.Qualified, zero(sym.Type))
			c.globals[sym] = g
		case *ast.ProcedureDecl:
			c.declareGlobals(d.Block, c.info.Scopes[d])
		}
	}
}

// compileProcedures emits a function for every procedure declared in b,
// nested ones included.
func (ctx *Context) compileProcedures(b *ast.Block) error {
	for _, d := range b.Declarations {
		proc, ok := d.(*ast.ProcedureDecl)
		if !ok {
			continue
		}
		scope := ctx.info.Scopes[proc]
		if scope == nil {
			return posError(proc.Pos, "procedure %s has not been analyzed", proc.Name)
		}

		fn := ctx.Module.NewFunc(scope.Path(), types.Void)
		pctx := ctx.NewContext(fn.NewBlock(""), scope)
		if err := pctx.compileProcedures(proc.Block); err != nil {
			return err
		}
		if err := pctx.compileCompound(proc.Block.Body); err != nil {
			return err
		}
		if pctx.Term == nil {
			pctx.NewRet(nil)
		}
	}
	return nil
}
