// Package format prints syntax trees as canonical Pascal source.
package format

import (
	"strconv"
	"strings"

	"github.com/vyPal/pasc/lib/ast"
	"github.com/vyPal/pasc/lib/parser"
)

const indentUnit = "  "

type printer struct {
	buf    strings.Builder
	indent int
}

// Program renders p with uppercase keywords, one declaration or statement
// per line and two-space indentation. Parsing the result yields a tree
// equal to p.
func Program(p *ast.Program) string {
	var pr printer
	pr.line("PROGRAM " + p.Name + ";")
	pr.block(p.Block, false)
	pr.emit(".\n")
	return pr.buf.String()
}

// Expr renders a single expression with the fewest parentheses that keep
// its shape.
func Expr(e ast.Expr) string {
	return expr(e)
}

// Source parses code and returns it in canonical form.
func Source(filename, code string) (string, error) {
	prog, err := parser.ParseString(filename, code)
	if err != nil {
		return "", err
	}
	return Program(prog), nil
}

func (p *printer) emit(s string) {
	p.buf.WriteString(s)
}

func (p *printer) emitIndent() {
	p.buf.WriteString(strings.Repeat(indentUnit, p.indent))
}

func (p *printer) line(s string) {
	p.emitIndent()
	p.emit(s)
	p.emit("\n")
}

// block prints the VAR section, then procedures, then the body. Procedures
// declared inside another procedure are indented one level.
func (p *printer) block(b *ast.Block, nested bool) {
	var vars []*ast.VarDecl
	var procs []*ast.ProcedureDecl
	for _, d := range b.Declarations {
		switch d := d.(type) {
		case *ast.VarDecl:
			vars = append(vars, d)
		case *ast.ProcedureDecl:
			procs = append(procs, d)
		}
	}

	if len(vars) > 0 {
		p.line("VAR")
		p.indent++
		for i := 0; i < len(vars); {
			// identifiers declared together share their type node
			j := i + 1
			for j < len(vars) && vars[j].Type == vars[i].Type {
				j++
			}
			names := make([]string, 0, j-i)
			for _, v := range vars[i:j] {
				names = append(names, v.Var.Name)
			}
			p.line(strings.Join(names, ", ") + " : " + vars[i].Type.Kind.String() + ";")
			i = j
		}
		p.indent--
		p.emit("\n")
	}

	if nested {
		p.indent++
	}
	for _, proc := range procs {
		p.line("PROCEDURE " + proc.Name + ";")
		p.block(proc.Block, true)
		p.emit(";\n\n")
	}
	if nested {
		p.indent--
	}

	p.compound(b.Body)
}

// compound prints BEGIN ... END starting at the current indentation and
// leaves the cursor right after END.
func (p *printer) compound(c *ast.Compound) {
	p.emitIndent()
	p.emit("BEGIN\n")
	p.indent++

	last := len(c.Statements) - 1
	for i, s := range c.Statements {
		if _, ok := s.(*ast.NoOp); ok && i == last {
			break
		}
		p.stmt(s)
		if i < last {
			p.emit(";")
		}
		p.emit("\n")
	}

	p.indent--
	p.emitIndent()
	p.emit("END")
}

func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Compound:
		p.compound(s)
	case *ast.Assign:
		p.emitIndent()
		p.emit(s.Target.Name + " := " + expr(s.Value))
	case *ast.NoOp:
		p.emitIndent()
	}
}

func precedence(op ast.Op) int {
	switch op {
	case ast.Mul, ast.IntDiv, ast.RealDiv:
		return 2
	}
	return 1
}

func expr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Var:
		return e.Name
	case *ast.Num:
		if e.Kind == ast.Real {
			s := strconv.FormatFloat(e.Real, 'f', -1, 64)
			if !strings.Contains(s, ".") {
				s += ".0"
			}
			return s
		}
		return strconv.FormatInt(e.Int, 10)
	case *ast.UnaryOp:
		switch operand := e.Operand.(type) {
		case *ast.BinOp:
			return e.Op.String() + "(" + expr(operand) + ")"
		case *ast.UnaryOp:
			return e.Op.String() + " " + expr(operand)
		default:
			return e.Op.String() + expr(operand)
		}
	case *ast.BinOp:
		prec := precedence(e.Op)
		left, right := expr(e.Left), expr(e.Right)
		if l, ok := e.Left.(*ast.BinOp); ok && precedence(l.Op) < prec {
			left = "(" + left + ")"
		}
		if r, ok := e.Right.(*ast.BinOp); ok && precedence(r.Op) <= prec {
			right = "(" + right + ")"
		}
		return left + " " + e.Op.String() + " " + right
	}
	return ""
}
