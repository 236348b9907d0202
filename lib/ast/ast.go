package ast

import "github.com/vyPal/pasc/lib/token"

// Node is implemented by every AST node. The set of nodes is closed: only
// the types in this file satisfy it.
type Node interface {
	Position() token.Position
	node()
}

// Decl is a declaration inside a block.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a compound statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an arithmetic expression.
type Expr interface {
	Node
	exprNode()
}

// TypeKind is a declared variable type.
type TypeKind int

const (
	Integer TypeKind = iota
	Real
)

func (k TypeKind) String() string {
	switch k {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	}
	return "TypeKind(?)"
}

// Op is a unary or binary arithmetic operator.
type Op int

const (
	Plus Op = iota
	Minus
	Mul
	IntDiv
	RealDiv
)

func (o Op) String() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Mul:
		return "*"
	case IntDiv:
		return "DIV"
	case RealDiv:
		return "/"
	}
	return "Op(?)"
}

// ============ DECLARATIONS ============

// Program is the root: PROGRAM name; block.
type Program struct {
	Name  string
	Block *Block
	Pos   token.Position
}

// Block is the declarations of a program or procedure followed by its body.
type Block struct {
	Declarations []Decl
	Body         *Compound
	Pos          token.Position
}

// VarDecl declares one variable. Several VarDecls written on one line
// share the same *Type.
type VarDecl struct {
	Var  *Var
	Type *Type
}

// ProcedureDecl is PROCEDURE name; block;
type ProcedureDecl struct {
	Name  string
	Block *Block
	Pos   token.Position
}

// Type is a type name as written.
type Type struct {
	Kind TypeKind
	Pos  token.Position
}

// ============ STATEMENTS ============

// Compound is BEGIN statements END.
type Compound struct {
	Statements []Stmt
	Pos        token.Position
}

// Assign is target := value.
type Assign struct {
	Target *Var
	Value  Expr
	Pos    token.Position
}

// NoOp is the empty statement.
type NoOp struct {
	Pos token.Position
}

// ============ EXPRESSIONS ============

// Var references a variable by name.
type Var struct {
	Name string
	Pos  token.Position
}

// Num is an integer or real literal.
type Num struct {
	Kind TypeKind
	Int  int64   // set when Kind == Integer
	Real float64 // set when Kind == Real
	Pos  token.Position
}

// UnaryOp is a sign applied to an operand.
type UnaryOp struct {
	Op      Op // Plus or Minus
	Operand Expr
	Pos     token.Position
}

// BinOp is left op right.
type BinOp struct {
	Left  Expr
	Op    Op
	Right Expr
	Pos   token.Position
}

func (p *Program) Position() token.Position       { return p.Pos }
func (b *Block) Position() token.Position         { return b.Pos }
func (v *VarDecl) Position() token.Position       { return v.Var.Pos }
func (p *ProcedureDecl) Position() token.Position { return p.Pos }
func (t *Type) Position() token.Position          { return t.Pos }
func (c *Compound) Position() token.Position      { return c.Pos }
func (a *Assign) Position() token.Position        { return a.Pos }
func (n *NoOp) Position() token.Position          { return n.Pos }
func (v *Var) Position() token.Position           { return v.Pos }
func (n *Num) Position() token.Position           { return n.Pos }
func (u *UnaryOp) Position() token.Position       { return u.Pos }
func (b *BinOp) Position() token.Position         { return b.Pos }

func (*Program) node()       {}
func (*Block) node()         {}
func (*VarDecl) node()       {}
func (*ProcedureDecl) node() {}
func (*Type) node()          {}
func (*Compound) node()      {}
func (*Assign) node()        {}
func (*NoOp) node()          {}
func (*Var) node()           {}
func (*Num) node()           {}
func (*UnaryOp) node()       {}
func (*BinOp) node()         {}

func (*VarDecl) declNode()       {}
func (*ProcedureDecl) declNode() {}

func (*Compound) stmtNode() {}
func (*Assign) stmtNode()   {}
func (*NoOp) stmtNode()     {}

func (*Var) exprNode()     {}
func (*Num) exprNode()     {}
func (*UnaryOp) exprNode() {}
func (*BinOp) exprNode()   {}
