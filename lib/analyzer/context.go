package analyzer

import (
	"strings"

	"github.com/vyPal/pasc/lib/ast"
)

// Scope holds the names declared by one program or procedure block.
type Scope struct {
	Name    string
	Parent  *Scope
	Symbols []*Symbol // declaration order
	byName  map[string]*Symbol
}

type SymbolKind int

const (
	VarSymbol SymbolKind = iota
	ProcSymbol
)

func (k SymbolKind) String() string {
	if k == ProcSymbol {
		return "procedure"
	}
	return "variable"
}

// Symbol is a declared name.
type Symbol struct {
	Name      string // as first spelled
	Qualified string // Program.Proc.name
	Kind      SymbolKind
	Type      ast.TypeKind // variables only
	Decl      ast.Node     // *ast.VarDecl or *ast.ProcedureDecl
	Scope     *Scope
}

func NewScope(name string) *Scope {
	return &Scope{
		Name:   name,
		byName: make(map[string]*Symbol),
	}
}

func (s *Scope) NewScope(name string) *Scope {
	child := NewScope(name)
	child.Parent = s
	return child
}

// Path is the dotted chain of scope names from the program down.
func (s *Scope) Path() string {
	if s.Parent == nil {
		return s.Name
	}
	return s.Parent.Path() + "." + s.Name
}

func key(name string) string {
	return strings.ToLower(name)
}

// Declare adds sym to s. It returns the earlier symbol and false if the
// name is already taken in this scope.
func (s *Scope) Declare(sym *Symbol) (*Symbol, bool) {
	if prev, ok := s.byName[key(sym.Name)]; ok {
		return prev, false
	}
	sym.Scope = s
	sym.Qualified = s.Path() + "." + sym.Name
	s.byName[key(sym.Name)] = sym
	s.Symbols = append(s.Symbols, sym)
	return sym, true
}

// LookupLocal finds name in s only.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.byName[key(name)]
	return sym, ok
}

// Lookup finds name in s or the nearest enclosing scope.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	if sym, ok := s.byName[key(name)]; ok {
		return sym, true
	} else if s.Parent != nil {
		return s.Parent.Lookup(name)
	} else {
		return nil, false
	}
}

// Variables returns the variable symbols of s in declaration order.
func (s *Scope) Variables() []*Symbol {
	var vars []*Symbol
	for _, sym := range s.Symbols {
		if sym.Kind == VarSymbol {
			vars = append(vars, sym)
		}
	}
	return vars
}
