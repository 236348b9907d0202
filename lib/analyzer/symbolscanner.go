package analyzer

import (
	"fmt"

	"github.com/vyPal/pasc/lib/ast"
	"github.com/vyPal/pasc/lib/token"
)

// scanDeclarations declares every variable and procedure of b in s, in
// source order.
func (a *analyzer) scanDeclarations(b *ast.Block, s *Scope) error {
	for _, d := range b.Declarations {
		var sym *Symbol
		switch d := d.(type) {
		case *ast.VarDecl:
			sym = &Symbol{Name: d.Var.Name, Kind: VarSymbol, Type: d.Type.Kind, Decl: d}
		case *ast.ProcedureDecl:
			sym = &Symbol{Name: d.Name, Kind: ProcSymbol, Decl: d}
		}

		if prev, ok := s.Declare(sym); !ok {
			return errorAt(d.Position(), fmt.Sprintf("duplicate declaration of %s (previous %s declared at %s)",
				sym.Name, prev.Kind, token.FormatPos(prev.Decl.Position())))
		}
		if sym.Kind == VarSymbol {
			a.declared = append(a.declared, sym)
		}
	}
	return nil
}
