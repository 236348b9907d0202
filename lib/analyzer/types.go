package analyzer

import "github.com/vyPal/pasc/lib/ast"

// binaryType is the type of l op r, or false if the operands do not fit op.
func binaryType(op ast.Op, l, r ast.TypeKind) (ast.TypeKind, bool) {
	switch op {
	case ast.RealDiv:
		return ast.Real, true
	case ast.IntDiv:
		if l != ast.Integer || r != ast.Integer {
			return ast.Integer, false
		}
		return ast.Integer, true
	default:
		if l == ast.Real || r == ast.Real {
			return ast.Real, true
		}
		return ast.Integer, true
	}
}

// assignable reports whether a value of type from can be stored in a
// variable of type to. INTEGER widens to REAL; nothing narrows.
func assignable(to, from ast.TypeKind) bool {
	return to == from || (to == ast.Real && from == ast.Integer)
}
