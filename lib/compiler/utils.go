package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/vyPal/pasc/lib/ast"
	"github.com/vyPal/pasc/lib/token"
)

func posError(pos token.Position, message string, args ...interface{}) error {
	return fmt.Errorf("%s at %s", fmt.Sprintf(message, args...), token.FormatPos(pos))
}

func llType(k ast.TypeKind) types.Type {
	if k == ast.Real {
		return types.Double
	}
	return types.I64
}

func zero(k ast.TypeKind) constant.Constant {
	if k == ast.Real {
		return constant.NewFloat(types.Double, 0)
	}
	return constant.NewInt(types.I64, 0)
}
