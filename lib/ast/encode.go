package ast

import (
	"encoding/json"
	"fmt"
)

// Tree converts a node into nested maps and slices that encoding/json and
// yaml.v3 render directly. Each map names its variant under "node".
func Tree(n Node) map[string]any {
	switch n := n.(type) {
	case *Program:
		return map[string]any{"node": "Program", "name": n.Name, "block": Tree(n.Block)}
	case *Block:
		decls := make([]any, 0, len(n.Declarations))
		for _, d := range n.Declarations {
			decls = append(decls, Tree(d))
		}
		return map[string]any{"node": "Block", "declarations": decls, "body": Tree(n.Body)}
	case *VarDecl:
		return map[string]any{"node": "VarDecl", "var": Tree(n.Var), "type": Tree(n.Type)}
	case *ProcedureDecl:
		return map[string]any{"node": "ProcedureDecl", "name": n.Name, "block": Tree(n.Block)}
	case *Type:
		return map[string]any{"node": "Type", "kind": n.Kind.String()}
	case *Compound:
		stmts := make([]any, 0, len(n.Statements))
		for _, s := range n.Statements {
			stmts = append(stmts, Tree(s))
		}
		return map[string]any{"node": "Compound", "statements": stmts}
	case *Assign:
		return map[string]any{"node": "Assign", "target": Tree(n.Target), "value": Tree(n.Value)}
	case *NoOp:
		return map[string]any{"node": "NoOp"}
	case *Var:
		return map[string]any{"node": "Var", "name": n.Name}
	case *Num:
		if n.Kind == Real {
			return map[string]any{"node": "Num", "kind": n.Kind.String(), "value": n.Real}
		}
		return map[string]any{"node": "Num", "kind": n.Kind.String(), "value": n.Int}
	case *UnaryOp:
		return map[string]any{"node": "UnaryOp", "op": n.Op.String(), "operand": Tree(n.Operand)}
	case *BinOp:
		return map[string]any{"node": "BinOp", "left": Tree(n.Left), "op": n.Op.String(), "right": Tree(n.Right)}
	default:
		panic(fmt.Sprintf("ast.Tree: unexpected node type %T", n))
	}
}

func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(Tree(p))
}

// MarshalYAML implements yaml.Marshaler.
func (p *Program) MarshalYAML() (any, error) {
	return Tree(p), nil
}
