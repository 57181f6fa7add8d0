package frontend

import (
	"fmt"

	"github.com/wattle-lang/wattle/internal/ast"
)

// EncodeDocument converts an ast node back to its document form. The
// result round-trips through Decode and is the input to canonical
// marshaling, so encoding must be total over the closed node set.
func EncodeDocument(n ast.Node) map[string]any {
	switch node := n.(type) {
	case ast.Literal:
		return encodeLiteral(node)
	case *ast.Literal:
		return encodeLiteral(*node)
	case ast.Identifier:
		return map[string]any{"node": "identifier", "name": node.Name}
	case *ast.Identifier:
		return map[string]any{"node": "identifier", "name": node.Name}
	case ast.VariableDeclaration:
		return encodeLet(node)
	case *ast.VariableDeclaration:
		return encodeLet(*node)
	case ast.Assignment:
		return encodeAssign(node)
	case *ast.Assignment:
		return encodeAssign(*node)
	case ast.FunctionDefinition:
		return encodeFunction(node)
	case *ast.FunctionDefinition:
		return encodeFunction(*node)
	case ast.FunctionCall:
		return encodeCall(node)
	case *ast.FunctionCall:
		return encodeCall(*node)
	case ast.Switch:
		return encodeSwitch(node)
	case *ast.Switch:
		return encodeSwitch(*node)
	case ast.Block:
		return encodeBlock(node)
	case *ast.Block:
		return encodeBlock(*node)
	case ast.Instruction:
		return map[string]any{"node": "instruction", "name": node.Name}
	case *ast.Instruction:
		return map[string]any{"node": "instruction", "name": node.Name}
	case ast.FunctionalInstruction:
		return encodeFunctionalInstruction(node)
	case *ast.FunctionalInstruction:
		return encodeFunctionalInstruction(*node)
	case ast.StackAssignment:
		return map[string]any{"node": "stack_assign", "name": node.VariableName.Name}
	case *ast.StackAssignment:
		return map[string]any{"node": "stack_assign", "name": node.VariableName.Name}
	case ast.Label:
		return map[string]any{"node": "label", "name": node.Name}
	case *ast.Label:
		return map[string]any{"node": "label", "name": node.Name}
	default:
		// Unreachable for trees built from this module: Node is sealed.
		return map[string]any{"node": fmt.Sprintf("unknown:%T", n)}
	}
}

func encodeLiteral(lit ast.Literal) map[string]any {
	return map[string]any{
		"node":  "literal",
		"kind":  lit.Kind.String(),
		"value": lit.Value,
		"type":  lit.Type,
	}
}

func encodeTypedNames(names []ast.TypedName) []any {
	out := make([]any, len(names))
	for i, tn := range names {
		out[i] = map[string]any{"name": tn.Name, "type": tn.Type}
	}
	return out
}

func encodeNodeList(nodes []ast.Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = EncodeDocument(n)
	}
	return out
}

func encodeBlock(b ast.Block) map[string]any {
	return map[string]any{
		"node":       "block",
		"statements": encodeNodeList(b.Statements),
	}
}

func encodeLet(decl ast.VariableDeclaration) map[string]any {
	return map[string]any{
		"node":      "let",
		"variables": encodeTypedNames(decl.Variables),
		"value":     EncodeDocument(decl.Value),
	}
}

func encodeAssign(assign ast.Assignment) map[string]any {
	return map[string]any{
		"node":  "assign",
		"name":  assign.VariableName.Name,
		"value": EncodeDocument(assign.Value),
	}
}

func encodeFunction(fn ast.FunctionDefinition) map[string]any {
	doc := map[string]any{
		"node":       "function",
		"name":       fn.Name,
		"parameters": encodeTypedNames(fn.Parameters),
		"body":       encodeBlock(fn.Body),
	}
	if len(fn.Returns) > 0 {
		doc["returns"] = encodeTypedNames(fn.Returns)
	}
	return doc
}

func encodeCall(call ast.FunctionCall) map[string]any {
	doc := map[string]any{
		"node":   "call",
		"callee": call.Function.Name,
	}
	if len(call.Arguments) > 0 {
		doc["arguments"] = encodeNodeList(call.Arguments)
	}
	return doc
}

func encodeSwitch(sw ast.Switch) map[string]any {
	cases := make([]any, len(sw.Cases))
	for i, c := range sw.Cases {
		caseDoc := map[string]any{"body": encodeBlock(c.Body)}
		if c.Value != nil {
			caseDoc["value"] = encodeLiteral(*c.Value)
		}
		cases[i] = caseDoc
	}
	return map[string]any{
		"node":       "switch",
		"expression": EncodeDocument(sw.Expression),
		"cases":      cases,
	}
}

func encodeFunctionalInstruction(fi ast.FunctionalInstruction) map[string]any {
	doc := map[string]any{
		"node": "functional_instruction",
		"name": fi.Name,
	}
	if len(fi.Arguments) > 0 {
		doc["arguments"] = encodeNodeList(fi.Arguments)
	}
	return doc
}
