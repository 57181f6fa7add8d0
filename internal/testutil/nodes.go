// Package testutil provides compact constructors for IR trees used across
// package tests.
package testutil

import "github.com/wattle-lang/wattle/internal/ast"

// U64 builds a numeric literal of type u64.
func U64(value string) ast.Literal {
	return ast.Literal{Kind: ast.LiteralNumber, Value: value, Type: "u64"}
}

// Bool builds a boolean literal of type bool.
func Bool(v bool) ast.Literal {
	value := "false"
	if v {
		value = "true"
	}
	return ast.Literal{Kind: ast.LiteralBoolean, Value: value, Type: "bool"}
}

// Ident builds an identifier reference.
func Ident(name string) ast.Identifier {
	return ast.Identifier{Name: name}
}

// Call builds a function call.
func Call(callee string, args ...ast.Node) ast.FunctionCall {
	return ast.FunctionCall{Function: ast.Identifier{Name: callee}, Arguments: args}
}

// Let builds a single-binding variable declaration.
func Let(name, typ string, value ast.Node) ast.VariableDeclaration {
	return ast.VariableDeclaration{
		Variables: []ast.TypedName{{Name: name, Type: typ}},
		Value:     value,
	}
}

// Assign builds an assignment to an existing local.
func Assign(name string, value ast.Node) ast.Assignment {
	return ast.Assignment{VariableName: ast.Identifier{Name: name}, Value: value}
}

// BlockOf builds a block from statements.
func BlockOf(stmts ...ast.Node) ast.Block {
	return ast.Block{Statements: stmts}
}

// Fn builds a function definition. Pass ret as nil for no return binding.
func Fn(name string, params []ast.TypedName, ret *ast.TypedName, body ...ast.Node) ast.FunctionDefinition {
	fn := ast.FunctionDefinition{
		Name:       name,
		Parameters: params,
		Body:       ast.Block{Statements: body},
	}
	if ret != nil {
		fn.Returns = []ast.TypedName{*ret}
	}
	return fn
}

// TwoWaySwitch builds a switch with one value case and one default case.
func TwoWaySwitch(scrutinee ast.Node, caseValue ast.Literal, caseBody, defaultBody ast.Block) ast.Switch {
	return ast.Switch{
		Expression: scrutinee,
		Cases: []ast.Case{
			{Value: &caseValue, Body: caseBody},
			{Body: defaultBody},
		},
	}
}
