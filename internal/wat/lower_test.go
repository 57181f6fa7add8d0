package wat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattle-lang/wattle/internal/ast"
	"github.com/wattle-lang/wattle/internal/testutil"
)

func TestAssemble_EmptyModule(t *testing.T) {
	out, err := Assemble(ast.Block{})
	require.NoError(t, err)
	assert.Equal(t, "(module \n)\n", out)
}

func TestAssemble_NumberLiteral(t *testing.T) {
	out, err := Assemble(testutil.BlockOf(testutil.U64("5")))
	require.NoError(t, err)
	assert.Equal(t, "(module \n    (i64.const 5)\n)\n", out)
}

func TestAssemble_BooleanLiteral(t *testing.T) {
	tests := []struct {
		name string
		lit  ast.Literal
		want string
	}{
		{name: "true maps to one", lit: testutil.Bool(true), want: "(i64.const 1)"},
		{name: "false maps to zero", lit: testutil.Bool(false), want: "(i64.const 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Assemble(testutil.BlockOf(tt.lit))
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestAssemble_StringLiteralRejected(t *testing.T) {
	lit := ast.Literal{Kind: ast.LiteralString, Value: "hello", Type: "u64"}
	out, err := Assemble(testutil.BlockOf(lit))
	require.Error(t, err)
	assert.True(t, IsUnsupportedConstructError(err))
	assert.Empty(t, out)
}

func TestAssemble_LiteralUnknownType(t *testing.T) {
	lit := ast.Literal{Kind: ast.LiteralNumber, Value: "5", Type: "u256"}
	_, err := Assemble(testutil.BlockOf(lit))
	require.Error(t, err)
	assert.True(t, IsUnknownTypeError(err))
}

func TestAssemble_Identifier(t *testing.T) {
	out, err := Assemble(testutil.BlockOf(testutil.Ident("x")))
	require.NoError(t, err)
	assert.Equal(t, "(module \n    (get_local $x)\n)\n", out)
}

func TestAssemble_VariableDeclaration(t *testing.T) {
	out, err := Assemble(testutil.BlockOf(testutil.Let("x", "u64", testutil.U64("5"))))
	require.NoError(t, err)

	expected := "(module \n" +
		"    (local $x i64)\n" +
		"    (set_local $x \n" +
		"        (i64.const 5)\n" +
		"    )\n" +
		")\n"
	assert.Equal(t, expected, out)
}

func TestAssemble_VariableDeclarationShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		decl ast.VariableDeclaration
	}{
		{
			name: "no bindings",
			decl: ast.VariableDeclaration{Value: testutil.U64("1")},
		},
		{
			name: "two bindings",
			decl: ast.VariableDeclaration{
				Variables: []ast.TypedName{{Name: "a", Type: "u64"}, {Name: "b", Type: "u64"}},
				Value:     testutil.U64("1"),
			},
		},
		{
			name: "missing initializer",
			decl: ast.VariableDeclaration{
				Variables: []ast.TypedName{{Name: "a", Type: "u64"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Assemble(testutil.BlockOf(tt.decl))
			require.Error(t, err)
			assert.True(t, IsShapeError(err))
			assert.Empty(t, out)
		})
	}
}

func TestAssemble_Assignment(t *testing.T) {
	out, err := Assemble(testutil.BlockOf(testutil.Assign("x", testutil.Ident("y"))))
	require.NoError(t, err)

	expected := "(module \n" +
		"    (set_local $x \n" +
		"        (get_local $y)\n" +
		"    )\n" +
		")\n"
	assert.Equal(t, expected, out)
}

func TestAssemble_AssignmentMissingValue(t *testing.T) {
	_, err := Assemble(testutil.BlockOf(ast.Assignment{VariableName: testutil.Ident("x")}))
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
}

func TestAssemble_FunctionDefinition(t *testing.T) {
	ret := ast.TypedName{Name: "r", Type: "u64"}
	fn := testutil.Fn("bump",
		[]ast.TypedName{{Name: "n", Type: "u64"}},
		&ret,
		testutil.Assign("r", testutil.Call("add64", testutil.Ident("n"), testutil.U64("1"))),
	)

	out, err := Assemble(testutil.BlockOf(fn))
	require.NoError(t, err)

	expected := "(module \n" +
		"    (func $bump \n" +
		"        (param $n i64)\n" +
		"        (result i64)\n" +
		"        (local $r i64)\n" +
		"        (set_local $r \n" +
		"            (i64.add \n" +
		"                (get_local $n)\n" +
		"                (i64.const 1)\n" +
		"            )\n" +
		"        )\n" +
		"        (return (get_local $r))\n" +
		"    )\n" +
		")\n"
	assert.Equal(t, expected, out)
}

func TestAssemble_FunctionWithoutReturnBinding(t *testing.T) {
	fn := testutil.Fn("side", nil, nil, testutil.U64("1"))

	out, err := Assemble(testutil.BlockOf(fn))
	require.NoError(t, err)
	assert.NotContains(t, out, "(result")
	assert.NotContains(t, out, "(return")
}

func TestAssemble_FunctionReturnShape(t *testing.T) {
	// A function with a return binding declares exactly one result type,
	// one backing local, and one trailing return of that local.
	ret := ast.TypedName{Name: "out", Type: "s32"}
	fn := testutil.Fn("f", nil, &ret, testutil.Assign("out", testutil.U64("7")))

	got, err := Assemble(testutil.BlockOf(fn))
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(got, "(result i64)"))
	assert.Equal(t, 1, strings.Count(got, "(return (get_local $out))"))
}

func TestAssemble_FunctionTooManyReturns(t *testing.T) {
	fn := ast.FunctionDefinition{
		Name: "f",
		Returns: []ast.TypedName{
			{Name: "a", Type: "u64"},
			{Name: "b", Type: "u64"},
		},
	}
	_, err := Assemble(testutil.BlockOf(fn))
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
}

func TestAssemble_FunctionCall(t *testing.T) {
	out, err := Assemble(testutil.BlockOf(
		testutil.Call("helper", testutil.Ident("a"), testutil.U64("5")),
	))
	require.NoError(t, err)

	expected := "(module \n" +
		"    (call $helper\n" +
		"         (get_local $a)\n" +
		"         (i64.const 5)\n" +
		"    )\n" +
		")\n"
	assert.Equal(t, expected, out)
}

func TestAssemble_FunctionCallNoArguments(t *testing.T) {
	out, err := Assemble(testutil.BlockOf(testutil.Call("init")))
	require.NoError(t, err)

	expected := "(module \n" +
		"    (call $init\n" +
		"    )\n" +
		")\n"
	assert.Equal(t, expected, out)
}

func TestAssemble_Switch(t *testing.T) {
	sw := testutil.TwoWaySwitch(
		testutil.Ident("x"),
		testutil.U64("1"),
		testutil.BlockOf(testutil.U64("10")),
		testutil.BlockOf(testutil.U64("20")),
	)

	out, err := Assemble(testutil.BlockOf(sw))
	require.NoError(t, err)

	expected := "(module \n" +
		"    (if (result i64) \n" +
		"        (i64.eq (get_local $x) (i64.const 1))\n" +
		"        (then \n" +
		"            (block \n" +
		"                (i64.const 10)\n" +
		"            )\n" +
		"        )\n" +
		"        (else \n" +
		"            (block \n" +
		"                (i64.const 20)\n" +
		"            )\n" +
		"        )\n" +
		"    )\n" +
		")\n"
	assert.Equal(t, expected, out)
}

func TestAssemble_SwitchCaseOrderIndependent(t *testing.T) {
	// Default-first input lowers to the same conditional as default-last:
	// the value case always drives the then branch.
	caseValue := testutil.U64("1")
	sw := ast.Switch{
		Expression: testutil.Ident("x"),
		Cases: []ast.Case{
			{Body: testutil.BlockOf(testutil.U64("20"))},
			{Value: &caseValue, Body: testutil.BlockOf(testutil.U64("10"))},
		},
	}

	defaultFirst, err := Assemble(testutil.BlockOf(sw))
	require.NoError(t, err)

	defaultLast, err := Assemble(testutil.BlockOf(testutil.TwoWaySwitch(
		testutil.Ident("x"),
		testutil.U64("1"),
		testutil.BlockOf(testutil.U64("10")),
		testutil.BlockOf(testutil.U64("20")),
	)))
	require.NoError(t, err)

	assert.Equal(t, defaultLast, defaultFirst)
}

func TestAssemble_SwitchShapeErrors(t *testing.T) {
	one := testutil.U64("1")
	two := testutil.U64("2")

	tests := []struct {
		name string
		sw   ast.Switch
	}{
		{
			name: "no cases",
			sw:   ast.Switch{Expression: testutil.Ident("x")},
		},
		{
			name: "single case",
			sw: ast.Switch{
				Expression: testutil.Ident("x"),
				Cases:      []ast.Case{{Value: &one}},
			},
		},
		{
			name: "three cases",
			sw: ast.Switch{
				Expression: testutil.Ident("x"),
				Cases:      []ast.Case{{Value: &one}, {Value: &two}, {}},
			},
		},
		{
			name: "two defaults",
			sw: ast.Switch{
				Expression: testutil.Ident("x"),
				Cases:      []ast.Case{{}, {}},
			},
		},
		{
			name: "no default",
			sw: ast.Switch{
				Expression: testutil.Ident("x"),
				Cases:      []ast.Case{{Value: &one}, {Value: &two}},
			},
		},
		{
			name: "missing scrutinee",
			sw: ast.Switch{
				Cases: []ast.Case{{Value: &one}, {}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Assemble(testutil.BlockOf(tt.sw))
			require.Error(t, err)
			assert.True(t, IsShapeError(err), "got %v", err)
			assert.Empty(t, out)
		})
	}
}

func TestAssemble_NestedBlock(t *testing.T) {
	out, err := Assemble(testutil.BlockOf(testutil.BlockOf(testutil.U64("42"))))
	require.NoError(t, err)

	expected := "(module \n" +
		"    (block \n" +
		"        (i64.const 42)\n" +
		"    )\n" +
		")\n"
	assert.Equal(t, expected, out)
}

func TestAssemble_RejectedConstructs(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
	}{
		{name: "instruction", node: ast.Instruction{Name: "dup1"}},
		{name: "functional instruction", node: ast.FunctionalInstruction{Name: "mload"}},
		{name: "stack assignment", node: ast.StackAssignment{VariableName: testutil.Ident("x")}},
		{name: "label", node: ast.Label{Name: "loop"}},
		{name: "pointer instruction", node: &ast.Instruction{Name: "dup1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Assemble(testutil.BlockOf(tt.node))
			require.Error(t, err)
			assert.True(t, IsUnsupportedConstructError(err), "got %v", err)
			assert.Empty(t, out)
		})
	}
}

func TestAssemble_NilStatement(t *testing.T) {
	_, err := Assemble(ast.Block{Statements: []ast.Node{nil}})
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
}

func TestAssemble_PointerNodesLowerLikeValues(t *testing.T) {
	lit := testutil.U64("5")
	byValue, err := Assemble(testutil.BlockOf(lit))
	require.NoError(t, err)

	byPointer, err := Assemble(ast.Block{Statements: []ast.Node{&lit}})
	require.NoError(t, err)

	assert.Equal(t, byValue, byPointer)
}

func TestAssemble_Deterministic(t *testing.T) {
	// Lowering the same tree twice yields byte-identical output: the
	// generator carries no hidden state between runs.
	ret := ast.TypedName{Name: "r", Type: "u64"}
	root := testutil.BlockOf(
		testutil.Fn("f",
			[]ast.TypedName{{Name: "a", Type: "u64"}, {Name: "b", Type: "s32"}},
			&ret,
			testutil.Let("tmp", "u64", testutil.Call("mul64", testutil.Ident("a"), testutil.Ident("b"))),
			testutil.Assign("r", testutil.Ident("tmp")),
		),
		testutil.TwoWaySwitch(
			testutil.Call("gt64", testutil.Ident("x"), testutil.U64("10")),
			testutil.Bool(true),
			testutil.BlockOf(testutil.U64("1")),
			testutil.BlockOf(testutil.U64("0")),
		),
	)

	first, err := Assemble(root)
	require.NoError(t, err)
	second, err := Assemble(root)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
