package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The interface is sealed: every node kind, by value and by pointer,
// satisfies Node.
var (
	_ Node = Literal{}
	_ Node = Identifier{}
	_ Node = VariableDeclaration{}
	_ Node = Assignment{}
	_ Node = FunctionDefinition{}
	_ Node = FunctionCall{}
	_ Node = Switch{}
	_ Node = Block{}
	_ Node = Instruction{}
	_ Node = FunctionalInstruction{}
	_ Node = StackAssignment{}
	_ Node = Label{}

	_ Node = (*Literal)(nil)
	_ Node = (*Block)(nil)
)

func TestLiteralKind_String(t *testing.T) {
	assert.Equal(t, "number", LiteralNumber.String())
	assert.Equal(t, "boolean", LiteralBoolean.String())
	assert.Equal(t, "string", LiteralString.String())
	assert.Equal(t, "unknown", LiteralKind(99).String())
}

func TestCase_DefaultIsNilValue(t *testing.T) {
	def := Case{Body: Block{}}
	assert.Nil(t, def.Value)

	v := Literal{Kind: LiteralNumber, Value: "1", Type: "u64"}
	arm := Case{Value: &v}
	assert.NotNil(t, arm.Value)
}
