package ast

// Node is a sealed interface over all IR tree nodes.
//
// Only types in this package implement it. The marker method pattern
// prevents external implementations and enables exhaustive type switches
// in backends.
type Node interface {
	irNode() // Marker method - seals interface to this package
}

// LiteralKind tags the flavor of a Literal.
type LiteralKind int

const (
	// LiteralNumber is a numeric literal; Value holds its source text.
	LiteralNumber LiteralKind = iota

	// LiteralBoolean is a boolean literal; Value is "true" or "false".
	LiteralBoolean

	// LiteralString is a string literal. No backend supports string
	// literals; it exists so the kind can be rejected explicitly.
	LiteralString
)

// String returns the kind name for diagnostics.
func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralBoolean:
		return "boolean"
	case LiteralString:
		return "string"
	default:
		return "unknown"
	}
}

// TypedName is a name paired with a declared IR type. It appears as a
// function parameter, a return binding, and a declared variable.
type TypedName struct {
	Name string
	Type string
}

// Literal is a constant with a kind tag, its source text, and a declared
// IR type.
type Literal struct {
	Kind  LiteralKind
	Value string
	Type  string
}

func (Literal) irNode() {}

// Identifier is a reference to a local variable by name.
type Identifier struct {
	Name string
}

func (Identifier) irNode() {}

// VariableDeclaration introduces named bindings initialized from Value.
//
// The slice exists because the source dialect allows tuple declarations;
// backends only accept exactly one binding and reject the rest.
type VariableDeclaration struct {
	Variables []TypedName
	Value     Node
}

func (VariableDeclaration) irNode() {}

// Assignment writes Value to an existing local variable.
type Assignment struct {
	VariableName Identifier
	Value        Node
}

func (Assignment) irNode() {}

// FunctionDefinition declares a named function with ordered typed
// parameters, at most one typed return binding, and a body block.
type FunctionDefinition struct {
	Name       string
	Parameters []TypedName
	Returns    []TypedName
	Body       Block
}

func (FunctionDefinition) irNode() {}

// FunctionCall applies a callee name to ordered argument expressions.
type FunctionCall struct {
	Function  Identifier
	Arguments []Node
}

func (FunctionCall) irNode() {}

// Case is one arm of a Switch. A nil Value marks the default case.
type Case struct {
	Value *Literal
	Body  Block
}

// Switch compares a scrutinee expression against case values.
//
// The backend fragment requires exactly two cases, exactly one of which
// is the default.
type Switch struct {
	Expression Node
	Cases      []Case
}

func (Switch) irNode() {}

// Block is an ordered sequence of statement and expression nodes.
type Block struct {
	Statements []Node
}

func (Block) irNode() {}

// Instruction is a raw stack-machine opcode statement. It has no
// representation in any structured backend and is always rejected.
type Instruction struct {
	Name string
}

func (Instruction) irNode() {}

// FunctionalInstruction is an opcode applied to argument expressions.
// Rejected by every backend, same as Instruction.
type FunctionalInstruction struct {
	Name      string
	Arguments []Node
}

func (FunctionalInstruction) irNode() {}

// StackAssignment pops the value on top of the evaluation stack into a
// named variable. Rejected: backends have no implicit stack.
type StackAssignment struct {
	VariableName Identifier
}

func (StackAssignment) irNode() {}

// Label is a jump target. Rejected: backends expose structured control
// flow only.
type Label struct {
	Name string
}

func (Label) irNode() {}
