package wat

import (
	"fmt"
	"sort"

	"github.com/wattle-lang/wattle/internal/ast"
)

// Builtin describes a call name the backend replaces with a native
// instruction instead of emitting a function call.
type Builtin struct {
	// Instruction is the target-native operation.
	Instruction string

	// Arity is the required argument count. A matched call with any
	// other count is a shape error.
	Arity int
}

// builtins is the fixed table of recognized call names. Extend the backend
// by adding entries here, never by special-casing call sites.
var builtins = map[string]Builtin{
	"add64": {Instruction: "i64.add", Arity: 2},
	"sub64": {Instruction: "i64.sub", Arity: 2},
	"mul64": {Instruction: "i64.mul", Arity: 2},
	"gt64":  {Instruction: "i64.gt_u", Arity: 2},
}

// LookupBuiltin reports whether name is a recognized builtin and returns
// its table entry.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// BuiltinNames returns the recognized call names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveBuiltin tests a call against the builtin table. If the callee
// matches, the native instruction wrapping the lowered arguments is
// emitted and handled is true. If it does not match, nothing is emitted
// and handled is false, leaving ordinary call lowering to the caller.
func (g *Generator) resolveBuiltin(call ast.FunctionCall) (handled bool, err error) {
	b, ok := builtins[call.Function.Name]
	if !ok {
		return false, nil
	}
	if len(call.Arguments) != b.Arity {
		return true, newShapeError(call.Function.Name,
			fmt.Sprintf("builtin requires exactly %d arguments, got %d", b.Arity, len(call.Arguments)))
	}

	g.out.Add("(" + b.Instruction + " ")
	g.out.Indent()
	for i, arg := range call.Arguments {
		if i > 0 {
			g.out.NewLine()
		}
		if err := g.lower(arg); err != nil {
			return true, err
		}
	}
	g.out.Unindent()
	g.out.Add(")")
	return true, nil
}
