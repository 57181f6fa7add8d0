package wat

import (
	"fmt"

	"github.com/wattle-lang/wattle/internal/ast"
)

// Assemble lowers a root block to a WebAssembly text module.
//
// Lowering is single-pass and depth-first. On any error no text is
// returned: output is all-or-nothing.
func Assemble(root ast.Block) (string, error) {
	g := &Generator{out: NewEmitter()}
	g.out.AddLine("(module ")
	g.out.Indent()
	if err := g.statements(root); err != nil {
		return "", err
	}
	g.out.Unindent()
	g.out.AddLine(")")
	return g.out.Format(), nil
}

// Generator transforms IR nodes into emitter calls, one dispatch case per
// node kind. It carries no state besides the shared Emitter.
type Generator struct {
	out *Emitter
}

// lower dispatches a single node to its handler.
func (g *Generator) lower(n ast.Node) error {
	switch node := n.(type) {
	case ast.Literal:
		return g.literal(node)
	case *ast.Literal:
		return g.literal(*node)
	case ast.Identifier:
		return g.identifier(node)
	case *ast.Identifier:
		return g.identifier(*node)
	case ast.VariableDeclaration:
		return g.variableDeclaration(node)
	case *ast.VariableDeclaration:
		return g.variableDeclaration(*node)
	case ast.Assignment:
		return g.assignment(node)
	case *ast.Assignment:
		return g.assignment(*node)
	case ast.FunctionDefinition:
		return g.functionDefinition(node)
	case *ast.FunctionDefinition:
		return g.functionDefinition(*node)
	case ast.FunctionCall:
		return g.functionCall(node)
	case *ast.FunctionCall:
		return g.functionCall(*node)
	case ast.Switch:
		return g.switchNode(node)
	case *ast.Switch:
		return g.switchNode(*node)
	case ast.Block:
		return g.block(node)
	case *ast.Block:
		return g.block(*node)
	case ast.Instruction, *ast.Instruction:
		return newUnsupportedError("instruction", "instructions have no structured representation")
	case ast.FunctionalInstruction, *ast.FunctionalInstruction:
		return newUnsupportedError("functional instruction", "instructions have no structured representation")
	case ast.StackAssignment, *ast.StackAssignment:
		return newUnsupportedError("stack assignment", "assignment from stack has no structured representation")
	case ast.Label, *ast.Label:
		return newUnsupportedError("label", "labels have no structured representation")
	case nil:
		return newShapeError("node", "nil node")
	default:
		return newUnsupportedError(fmt.Sprintf("%T", n), "unknown node kind")
	}
}

// statements lowers the contents of a block in order, without emitting the
// block grouping itself. Used for the module root and function bodies.
func (g *Generator) statements(b ast.Block) error {
	for _, stmt := range b.Statements {
		if err := g.lower(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) literal(lit ast.Literal) error {
	switch lit.Kind {
	case ast.LiteralNumber:
		t, err := MapType(lit.Type)
		if err != nil {
			return err
		}
		g.out.Add("(" + t + ".const " + lit.Value + ")")
		return nil
	case ast.LiteralBoolean:
		t, err := MapType(lit.Type)
		if err != nil {
			return err
		}
		value := "0"
		if lit.Value == "true" {
			value = "1"
		}
		g.out.Add("(" + t + ".const " + value + ")")
		return nil
	default:
		return newUnsupportedError(lit.Kind.String()+" literal", "only number and boolean literals are supported")
	}
}

func (g *Generator) identifier(id ast.Identifier) error {
	g.out.Add("(get_local $" + id.Name + ")")
	return nil
}

func (g *Generator) variableDeclaration(decl ast.VariableDeclaration) error {
	if len(decl.Variables) != 1 {
		return newShapeError("variable declaration",
			fmt.Sprintf("must bind exactly one name, got %d", len(decl.Variables)))
	}
	if decl.Value == nil {
		return newShapeError("variable declaration", "missing initializer expression")
	}
	v := decl.Variables[0]
	t, err := MapType(v.Type)
	if err != nil {
		return err
	}
	g.out.AddLine("(local $" + v.Name + " " + t + ")")
	return g.setLocal(v.Name, decl.Value)
}

func (g *Generator) assignment(assign ast.Assignment) error {
	if assign.Value == nil {
		return newShapeError("assignment", "missing value expression")
	}
	return g.setLocal(assign.VariableName.Name, assign.Value)
}

// setLocal emits a local-variable write whose value is the lowered
// expression.
func (g *Generator) setLocal(name string, value ast.Node) error {
	g.out.AddLine("(set_local $" + name + " ")
	g.out.Indent()
	if err := g.lower(value); err != nil {
		return err
	}
	g.out.Unindent()
	g.out.Add(")")
	g.out.NewLine()
	return nil
}

func (g *Generator) functionDefinition(fn ast.FunctionDefinition) error {
	if len(fn.Returns) > 1 {
		return newShapeError("function definition",
			fmt.Sprintf("at most one return binding is supported, got %d", len(fn.Returns)))
	}

	g.out.NewLine()
	g.out.AddLine("(func $" + fn.Name + " ")
	g.out.Indent()
	for _, param := range fn.Parameters {
		t, err := MapType(param.Type)
		if err != nil {
			return err
		}
		g.out.AddLine("(param $" + param.Name + " " + t + ")")
	}

	// The return binding is an ordinary local the body writes under its
	// own name; the function ends by reading it back explicitly.
	returnName := ""
	for _, ret := range fn.Returns {
		returnName = ret.Name
		t, err := MapType(ret.Type)
		if err != nil {
			return err
		}
		g.out.AddLine("(result " + t + ")")
		g.out.AddLine("(local $" + ret.Name + " " + t + ")")
	}

	if err := g.statements(fn.Body); err != nil {
		return err
	}

	if returnName != "" {
		g.out.AddLine("(return (get_local $" + returnName + "))")
	}
	g.out.Unindent()
	g.out.AddLine(")")
	return nil
}

func (g *Generator) functionCall(call ast.FunctionCall) error {
	handled, err := g.resolveBuiltin(call)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	g.out.AddLine("(call $" + call.Function.Name)
	g.out.Indent()
	for _, arg := range call.Arguments {
		g.out.Add(" ")
		if err := g.lower(arg); err != nil {
			return err
		}
		g.out.NewLine()
	}
	g.out.Unindent()
	g.out.AddLine(")")
	return nil
}

func (g *Generator) switchNode(sw ast.Switch) error {
	// The backend fragment is a two-way conditional: exactly one
	// comparison case and exactly one default. A single-case switch has
	// no discriminating comparison target and is rejected as malformed.
	if len(sw.Cases) != 2 {
		return newShapeError("switch",
			fmt.Sprintf("requires exactly two cases, got %d", len(sw.Cases)))
	}
	if sw.Expression == nil {
		return newShapeError("switch", "missing scrutinee expression")
	}

	var valueCase, defaultCase *ast.Case
	for i := range sw.Cases {
		c := &sw.Cases[i]
		if c.Value == nil {
			if defaultCase != nil {
				return newShapeError("switch", "more than one default case")
			}
			defaultCase = c
		} else {
			valueCase = c
		}
	}
	if defaultCase == nil {
		return newShapeError("switch", "missing default case")
	}

	g.out.AddLine("(if (result " + numericType + ") ")
	g.out.Indent()
	g.out.Add("(" + numericType + ".eq ")
	if err := g.lower(sw.Expression); err != nil {
		return err
	}
	g.out.Add(" ")
	if err := g.literal(*valueCase.Value); err != nil {
		return err
	}
	g.out.Add(")")
	g.out.NewLine()

	g.out.Add("(then ")
	g.out.Indent()
	if err := g.block(valueCase.Body); err != nil {
		return err
	}
	g.out.Unindent()
	g.out.AddLine(")")

	g.out.Add("(else ")
	g.out.Indent()
	if err := g.block(defaultCase.Body); err != nil {
		return err
	}
	g.out.Unindent()
	g.out.AddLine(")")

	g.out.Unindent()
	g.out.AddLine(")")
	return nil
}

func (g *Generator) block(b ast.Block) error {
	g.out.Add("(block ")
	g.out.Indent()
	if err := g.statements(b); err != nil {
		return err
	}
	g.out.Unindent()
	g.out.Add(")")
	return nil
}
