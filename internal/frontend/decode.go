package frontend

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/wattle-lang/wattle/internal/ast"
)

//go:embed schema.cue
var schemaCUE string

// Error codes for document loading failures.
const (
	ErrCodeParse  = "PARSE_ERROR"  // document is not valid YAML/JSON
	ErrCodeSchema = "SCHEMA_ERROR" // document violates the schema
	ErrCodeShape  = "SHAPE_ERROR"  // document field has an unexpected form
)

// DocumentError represents an error that occurred while loading an IR
// document.
type DocumentError struct {
	Code    string
	Message string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Decode parses a YAML or JSON document into a root block.
//
// The document is validated against the embedded CUE schema before any
// node is constructed, so a returned tree always has the documented
// shape. Semantic rejection (unknown types, malformed switches) is the
// backend's job, not Decode's.
func Decode(data []byte) (ast.Block, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ast.Block{}, &DocumentError{Code: ErrCodeParse, Message: fmt.Sprintf("parse document: %v", err)}
	}
	if err := validateDocument(doc); err != nil {
		return ast.Block{}, err
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return ast.Block{}, &DocumentError{Code: ErrCodeShape, Message: fmt.Sprintf("document root must be a block mapping, got %T", doc)}
	}
	return decodeBlock(m)
}

// validateDocument unifies the decoded document with the #Module schema
// definition and reports any conflict.
func validateDocument(doc any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	module := schema.LookupPath(cue.ParsePath("#Module"))
	if err := module.Err(); err != nil {
		return fmt.Errorf("lookup #Module: %w", err)
	}

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return &DocumentError{Code: ErrCodeSchema, Message: fmt.Sprintf("encode document: %v", err)}
	}

	unified := module.Unify(value)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return &DocumentError{Code: ErrCodeSchema, Message: cueerrors.Details(err, nil)}
	}
	return nil
}

// decodeNode builds an ast node from a document mapping.
func decodeNode(v any) (ast.Node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &DocumentError{Code: ErrCodeShape, Message: fmt.Sprintf("node must be a mapping, got %T", v)}
	}
	kind, err := stringField(m, "node")
	if err != nil {
		return nil, err
	}

	switch kind {
	case "literal":
		lit, err := decodeLiteral(m)
		if err != nil {
			return nil, err
		}
		return lit, nil
	case "identifier":
		name, err := stringField(m, "name")
		if err != nil {
			return nil, err
		}
		return ast.Identifier{Name: name}, nil
	case "let":
		return decodeLet(m)
	case "assign":
		return decodeAssign(m)
	case "function":
		return decodeFunction(m)
	case "call":
		return decodeCall(m)
	case "switch":
		return decodeSwitch(m)
	case "block":
		return decodeBlock(m)
	case "instruction":
		name, err := stringField(m, "name")
		if err != nil {
			return nil, err
		}
		return ast.Instruction{Name: name}, nil
	case "functional_instruction":
		name, err := stringField(m, "name")
		if err != nil {
			return nil, err
		}
		args, err := decodeNodeList(m["arguments"])
		if err != nil {
			return nil, err
		}
		return ast.FunctionalInstruction{Name: name, Arguments: args}, nil
	case "stack_assign":
		name, err := stringField(m, "name")
		if err != nil {
			return nil, err
		}
		return ast.StackAssignment{VariableName: ast.Identifier{Name: name}}, nil
	case "label":
		name, err := stringField(m, "name")
		if err != nil {
			return nil, err
		}
		return ast.Label{Name: name}, nil
	default:
		return nil, &DocumentError{Code: ErrCodeShape, Message: fmt.Sprintf("unknown node kind %q", kind)}
	}
}

func decodeLiteral(m map[string]any) (ast.Literal, error) {
	kindName, err := stringField(m, "kind")
	if err != nil {
		return ast.Literal{}, err
	}
	var kind ast.LiteralKind
	switch kindName {
	case "number":
		kind = ast.LiteralNumber
	case "boolean":
		kind = ast.LiteralBoolean
	case "string":
		kind = ast.LiteralString
	default:
		return ast.Literal{}, &DocumentError{Code: ErrCodeShape, Message: fmt.Sprintf("unknown literal kind %q", kindName)}
	}
	value, err := stringField(m, "value")
	if err != nil {
		return ast.Literal{}, err
	}
	typeName, err := stringField(m, "type")
	if err != nil {
		return ast.Literal{}, err
	}
	return ast.Literal{Kind: kind, Value: value, Type: typeName}, nil
}

func decodeLet(m map[string]any) (ast.Node, error) {
	variables, err := decodeTypedNames(m["variables"])
	if err != nil {
		return nil, err
	}
	value, err := decodeNode(m["value"])
	if err != nil {
		return nil, err
	}
	return ast.VariableDeclaration{Variables: variables, Value: value}, nil
}

func decodeAssign(m map[string]any) (ast.Node, error) {
	name, err := stringField(m, "name")
	if err != nil {
		return nil, err
	}
	value, err := decodeNode(m["value"])
	if err != nil {
		return nil, err
	}
	return ast.Assignment{VariableName: ast.Identifier{Name: name}, Value: value}, nil
}

func decodeFunction(m map[string]any) (ast.Node, error) {
	name, err := stringField(m, "name")
	if err != nil {
		return nil, err
	}
	parameters, err := decodeTypedNames(m["parameters"])
	if err != nil {
		return nil, err
	}
	var returns []ast.TypedName
	if _, present := m["returns"]; present {
		returns, err = decodeTypedNames(m["returns"])
		if err != nil {
			return nil, err
		}
	}
	bodyMap, ok := m["body"].(map[string]any)
	if !ok {
		return nil, &DocumentError{Code: ErrCodeShape, Message: "function body must be a block mapping"}
	}
	body, err := decodeBlock(bodyMap)
	if err != nil {
		return nil, err
	}
	return ast.FunctionDefinition{Name: name, Parameters: parameters, Returns: returns, Body: body}, nil
}

func decodeCall(m map[string]any) (ast.Node, error) {
	callee, err := stringField(m, "callee")
	if err != nil {
		return nil, err
	}
	args, err := decodeNodeList(m["arguments"])
	if err != nil {
		return nil, err
	}
	return ast.FunctionCall{Function: ast.Identifier{Name: callee}, Arguments: args}, nil
}

func decodeSwitch(m map[string]any) (ast.Node, error) {
	expression, err := decodeNode(m["expression"])
	if err != nil {
		return nil, err
	}
	rawCases, ok := m["cases"].([]any)
	if !ok {
		return nil, &DocumentError{Code: ErrCodeShape, Message: "switch cases must be a sequence"}
	}
	cases := make([]ast.Case, 0, len(rawCases))
	for _, rawCase := range rawCases {
		cm, ok := rawCase.(map[string]any)
		if !ok {
			return nil, &DocumentError{Code: ErrCodeShape, Message: fmt.Sprintf("switch case must be a mapping, got %T", rawCase)}
		}
		var c ast.Case
		if rawValue, present := cm["value"]; present {
			vm, ok := rawValue.(map[string]any)
			if !ok {
				return nil, &DocumentError{Code: ErrCodeShape, Message: "switch case value must be a literal mapping"}
			}
			lit, err := decodeLiteral(vm)
			if err != nil {
				return nil, err
			}
			c.Value = &lit
		}
		bodyMap, ok := cm["body"].(map[string]any)
		if !ok {
			return nil, &DocumentError{Code: ErrCodeShape, Message: "switch case body must be a block mapping"}
		}
		c.Body, err = decodeBlock(bodyMap)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return ast.Switch{Expression: expression, Cases: cases}, nil
}

func decodeBlock(m map[string]any) (ast.Block, error) {
	statements, err := decodeNodeList(m["statements"])
	if err != nil {
		return ast.Block{}, err
	}
	return ast.Block{Statements: statements}, nil
}

func decodeNodeList(v any) ([]ast.Node, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, &DocumentError{Code: ErrCodeShape, Message: fmt.Sprintf("node list must be a sequence, got %T", v)}
	}
	nodes := make([]ast.Node, 0, len(raw))
	for _, item := range raw {
		node, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeTypedNames(v any) ([]ast.TypedName, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, &DocumentError{Code: ErrCodeShape, Message: fmt.Sprintf("typed name list must be a sequence, got %T", v)}
	}
	names := make([]ast.TypedName, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &DocumentError{Code: ErrCodeShape, Message: fmt.Sprintf("typed name must be a mapping, got %T", item)}
		}
		name, err := stringField(m, "name")
		if err != nil {
			return nil, err
		}
		typeName, err := stringField(m, "type")
		if err != nil {
			return nil, err
		}
		names = append(names, ast.TypedName{Name: name, Type: typeName})
	}
	return names, nil
}

func stringField(m map[string]any, key string) (string, error) {
	v, present := m[key]
	if !present {
		return "", &DocumentError{Code: ErrCodeShape, Message: fmt.Sprintf("missing %q field", key)}
	}
	s, ok := v.(string)
	if !ok {
		return "", &DocumentError{Code: ErrCodeShape, Message: fmt.Sprintf("%q must be a string, got %T", key, v)}
	}
	return s, nil
}
