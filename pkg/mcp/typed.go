package mcp

import (
	"encoding/json"
	"fmt"
)

// Handler is the typed business logic of a tool: take a decoded Input,
// return an Output (converted per toCallToolResult) or an error. An
// error return is itself converted to an is_error result — it never
// surfaces as a protocol-level JSON-RPC error, matching the teacher's own
// handleToolsCall behavior for handler failures.
type Handler[In, Out any] func(In) (Out, error)

// typedTool is the generic adaptor described in SPEC_FULL §4.3: it
// deserializes the wire arguments into In, invokes fn, and converts the
// result. This is the direct generalization of the teacher's untyped
// ToolHandler func(map[string]interface{}) (string, error), and its
// argument-parse-failure path is grounded on mmcp's primitives/tool.rs
// blanket Tool impl for TypedTool.
type typedTool[In, Out any] struct {
	name        string
	description string
	inputSchema json.RawMessage
	annotations *ToolAnnotations
	fn          Handler[In, Out]
}

// NewTypedTool builds a Tool from a typed handler function. inputSchema
// must be a JSON Schema object describing In; it is returned verbatim on
// tools/list and is not otherwise validated against by this engine.
func NewTypedTool[In, Out any](name, description string, inputSchema json.RawMessage, fn Handler[In, Out]) Tool {
	return &typedTool[In, Out]{
		name:        name,
		description: description,
		inputSchema: inputSchema,
		annotations: &ToolAnnotations{},
		fn:          fn,
	}
}

// WithAnnotations returns a copy of t carrying the given annotations.
func WithAnnotations[In, Out any](t Tool, a ToolAnnotations) Tool {
	tt, ok := t.(*typedTool[In, Out])
	if !ok {
		return t
	}
	clone := *tt
	clone.annotations = &a
	return &clone
}

func (t *typedTool[In, Out]) Name() string                { return t.name }
func (t *typedTool[In, Out]) Description() string         { return t.description }
func (t *typedTool[In, Out]) InputSchema() json.RawMessage { return t.inputSchema }
func (t *typedTool[In, Out]) Annotations() *ToolAnnotations { return t.annotations }

// Call deserializes arguments into In, defaulting to the zero value of In
// (an empty JSON object's worth of zero fields) when arguments is absent,
// then dispatches to fn. A deserialization failure surfaces as a tool
// result with IsError set and the exact "Error: parsing input: ..." text
// mmcp's blanket Tool impl uses — never as a JSON-RPC protocol error.
func (t *typedTool[In, Out]) Call(arguments json.RawMessage) CallToolResult {
	var input In
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &input); err != nil {
			return ErrorResult(fmt.Sprintf("Error: parsing input: %s", err))
		}
	}

	out, err := t.fn(input)
	if err != nil {
		return ErrorResult(err.Error())
	}
	return toCallToolResult(out)
}
