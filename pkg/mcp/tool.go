package mcp

import "encoding/json"

// Tool is the erased interface the server dispatches tools/call through.
// Most tools are built with NewTypedTool rather than implementing this
// directly.
type Tool interface {
	Name() string
	Description() string
	InputSchema() json.RawMessage
	Annotations() *ToolAnnotations
	Call(arguments json.RawMessage) CallToolResult
}

// Descriptor renders a Tool as the wire shape used in tools/list.
func Descriptor(t Tool) ToolDescriptor {
	return ToolDescriptor{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: t.InputSchema(),
		Annotations: t.Annotations(),
	}
}
