package mcp

import "encoding/json"

// ToolAnnotations are optional hints a tool gives the host about its
// behavior; none are enforced by this engine, they are passed through
// verbatim on tools/list.
type ToolAnnotations struct {
	Title           string                     `json:"title,omitempty"`
	ReadOnlyHint    bool                       `json:"readOnlyHint,omitempty"`
	DestructiveHint bool                       `json:"destructiveHint,omitempty"`
	IdempotentHint  bool                       `json:"idempotentHint,omitempty"`
	OpenWorldHint   bool                       `json:"openWorldHint,omitempty"`
	Extra           map[string]json.RawMessage `json:"-"`
}

func (a ToolAnnotations) MarshalJSON() ([]byte, error) {
	type alias ToolAnnotations
	return marshalWithExtra(a.Extra, alias(a))
}

// ToolDescriptor is the wire shape of one entry in a tools/list result.
type ToolDescriptor struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description,omitempty"`
	InputSchema json.RawMessage            `json:"inputSchema"`
	Annotations *ToolAnnotations           `json:"annotations,omitempty"`
	Extra       map[string]json.RawMessage `json:"-"`
}

func (d ToolDescriptor) MarshalJSON() ([]byte, error) {
	type alias ToolDescriptor
	return marshalWithExtra(d.Extra, alias(d))
}

// ToolsListResult is the result of a tools/list request.
type ToolsListResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// CallToolParams is the params of a tools/call request. Arguments defaults
// to an empty object when absent on the wire (SPEC_FULL §9, grounded on
// mmcp's `.unwrap_or_default()`).
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ContentKind discriminates the variant of one CallToolResult content
// item.
type ContentKind string

const (
	ContentKindText     ContentKind = "text"
	ContentKindImage    ContentKind = "image"
	ContentKindAudio    ContentKind = "audio"
	ContentKindResource ContentKind = "resource"
)

// Content is one item of a CallToolResult's content array. Exactly one of
// the variant-specific fields is populated, selected by Type.
type Content struct {
	Type     ContentKind                `json:"type"`
	Text     string                     `json:"text,omitempty"`
	Data     string                     `json:"data,omitempty"`
	MIMEType string                     `json:"mimeType,omitempty"`
	Resource *EmbeddedResource          `json:"resource,omitempty"`
	Extra    map[string]json.RawMessage `json:"-"`
}

func (c Content) MarshalJSON() ([]byte, error) {
	type alias Content
	return marshalWithExtra(c.Extra, alias(c))
}

// EmbeddedResource is the payload of a "resource" content item.
type EmbeddedResource struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

// TextContent builds a "text" content item.
func TextContent(text string) Content {
	return Content{Type: ContentKindText, Text: text}
}

// ImageContent builds an "image" content item.
func ImageContent(data, mimeType string) Content {
	return Content{Type: ContentKindImage, Data: data, MIMEType: mimeType}
}

// AudioContent builds an "audio" content item.
func AudioContent(data, mimeType string) Content {
	return Content{Type: ContentKindAudio, Data: data, MIMEType: mimeType}
}

// ResourceContent builds a "resource" content item.
func ResourceContent(r EmbeddedResource) Content {
	return Content{Type: ContentKindResource, Resource: &r}
}

// CallToolResult is the result of a tools/call request. IsError indicates
// a tool-level failure the client should render as an error, distinct
// from a protocol-level ErrorResponse: a typed tool that fails to parse
// its arguments, or whose handler returns a Go error, surfaces here with
// IsError true rather than as a JSON-RPC error (SPEC_FULL §4.3).
type CallToolResult struct {
	Content []Content                  `json:"content"`
	IsError bool                       `json:"isError,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

func (r CallToolResult) MarshalJSON() ([]byte, error) {
	type alias CallToolResult
	if r.Content == nil {
		r.Content = []Content{}
	}
	return marshalWithExtra(r.Extra, alias(r))
}

// ErrorResult builds a CallToolResult carrying a single text content item
// and IsError set, the shape every tool-execution failure converts to.
func ErrorResult(text string) CallToolResult {
	return CallToolResult{Content: []Content{TextContent(text)}, IsError: true}
}
