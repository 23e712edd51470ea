package mcp

// ListResourcesResult is the result of a resources/list request. This
// engine never registers resources (SPEC_FULL §1 / Non-goals), so Resources
// is always an empty, non-nil slice.
type ListResourcesResult struct {
	Resources []ResourceDescriptor `json:"resources"`
}

// ResourceDescriptor is the wire shape of one resources/list entry. No
// constructor is exposed since this engine never populates one, but the
// type is public so a future embedder can extend the server with real
// resources without a breaking wire-type change.
type ResourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// ListPromptsResult is the result of a prompts/list request, always empty
// for the same reason as ListResourcesResult.
type ListPromptsResult struct {
	Prompts []PromptDescriptor `json:"prompts"`
}

type PromptDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func emptyListResourcesResult() ListResourcesResult {
	return ListResourcesResult{Resources: []ResourceDescriptor{}}
}

func emptyListPromptsResult() ListPromptsResult {
	return ListPromptsResult{Prompts: []PromptDescriptor{}}
}
