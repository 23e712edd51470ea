package mcp

import "encoding/json"

// ClientInfo identifies the connecting MCP host.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ServerInfo identifies this engine's host application on the wire.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCapability advertises whether the tool list can change during a
// session (list_changed notifications).
type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ResourcesCapability and PromptsCapability are advertised as present but
// empty: this engine answers resources/list and prompts/list, but never
// populates either collection (SPEC_FULL §1 / Non-goals).
type ResourcesCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
	Subscribe   bool `json:"subscribe"`
}

type PromptsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// Capabilities describes which optional MCP feature areas a party
// supports.
type Capabilities struct {
	Tools     *ToolsCapability     `json:"tools,omitempty"`
	Resources *ResourcesCapability `json:"resources,omitempty"`
	Prompts   *PromptsCapability   `json:"prompts,omitempty"`
}

// InitializeParams is the payload of the client's initialize request.
type InitializeParams struct {
	ProtocolVersion string                     `json:"protocolVersion"`
	Capabilities    Capabilities               `json:"capabilities"`
	ClientInfo      ClientInfo                 `json:"clientInfo"`
	Extra           map[string]json.RawMessage `json:"-"`
}

// InitializeResult is this engine's reply during the handshake.
type InitializeResult struct {
	ProtocolVersion string                     `json:"protocolVersion"`
	Capabilities    Capabilities               `json:"capabilities"`
	ServerInfo      ServerInfo                 `json:"serverInfo"`
	Instructions    string                     `json:"instructions,omitempty"`
	Extra           map[string]json.RawMessage `json:"-"`
}

func (r InitializeResult) MarshalJSON() ([]byte, error) {
	type alias InitializeResult
	return marshalWithExtra(r.Extra, alias(r))
}

func (p *InitializeParams) UnmarshalJSON(data []byte) error {
	type alias InitializeParams
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = InitializeParams(a)
	p.Extra = extraFields(data, "protocolVersion", "capabilities", "clientInfo")
	return nil
}
