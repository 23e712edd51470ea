package mcp

import (
	"encoding/json"
	"fmt"
)

// routeMethod implements the request routing table of SPEC_FULL §4.4.1.
// It never returns a nil result and nil error together; exactly one of
// (result, rpcErr) is meaningful for every method except "initialize",
// which callers must special-case before reaching here.
func (s *Server) routeMethod(req *Request) (any, *RPCError) {
	switch req.Method {
	case "ping":
		return map[string]string{"message": "pong"}, nil

	case "tools/list":
		return s.toolsListResult(), nil

	case "tools/call":
		return s.toolsCall(req.Params)

	case "resources/list":
		return emptyListResourcesResult(), nil

	case "prompts/list":
		return emptyListPromptsResult(), nil

	case "resources/read", "resources/subscribe", "resources/unsubscribe",
		"prompts/get", "logging/setLevel", "completion/complete":
		return nil, NewMethodNotFoundError(req.Method)

	default:
		return nil, NewMethodNotFoundError(req.Method)
	}
}

func (s *Server) toolsListResult() ToolsListResult {
	tools := s.registry.List()
	descriptors := make([]ToolDescriptor, 0, len(tools))
	for _, t := range tools {
		descriptors = append(descriptors, Descriptor(t))
	}
	return ToolsListResult{Tools: descriptors}
}

func (s *Server) toolsCall(params json.RawMessage) (any, *RPCError) {
	var p CallToolParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, NewInvalidParamsError(fmt.Sprintf("parsing tools/call params: %s", err))
	}

	tool, ok := s.registry.Get(p.Name)
	if !ok {
		return nil, NewInvalidParamsError(fmt.Sprintf("Tool not found: %s", p.Name))
	}

	result := tool.Call(p.Arguments)
	return result, nil
}
