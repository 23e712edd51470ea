package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Message is implemented by every one of the six JSON-RPC wire shapes this
// engine moves across a Port: Request, Notification, Response,
// ErrorResponse, BatchRequest, BatchResponse.
type Message interface {
	isMessage()
}

// Request is a JSON-RPC call that expects a Response or ErrorResponse
// carrying the same id.
type Request struct {
	ID     RequestID                  `json:"id"`
	Method string                     `json:"method"`
	Params json.RawMessage            `json:"params,omitempty"`
	Extra  map[string]json.RawMessage `json:"-"`
}

// Notification is a JSON-RPC call that expects no reply.
type Notification struct {
	Method string                     `json:"method"`
	Params json.RawMessage            `json:"params,omitempty"`
	Extra  map[string]json.RawMessage `json:"-"`
}

// Response is a successful reply to a Request.
type Response struct {
	ID     RequestID                  `json:"id"`
	Result json.RawMessage            `json:"result"`
	Extra  map[string]json.RawMessage `json:"-"`
}

// ErrorResponse is a failed reply to a Request.
type ErrorResponse struct {
	ID    RequestID                  `json:"id"`
	Error *RPCError                  `json:"error"`
	Extra map[string]json.RawMessage `json:"-"`
}

// BatchRequest is a JSON array of Request/Notification entries sent as a
// single wire value.
type BatchRequest struct {
	Items []Message
}

// BatchResponse is a JSON array of Response/ErrorResponse entries sent as
// a single wire value, one per Request in the originating BatchRequest
// (Notifications never contribute a batch entry).
type BatchResponse struct {
	Items []Message
}

func (*Request) isMessage()       {}
func (*Notification) isMessage()  {}
func (*Response) isMessage()      {}
func (*ErrorResponse) isMessage() {}
func (*BatchRequest) isMessage()  {}
func (*BatchResponse) isMessage() {}

const jsonrpcVersion = "2.0"

func (r *Request) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(r.Extra, struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      RequestID       `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}{jsonrpcVersion, r.ID, r.Method, r.Params})
}

func (n *Notification) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(n.Extra, struct {
		JSONRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}{jsonrpcVersion, n.Method, n.Params})
}

func (r *Response) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(r.Extra, struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      RequestID       `json:"id"`
		Result  json.RawMessage `json:"result"`
	}{jsonrpcVersion, r.ID, r.Result})
}

func (e *ErrorResponse) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(e.Extra, struct {
		JSONRPC string    `json:"jsonrpc"`
		ID      RequestID `json:"id"`
		Error   *RPCError `json:"error"`
	}{jsonrpcVersion, e.ID, e.Error})
}

func (b *BatchRequest) MarshalJSON() ([]byte, error) {
	return marshalBatch(b.Items)
}

func (b *BatchResponse) MarshalJSON() ([]byte, error) {
	return marshalBatch(b.Items)
}

func marshalBatch(items []Message) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// marshalWithExtra marshals base, then merges in any unknown fields that
// were preserved from the original wire message, giving unknown-field
// round-trip fidelity (Testable Property 5 / SPEC_FULL invariant 7).
func marshalWithExtra(extra map[string]json.RawMessage, base any) ([]byte, error) {
	baseData, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return baseData, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(baseData, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// DecodeMessage sniffs the shape of a single JSON-RPC wire value and
// decodes it into the corresponding Message implementation, per SPEC_FULL
// §3's six-shape union. Returns an error for any JSON value that is
// syntactically valid but matches none of the six shapes.
func DecodeMessage(data []byte) (Message, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("mcp: empty message")
	}
	if trimmed[0] == '[' {
		return decodeBatch(trimmed)
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("mcp: message is not a JSON object or array")
	}

	var probe struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Method  string          `json:"method"`
		Result  json.RawMessage `json:"result"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("mcp: decoding message: %w", err)
	}

	hasID := len(probe.ID) > 0 && string(probe.ID) != "null"

	switch {
	case probe.Method != "" && hasID:
		return decodeRequest(trimmed)
	case probe.Method != "" && !hasID:
		return decodeNotification(trimmed)
	case probe.Error != nil:
		return decodeErrorResponse(trimmed)
	case probe.Result != nil:
		return decodeResponse(trimmed)
	default:
		return nil, fmt.Errorf("mcp: message matches no known JSON-RPC shape")
	}
}

func decodeRequest(data []byte) (*Request, error) {
	var wire struct {
		ID     RequestID       `json:"id"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	if err := validateParamsShape(wire.Params); err != nil {
		return nil, err
	}
	req := &Request{ID: wire.ID, Method: wire.Method, Params: wire.Params}
	req.Extra = extraFields(data, "jsonrpc", "id", "method", "params")
	return req, nil
}

func decodeNotification(data []byte) (*Notification, error) {
	var wire struct {
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	if err := validateParamsShape(wire.Params); err != nil {
		return nil, err
	}
	n := &Notification{Method: wire.Method, Params: wire.Params}
	n.Extra = extraFields(data, "jsonrpc", "method", "params")
	return n, nil
}

func decodeResponse(data []byte) (*Response, error) {
	var wire struct {
		ID     RequestID       `json:"id"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	r := &Response{ID: wire.ID, Result: wire.Result}
	r.Extra = extraFields(data, "jsonrpc", "id", "result")
	return r, nil
}

func decodeErrorResponse(data []byte) (*ErrorResponse, error) {
	var wire struct {
		ID    RequestID `json:"id"`
		Error *RPCError `json:"error"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	e := &ErrorResponse{ID: wire.ID, Error: wire.Error}
	e.Extra = extraFields(data, "jsonrpc", "id", "error")
	return e, nil
}

func decodeBatch(data []byte) (Message, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("mcp: decoding batch: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("mcp: batch must not be empty")
	}
	items := make([]Message, 0, len(raw))
	allRequests := true
	for _, entry := range raw {
		item, err := DecodeMessage(entry)
		if err != nil {
			return nil, err
		}
		switch item.(type) {
		case *Request, *Notification:
		case *Response, *ErrorResponse:
			allRequests = false
		default:
			return nil, fmt.Errorf("mcp: batch entry has unexpected shape")
		}
		items = append(items, item)
	}
	if allRequests {
		return &BatchRequest{Items: items}, nil
	}
	return &BatchResponse{Items: items}, nil
}

// validateParamsShape enforces SPEC_FULL invariant 6: params, when
// present, must be a JSON object.
func validateParamsShape(params json.RawMessage) error {
	if len(params) == 0 {
		return nil
	}
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) == 0 || trimmed[0] == '{' {
		return nil
	}
	return fmt.Errorf("mcp: params must be an object, got %s", trimmed)
}

// extraFields returns every top-level key of data not named in known, so
// it can be preserved across re-marshaling.
func extraFields(data []byte, known ...string) map[string]json.RawMessage {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}
	var extra map[string]json.RawMessage
	for k, v := range all {
		if _, ok := knownSet[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[k] = v
	}
	return extra
}
