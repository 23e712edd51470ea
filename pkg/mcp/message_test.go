package mcp

import (
	"encoding/json"
	"testing"
)

func TestDecodeMessage_Request(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	msg, err := DecodeMessage(data)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	req, ok := msg.(*Request)
	if !ok {
		t.Fatalf("DecodeMessage() = %T, want *Request", msg)
	}
	if req.Method != "ping" {
		t.Errorf("Method = %q, want ping", req.Method)
	}
	if req.ID.IsString() || req.ID.String() != "1" {
		t.Errorf("ID = %v, want numeric 1", req.ID)
	}
}

func TestDecodeMessage_Notification(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	msg, err := DecodeMessage(data)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if _, ok := msg.(*Notification); !ok {
		t.Fatalf("DecodeMessage() = %T, want *Notification", msg)
	}
}

func TestDecodeMessage_Response(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":"abc","result":{"ok":true}}`)
	msg, err := DecodeMessage(data)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	resp, ok := msg.(*Response)
	if !ok {
		t.Fatalf("DecodeMessage() = %T, want *Response", msg)
	}
	if !resp.ID.IsString() || resp.ID.String() != "abc" {
		t.Errorf("ID = %v, want string abc", resp.ID)
	}
}

func TestDecodeMessage_ErrorResponse(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":4,"error":{"code":-32602,"message":"Tool not found: nope"}}`)
	msg, err := DecodeMessage(data)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	errResp, ok := msg.(*ErrorResponse)
	if !ok {
		t.Fatalf("DecodeMessage() = %T, want *ErrorResponse", msg)
	}
	if errResp.Error.Code != InvalidParams {
		t.Errorf("Error.Code = %d, want %d", errResp.Error.Code, InvalidParams)
	}
}

func TestDecodeMessage_RejectsNonObjectParams(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":[1,2,3]}`)
	if _, err := DecodeMessage(data); err == nil {
		t.Error("DecodeMessage() with array params, want error")
	}
}

func TestDecodeMessage_BatchRequest(t *testing.T) {
	data := []byte(`[{"jsonrpc":"2.0","id":1,"method":"ping"},{"jsonrpc":"2.0","method":"notifications/initialized"}]`)
	msg, err := DecodeMessage(data)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	batch, ok := msg.(*BatchRequest)
	if !ok {
		t.Fatalf("DecodeMessage() = %T, want *BatchRequest", msg)
	}
	if len(batch.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(batch.Items))
	}
}

func TestMessage_RoundTripPreservesUnknownFields(t *testing.T) {
	original := []byte(`{"jsonrpc":"2.0","id":1,"method":"ping","future":{"x":1}}`)
	msg, err := DecodeMessage(original)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	out, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var roundtripped map[string]json.RawMessage
	if err := json.Unmarshal(out, &roundtripped); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := roundtripped["future"]; !ok {
		t.Errorf("round-tripped message dropped unknown field %q: %s", "future", out)
	}
}

func TestRequestID_EqualDistinguishesTypeFromValue(t *testing.T) {
	num := NewRequestIDNumber(1)
	str := NewRequestIDString("1")
	if num.Equal(str) {
		t.Error("numeric id 1 should not equal string id \"1\"")
	}
	if !num.Equal(NewRequestIDNumber(1)) {
		t.Error("numeric id 1 should equal itself")
	}
}
