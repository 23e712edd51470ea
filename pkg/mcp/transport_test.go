package mcp

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

func TestStdioTransport_ReadsRawJSONMode(t *testing.T) {
	in := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"
	transport := NewStdioTransport(strings.NewReader(in), &bytes.Buffer{})
	msg, err := transport.Progress()
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	req, ok := msg.(*Request)
	if !ok || req.Method != "ping" {
		t.Errorf("Progress() = %+v, want *Request{Method: ping}", msg)
	}
}

func TestStdioTransport_ReadsHeaderFramedMode(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"ping"}`
	in := "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
	transport := NewStdioTransport(strings.NewReader(in), &bytes.Buffer{})
	msg, err := transport.Progress()
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	req, ok := msg.(*Request)
	if !ok || req.Method != "ping" {
		t.Errorf("Progress() = %+v, want *Request{Method: ping}", msg)
	}
}

func TestStdioTransport_DropsUnparseableLineAndContinues(t *testing.T) {
	in := "not json at all\n" + `{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n"
	transport := NewStdioTransport(strings.NewReader(in), &bytes.Buffer{})
	transport.SetDiagnostics(nil)
	msg, err := transport.Progress()
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	req, ok := msg.(*Request)
	if !ok || req.ID.String() != "2" {
		t.Errorf("Progress() = %+v, want the second, well-formed request", msg)
	}
}

func TestStdioTransport_SendWritesOneLine(t *testing.T) {
	var out bytes.Buffer
	transport := NewStdioTransport(strings.NewReader(""), &out)
	err := transport.Sink().Send(&Response{ID: NewRequestIDNumber(1), Result: []byte(`{}`)})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got := out.String(); !strings.HasSuffix(got, "\n") {
		t.Errorf("Send() output = %q, want newline-terminated", got)
	}
}
