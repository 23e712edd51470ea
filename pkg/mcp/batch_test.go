package mcp

import (
	"encoding/json"
	"testing"
)

func TestHandleBatch_PanickingHandlerBecomesInternalErrorWithoutFailingBatch(t *testing.T) {
	reg := NewRegistry()
	reg.Add(NewTypedTool[struct{}, string]("panics", "always panics", json.RawMessage(`{"type":"object"}`),
		func(struct{}) (string, error) { panic("kaboom") }))
	s := NewServer("test-server", "1.0.0", reg, nil)

	in := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"t","version":"0"}}}
{"jsonrpc":"2.0","method":"notifications/initialized"}
[{"jsonrpc":"2.0","id":20,"method":"tools/call","params":{"name":"panics"}},{"jsonrpc":"2.0","id":21,"method":"ping"}]
`
	rawLines := runServer(t, s, in)
	if len(rawLines) != 2 {
		t.Fatalf("got %d output lines, want 2 (initialize reply + batch array line)", len(rawLines))
	}

	var batch []map[string]json.RawMessage
	if err := json.Unmarshal(rawLines[1], &batch); err != nil {
		t.Fatalf("unmarshal batch line: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("batch has %d items, want 2 — a panicking handler must not drop its item from the batch", len(batch))
	}

	var panicItem, pingItem map[string]json.RawMessage
	for _, item := range batch {
		var id int
		if err := json.Unmarshal(item["id"], &id); err != nil {
			t.Fatalf("unmarshal batch item id: %v", err)
		}
		switch id {
		case 20:
			panicItem = item
		case 21:
			pingItem = item
		}
	}
	if panicItem == nil || pingItem == nil {
		t.Fatalf("batch missing expected ids, got %v", batch)
	}

	if panicItem["result"] != nil {
		t.Error("panicking item has a result, want only an error")
	}
	var rpcErr RPCError
	if err := json.Unmarshal(panicItem["error"], &rpcErr); err != nil {
		t.Fatalf("unmarshal panic item error: %v", err)
	}
	if rpcErr.Code != InternalError {
		t.Errorf("Code = %d, want %d", rpcErr.Code, InternalError)
	}

	if pingItem["error"] != nil {
		t.Error("sibling ping item has an error, want the panic contained to its own item")
	}
}
