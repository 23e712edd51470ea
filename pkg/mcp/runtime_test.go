package mcp

import (
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"
)

// fakePort is an in-memory Port/Sink used to drive Runtime tests without
// a real carrier, in the spirit of the teacher's io.Pipe-based transport
// tests.
type fakePort struct {
	in chan Message

	mu  sync.Mutex
	out []Message
}

func newFakePort() *fakePort {
	return &fakePort{in: make(chan Message, 16)}
}

func (p *fakePort) Progress() (Message, error) {
	m, ok := <-p.in
	if !ok {
		return nil, io.EOF
	}
	return m, nil
}

func (p *fakePort) Sink() Sink { return p }

func (p *fakePort) Send(m Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = append(p.out, m)
	return nil
}

func (p *fakePort) sent() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.out))
	copy(out, p.out)
	return out
}

func TestRuntime_CorrelatesResponseToWaiter(t *testing.T) {
	port := newFakePort()
	rt := NewRuntime(port)

	type result struct{ Value int }
	resultCh := make(chan result, 1)
	errCh := make(chan error, 1)

	go func() {
		var r result
		err := rt.Sink().Request("server/ping", map[string]string{}, &r)
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- r
	}()

	// Give the goroutine a chance to register its subscription via the
	// command channel before the response is made available — this is
	// exactly the race Testable Property 7 describes.
	time.Sleep(10 * time.Millisecond)

	sentID := port.sent()[0].(*Request).ID
	data, _ := json.Marshal(result{Value: 42})
	port.in <- &Response{ID: sentID, Result: data}

	if _, err := rt.Progress(); err != nil {
		t.Fatalf("Progress() error = %v", err)
	}

	select {
	case r := <-resultCh:
		if r.Value != 42 {
			t.Errorf("result.Value = %d, want 42", r.Value)
		}
	case err := <-errCh:
		t.Fatalf("Request() error = %v", err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for correlated response")
	}
}

func TestRuntime_OrphanResponseIsTolerated(t *testing.T) {
	port := newFakePort()
	rt := NewRuntime(port)

	port.in <- &Response{ID: NewRequestIDNumber(999), Result: json.RawMessage(`{}`)}

	msg, err := rt.Progress()
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if _, ok := msg.(*Response); !ok {
		t.Errorf("Progress() = %T, want *Response (returned even without a subscriber)", msg)
	}
}

func TestRuntime_CorrelatesResponseWrappedInBatchResponse(t *testing.T) {
	port := newFakePort()
	rt := NewRuntime(port)

	type result struct{ Value int }
	resultCh := make(chan result, 1)
	errCh := make(chan error, 1)

	go func() {
		var r result
		err := rt.Sink().Request("server/ping", map[string]string{}, &r)
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- r
	}()

	time.Sleep(10 * time.Millisecond)

	sentID := port.sent()[0].(*Request).ID
	data, _ := json.Marshal(result{Value: 7})
	port.in <- &BatchResponse{Items: []Message{
		&Response{ID: NewRequestIDNumber(12345), Result: json.RawMessage(`{}`)},
		&Response{ID: sentID, Result: data},
	}}

	if _, err := rt.Progress(); err != nil {
		t.Fatalf("Progress() error = %v", err)
	}

	select {
	case r := <-resultCh:
		if r.Value != 7 {
			t.Errorf("result.Value = %d, want 7", r.Value)
		}
	case err := <-errCh:
		t.Fatalf("Request() error = %v", err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a response correlated out of a BatchResponse — step 4 of the progress algorithm")
	}
}

func TestRuntime_ProgressReturnsEOFOnClose(t *testing.T) {
	port := newFakePort()
	rt := NewRuntime(port)
	close(port.in)

	if _, err := rt.Progress(); err != io.EOF {
		t.Errorf("Progress() error = %v, want io.EOF", err)
	}
}
