package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RuntimeSink is the Sink a Runtime hands out. Unlike the raw transport
// Sink, it can also issue a correlated server-initiated request and await
// its reply, registering the wait with the owning Runtime before the
// request is written — mirroring mmcp-rpc's RPCSender::request, which
// sends the WaitResponse command over the channel before building and
// sending the JSON-RPC request itself.
type RuntimeSink struct {
	rt         *Runtime
	underlying Sink
}

func (s *RuntimeSink) Send(msg Message) error {
	return s.underlying.Send(msg)
}

// SendNotification is a convenience wrapper for emitting a
// server-initiated notification with JSON-marshaled params.
func (s *RuntimeSink) SendNotification(method string, params any) error {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("mcp: marshaling notification params: %w", err)
	}
	return s.Send(&Notification{Method: method, Params: data})
}

// Request issues a server-initiated JSON-RPC request and blocks until a
// matching Response or ErrorResponse is observed by the owning Runtime.
// result, if non-nil, receives the decoded Response.Result.
func (s *RuntimeSink) Request(method string, params any, result any) error {
	id := NewRequestIDString(uuid.NewString())

	replyCh := make(chan correlatedReply, 1)
	s.rt.commands <- waitResponseCmd{id: id, replyCh: replyCh}

	paramsData, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("mcp: marshaling request params: %w", err)
	}
	if err := s.Send(&Request{ID: id, Method: method, Params: paramsData}); err != nil {
		return fmt.Errorf("mcp: sending correlated request: %w", err)
	}

	reply := <-replyCh
	if reply.errorRsp != nil {
		return reply.errorRsp.Error
	}
	if result == nil || reply.response == nil {
		return nil
	}
	if err := json.Unmarshal(reply.response.Result, result); err != nil {
		return fmt.Errorf("mcp: decoding response result: %w", err)
	}
	return nil
}
