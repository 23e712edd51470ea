package mcp

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// dispatch handles one inbound message during RUNNING. Response,
// ErrorResponse, and BatchResponse are already consumed by the Runtime
// for correlation and are ignored here (SPEC_FULL §4.4).
func (s *Server) dispatch(rt *Runtime, msg Message) {
	switch m := msg.(type) {
	case *Request:
		go s.handleRequest(rt, m)
	case *Notification:
		go s.handleNotification(m)
	case *BatchRequest:
		go s.handleBatch(rt, m)
	case *Response, *ErrorResponse, *BatchResponse:
	}
}

func (s *Server) handleRequest(rt *Runtime, req *Request) {
	resp := s.buildResponse(req, false)
	if resp == nil {
		return
	}
	if err := rt.Sink().Send(resp); err != nil {
		s.logger.Error("sending response", zap.String("method", req.Method), zap.Error(err))
	}
}

// buildResponse runs one request through the routing table and returns
// the Message to send, recovering a panicking handler into an
// INTERNAL_ERROR ErrorResponse so one bad request never takes down the
// session (SPEC_FULL §7). A nil return means "send no reply", which only
// happens for a post-handshake initialize outside a batch — inBatch
// callers always get a non-nil Message so BatchResponse item counts stay
// exact (Testable Property 8).
func (s *Server) buildResponse(req *Request, inBatch bool) (msg Message) {
	defer func() {
		if r := recover(); r != nil {
			msg = &ErrorResponse{ID: req.ID, Error: NewInternalError(fmt.Sprintf("%v", r))}
		}
	}()

	if req.Method == "initialize" {
		if !inBatch {
			return nil
		}
		return &ErrorResponse{ID: req.ID, Error: NewMethodNotFoundError(req.Method)}
	}

	result, rpcErr := s.routeMethod(req)
	if rpcErr != nil {
		return &ErrorResponse{ID: req.ID, Error: rpcErr}
	}
	data, err := json.Marshal(result)
	if err != nil {
		return &ErrorResponse{ID: req.ID, Error: NewInternalError(err.Error())}
	}
	return &Response{ID: req.ID, Result: data}
}

// handleNotification runs the no-op notification handlers. Every
// recognized notification is acknowledged silently; anything else is
// logged and otherwise ignored, since JSON-RPC notifications never
// produce a reply regardless of whether the method is known.
func (s *Server) handleNotification(n *Notification) {
	if !isKnownNotification(n.Method) {
		s.logger.Debug("unrecognized notification", zap.String("method", n.Method))
	}
}
