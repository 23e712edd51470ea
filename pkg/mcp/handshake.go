package mcp

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// HandshakeError marks a fatal failure during the START/INITIALIZING/
// AWAIT_INITIALIZED phases: a missing or malformed initialize request, an
// unparseable protocol version, or the stream closing before the
// handshake completes (SPEC_FULL §7, error taxonomy item 3).
type HandshakeError struct {
	reason string
}

func (e *HandshakeError) Error() string { return "mcp: handshake failed: " + e.reason }

func newHandshakeError(format string, args ...any) *HandshakeError {
	return &HandshakeError{reason: fmt.Sprintf(format, args...)}
}

// handshake runs the initialize/initialized sequence, queueing every
// other message seen along the way, and returns the queue for FIFO replay
// once the session reaches RUNNING — Testable Property 6.
func (s *Server) handshake(rt *Runtime) ([]Message, error) {
	s.setPhase(PhaseInitializing)

	var queued []Message

	for {
		msg, err := rt.Progress()
		if err != nil {
			return nil, newHandshakeError("stream ended before initialize: %v", err)
		}
		req, ok := msg.(*Request)
		if !ok || req.Method != "initialize" {
			queued = append(queued, msg)
			continue
		}

		result, herr := s.buildInitializeResult(req)
		if herr != nil {
			return nil, herr
		}
		data, err := json.Marshal(result)
		if err != nil {
			return nil, newHandshakeError("encoding initialize result: %v", err)
		}
		if err := rt.Sink().Send(&Response{ID: req.ID, Result: data}); err != nil {
			return nil, newHandshakeError("sending initialize result: %v", err)
		}
		break
	}

	s.setPhase(PhaseAwaitInitialized)

	for {
		msg, err := rt.Progress()
		if err != nil {
			return nil, newHandshakeError("stream ended before initialized notification: %v", err)
		}
		n, ok := msg.(*Notification)
		if ok && n.Method == MethodInitialized {
			return queued, nil
		}
		queued = append(queued, msg)
	}
}

func (s *Server) buildInitializeResult(req *Request) (*InitializeResult, *HandshakeError) {
	var params InitializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, newHandshakeError("parsing initialize params: %v", err)
	}
	version, err := ParseProtocolVersion(params.ProtocolVersion)
	if err != nil {
		return nil, newHandshakeError("%v", err)
	}

	s.logger.Info("handshake",
		zap.String("clientName", params.ClientInfo.Name),
		zap.String("clientVersion", params.ClientInfo.Version),
		zap.String("protocolVersion", version.String()),
	)

	return &InitializeResult{
		ProtocolVersion: version.String(),
		Capabilities: Capabilities{
			Tools:     &ToolsCapability{ListChanged: true},
			Resources: &ResourcesCapability{ListChanged: true, Subscribe: false},
			Prompts:   &PromptsCapability{ListChanged: true},
		},
		ServerInfo:   ServerInfo{Name: s.name, Version: s.version},
		Instructions: s.instructions,
	}, nil
}
