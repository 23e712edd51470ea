package mcp

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// handleBatch implements SPEC_FULL §4.5: partition a BatchRequest into
// requests and notifications, fan the requests out with bounded
// concurrency, run the notifications concurrently for effect only, then
// emit exactly one BatchResponse once every request handler has
// completed. The bounded errgroup.SetLimit fan-out is the same shape the
// teacher's pkg/llmapi/concurrency.go used for LLM batch completions,
// generalized here to JSON-RPC batch items (see DESIGN.md).
func (s *Server) handleBatch(rt *Runtime, batch *BatchRequest) {
	var g errgroup.Group
	g.SetLimit(s.batchLimit)

	var mu sync.Mutex
	responses := make([]Message, 0, len(batch.Items))

	for _, item := range batch.Items {
		switch m := item.(type) {
		case *Request:
			req := m
			g.Go(func() error {
				resp := s.buildResponse(req, true)
				mu.Lock()
				responses = append(responses, resp)
				mu.Unlock()
				return nil
			})
		case *Notification:
			n := m
			g.Go(func() error {
				s.handleNotification(n)
				return nil
			})
		}
	}

	_ = g.Wait() // handlers never return an error; failures are captured as ErrorResponse entries.

	if err := rt.Sink().Send(&BatchResponse{Items: responses}); err != nil {
		s.logger.Error("sending batch response", zap.Error(err))
	}
}
