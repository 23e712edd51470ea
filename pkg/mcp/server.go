package mcp

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Phase names one state of the three-phase session lifecycle from
// SPEC_FULL §4.4.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseInitializing
	PhaseAwaitInitialized
	PhaseRunning
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseInitializing:
		return "initializing"
	case PhaseAwaitInitialized:
		return "await_initialized"
	case PhaseRunning:
		return "running"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// DefaultBatchLimit bounds how many Request entries of a single
// BatchRequest run concurrently, matching SPEC_FULL §4.5's stated
// practical default.
const DefaultBatchLimit = 10

// Server holds server identity, instructions, and the tool registry, and
// runs the initialization handshake and dispatch loop over a Port. Its
// identity and registry are immutable once Run begins, matching the
// "immutable after construction, shared for the session" model of
// SPEC_FULL §5.
type Server struct {
	name         string
	version      string
	instructions string
	registry     *Registry
	logger       *zap.Logger
	batchLimit   int

	mu    sync.Mutex
	phase Phase
}

// NewServer builds a Server exposing the tools in registry. logger may be
// nil, in which case the engine logs nothing — matching the teacher's
// convention that library code must not force logging configuration on
// its caller.
func NewServer(name, version string, registry *Registry, logger *zap.Logger) *Server {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		name:       name,
		version:    version,
		registry:   registry,
		logger:     logger,
		batchLimit: DefaultBatchLimit,
		phase:      PhaseStart,
	}
}

// SetInstructions sets the optional instructions string returned to the
// client during the handshake.
func (s *Server) SetInstructions(instructions string) {
	s.instructions = instructions
}

// SetBatchLimit overrides the default bounded-concurrency limit applied to
// BatchRequest fan-out.
func (s *Server) SetBatchLimit(n int) {
	if n < 1 {
		n = 1
	}
	s.batchLimit = n
}

func (s *Server) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

// Phase returns the server's current lifecycle phase.
func (s *Server) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Run drives one session end-to-end: the initialize handshake, replay of
// any messages queued during it, then the RUNNING dispatch loop, until
// the Port's stream ends or a fatal handshake/carrier error occurs.
func (s *Server) Run(port Port) error {
	rt := NewRuntime(port)

	queued, err := s.handshake(rt)
	if err != nil {
		s.setPhase(PhaseTerminated)
		return fmt.Errorf("mcp: handshake: %w", err)
	}

	s.setPhase(PhaseRunning)
	for _, msg := range queued {
		s.dispatch(rt, msg)
	}

	for {
		msg, err := rt.Progress()
		if err != nil {
			s.setPhase(PhaseTerminated)
			if isCleanEOF(err) {
				return nil
			}
			return fmt.Errorf("mcp: carrier error: %w", err)
		}
		s.dispatch(rt, msg)
	}
}

func isCleanEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
