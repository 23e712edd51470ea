package mcp

// waitResponseCmd registers a subscriber that wants to be notified when a
// Response or ErrorResponse carrying id arrives.
type waitResponseCmd struct {
	id      RequestID
	replyCh chan<- correlatedReply
}

// correlatedReply carries whichever of Response/ErrorResponse a
// subscriber's awaited request id resolved to.
type correlatedReply struct {
	response *Response
	errorRsp *ErrorResponse
}

// Runtime multiplexes a single Port: it is the only goroutine that reads
// from the Port, and it resolves server-initiated requests (issued via a
// Sink's Request method) against inbound Response/ErrorResponse messages
// by request id.
//
// Progress implements the five-step algorithm from SPEC_FULL §4.2,
// ported from mmcp-rpc's RPCRuntime::progress: drain pending subscription
// registrations before reading, so a caller that registers a wait and
// then sends its request can never race the reply arriving first.
type Runtime struct {
	port Port

	commands      chan waitResponseCmd
	subscriptions map[RequestID]chan<- correlatedReply

	sink *RuntimeSink
}

// NewRuntime builds a Runtime over port. The command channel capacity of
// 100 matches mmcp-rpc's mpsc::channel(100) and SPEC_FULL §5's stated
// reference bound.
func NewRuntime(port Port) *Runtime {
	rt := &Runtime{
		port:          port,
		commands:      make(chan waitResponseCmd, 100),
		subscriptions: make(map[RequestID]chan<- correlatedReply),
	}
	rt.sink = &RuntimeSink{rt: rt, underlying: port.Sink()}
	return rt
}

// Sink returns a handle other goroutines can use to send messages and
// issue correlated server-initiated requests through this Runtime.
func (rt *Runtime) Sink() *RuntimeSink { return rt.sink }

// Progress performs one iteration: drain any pending WaitResponse
// registrations, then block for the next inbound message, resolving it
// against a subscriber if one is waiting. It returns io.EOF when the
// underlying Port's stream has closed cleanly.
func (rt *Runtime) Progress() (Message, error) {
	rt.drainCommands()

	msg, err := rt.port.Progress()
	if err != nil {
		return nil, err
	}

	switch m := msg.(type) {
	case *Response:
		rt.resolve(m.ID, correlatedReply{response: m})
	case *ErrorResponse:
		rt.resolve(m.ID, correlatedReply{errorRsp: m})
	case *BatchResponse:
		for _, item := range m.Items {
			switch e := item.(type) {
			case *Response:
				rt.resolve(e.ID, correlatedReply{response: e})
			case *ErrorResponse:
				rt.resolve(e.ID, correlatedReply{errorRsp: e})
			}
		}
	}

	return msg, nil
}

func (rt *Runtime) drainCommands() {
	for {
		select {
		case cmd := <-rt.commands:
			rt.subscriptions[cmd.id] = cmd.replyCh
		default:
			return
		}
	}
}

func (rt *Runtime) resolve(id RequestID, reply correlatedReply) {
	ch, ok := rt.subscriptions[id]
	if !ok {
		return
	}
	delete(rt.subscriptions, id)
	// Best-effort: if the subscriber already gave up (buffered channel
	// full or abandoned), dropping the reply is fine — mmcp-rpc ignores
	// the send error for exactly this reason.
	select {
	case ch <- reply:
	default:
	}
}
