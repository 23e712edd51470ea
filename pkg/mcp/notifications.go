package mcp

import "encoding/json"

// Well-known notification methods this engine recognizes during RUNNING.
// Each is handled as a no-op per mmcp's notification_handlers.rs, which
// implements all four the same way: acknowledge receipt, no reply.
const (
	MethodInitialized      = "notifications/initialized"
	MethodCancelled        = "notifications/cancelled"
	MethodProgress         = "notifications/progress"
	MethodRootsListChanged = "notifications/roots/list_changed"
)

// CancelledParams is the payload of a notifications/cancelled message.
type CancelledParams struct {
	RequestID RequestID `json:"requestId"`
	Reason    string    `json:"reason,omitempty"`
}

// ProgressParams is the payload of a notifications/progress message.
type ProgressParams struct {
	ProgressToken json.RawMessage `json:"progressToken"`
	Progress      float64         `json:"progress"`
	Total         float64         `json:"total,omitempty"`
}

// isKnownNotification reports whether method names one of the no-op
// notifications this engine acknowledges silently. Anything else arriving
// as a Notification is still accepted (JSON-RPC notifications never error)
// but is logged as unrecognized.
func isKnownNotification(method string) bool {
	switch method {
	case MethodInitialized, MethodCancelled, MethodProgress, MethodRootsListChanged:
		return true
	default:
		return false
	}
}
