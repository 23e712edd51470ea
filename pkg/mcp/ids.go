package mcp

import (
	"encoding/json"
	"fmt"
)

// RequestID is the JSON-RPC request identifier: a JSON number or a JSON
// string, never both, never null on the wire (null ids are only legal on
// a parse-error response where the original id could not be recovered).
type RequestID struct {
	isString bool
	str      string
	num      int64
}

// NewRequestIDString builds a string-valued RequestID.
func NewRequestIDString(s string) RequestID {
	return RequestID{isString: true, str: s}
}

// NewRequestIDNumber builds a number-valued RequestID.
func NewRequestIDNumber(n int64) RequestID {
	return RequestID{num: n}
}

// IsString reports whether the id was carried as a JSON string.
func (id RequestID) IsString() bool { return id.isString }

// String returns the id rendered as a string regardless of its wire kind,
// for use as a map key or in log lines.
func (id RequestID) String() string {
	if id.isString {
		return id.str
	}
	return fmt.Sprintf("%d", id.num)
}

// Equal reports whether two request ids denote the same identifier. A
// string "1" and a number 1 are NOT equal: JSON-RPC ids compare by wire
// type as well as value.
func (id RequestID) Equal(other RequestID) bool {
	return id.isString == other.isString && id.str == other.str && id.num == other.num
}

func (id RequestID) MarshalJSON() ([]byte, error) {
	if id.isString {
		return json.Marshal(id.str)
	}
	return json.Marshal(id.num)
}

func (id *RequestID) UnmarshalJSON(data []byte) error {
	var asNumber int64
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*id = RequestID{num: asNumber}
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*id = RequestID{isString: true, str: asString}
		return nil
	}
	return fmt.Errorf("mcp: request id must be a JSON string or number, got %s", data)
}
