package mcp

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Converter lets a typed tool's Output type control its own conversion to
// a CallToolResult, the Go analogue of mmcp's IntoToolResult trait.
type Converter interface {
	ToolResult() CallToolResult
}

// Text wraps any value whose fmt-formatted representation is the desired
// single text content item, the Go analogue of mmcp's Text<T> wrapper
// (T: Display).
type Text[T any] struct {
	Value T
}

func (t Text[T]) ToolResult() CallToolResult {
	return CallToolResult{Content: []Content{TextContent(fmt.Sprint(t.Value))}}
}

// JSON wraps any serializable value, emitting it as a single text content
// item containing its JSON encoding, the Go analogue of mmcp's Json<T>
// wrapper.
type JSON[T any] struct {
	Value T
}

func (j JSON[T]) ToolResult() CallToolResult {
	data, err := json.Marshal(j.Value)
	if err != nil {
		return ErrorResult(fmt.Sprintf("Error: serializing output: %s", err))
	}
	return CallToolResult{Content: []Content{TextContent(string(data))}}
}

// toCallToolResult converts a typed tool handler's Output value into the
// wire CallToolResult, covering every shape SPEC_FULL §4.3 names:
//
//   - Converter (Text, JSON, or any caller-defined type): delegate.
//   - CallToolResult: passed through unchanged.
//   - Content: wrapped as the sole content item.
//   - []Content: used as the content list directly.
//   - string: wrapped as a single text content item.
//   - error: rendered as a single text content item with IsError set.
//   - nil pointer / nil slice / nil interface (the Option<T>::None case):
//     an empty, non-error result.
//   - non-nil pointer (Option<T>::Some(T)): the pointee is converted.
//   - slice (Vec<T>): each element is converted and their content items
//     concatenated.
//   - anything else: serialized to JSON, same as the JSON[T] wrapper.
func toCallToolResult(v any) CallToolResult {
	if v == nil {
		return CallToolResult{Content: []Content{}}
	}

	switch x := v.(type) {
	case Converter:
		return x.ToolResult()
	case CallToolResult:
		return x
	case Content:
		return CallToolResult{Content: []Content{x}}
	case []Content:
		return CallToolResult{Content: x}
	case string:
		return CallToolResult{Content: []Content{TextContent(x)}}
	case error:
		return ErrorResult(x.Error())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return CallToolResult{Content: []Content{}}
		}
		return toCallToolResult(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return CallToolResult{Content: []Content{}}
		}
		var items []Content
		for i := 0; i < rv.Len(); i++ {
			items = append(items, toCallToolResult(rv.Index(i).Interface()).Content...)
		}
		if items == nil {
			items = []Content{}
		}
		return CallToolResult{Content: items}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return ErrorResult(fmt.Sprintf("Error: serializing output: %s", err))
	}
	return CallToolResult{Content: []Content{TextContent(string(data))}}
}
