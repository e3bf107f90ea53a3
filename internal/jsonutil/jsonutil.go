// Package jsonutil provides shared helpers for decoding API payloads with
// contextual errors.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalList decodes a JSON array into a slice. Servers that wrap the
// array in an object are also accepted: {"<key>": [...]}. A JSON null or an
// empty body yields an empty, non-nil slice.
func UnmarshalList[T any](data []byte, key, context string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	switch trimmed[0] {
	case '[':
		var entries []T
		if err := UnmarshalWithContext(trimmed, &entries, context); err != nil {
			return nil, err
		}
		return entries, nil
	case '{':
		var wrapped map[string]json.RawMessage
		if err := UnmarshalWithContext(trimmed, &wrapped, context); err != nil {
			return nil, err
		}
		raw, ok := wrapped[key]
		if !ok {
			return nil, fmt.Errorf("%s: object has no %q field", context, key)
		}
		return UnmarshalList[T](raw, key, context)
	default:
		return nil, fmt.Errorf("%s: expected array or object, got %q", context, preview(trimmed))
	}
}

// preview returns the start of data for error messages.
func preview(data []byte) string {
	const limit = 32
	if len(data) > limit {
		return string(data[:limit]) + "…"
	}
	return string(data)
}
