// Package jsonpath implements the dot-path JSON extractor every backend
// adapter uses to pull typed fields out of a decoded API response, grounded
// on original_source/src/helper.rs's json_extract.
package jsonpath

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ropensci/datahugger-go/internal/dherrors"
)

// Extract walks value (the result of unmarshalling JSON into `any`)
// following the dot-separated path and decodes the final node into T.
//
// A path segment is an object key when the current node is a
// map[string]any, or a parseable array index when the current node is a
// []any. Empty segments (from a leading/trailing/doubled dot) are
// skipped, matching the Rust original.
func Extract[T any](value any, path string) (T, error) {
	var zero T

	current := value
	for _, key := range strings.Split(path, ".") {
		if key == "" {
			continue
		}
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[key]
			if !ok {
				return zero, &dherrors.JSONExtractError{
					Kind:    dherrors.KeyMissing,
					Message: fmt.Sprintf("'%s' not found in object at path '%s'", key, path),
				}
			}
			current = v
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 {
				return zero, &dherrors.JSONExtractError{
					Kind:    dherrors.IndexParse,
					Message: fmt.Sprintf("key '%s' cannot parse to an index at path '%s'", key, path),
				}
			}
			if idx >= len(node) {
				return zero, &dherrors.JSONExtractError{
					Kind:    dherrors.IndexOutOfBounds,
					Message: fmt.Sprintf("array index %d out of bounds at path '%s'", idx, path),
				}
			}
			current = node[idx]
		default:
			return zero, &dherrors.JSONExtractError{
				Kind:    dherrors.NotAContainer,
				Message: fmt.Sprintf("key '%s' cannot descend into non-container value at path '%s'", key, path),
			}
		}
	}

	out, err := decode[T](current)
	if err != nil {
		return zero, &dherrors.JSONExtractError{
			Kind:    dherrors.Deserialize,
			Message: fmt.Sprintf("failed to deserialize value at path '%s': %v", path, err),
		}
	}
	return out, nil
}

// decode re-marshals the generic node and unmarshals it into T, since Go's
// type system has no direct any->T narrowing for arbitrary T the way
// serde_json::from_value does.
func decode[T any](node any) (T, error) {
	var out T
	raw, err := json.Marshal(node)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Decode parses raw JSON bytes into the generic any-tree Extract expects.
func Decode(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
