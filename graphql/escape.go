// ABOUTME: Argument literal helpers for building GraphQL documents by hand.
// ABOUTME: Covers quoted strings, bare identifiers, and the double-encoded column_values payload.
package graphql

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// String renders v as a quoted, escaped GraphQL string literal.
func String(v string) string {
	return strconv.Quote(v)
}

// Int renders v as a bare integer literal.
func Int(v int64) string {
	return strconv.FormatInt(v, 10)
}

// JSONString marshals v to JSON and then quotes the result as a string
// literal. The monday.com API takes structured arguments (column_values)
// as a JSON document inside a GraphQL string, so the payload is encoded
// twice: once to JSON, once to escape it into the document.
func JSONString(v any) (string, error) {
	inner, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding argument: %w", err)
	}
	outer, err := json.Marshal(string(inner))
	if err != nil {
		return "", fmt.Errorf("quoting argument: %w", err)
	}
	return string(outer), nil
}
