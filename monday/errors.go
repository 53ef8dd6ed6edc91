// ABOUTME: Error kinds for the monday object model: config, data-integrity, type-mismatch,
// ABOUTME: validation, and unimplemented-feature errors, plus item state-machine sentinels.
package monday

import (
	"errors"
	"fmt"
)

var (
	// ErrItemDeleted indicates an operation on an item whose delete already succeeded.
	ErrItemDeleted = errors.New("item has been deleted")

	// ErrItemNotPersisted indicates an operation that requires a remote id on an
	// item that has never been pushed.
	ErrItemNotPersisted = errors.New("item has no id; push it first")
)

// ConfigError indicates missing configuration at construction time: no API
// token, or a required identifier such as a board id. It is surfaced before
// any network activity.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s is required", e.Missing)
}

// DataIntegrityError indicates a remote response that parsed but was missing
// expected entities: an account with no users or boards, a refresh that found
// zero or multiple items for one id, or a mutation that did not echo its payload.
type DataIntegrityError struct {
	Op     string
	Detail string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

// TypeMismatchError indicates a typed setter or getter was invoked on a
// ColumnValue whose type does not match. This is a programmer error and is
// never caught internally.
type TypeMismatchError struct {
	Column string
	Have   ColumnType
	Want   ColumnType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %q is type %q, not %q", e.Column, e.Have, e.Want)
}

// ValidationError indicates malformed arguments to a typed setter: a bad
// email, an out-of-range rating, unresolvable tag names, and so on.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnimplementedError indicates a documented gap: the timeline and week
// setters validate their inputs and then fail unconditionally.
type UnimplementedError struct {
	Feature string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Feature)
}
