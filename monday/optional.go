// ABOUTME: Optional[T] implements 3-state JSON semantics: absent, null, or value.
// ABOUTME: Remote summary records use it so merges apply only fields the response carried.
package monday

import (
	"bytes"
	"encoding/json"
)

// Optional represents a field that can be absent, explicitly null, or have a
// value. Reconciliation merges a remote field into local state only when the
// field was present in the response, so a legitimately empty string can
// overwrite while an omitted field cannot.
//
//   - Set=false:             field absent from JSON (don't update)
//   - Set=true, Valid=false: field is JSON null
//   - Set=true, Valid=true:  field has a value
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Present returns an Optional with a concrete value.
func Present[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Get returns the value and whether it is usable (present and non-null).
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && o.Valid
}

// MarshalJSON emits null for absent or null fields, the value otherwise.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON sets the field state based on the JSON value.
// A JSON null sets Set=true, Valid=false. Any other value sets both true.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		return nil
	}
	o.Valid = true
	return json.Unmarshal(data, &o.Value)
}
