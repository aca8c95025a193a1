// Package model holds the resource entities, the request payloads that
// create or change them, and the records they are serialized to.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// Field is a nullable text attribute decoded from a request body.
//
// It tracks presence so partial updates can tell an absent key (Set=false)
// from an explicit null (Set=true, Valid=false). Strings are kept verbatim;
// numbers and booleans are kept as their JSON literal ("10465", "true").
// Objects and arrays are rejected.
type Field struct {
	Value string
	Valid bool
	Set   bool
}

// NewField returns a present, non-null Field.
func NewField(value string) Field {
	return Field{Value: value, Valid: true, Set: true}
}

// NullField returns a present, null Field.
func NullField() Field {
	return Field{Set: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key exists, which
// is what makes Set meaningful.
func (f *Field) UnmarshalJSON(data []byte) error {
	f.Set = true
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, jsonNull) {
		f.Value, f.Valid = "", false
		return nil
	}

	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.Value, f.Valid = s, true
	case '{', '[':
		return fmt.Errorf("expected a string, number or boolean")
	default:
		// Numbers and booleans: keep the literal as written, never parsed
		// into a float.
		if !json.Valid(data) {
			return fmt.Errorf("invalid literal %q", data)
		}
		f.Value, f.Valid = string(data), true
	}

	return nil
}

// MarshalJSON writes null for a null (or absent) value and a string otherwise.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return jsonNull, nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns the value as a *string suitable for a nullable column, or nil.
func (f Field) Ptr() *string {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
