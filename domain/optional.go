package domain

import "encoding/json"

// Optional is a string field that remembers whether its key appeared in the
// request body at all. Partial updates need three states: key omitted
// (preserve the stored value), key present with null (clear), and key present
// with a value. A plain *string cannot tell the first two apart.
type Optional struct {
	Set   bool
	Null  bool
	Value string
}

// UnmarshalJSON is only invoked when the key is present, which is what flips Set.
func (o *Optional) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// String returns the carried value, empty when the key was omitted or null.
func (o Optional) String() string {
	if !o.Set || o.Null {
		return ""
	}
	return o.Value
}

// Present reports whether the key appeared with a non-null value.
func (o Optional) Present() bool {
	return o.Set && !o.Null
}

// OptionalOf builds a present Optional, mainly for tests and in-process callers.
func OptionalOf(value string) Optional {
	return Optional{Set: true, Value: value}
}

// OptionalNull builds an explicit-null Optional.
func OptionalNull() Optional {
	return Optional{Set: true, Null: true}
}
