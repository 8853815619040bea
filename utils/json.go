package utils

import (
	"bytes"
	"encoding/json"
)

// StrictUnmarshal decodes JSON while rejecting unknown fields.
func StrictUnmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// HasJSONKey reports whether a top-level key is present in a JSON object,
// distinguishing an explicit null from an absent key.
func HasJSONKey(data []byte, key string) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return false
	}
	_, ok := m[key]
	return ok
}
