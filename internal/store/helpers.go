package store

import "encoding/json"

// marshalHints converts []string to JSON text for storage.
func marshalHints(hints []string) string {
	if len(hints) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(hints)
	return string(b)
}

// unmarshalHints converts JSON text back to []string.
func unmarshalHints(s string) []string {
	if s == "" || s == "null" || s == "[]" {
		return nil
	}
	var hints []string
	_ = json.Unmarshal([]byte(s), &hints)
	return hints
}
