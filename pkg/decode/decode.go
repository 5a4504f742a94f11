// Package decode converts between schemaless field maps and typed structs
// using their JSON tags.
package decode

import "encoding/json"

// FromMap decodes data into a T through its JSON representation.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}

// ToMap encodes v into a field map through its JSON representation.
// Fields tagged omitempty and left empty are absent from the result.
func ToMap[T any](v T) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	result := map[string]any{}
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, err
	}
	return result, nil
}
