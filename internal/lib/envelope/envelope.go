// Package envelope reads result lists out of response objects whose shape is
// not fixed ahead of time.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Resolver picks the first present field from an ordered list of candidate
// names. A field holding JSON null counts as absent.
type Resolver struct {
	fields []string
}

func NewResolver(fields ...string) Resolver {
	return Resolver{fields: fields}
}

func (r Resolver) Fields() []string {
	return r.fields
}

// Resolve returns the name of the field that matched and its items. When no
// candidate is present it returns an empty field name and no items. A matched
// field that is not a JSON array is an error.
func (r Resolver) Resolve(obj map[string]json.RawMessage) (string, []json.RawMessage, error) {
	for _, name := range r.fields {
		raw, ok := obj[name]
		if !ok || isNull(raw) {
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return name, nil, fmt.Errorf("field %q is not a list: %w", name, err)
		}

		return name, items, nil
	}

	return "", nil, nil
}

type pagingMetadata struct {
	HasNext *bool `json:"hasNext"`
}

// HasNext reports the pagingMetadata.hasNext flag of a response. Missing or
// unreadable metadata is treated as "maybe more".
func HasNext(obj map[string]json.RawMessage) bool {
	raw, ok := obj["pagingMetadata"]
	if !ok {
		return true
	}

	var meta pagingMetadata
	if err := json.Unmarshal(raw, &meta); err != nil || meta.HasNext == nil {
		return true
	}

	return *meta.HasNext
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
