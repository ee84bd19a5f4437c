// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package scalars holds JSON values that travel through aggregation requests
// untouched: free-form metadata, named filter bodies, bucket paths.
package scalars

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is a JSON object (key => value map). Keys are unique and keep their
// insertion order because the search engine reads request bodies in order.
//
// Values are kept as compact JSON text, so integers stay integers and nested
// objects keep their own key order. The zero value is an empty object.
type Map struct {
	entries *orderedmap.OrderedMap[string, json.RawMessage]
}

// Pair is a single key/value entry used to build a Map in code.
type Pair struct {
	Key   string
	Value any
}

// Get returns the JSON value stored under key. It never creates entries.
func (m Map) Get(key string) (json.RawMessage, bool) {
	if m.entries == nil {
		return nil, false
	}
	return m.entries.Get(key)
}

// Decode unmarshals the value stored under key into v. The boolean reports
// whether the key was present.
func (m Map) Decode(key string, v any) (bool, error) {
	raw, ok := m.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, errors.NewTypeMismatch(fmt.Sprintf("value of %q cannot be decoded", key), err)
	}
	return true, nil
}

// Len returns the number of entries.
func (m Map) Len() int {
	if m.entries == nil {
		return 0
	}
	return m.entries.Len()
}

// IsEmpty returns true if the map contains no elements.
func (m Map) IsEmpty() bool {
	return m.Len() == 0
}

// Keys returns the keys in insertion order.
func (m Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	if m.entries == nil {
		return keys
	}
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Without returns a copy of the map that lacks the given keys.
func (m Map) Without(keys ...string) Map {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}

	out := orderedmap.New[string, json.RawMessage]()
	if m.entries != nil {
		for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
			if _, skip := drop[pair.Key]; skip {
				continue
			}
			out.Set(pair.Key, pair.Value)
		}
	}
	return Map{entries: out}
}

// Equal reports whether both maps hold the same keys, in the same order,
// with the same values.
func (m Map) Equal(other Map) bool {
	return m.String() == other.String()
}

// String returns the canonical JSON text of the map.
func (m Map) String() string {
	b, err := m.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

// MarshalJSON emits the wrapped object, preserving key order. Stored values
// are written as they are.
func (m Map) MarshalJSON() ([]byte, error) {
	if m.entries == nil || m.entries.Len() == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(pair.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a JSON object or null; any other JSON kind is a
// TypeMismatch.
func (m *Map) UnmarshalJSON(data []byte) error {
	parsed, err := FromValue(data)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Parse builds a Map from JSON text.
func Parse(text string) (Map, error) {
	return FromValue(json.RawMessage(text))
}

// FromValue wraps a JSON value. Objects are wrapped as-is, null yields the
// empty map, and strings, numbers, booleans and arrays are rejected with a
// TypeMismatch error.
func FromValue(raw json.RawMessage) (Map, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Map{}, errors.NewParse("empty JSON text")
	}
	if !json.Valid(trimmed) {
		var target json.RawMessage
		return Map{}, errors.NewParse("invalid JSON text", json.Unmarshal(trimmed, &target))
	}

	switch trimmed[0] {
	case 'n':
		return Map{}, nil
	case '{':
	default:
		return Map{}, errors.NewTypeMismatch(fmt.Sprintf("invalid JSON object: `%s`", trimmed))
	}

	entries := orderedmap.New[string, json.RawMessage]()
	if err := entries.UnmarshalJSON(trimmed); err != nil {
		return Map{}, errors.NewParse("invalid JSON object", err)
	}
	for pair := entries.Oldest(); pair != nil; pair = pair.Next() {
		var compact bytes.Buffer
		if err := json.Compact(&compact, pair.Value); err != nil {
			return Map{}, errors.NewParse(fmt.Sprintf("invalid value for %q", pair.Key), err)
		}
		pair.Value = json.RawMessage(compact.Bytes())
	}
	return Map{entries: entries}, nil
}

// FromMap converts an unordered collection, such as a decoded request
// attribute, into a Map. Keys are sorted so the result is deterministic.
func FromMap(values map[string]any) (Map, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Value: values[k]})
	}
	return FromPairs(pairs...)
}

// FromOrdered converts an ordered collection into a Map, keeping its order.
func FromOrdered(values *orderedmap.OrderedMap[string, any]) (Map, error) {
	if values == nil {
		return Map{}, nil
	}
	pairs := make([]Pair, 0, values.Len())
	for pair := values.Oldest(); pair != nil; pair = pair.Next() {
		pairs = append(pairs, Pair{Key: pair.Key, Value: pair.Value})
	}
	return FromPairs(pairs...)
}

// FromPairs builds a Map from key/value pairs in the given order. A repeated
// key keeps its first position and its last value.
func FromPairs(pairs ...Pair) (Map, error) {
	entries := orderedmap.New[string, json.RawMessage]()
	for _, p := range pairs {
		raw, err := toRaw(p.Value)
		if err != nil {
			return Map{}, errors.NewTypeMismatch(fmt.Sprintf("value of %q is not representable as JSON", p.Key), err)
		}
		entries.Set(p.Key, raw)
	}
	return Map{entries: entries}, nil
}

func toRaw(v any) (json.RawMessage, error) {
	switch val := v.(type) {
	case json.RawMessage:
		var compact bytes.Buffer
		if err := json.Compact(&compact, val); err != nil {
			return nil, err
		}
		return json.RawMessage(compact.Bytes()), nil
	case Map:
		return val.MarshalJSON()
	}
	b, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
