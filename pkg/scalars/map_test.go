// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package scalars

import (
	"encoding/json"
	"testing"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		expectedJSON  string
		expectedKeys  []string
		expectedError bool
		errorType     any
	}{
		{
			name:         "object keeps key order",
			text:         `{"b": 1, "a": "two", "c": {"z": true, "y": null}}`,
			expectedJSON: `{"b":1,"a":"two","c":{"z":true,"y":null}}`,
			expectedKeys: []string{"b", "a", "c"},
		},
		{
			name:         "integers stay integers",
			text:         `{"big": 9007199254740993, "neg": -5}`,
			expectedJSON: `{"big":9007199254740993,"neg":-5}`,
			expectedKeys: []string{"big", "neg"},
		},
		{
			name:         "arrays are kept structurally",
			text:         `{"list": [1, "x", {"k": [2, 3]}]}`,
			expectedJSON: `{"list":[1,"x",{"k":[2,3]}]}`,
			expectedKeys: []string{"list"},
		},
		{
			name:         "empty object",
			text:         `{}`,
			expectedJSON: `{}`,
			expectedKeys: []string{},
		},
		{
			name:         "null yields empty map",
			text:         `null`,
			expectedJSON: `{}`,
			expectedKeys: []string{},
		},
		{
			name:          "malformed text",
			text:          `{"a": `,
			expectedError: true,
			errorType:     errors.Parse{},
		},
		{
			name:          "empty text",
			text:          `   `,
			expectedError: true,
			errorType:     errors.Parse{},
		},
		{
			name:          "number is not an object",
			text:          `5`,
			expectedError: true,
			errorType:     errors.TypeMismatch{},
		},
		{
			name:          "string is not an object",
			text:          `"hello"`,
			expectedError: true,
			errorType:     errors.TypeMismatch{},
		},
		{
			name:          "boolean is not an object",
			text:          `true`,
			expectedError: true,
			errorType:     errors.TypeMismatch{},
		},
		{
			name:          "array is not an object",
			text:          `[{"a": 1}]`,
			expectedError: true,
			errorType:     errors.TypeMismatch{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(tc.text)

			if tc.expectedError {
				assert.Error(t, err)
				assert.IsType(t, tc.errorType, err)
				assert.True(t, m.IsEmpty())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedJSON, m.String())
			assert.Equal(t, tc.expectedKeys, m.Keys())
			assert.Equal(t, len(tc.expectedKeys) == 0, m.IsEmpty())
		})
	}
}

func TestMapRoundTrip(t *testing.T) {
	texts := []string{
		`{"_skip":true}`,
		`{"z":1,"y":2,"x":3}`,
		`{"nested":{"b":[1,2,{"c":"d"}],"a":1.5},"s":"q\"uote"}`,
		`{"unicode":"日本","escaped":"<"}`,
		`{"script":"doc['x'].value > 5 && doc['y'].value < 2"}`,
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			m, err := Parse(text)
			require.NoError(t, err)

			out, err := m.MarshalJSON()
			require.NoError(t, err)

			again, err := Parse(string(out))
			require.NoError(t, err)

			assert.JSONEq(t, text, string(out))
			assert.Equal(t, m.Keys(), again.Keys())
			assert.True(t, m.Equal(again))
		})
	}
}

func TestMapGet(t *testing.T) {
	m, err := Parse(`{"count": 3, "name": "agg", "meta": {"_skip": true}}`)
	require.NoError(t, err)

	assertion := assert.New(t)

	value, ok := m.Get("count")
	assertion.True(ok)
	assertion.Equal(json.RawMessage(`3`), value)

	value, ok = m.Get("meta")
	assertion.True(ok)
	assertion.Equal(json.RawMessage(`{"_skip":true}`), value)

	value, ok = m.Get("missing")
	assertion.False(ok)
	assertion.Nil(value)
	assertion.Equal(3, m.Len(), "lookup must not create entries")

	var zero Map
	_, ok = zero.Get("anything")
	assertion.False(ok)
	assertion.True(zero.IsEmpty())
	assertion.Equal("{}", zero.String())
}

func TestMapDecode(t *testing.T) {
	m, err := Parse(`{"_skip": true, "label": "x"}`)
	require.NoError(t, err)

	var skip bool
	found, err := m.Decode("_skip", &skip)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.True(t, skip)

	found, err = m.Decode("absent", &skip)
	assert.NoError(t, err)
	assert.False(t, found)

	var n int
	found, err = m.Decode("label", &n)
	assert.True(t, found)
	assert.IsType(t, errors.TypeMismatch{}, err)
}

func TestFromMap(t *testing.T) {
	m, err := FromMap(map[string]any{
		"zeta":  1,
		"alpha": "a",
		"mid":   map[string]any{"k": []int{1, 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, m.Keys())
	assert.Equal(t, `{"alpha":"a","mid":{"k":[1,2]},"zeta":1}`, m.String())

	_, err = FromMap(map[string]any{"bad": make(chan int)})
	assert.IsType(t, errors.TypeMismatch{}, err)

	empty, err := FromMap(nil)
	assert.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestFromOrdered(t *testing.T) {
	om := orderedmap.New[string, any]()
	om.Set("second", 2)
	om.Set("first", json.RawMessage(`{ "x" : 1 }`))
	om.Set("third", []string{"a"})

	m, err := FromOrdered(om)
	require.NoError(t, err)

	assert.Equal(t, []string{"second", "first", "third"}, m.Keys())
	assert.Equal(t, `{"second":2,"first":{"x":1},"third":["a"]}`, m.String())

	m, err = FromOrdered(nil)
	assert.NoError(t, err)
	assert.True(t, m.IsEmpty())
}

func TestFromPairs(t *testing.T) {
	inner, err := Parse(`{"b":1,"a":2}`)
	require.NoError(t, err)

	m, err := FromPairs(
		Pair{Key: "k", Value: "v"},
		Pair{Key: "inner", Value: inner},
		Pair{Key: "k", Value: "override"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"k", "inner"}, m.Keys())
	assert.Equal(t, `{"k":"override","inner":{"b":1,"a":2}}`, m.String())
}

func TestMapWithout(t *testing.T) {
	m, err := Parse(`{"a":1,"b":2,"c":3}`)
	require.NoError(t, err)

	out := m.Without("b", "missing")
	assert.Equal(t, `{"a":1,"c":3}`, out.String())
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, m.String(), "source map is left untouched")

	var zero Map
	assert.True(t, zero.Without("a").IsEmpty())
}

func TestMapUnmarshalJSON(t *testing.T) {
	type holder struct {
		Meta    *Map `json:"meta,omitempty"`
		Filters Map  `json:"filters"`
	}

	var h holder
	err := json.Unmarshal([]byte(`{"meta": {"b": 1, "a": 2}, "filters": null}`), &h)
	require.NoError(t, err)
	require.NotNil(t, h.Meta)
	assert.Equal(t, []string{"b", "a"}, h.Meta.Keys())
	assert.True(t, h.Filters.IsEmpty())

	err = json.Unmarshal([]byte(`{"meta": 5}`), &h)
	assert.Error(t, err)

	out, err := json.Marshal(holder{})
	require.NoError(t, err)
	assert.Equal(t, `{"filters":{}}`, string(out))
}

func TestMapEqual(t *testing.T) {
	a, err := Parse(`{"x": 1, "y": [1, 2]}`)
	require.NoError(t, err)
	b, err := Parse(`{"x":1,"y":[1,2]}`)
	require.NoError(t, err)
	c, err := Parse(`{"y":[1,2],"x":1}`)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "key order is significant")
	assert.True(t, Map{}.Equal(Map{}))
}

func TestMapMarshalJSONKeepsOperators(t *testing.T) {
	m, err := FromPairs(
		Pair{Key: "a<b", Value: "x > 1 && y < 2"},
		Pair{Key: "raw", Value: json.RawMessage(`{"s": "p & q"}`)},
	)
	require.NoError(t, err)

	out, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a<b":"x > 1 && y < 2","raw":{"s":"p & q"}}`, string(out))
}

func TestMarshal(t *testing.T) {
	out, err := Marshal(struct {
		Script string `json:"script"`
	}{Script: "a > b"})
	require.NoError(t, err)
	assert.Equal(t, `{"script":"a > b"}`, string(out))
}
