// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggregation

import (
	"encoding/json"
	"testing"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) scalars.Map {
	t.Helper()
	m, err := scalars.Parse(text)
	require.NoError(t, err)
	return m
}

func TestNodeMarshalJSON(t *testing.T) {
	skip := mustParse(t, `{"_skip":true}`)

	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{
			name:     "metric with field",
			node:     Node{Name: "avg_price", Variant: Avg(Field("price"))},
			expected: `{"name":"avg_price","avg":{"field":"price"}}`,
		},
		{
			name:     "metric with script and missing",
			node:     Node{Name: "doubled", Variant: Sum(ScriptSource("doc.price.value * 2").WithMissing("0"))},
			expected: `{"name":"doubled","sum":{"script":{"source":"doc.price.value * 2"},"missing":"0"}}`,
		},
		{
			name:     "pointer variant is serialized as its value",
			node:     Node{Name: "max_price", Variant: &Max{Field: ptr("price")}},
			expected: `{"name":"max_price","max":{"field":"price"}}`,
		},
		{
			name: "bucket with one child keeps aggregations",
			node: Node{
				Name:     "by_category",
				Variant:  NewTerms("category").WithSize(10),
				Children: []Node{{Name: "avg_price", Variant: Avg(Field("price"))}},
			},
			expected: `{"name":"by_category","terms":{"field":"category","size":10},"aggregations":[{"name":"avg_price","avg":{"field":"price"}}]}`,
		},
		{
			name:     "date range without ranges emits empty array",
			node:     Node{Name: "recent", Variant: NewDateRange("date")},
			expected: `{"name":"recent","date_range":{"field":"date","ranges":[]}}`,
		},
		{
			name:     "date range keeps ranges in order",
			node:     Node{Name: "recent", Variant: NewDateRange("date", Since("now-1d"), Between("now-7d", "now-1d"), Until("now-7d")).WithFormat("yyyy-MM-dd")},
			expected: `{"name":"recent","date_range":{"field":"date","format":"yyyy-MM-dd","ranges":[{"from":"now-1d"},{"from":"now-7d","to":"now-1d"},{"to":"now-7d"}]}}`,
		},
		{
			name:     "range without ranges emits empty array",
			node:     Node{Name: "prices", Variant: NewRange("price")},
			expected: `{"name":"prices","range":{"field":"price","ranges":[]}}`,
		},
		{
			name:     "bucket sort without sort emits empty array",
			node:     Node{Name: "top", Variant: NewBucketSort().WithPage(0, 5)},
			expected: `{"name":"top","bucket_sort":{"sort":[],"from":0,"size":5}}`,
		},
		{
			name:     "metadata is emitted after the variant",
			node:     Node{Name: "hidden", Variant: ValueCount(Field("id")), Metadata: &skip},
			expected: `{"name":"hidden","value_count":{"field":"id"},"metadata":{"_skip":true}}`,
		},
		{
			name:     "empty children are omitted",
			node:     Node{Name: "paths", Variant: NestedAggregation{Path: "comments"}, Children: []Node{}},
			expected: `{"name":"paths","nested":{"path":"comments"}}`,
		},
		{
			name:     "reverse nested without path",
			node:     Node{Name: "back", Variant: ReverseNestedAggregation{}},
			expected: `{"name":"back","reverse_nested":{}}`,
		},
		{
			name: "weighted average",
			node: Node{
				Name:    "weighted_grade",
				Variant: NewWeightedAverage(Field("grade"), Field("weight")),
			},
			expected: `{"name":"weighted_grade","weighted_avg":{"value":{"field":"grade"},"weight":{"field":"weight"}}}`,
		},
		{
			name: "histogram with bounds",
			node: Node{
				Name:    "price_hist",
				Variant: NewHistogram("price", 50).WithMinDocCount(0).WithExtendedBounds(0, 500),
			},
			expected: `{"name":"price_hist","histogram":{"field":"price","interval":50,"min_doc_count":0,"extended_bounds":{"min":0,"max":500}}}`,
		},
		{
			name: "pipeline payloads keep map order",
			node: Node{
				Name:    "ratio",
				Variant: NewBucketScript(mustParse(t, `{"b":"total","a":"count"}`), "params.b / params.a").WithGapPolicy(GapPolicyInsertZeros),
			},
			expected: `{"name":"ratio","bucket_script":{"buckets_path":{"b":"total","a":"count"},"script":"params.b / params.a","gap_policy":"insert_zeros"}}`,
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.node)
			assertion.NoError(err)
			assertion.Equal(tc.expected, string(b))
		})
	}
}

func TestNodeMarshalJSONRejectsMissingVariant(t *testing.T) {
	tests := []struct {
		name string
		node Node
	}{
		{
			name: "root without variant",
			node: Node{Name: "empty"},
		},
		{
			name: "nil pointer variant",
			node: Node{Name: "empty", Variant: (*Avg)(nil)},
		},
		{
			name: "grandchild without variant",
			node: Node{
				Name:    "by_category",
				Variant: NewTerms("category"),
				Children: []Node{{
					Name:     "by_brand",
					Variant:  NewTerms("brand"),
					Children: []Node{{Name: "lost"}},
				}},
			},
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := json.Marshal(tc.node)
			var target errors.NoVariantSelected
			assertion.ErrorAs(err, &target)
		})
	}
}

func TestNodeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      Node
		expectedError any
	}{
		{
			name:     "metric",
			input:    `{"name":"avg_price","avg":{"field":"price"}}`,
			expected: Node{Name: "avg_price", Variant: Avg{Field: ptr("price")}},
		},
		{
			name:  "bucket with children",
			input: `{"name":"by_day","date_histogram":{"field":"date","calendar_interval":"day"},"aggregations":[{"name":"total","sum":{"field":"amount"}},{"name":"top","bucket_sort":{"sort":[],"size":3}}]}`,
			expected: Node{
				Name:    "by_day",
				Variant: NewDateHistogram("date").WithCalendarInterval("day"),
				Children: []Node{
					{Name: "total", Variant: Sum(Field("amount"))},
					{Name: "top", Variant: BucketSort{Sort: []scalars.Map{}, Size: ptr(3)}},
				},
			},
		},
		{
			name:          "no variant",
			input:         `{"name":"empty"}`,
			expectedError: &errors.NoVariantSelected{},
		},
		{
			name:          "two variants",
			input:         `{"name":"both","min":{"field":"a"},"max":{"field":"a"}}`,
			expectedError: &errors.MultipleVariantsSelected{},
		},
		{
			name:          "metadata is not an object",
			input:         `{"name":"bad","avg":{"field":"a"},"metadata":5}`,
			expectedError: &errors.TypeMismatch{},
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var node Node
			err := json.Unmarshal([]byte(tc.input), &node)
			if tc.expectedError != nil {
				assertion.ErrorAs(err, tc.expectedError)
				return
			}
			assertion.NoError(err)
			assertion.True(tc.expected.Equal(node), "expected %+v, got %+v", tc.expected, node)
		})
	}
}

func TestNodeJSONRoundTrip(t *testing.T) {
	inputs := []string{
		`{"name":"avg_price","avg":{"field":"price"}}`,
		`{"name":"hidden","cardinality":{"field":"user"},"metadata":{"_skip":true,"owner":{"team":"data","id":7}}}`,
		`{"name":"by_status","filters":{"filters":{"errors":{"term":{"level":"error"}},"warnings":{"term":{"level":"warn"}}},"other_bucket":true,"other_bucket_key":"other"}}`,
		`{"name":"sales","date_histogram":{"field":"date","fixed_interval":"30m","time_zone":"UTC","min_doc_count":1},"aggregations":[{"name":"total","sum":{"field":"price"}},{"name":"keep","bucket_selector":{"buckets_path":{"t":"total"},"script":"params.t != 0"}},{"name":"top","bucket_sort":{"sort":[{"total":{"order":"desc"}}],"size":3}}]}`,
		`{"name":"comments","nested":{"path":"comments"},"aggregations":[{"name":"authors","terms":{"field":"comments.author","order":{"_count":"asc"}},"aggregations":[{"name":"back","reverse_nested":{}}]}]}`,
		`{"name":"auto","auto_date_histogram":{"field":"date","buckets":10,"minimum_interval":"hour"}}`,
		`{"name":"clusters","variable_width_histogram":{"field":"price","buckets":4}}`,
		`{"name":"pcts","percentiles":{"field":"load_time"}}`,
	}

	assertion := assert.New(t)

	for _, input := range inputs {
		var node Node
		assertion.NoError(json.Unmarshal([]byte(input), &node))
		b, err := json.Marshal(node)
		assertion.NoError(err)
		assertion.JSONEq(input, string(b))
		assertion.Equal(input, string(b), "key order must be kept")
	}
}
