// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package design

import (
	. "goa.design/goa/v3/dsl"
)

// AggregationKinds lists the attribute names of AggregationInput that select
// a kind, with the payload type each one decodes into. Exactly one of them
// must be set on every node.
var AggregationKinds = []struct {
	Name string
	Type string
}{
	{"avg", "Avg"},
	{"weighted_avg", "WeightedAverage"},
	{"cardinality", "Cardinality"},
	{"max", "Max"},
	{"min", "Min"},
	{"median_absolute_deviation", "MedianAbsoluteDeviation"},
	{"percentiles", "Percentiles"},
	{"percentile_ranks", "PercentileRanks"},
	{"stats", "Stats"},
	{"extended_stats", "ExtendedStats"},
	{"sum", "Sum"},
	{"value_count", "ValueCount"},
	{"filters", "FiltersAggregation"},
	{"terms", "TermsAggregation"},
	{"range", "RangeAggregation"},
	{"date_range", "DateRangeAggregation"},
	{"date_histogram", "DateHistogramAggregation"},
	{"auto_date_histogram", "AutoDateHistogramAggregation"},
	{"histogram", "HistogramAggregation"},
	{"variable_width_histogram", "VariableWidthHistogram"},
	{"bucket_script", "BucketScript"},
	{"bucket_selector", "BucketSelector"},
	{"bucket_sort", "BucketSort"},
	{"nested", "NestedAggregation"},
	{"reverse_nested", "ReverseNestedAggregation"},
}

var AggregationInput = Type("AggregationInput", func() {
	Description("A named aggregation. It sets exactly one kind, optional metadata and optional sub-aggregations.")

	Attribute("name", String, "Name the result is keyed by", func() {
		Example("avg_price")
	})
	for _, kind := range AggregationKinds {
		Attribute(kind.Name, MapOf(String, Any), "Payload of the "+kind.Name+" aggregation", func() {
			Meta("struct:field:type", "*aggregation."+kind.Type, aggregationPkg)
		})
	}
	Attribute("metadata", MapOf(String, Any), "Opaque metadata; \"_skip\": true leaves the result out of the response", func() {
		Example(map[string]any{"_skip": true})
		Meta("struct:field:type", "*scalars.Map", scalarsPkg)
	})
	// Named reference: the type is recursive.
	Attribute("aggregations", ArrayOf("AggregationInput"), "Sub-aggregations, run per bucket")
	Required("name")
})

var BadRequestError = Type("BadRequestError", func() {
	Description("The request is malformed or breaks an aggregation rule.")
	Attribute("message", String, "Error message", func() {
		Example(`aggregation "by_category/broken" has no kind`)
	})
	Required("message")
})

var InternalServerError = Type("InternalServerError", func() {
	Description("The server failed unexpectedly.")
	Attribute("message", String, "Error message", func() {
		Example("internal server error")
	})
	Required("message")
})

var ServiceUnavailableError = Type("ServiceUnavailableError", func() {
	Description("The search engine is unavailable.")
	Attribute("message", String, "Error message", func() {
		Example("opensearch is unavailable")
	})
	Required("message")
})
