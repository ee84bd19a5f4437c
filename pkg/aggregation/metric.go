// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggregation

import "github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"

// Script is an inline script evaluated by the engine.
type Script struct {
	Source string       `json:"source"`
	Lang   *string      `json:"lang,omitempty"`
	Params *scalars.Map `json:"params,omitempty"`
}

// MetricSource is where a metric aggregation reads its values from: a
// document field or a script. Documents without a value are ignored unless
// Missing supplies one.
type MetricSource struct {
	Field   *string `json:"field,omitempty"`
	Script  *Script `json:"script,omitempty"`
	Missing *string `json:"missing,omitempty"`
}

// Field returns a source reading the given document field.
func Field(name string) MetricSource {
	return MetricSource{Field: ptr(name)}
}

// ScriptSource returns a source computed by an inline script.
func ScriptSource(source string) MetricSource {
	return MetricSource{Script: &Script{Source: source}}
}

// WithMissing returns a copy of the source that substitutes value for
// documents lacking one.
func (s MetricSource) WithMissing(value string) MetricSource {
	s.Missing = ptr(value)
	return s
}

// A single-value metric computing the average of the extracted values.
type Avg MetricSource

// A single-value metric approximating the count of distinct values.
type Cardinality MetricSource

// A single-value metric returning the maximum of the extracted values.
type Max MetricSource

// A single-value metric returning the minimum of the extracted values.
type Min MetricSource

// A single-value metric approximating median(|median(X) - Xi|).
type MedianAbsoluteDeviation MetricSource

// A multi-value metric estimating percentiles of the extracted values.
type Percentiles MetricSource

// A multi-value metric estimating percentile ranks of the extracted values.
type PercentileRanks MetricSource

// A multi-value metric returning min, max, sum, count and avg.
type Stats MetricSource

// Stats plus sum_of_squares, variance and std_deviation.
type ExtendedStats MetricSource

// A single-value metric summing the extracted values.
type Sum MetricSource

// A single-value metric counting the extracted values.
type ValueCount MetricSource

// WeightedAverage computes ∑(value * weight) / ∑(weight), each side read
// from its own source.
type WeightedAverage struct {
	Value  MetricSource `json:"value"`
	Weight MetricSource `json:"weight"`
	Format *string      `json:"format,omitempty"`
}

// NewWeightedAverage returns a weighted average of value by weight.
func NewWeightedAverage(value, weight MetricSource) WeightedAverage {
	return WeightedAverage{Value: value, Weight: weight}
}

// missing requires both sides to read from a field or a script.
func (a WeightedAverage) missing() []string {
	var keys []string
	if a.Value.Field == nil && a.Value.Script == nil {
		keys = append(keys, "value")
	}
	if a.Weight.Field == nil && a.Weight.Script == nil {
		keys = append(keys, "weight")
	}
	return keys
}

func (Avg) Kind() Kind                     { return KindAvg }
func (WeightedAverage) Kind() Kind         { return KindWeightedAvg }
func (Cardinality) Kind() Kind             { return KindCardinality }
func (Max) Kind() Kind                     { return KindMax }
func (Min) Kind() Kind                     { return KindMin }
func (MedianAbsoluteDeviation) Kind() Kind { return KindMedianAbsoluteDeviation }
func (Percentiles) Kind() Kind             { return KindPercentiles }
func (PercentileRanks) Kind() Kind         { return KindPercentileRanks }
func (Stats) Kind() Kind                   { return KindStats }
func (ExtendedStats) Kind() Kind           { return KindExtendedStats }
func (Sum) Kind() Kind                     { return KindSum }
func (ValueCount) Kind() Kind              { return KindValueCount }

func (Avg) isVariant()                     {}
func (WeightedAverage) isVariant()         {}
func (Cardinality) isVariant()             {}
func (Max) isVariant()                     {}
func (Min) isVariant()                     {}
func (MedianAbsoluteDeviation) isVariant() {}
func (Percentiles) isVariant()             {}
func (PercentileRanks) isVariant()         {}
func (Stats) isVariant()                   {}
func (ExtendedStats) isVariant()           {}
func (Sum) isVariant()                     {}
func (ValueCount) isVariant()              {}
