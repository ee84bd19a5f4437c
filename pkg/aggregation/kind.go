// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggregation

import "reflect"

// Kind names an aggregation computation. The value is the key used on the
// wire for the payload of that computation.
type Kind string

// Category groups kinds by what they compute over.
type Category int

const (
	// CategoryUnknown is returned for kinds outside the catalog.
	CategoryUnknown Category = iota
	// CategoryMetric computes values over the documents of the current bucket.
	CategoryMetric
	// CategoryBucket partitions documents into buckets that may hold
	// sub-aggregations.
	CategoryBucket
	// CategoryPipeline computes over the output of sibling aggregations and
	// only makes sense below a bucketing aggregation.
	CategoryPipeline
)

const (
	// KindAvg averages the values of a field or script.
	KindAvg Kind = "avg"
	// KindWeightedAvg averages values weighted by a second source.
	KindWeightedAvg Kind = "weighted_avg"
	// KindCardinality approximates the number of distinct values.
	KindCardinality Kind = "cardinality"
	// KindMax returns the largest value.
	KindMax Kind = "max"
	// KindMin returns the smallest value.
	KindMin Kind = "min"
	// KindMedianAbsoluteDeviation measures the variability of values.
	KindMedianAbsoluteDeviation Kind = "median_absolute_deviation"
	// KindPercentiles estimates percentiles of the values.
	KindPercentiles Kind = "percentiles"
	// KindPercentileRanks estimates the percentile of given values.
	KindPercentileRanks Kind = "percentile_ranks"
	// KindStats returns min, max, sum, count and avg together.
	KindStats Kind = "stats"
	// KindExtendedStats adds variance and standard deviation to stats.
	KindExtendedStats Kind = "extended_stats"
	// KindSum sums the values.
	KindSum Kind = "sum"
	// KindValueCount counts the values.
	KindValueCount Kind = "value_count"
	// KindFilters makes one bucket per named query.
	KindFilters Kind = "filters"
	// KindTerms makes one bucket per distinct value.
	KindTerms Kind = "terms"
	// KindRange makes one bucket per numeric range.
	KindRange Kind = "range"
	// KindDateRange makes one bucket per date range.
	KindDateRange Kind = "date_range"
	// KindDateHistogram buckets dates by a calendar or fixed interval.
	KindDateHistogram Kind = "date_histogram"
	// KindAutoDateHistogram buckets dates by an interval the engine picks.
	KindAutoDateHistogram Kind = "auto_date_histogram"
	// KindHistogram buckets numbers by a fixed interval.
	KindHistogram Kind = "histogram"
	// KindVariableWidthHistogram clusters numbers into buckets of varying width.
	KindVariableWidthHistogram Kind = "variable_width_histogram"
	// KindBucketScript computes a value per parent bucket with a script.
	KindBucketScript Kind = "bucket_script"
	// KindBucketSelector drops parent buckets rejected by a script.
	KindBucketSelector Kind = "bucket_selector"
	// KindBucketSort sorts and truncates the parent buckets.
	KindBucketSort Kind = "bucket_sort"
	// KindNested aggregates nested documents.
	KindNested Kind = "nested"
	// KindReverseNested joins nested documents back to a parent level.
	KindReverseNested Kind = "reverse_nested"
)

var categories = map[Kind]Category{
	KindAvg:                     CategoryMetric,
	KindWeightedAvg:             CategoryMetric,
	KindCardinality:             CategoryMetric,
	KindMax:                     CategoryMetric,
	KindMin:                     CategoryMetric,
	KindMedianAbsoluteDeviation: CategoryMetric,
	KindPercentiles:             CategoryMetric,
	KindPercentileRanks:         CategoryMetric,
	KindStats:                   CategoryMetric,
	KindExtendedStats:           CategoryMetric,
	KindSum:                     CategoryMetric,
	KindValueCount:              CategoryMetric,
	KindFilters:                 CategoryBucket,
	KindTerms:                   CategoryBucket,
	KindRange:                   CategoryBucket,
	KindDateRange:               CategoryBucket,
	KindDateHistogram:           CategoryBucket,
	KindAutoDateHistogram:       CategoryBucket,
	KindHistogram:               CategoryBucket,
	KindVariableWidthHistogram:  CategoryBucket,
	KindBucketScript:            CategoryPipeline,
	KindBucketSelector:          CategoryPipeline,
	KindBucketSort:              CategoryPipeline,
	KindNested:                  CategoryBucket,
	KindReverseNested:           CategoryBucket,
}

// Kinds returns every kind of the catalog in wire declaration order.
func Kinds() []Kind {
	return []Kind{
		KindAvg, KindWeightedAvg, KindCardinality, KindMax, KindMin,
		KindMedianAbsoluteDeviation, KindPercentiles, KindPercentileRanks,
		KindStats, KindExtendedStats, KindSum, KindValueCount,
		KindFilters, KindTerms, KindRange, KindDateRange, KindDateHistogram,
		KindAutoDateHistogram, KindHistogram, KindVariableWidthHistogram,
		KindBucketScript, KindBucketSelector, KindBucketSort,
		KindNested, KindReverseNested,
	}
}

// Category classifies the kind.
func (k Kind) Category() Category {
	return categories[k]
}

// Valid reports whether the kind belongs to the catalog.
func (k Kind) Valid() bool {
	_, ok := categories[k]
	return ok
}

func (c Category) String() string {
	switch c {
	case CategoryMetric:
		return "metric"
	case CategoryBucket:
		return "bucket"
	case CategoryPipeline:
		return "pipeline"
	default:
		return "unknown"
	}
}

// Variant is the payload of exactly one aggregation kind. The set of
// implementations is closed: only the payload types of this package satisfy
// it.
type Variant interface {
	Kind() Kind
	isVariant()
}

// normalize turns pointer payloads into values and nil pointers into nil, so
// a Node always holds a payload value or nothing.
func normalize(v Variant) Variant {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface().(Variant)
}

func ptr[T any](v T) *T {
	return &v
}
