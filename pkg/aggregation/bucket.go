// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggregation

import "github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"

// FiltersAggregation defines one bucket per named query body.
type FiltersAggregation struct {
	Filters        scalars.Map `json:"filters"`
	OtherBucket    *bool       `json:"other_bucket,omitempty"`
	OtherBucketKey *string     `json:"other_bucket_key,omitempty"`
}

// NewFilters returns a filters aggregation over the given named queries.
func NewFilters(filters scalars.Map) FiltersAggregation {
	return FiltersAggregation{Filters: filters}
}

// WithOtherBucket returns a copy that collects unmatched documents under key.
func (a FiltersAggregation) WithOtherBucket(key string) FiltersAggregation {
	a.OtherBucket = ptr(true)
	a.OtherBucketKey = ptr(key)
	return a
}

// TermsAggregation builds one bucket per unique value of Field.
type TermsAggregation struct {
	Field       string       `json:"field"`
	Size        *int         `json:"size,omitempty"`
	ShardSize   *int         `json:"shard_size,omitempty"`
	MinDocCount *int         `json:"min_doc_count,omitempty"`
	Missing     *string      `json:"missing,omitempty"`
	Order       *scalars.Map `json:"order,omitempty"`
	Include     *string      `json:"include,omitempty"`
	Exclude     *string      `json:"exclude,omitempty"`
}

// NewTerms returns a terms aggregation on field with the engine defaults.
func NewTerms(field string) TermsAggregation {
	return TermsAggregation{Field: field}
}

// WithSize returns a copy returning at most size buckets.
func (a TermsAggregation) WithSize(size int) TermsAggregation {
	a.Size = ptr(size)
	return a
}

// WithMinDocCount returns a copy dropping buckets with fewer documents.
func (a TermsAggregation) WithMinDocCount(count int) TermsAggregation {
	a.MinDocCount = ptr(count)
	return a
}

// WithOrder returns a copy sorting buckets by the given order object,
// e.g. {"_count": "asc"}.
func (a TermsAggregation) WithOrder(order scalars.Map) TermsAggregation {
	a.Order = &order
	return a
}

// WithMissing returns a copy bucketing documents without a value under value.
func (a TermsAggregation) WithMissing(value string) TermsAggregation {
	a.Missing = ptr(value)
	return a
}

// NumericRange is one bucket of a range aggregation: From inclusive, To
// exclusive.
type NumericRange struct {
	Key  *string  `json:"key,omitempty"`
	From *float64 `json:"from,omitempty"`
	To   *float64 `json:"to,omitempty"`
}

// RangeAggregation builds one bucket per numeric range.
type RangeAggregation struct {
	Field   string         `json:"field"`
	Keyed   *bool          `json:"keyed,omitempty"`
	Missing *float64       `json:"missing,omitempty"`
	Ranges  []NumericRange `json:"ranges"`
}

// NewRange returns a range aggregation on field.
func NewRange(field string, ranges ...NumericRange) RangeAggregation {
	return RangeAggregation{Field: field, Ranges: ranges}
}

// MarshalJSON always emits ranges, as an empty array when unset.
func (a RangeAggregation) MarshalJSON() ([]byte, error) {
	type plain RangeAggregation
	p := plain(a)
	if p.Ranges == nil {
		p.Ranges = []NumericRange{}
	}
	return scalars.Marshal(p)
}

// Bounds limits a histogram to a value range.
type Bounds[T any] struct {
	Min *T `json:"min,omitempty"`
	Max *T `json:"max,omitempty"`
}

// DateHistogramAggregation buckets dates by a calendar or fixed interval.
type DateHistogramAggregation struct {
	Field            string          `json:"field"`
	CalendarInterval *string         `json:"calendar_interval,omitempty"`
	FixedInterval    *string         `json:"fixed_interval,omitempty"`
	Format           *string         `json:"format,omitempty"`
	TimeZone         *string         `json:"time_zone,omitempty"`
	Offset           *string         `json:"offset,omitempty"`
	MinDocCount      *int            `json:"min_doc_count,omitempty"`
	Missing          *string         `json:"missing,omitempty"`
	Keyed            *bool           `json:"keyed,omitempty"`
	ExtendedBounds   *Bounds[string] `json:"extended_bounds,omitempty"`
}

// NewDateHistogram returns a date histogram on field.
func NewDateHistogram(field string) DateHistogramAggregation {
	return DateHistogramAggregation{Field: field}
}

// WithCalendarInterval returns a copy bucketing by a calendar unit such as
// "1M" or "week".
func (a DateHistogramAggregation) WithCalendarInterval(interval string) DateHistogramAggregation {
	a.CalendarInterval = ptr(interval)
	return a
}

// WithFixedInterval returns a copy bucketing by a fixed duration such as "30m".
func (a DateHistogramAggregation) WithFixedInterval(interval string) DateHistogramAggregation {
	a.FixedInterval = ptr(interval)
	return a
}

// WithTimeZone returns a copy computing buckets in the given time zone.
func (a DateHistogramAggregation) WithTimeZone(tz string) DateHistogramAggregation {
	a.TimeZone = ptr(tz)
	return a
}

// WithFormat returns a copy formatting bucket keys with format.
func (a DateHistogramAggregation) WithFormat(format string) DateHistogramAggregation {
	a.Format = ptr(format)
	return a
}

// AutoDateHistogramAggregation picks the interval itself to return about
// Buckets buckets.
type AutoDateHistogramAggregation struct {
	Field           string  `json:"field"`
	Buckets         *int    `json:"buckets,omitempty"`
	Format          *string `json:"format,omitempty"`
	TimeZone        *string `json:"time_zone,omitempty"`
	MinimumInterval *string `json:"minimum_interval,omitempty"`
	Missing         *string `json:"missing,omitempty"`
}

// NewAutoDateHistogram returns an auto-interval date histogram on field.
func NewAutoDateHistogram(field string, buckets int) AutoDateHistogramAggregation {
	return AutoDateHistogramAggregation{Field: field, Buckets: ptr(buckets)}
}

// HistogramAggregation buckets numbers by a fixed interval.
type HistogramAggregation struct {
	Field          string           `json:"field"`
	Interval       float64          `json:"interval"`
	Offset         *float64         `json:"offset,omitempty"`
	MinDocCount    *int             `json:"min_doc_count,omitempty"`
	Missing        *float64         `json:"missing,omitempty"`
	Keyed          *bool            `json:"keyed,omitempty"`
	ExtendedBounds *Bounds[float64] `json:"extended_bounds,omitempty"`
}

// NewHistogram returns a histogram on field with the given interval.
func NewHistogram(field string, interval float64) HistogramAggregation {
	return HistogramAggregation{Field: field, Interval: interval}
}

// WithMinDocCount returns a copy dropping buckets with fewer documents.
func (a HistogramAggregation) WithMinDocCount(count int) HistogramAggregation {
	a.MinDocCount = ptr(count)
	return a
}

// WithExtendedBounds returns a copy forcing buckets between min and max.
func (a HistogramAggregation) WithExtendedBounds(min, max float64) HistogramAggregation {
	a.ExtendedBounds = &Bounds[float64]{Min: ptr(min), Max: ptr(max)}
	return a
}

// VariableWidthHistogram clusters values into at most Buckets buckets of
// varying width.
type VariableWidthHistogram struct {
	Field         string `json:"field"`
	Buckets       *int   `json:"buckets,omitempty"`
	ShardSize     *int   `json:"shard_size,omitempty"`
	InitialBuffer *int   `json:"initial_buffer,omitempty"`
}

// NewVariableWidthHistogram returns a variable width histogram on field.
func NewVariableWidthHistogram(field string, buckets int) VariableWidthHistogram {
	return VariableWidthHistogram{Field: field, Buckets: ptr(buckets)}
}

// NestedAggregation aggregates the nested documents found under Path.
type NestedAggregation struct {
	Path string `json:"path"`
}

// NewNested returns a nested aggregation over path.
func NewNested(path string) NestedAggregation {
	return NestedAggregation{Path: path}
}

// ReverseNestedAggregation joins back from nested documents to their parent
// (Path unset) or to an intermediate nested level.
type ReverseNestedAggregation struct {
	Path *string `json:"path,omitempty"`
}

func (FiltersAggregation) Kind() Kind           { return KindFilters }
func (TermsAggregation) Kind() Kind             { return KindTerms }
func (RangeAggregation) Kind() Kind             { return KindRange }
func (DateHistogramAggregation) Kind() Kind     { return KindDateHistogram }
func (AutoDateHistogramAggregation) Kind() Kind { return KindAutoDateHistogram }
func (HistogramAggregation) Kind() Kind         { return KindHistogram }
func (VariableWidthHistogram) Kind() Kind       { return KindVariableWidthHistogram }
func (NestedAggregation) Kind() Kind            { return KindNested }
func (ReverseNestedAggregation) Kind() Kind     { return KindReverseNested }

func (a FiltersAggregation) missing() []string {
	if a.Filters.IsEmpty() {
		return []string{"filters"}
	}
	return nil
}

func (a TermsAggregation) missing() []string             { return requireField(a.Field) }
func (a RangeAggregation) missing() []string             { return requireField(a.Field) }
func (a DateHistogramAggregation) missing() []string     { return requireField(a.Field) }
func (a AutoDateHistogramAggregation) missing() []string { return requireField(a.Field) }
func (a VariableWidthHistogram) missing() []string       { return requireField(a.Field) }

// missing treats a non-positive interval as unset.
func (a HistogramAggregation) missing() []string {
	keys := requireField(a.Field)
	if a.Interval <= 0 {
		keys = append(keys, "interval")
	}
	return keys
}

func (a NestedAggregation) missing() []string {
	if a.Path == "" {
		return []string{"path"}
	}
	return nil
}

func (FiltersAggregation) isVariant()           {}
func (TermsAggregation) isVariant()             {}
func (RangeAggregation) isVariant()             {}
func (DateHistogramAggregation) isVariant()     {}
func (AutoDateHistogramAggregation) isVariant() {}
func (HistogramAggregation) isVariant()         {}
func (VariableWidthHistogram) isVariant()       {}
func (NestedAggregation) isVariant()            {}
func (ReverseNestedAggregation) isVariant()     {}
