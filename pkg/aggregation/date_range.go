// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggregation

import "github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"

// DateRangeAggregation is a range aggregation dedicated to date values. The
// bounds of each range may be date math expressions such as "now-1d", and
// Format controls how the from/to of each bucket is returned.
type DateRangeAggregation struct {
	Field string `json:"field"`

	TimeZone *string `json:"time_zone,omitempty"`

	// How the returned dates should be formatted.
	Format *string `json:"format,omitempty"`

	// Documents missing a value are ignored by default; Missing makes the
	// engine treat them as if they had this value.
	Missing *string `json:"missing,omitempty"`

	Ranges []DateRange `json:"ranges"`
}

// DateRange is one bucket of a date range aggregation. Both bounds are opaque
// date math strings; an unset bound is open.
type DateRange struct {
	From *string `json:"from,omitempty"`
	To   *string `json:"to,omitempty"`
}

// NewDateRange returns a date range aggregation on field.
func NewDateRange(field string, ranges ...DateRange) DateRangeAggregation {
	return DateRangeAggregation{Field: field, Ranges: ranges}
}

// Between returns a closed date range.
func Between(from, to string) DateRange {
	return DateRange{From: ptr(from), To: ptr(to)}
}

// Since returns a range open on the upper side.
func Since(from string) DateRange {
	return DateRange{From: ptr(from)}
}

// Until returns a range open on the lower side.
func Until(to string) DateRange {
	return DateRange{To: ptr(to)}
}

// WithTimeZone returns a copy evaluating bounds in tz.
func (a DateRangeAggregation) WithTimeZone(tz string) DateRangeAggregation {
	a.TimeZone = ptr(tz)
	return a
}

// WithFormat returns a copy formatting returned dates with format.
func (a DateRangeAggregation) WithFormat(format string) DateRangeAggregation {
	a.Format = ptr(format)
	return a
}

// WithMissing returns a copy treating documents without a date as value.
func (a DateRangeAggregation) WithMissing(value string) DateRangeAggregation {
	a.Missing = ptr(value)
	return a
}

// MarshalJSON always emits ranges, as an empty array when unset.
func (a DateRangeAggregation) MarshalJSON() ([]byte, error) {
	type plain DateRangeAggregation
	p := plain(a)
	if p.Ranges == nil {
		p.Ranges = []DateRange{}
	}
	return scalars.Marshal(p)
}

func (a DateRangeAggregation) missing() []string { return requireField(a.Field) }

func (DateRangeAggregation) Kind() Kind { return KindDateRange }
func (DateRangeAggregation) isVariant() {}
