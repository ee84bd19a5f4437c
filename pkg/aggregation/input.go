// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggregation

import (
	"reflect"
	"strings"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
)

// Input is an aggregation as received at the API boundary, where the
// one-of choice of kind cannot be expressed: every kind is an optional field
// and Node checks that exactly one is set.
//
// Payload types are shared with Node, so only this struct duplicates the
// catalog. The json tag of every payload field must equal the Kind of its
// type.
type Input struct {
	Name string `json:"name"`

	Avg                     *Avg                          `json:"avg,omitempty"`
	WeightedAvg             *WeightedAverage              `json:"weighted_avg,omitempty"`
	Cardinality             *Cardinality                  `json:"cardinality,omitempty"`
	Max                     *Max                          `json:"max,omitempty"`
	Min                     *Min                          `json:"min,omitempty"`
	MedianAbsoluteDeviation *MedianAbsoluteDeviation      `json:"median_absolute_deviation,omitempty"`
	Percentiles             *Percentiles                  `json:"percentiles,omitempty"`
	PercentileRanks         *PercentileRanks              `json:"percentile_ranks,omitempty"`
	Stats                   *Stats                        `json:"stats,omitempty"`
	ExtendedStats           *ExtendedStats                `json:"extended_stats,omitempty"`
	Sum                     *Sum                          `json:"sum,omitempty"`
	ValueCount              *ValueCount                   `json:"value_count,omitempty"`
	Filters                 *FiltersAggregation           `json:"filters,omitempty"`
	Terms                   *TermsAggregation             `json:"terms,omitempty"`
	Range                   *RangeAggregation             `json:"range,omitempty"`
	DateRange               *DateRangeAggregation         `json:"date_range,omitempty"`
	DateHistogram           *DateHistogramAggregation     `json:"date_histogram,omitempty"`
	AutoDateHistogram       *AutoDateHistogramAggregation `json:"auto_date_histogram,omitempty"`
	Histogram               *HistogramAggregation         `json:"histogram,omitempty"`
	VariableWidthHistogram  *VariableWidthHistogram       `json:"variable_width_histogram,omitempty"`
	BucketScript            *BucketScript                 `json:"bucket_script,omitempty"`
	BucketSelector          *BucketSelector               `json:"bucket_selector,omitempty"`
	BucketSort              *BucketSort                   `json:"bucket_sort,omitempty"`
	Nested                  *NestedAggregation            `json:"nested,omitempty"`
	ReverseNested           *ReverseNestedAggregation     `json:"reverse_nested,omitempty"`

	Metadata     *scalars.Map `json:"metadata,omitempty"`
	Aggregations []*Input     `json:"aggregations,omitempty"`
}

// variantField locates the Input field holding one kind.
type variantField struct {
	index int
	tag   string
	typ   reflect.Type
}

var variantType = reflect.TypeOf((*Variant)(nil)).Elem()

var (
	inputFields []variantField
	inputByKind map[Kind]variantField
)

func init() {
	inputFields, inputByKind = indexInput(reflect.TypeOf(Input{}))
}

// indexInput collects the payload fields of Input, keyed by the Kind of
// their element type.
func indexInput(t reflect.Type) ([]variantField, map[Kind]variantField) {
	var fields []variantField
	byKind := make(map[Kind]variantField)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() != reflect.Pointer || !f.Type.Elem().Implements(variantType) {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		vf := variantField{index: i, tag: tag, typ: f.Type.Elem()}
		kind := reflect.Zero(vf.typ).Interface().(Variant).Kind()
		fields = append(fields, vf)
		byKind[kind] = vf
	}
	return fields, byKind
}

// variants returns the payloads set on in, in field order.
func (in *Input) variants() []Variant {
	rv := reflect.ValueOf(in).Elem()
	var out []Variant
	for _, f := range inputFields {
		fv := rv.Field(f.index)
		if fv.IsNil() {
			continue
		}
		out = append(out, fv.Elem().Interface().(Variant))
	}
	return out
}

// setVariant stores v in the field of its kind.
func (in *Input) setVariant(v Variant) bool {
	f, ok := inputByKind[v.Kind()]
	if !ok {
		return false
	}
	val := reflect.New(f.typ)
	val.Elem().Set(reflect.ValueOf(v))
	reflect.ValueOf(in).Elem().Field(f.index).Set(val)
	return true
}
