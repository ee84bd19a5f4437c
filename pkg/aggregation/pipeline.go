// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggregation

import "github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"

// GapPolicy tells a pipeline aggregation what to do with buckets that have no
// value for a path.
type GapPolicy string

const (
	// GapPolicySkip ignores buckets with a missing value.
	GapPolicySkip GapPolicy = "skip"
	// GapPolicyInsertZeros uses zero for a missing value.
	GapPolicyInsertZeros GapPolicy = "insert_zeros"
	// GapPolicyKeepValues is like GapPolicyInsertZeros but keeps non-null
	// values computed from missing inputs.
	GapPolicyKeepValues GapPolicy = "keep_values"
)

// BucketScript runs Script once per parent bucket over the metrics named in
// BucketsPath (script variable => buckets path).
type BucketScript struct {
	BucketsPath scalars.Map `json:"buckets_path"`
	Script      string      `json:"script"`
	GapPolicy   *GapPolicy  `json:"gap_policy,omitempty"`
	Format      *string     `json:"format,omitempty"`
}

// NewBucketScript returns a bucket script over paths.
func NewBucketScript(paths scalars.Map, script string) BucketScript {
	return BucketScript{BucketsPath: paths, Script: script}
}

// WithGapPolicy returns a copy using policy for missing values.
func (a BucketScript) WithGapPolicy(policy GapPolicy) BucketScript {
	a.GapPolicy = &policy
	return a
}

// BucketSelector keeps the parent buckets for which Script evaluates to true.
type BucketSelector struct {
	BucketsPath scalars.Map `json:"buckets_path"`
	Script      string      `json:"script"`
	GapPolicy   *GapPolicy  `json:"gap_policy,omitempty"`
}

// NewBucketSelector returns a bucket selector over paths.
func NewBucketSelector(paths scalars.Map, script string) BucketSelector {
	return BucketSelector{BucketsPath: paths, Script: script}
}

// WithGapPolicy returns a copy using policy for missing values.
func (a BucketSelector) WithGapPolicy(policy GapPolicy) BucketSelector {
	a.GapPolicy = &policy
	return a
}

// BucketSort sorts and truncates the buckets of its parent. Each Sort entry
// is a sort object such as {"total": {"order": "desc"}}.
type BucketSort struct {
	Sort      []scalars.Map `json:"sort"`
	From      *int          `json:"from,omitempty"`
	Size      *int          `json:"size,omitempty"`
	GapPolicy *GapPolicy    `json:"gap_policy,omitempty"`
}

// NewBucketSort returns a bucket sort ordering by sort.
func NewBucketSort(sort ...scalars.Map) BucketSort {
	return BucketSort{Sort: sort}
}

// WithPage returns a copy keeping size buckets starting at from.
func (a BucketSort) WithPage(from, size int) BucketSort {
	a.From = ptr(from)
	a.Size = ptr(size)
	return a
}

// MarshalJSON always emits sort, as an empty array when unset.
func (a BucketSort) MarshalJSON() ([]byte, error) {
	type plain BucketSort
	p := plain(a)
	if p.Sort == nil {
		p.Sort = []scalars.Map{}
	}
	return scalars.Marshal(p)
}

func (a BucketScript) missing() []string   { return requireScript(a.BucketsPath, a.Script) }
func (a BucketSelector) missing() []string { return requireScript(a.BucketsPath, a.Script) }

func requireScript(paths scalars.Map, script string) []string {
	var keys []string
	if paths.IsEmpty() {
		keys = append(keys, "buckets_path")
	}
	if script == "" {
		keys = append(keys, "script")
	}
	return keys
}

func (BucketScript) Kind() Kind   { return KindBucketScript }
func (BucketSelector) Kind() Kind { return KindBucketSelector }
func (BucketSort) Kind() Kind     { return KindBucketSort }

func (BucketScript) isVariant()   {}
func (BucketSelector) isVariant() {}
func (BucketSort) isVariant()     {}
