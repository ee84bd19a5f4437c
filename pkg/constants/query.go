// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// SkipMetadataKey is the reserved aggregation metadata key whose boolean
	// value asks for the aggregation to be computed but left out of results.
	SkipMetadataKey = "_skip"

	// DefaultIndex is the index searched when a request does not name one.
	DefaultIndex = "resources"

	// MaxAggregationDepth bounds the nesting accepted from callers.
	MaxAggregationDepth = 16
)
