// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/aggregation"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
)

// AggregationCriteria encapsulates an aggregation request
type AggregationCriteria struct {
	// Index to aggregate over; the searcher default is used when empty
	Index string
	// Query restricting the documents to aggregate, passed through untouched
	Query *scalars.Map
	// Aggregations to compute, in request order
	Aggregations []aggregation.Node
}

// AggregationResult contains the engine output of an aggregation request
type AggregationResult struct {
	// Aggregations results keyed by aggregation name, in request order
	Aggregations scalars.Map
	// Total number of documents matched by the query
	Total int
	// Took is the engine processing time in milliseconds
	Took int
}
