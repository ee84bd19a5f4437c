// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/aggregation"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
)

// MockAggregationSearcher is a mock implementation of AggregationSearcher for testing
// It answers every aggregation with an empty result shaped after its kind, as
// the engine does for an index without matching documents.
type MockAggregationSearcher struct {
	aggregateResponse *model.AggregationResult
	aggregateError    error
	isReadyError      error

	lastCriteria *model.AggregationCriteria
}

// NewMockAggregationSearcher creates a new mock aggregation searcher
func NewMockAggregationSearcher() *MockAggregationSearcher {
	return &MockAggregationSearcher{}
}

// Aggregate implements the AggregationSearcher interface with mock data
func (m *MockAggregationSearcher) Aggregate(ctx context.Context, criteria model.AggregationCriteria) (*model.AggregationResult, error) {
	slog.DebugContext(ctx, "executing mock aggregation",
		"index", criteria.Index,
		"aggregations", len(criteria.Aggregations),
	)

	m.lastCriteria = &criteria

	if m.aggregateError != nil {
		return nil, m.aggregateError
	}
	if m.aggregateResponse != nil {
		return m.aggregateResponse, nil
	}

	results, err := emptyResults(criteria.Aggregations)
	if err != nil {
		return nil, err
	}
	return &model.AggregationResult{
		Aggregations: results,
	}, nil
}

// IsReady implements the AggregationSearcher interface (always ready for mock)
func (m *MockAggregationSearcher) IsReady(ctx context.Context) error {
	return m.isReadyError
}

// emptyResults builds the result object of nodes over zero documents
func emptyResults(nodes []aggregation.Node) (scalars.Map, error) {
	pairs := make([]scalars.Pair, 0, len(nodes))
	for _, node := range nodes {
		result, err := emptyResult(node)
		if err != nil {
			return scalars.Map{}, err
		}
		pairs = append(pairs, scalars.Pair{Key: node.Name, Value: result})
	}
	return scalars.FromPairs(pairs...)
}

func emptyResult(node aggregation.Node) (scalars.Map, error) {
	switch node.Kind() {
	case aggregation.KindNested, aggregation.KindReverseNested:
		// single bucket: sub-aggregation results sit next to doc_count
		pairs := []scalars.Pair{{Key: "doc_count", Value: 0}}
		for _, child := range node.Children {
			result, err := emptyResult(child)
			if err != nil {
				return scalars.Map{}, err
			}
			pairs = append(pairs, scalars.Pair{Key: child.Name, Value: result})
		}
		return scalars.FromPairs(pairs...)
	case aggregation.KindStats, aggregation.KindExtendedStats:
		return scalars.FromPairs(
			scalars.Pair{Key: "count", Value: 0},
			scalars.Pair{Key: "min", Value: nil},
			scalars.Pair{Key: "max", Value: nil},
			scalars.Pair{Key: "avg", Value: nil},
			scalars.Pair{Key: "sum", Value: 0},
		)
	case aggregation.KindPercentiles, aggregation.KindPercentileRanks:
		return scalars.FromPairs(scalars.Pair{Key: "values", Value: map[string]any{}})
	}

	if node.Kind().Category() == aggregation.CategoryBucket {
		return scalars.FromPairs(scalars.Pair{Key: "buckets", Value: []any{}})
	}
	return scalars.FromPairs(scalars.Pair{Key: "value", Value: nil})
}

// LastCriteria returns the criteria of the last Aggregate call
func (m *MockAggregationSearcher) LastCriteria() *model.AggregationCriteria {
	return m.lastCriteria
}

// SetAggregateResponse sets a canned response for Aggregate
func (m *MockAggregationSearcher) SetAggregateResponse(response *model.AggregationResult) {
	m.aggregateResponse = response
}

// SetAggregateError sets the error returned by Aggregate
func (m *MockAggregationSearcher) SetAggregateError(err error) {
	m.aggregateError = err
}

// SetIsReadyError sets the error returned by IsReady
func (m *MockAggregationSearcher) SetIsReadyError(err error) {
	m.isReadyError = err
}
