// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/aggregation"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"

	"github.com/prometheus/client_golang/prometheus"
)

var aggregationKindsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "aggregation_service",
		Name:      "aggregation_kinds_total",
		Help:      "Number of requested aggregations by kind",
	},
	[]string{"kind", "category"},
)

func init() {
	prometheus.MustRegister(aggregationKindsTotal)
}

// AggregationSearcher defines the interface for aggregation operations
// This abstraction allows different search implementations (OpenSearch, etc.)
// without the domain layer knowing about specific implementations
type AggregationSearcher interface {
	// QueryAggregations validates and runs the aggregations of the criteria
	QueryAggregations(ctx context.Context, criteria model.AggregationCriteria) (*model.AggregationResult, error)

	// IsReady checks if the search service is ready
	IsReady(ctx context.Context) error
}

// AggregationSearch handles aggregation-related business operations
// It depends on abstractions (interfaces) rather than concrete implementations
type AggregationSearch struct {
	aggregationSearcher port.AggregationSearcher
}

// QueryAggregations performs the aggregation request with business logic validation
func (s *AggregationSearch) QueryAggregations(ctx context.Context, criteria model.AggregationCriteria) (*model.AggregationResult, error) {

	slog.DebugContext(ctx, "starting aggregation search",
		"index", criteria.Index,
		"aggregations", len(criteria.Aggregations),
	)

	if err := s.validateCriteria(ctx, criteria); err != nil {
		slog.With("error", err).ErrorContext(ctx, "aggregation criteria validation failed")
		return nil, err
	}

	s.recordKinds(criteria.Aggregations)

	// Delegate to the search implementation
	result, err := s.aggregationSearcher.Aggregate(ctx, criteria)
	if err != nil {
		slog.ErrorContext(ctx, "search operation failed while executing aggregations",
			"error", err,
		)
		return nil, fmt.Errorf("aggregation operation failed: %w", err)
	}

	// Results of skipped aggregations are computed (siblings may reference
	// them) but not returned.
	if skipped := skippedNames(criteria.Aggregations); len(skipped) > 0 {
		slog.DebugContext(ctx, "removing skipped aggregation results",
			"skipped", skipped,
		)
		result.Aggregations = result.Aggregations.Without(skipped...)
	}

	return result, nil
}

// IsReady checks if the underlying searcher is ready
func (s *AggregationSearch) IsReady(ctx context.Context) error {
	return s.aggregationSearcher.IsReady(ctx)
}

// validateCriteria validates the aggregation criteria according to business rules
func (s *AggregationSearch) validateCriteria(ctx context.Context, criteria model.AggregationCriteria) error {
	if len(criteria.Aggregations) == 0 {
		return errors.NewValidation("at least one aggregation must be provided")
	}

	for _, root := range criteria.Aggregations {
		if err := root.Validate(); err != nil {
			return err
		}

		if depth := root.Depth(); depth > constants.MaxAggregationDepth {
			return errors.NewValidation(fmt.Sprintf("aggregation %q is nested %d levels deep, the maximum is %d",
				root.Name, depth, constants.MaxAggregationDepth))
		}

		var nameErr error
		root.Walk(func(_ int, node aggregation.Node) bool {
			if nameErr != nil {
				return false
			}
			if node.Name == "" {
				nameErr = errors.NewValidation(fmt.Sprintf("an aggregation of kind %s has no name", node.Kind()))
				return false
			}
			warnDuplicateNames(ctx, node.Name, node.Children)
			return true
		})
		if nameErr != nil {
			return nameErr
		}
	}
	warnDuplicateNames(ctx, "", criteria.Aggregations)

	for _, root := range criteria.Aggregations {
		if root.Kind().Category() == aggregation.CategoryPipeline {
			// the engine rejects these outside of a multi-bucket parent
			slog.WarnContext(ctx, "pipeline aggregation at the top level",
				"name", root.Name,
				"kind", root.Kind(),
			)
		}
	}

	return nil
}

// warnDuplicateNames logs siblings sharing a name; the engine keeps only the
// last of them.
func warnDuplicateNames(ctx context.Context, parent string, siblings []aggregation.Node) {
	seen := make(map[string]struct{}, len(siblings))
	for _, node := range siblings {
		if _, ok := seen[node.Name]; ok {
			slog.WarnContext(ctx, "duplicate aggregation name among siblings",
				"parent", parent,
				"name", node.Name,
			)
			continue
		}
		seen[node.Name] = struct{}{}
	}
}

func (s *AggregationSearch) recordKinds(roots []aggregation.Node) {
	for _, root := range roots {
		root.Walk(func(_ int, node aggregation.Node) bool {
			kind := node.Kind()
			aggregationKindsTotal.WithLabelValues(string(kind), kind.Category().String()).Inc()
			return true
		})
	}
}

// skippedNames returns the names of the top-level aggregations whose
// metadata asks to leave them out of the response
func skippedNames(roots []aggregation.Node) []string {
	var names []string
	for _, root := range roots {
		if root.Skipped() {
			names = append(names, root.Name)
		}
	}
	return names
}

// NewAggregationSearch creates a new AggregationSearch instance
func NewAggregationSearch(aggregationSearcher port.AggregationSearcher) AggregationSearcher {
	return &AggregationSearch{
		aggregationSearcher: aggregationSearcher,
	}
}
