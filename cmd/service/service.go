// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/domain/port"
	usecase "github.com/linuxfoundation/lfx-v2-aggregation-service/internal/service"
)

// aggregation-svc service implementation using clean architecture.
type aggregationSvcsrvc struct {
	aggregationService usecase.AggregationSearcher
}

// Run a list of aggregation trees, optionally restricted by a query, and
// return their results keyed by name.
func (s *aggregationSvcsrvc) QueryAggregations(ctx context.Context, p *QueryAggregationsPayload) (res *QueryAggregationsResult, err error) {

	slog.DebugContext(ctx, "aggregationSvc.query-aggregations",
		"index", p.Index,
		"aggregations", len(p.Aggregations),
	)

	// Convert payload to domain criteria
	criteria, errCriteria := s.payloadToCriteria(ctx, p)
	if errCriteria != nil {
		slog.ErrorContext(ctx, "failed to convert payload to criteria", "error", errCriteria)
		return nil, wrapError(ctx, errCriteria)
	}

	// Execute aggregations using the service layer
	result, errQueryAggregations := s.aggregationService.QueryAggregations(ctx, criteria)
	if errQueryAggregations != nil {
		return nil, wrapError(ctx, errQueryAggregations)
	}

	// Convert domain result to response
	res = s.domainResultToResponse(result)
	return res, nil
}

// Check if the service is able to take inbound requests.
func (s *aggregationSvcsrvc) Readyz(ctx context.Context) (res []byte, err error) {
	errIsReady := s.aggregationService.IsReady(ctx)
	if errIsReady != nil {
		slog.ErrorContext(ctx, "aggregationSvc.readyz failed", "error", errIsReady)
		return nil, wrapError(ctx, errIsReady)
	}
	return []byte("OK\n"), nil
}

// Check if the service is alive.
func (s *aggregationSvcsrvc) Livez(ctx context.Context) (res []byte, err error) {
	// This always returns as long as the service is still running. As this
	// endpoint is expected to be used as a Kubernetes liveness check, this
	// service must likewise self-detect non-recoverable errors and
	// self-terminate.
	return []byte("OK\n"), nil
}

// NewAggregationSvc returns the aggregation-svc service implementation.
func NewAggregationSvc(aggregationSearcher port.AggregationSearcher) Service {
	return &aggregationSvcsrvc{
		aggregationService: usecase.NewAggregationSearch(aggregationSearcher),
	}
}
