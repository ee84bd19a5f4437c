// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/aggregation"
)

// payloadToCriteria converts the payload to domain aggregation criteria. Each
// input tree goes through the adapter, so a node that does not set exactly
// one kind rejects the whole request.
func (s *aggregationSvcsrvc) payloadToCriteria(ctx context.Context, p *QueryAggregationsPayload) (model.AggregationCriteria, error) {

	criteria := model.AggregationCriteria{
		Query:        p.Query,
		Aggregations: make([]aggregation.Node, 0, len(p.Aggregations)),
	}
	if p.Index != nil {
		criteria.Index = *p.Index
	}

	for _, in := range p.Aggregations {
		node, err := in.Node()
		if err != nil {
			return criteria, err
		}
		criteria.Aggregations = append(criteria.Aggregations, node)
	}

	slog.DebugContext(ctx, "converted payload to criteria",
		"index", criteria.Index,
		"has_query", criteria.Query != nil,
		"aggregations", len(criteria.Aggregations),
	)

	return criteria, nil
}

// domainResultToResponse converts the domain aggregation result to the response
func (s *aggregationSvcsrvc) domainResultToResponse(result *model.AggregationResult) *QueryAggregationsResult {
	return &QueryAggregationsResult{
		Aggregations: result.Aggregations,
		Total:        result.Total,
		Took:         result.Took,
	}
}
