// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/aggregation"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
)

// Service is the aggregation-svc service interface. Its shapes follow the
// API design in the design package.
type Service interface {
	// Run a list of aggregation trees and return their results keyed by name.
	QueryAggregations(context.Context, *QueryAggregationsPayload) (*QueryAggregationsResult, error)
	// Check if the service is able to take inbound requests.
	Readyz(context.Context) ([]byte, error)
	// Check if the service is alive.
	Livez(context.Context) ([]byte, error)
}

// QueryAggregationsPayload is the payload type of the query-aggregations method.
type QueryAggregationsPayload struct {
	// Index to aggregate over; defaults to the configured index
	Index *string `json:"index,omitempty"`
	// Engine query restricting the aggregated documents
	Query *scalars.Map `json:"query,omitempty"`
	// Aggregation trees, run in order
	Aggregations []*aggregation.Input `json:"aggregations"`
}

// QueryAggregationsResult is the result type of the query-aggregations method.
type QueryAggregationsResult struct {
	// Results keyed by aggregation name
	Aggregations scalars.Map `json:"aggregations"`
	// Number of documents matching the query
	Total int `json:"total"`
	// Engine time in milliseconds
	Took int `json:"took"`
}

// BadRequestError is returned when the request is malformed or breaks an
// aggregation rule.
type BadRequestError struct {
	Message string `json:"message"`
}

// InternalServerError is returned when the server failed unexpectedly.
type InternalServerError struct {
	Message string `json:"message"`
}

// ServiceUnavailableError is returned when the search engine is unavailable.
type ServiceUnavailableError struct {
	Message string `json:"message"`
}

// Error returns an error description.
func (e *BadRequestError) Error() string { return e.Message }

// Error returns an error description.
func (e *InternalServerError) Error() string { return e.Message }

// Error returns an error description.
func (e *ServiceUnavailableError) Error() string { return e.Message }
