// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"

	goa "goa.design/goa/v3/pkg"
)

// Endpoints wraps the aggregation-svc service methods so middleware such as
// payload logging can be applied independently of the transport.
type Endpoints struct {
	QueryAggregations goa.Endpoint
	Readyz            goa.Endpoint
	Livez             goa.Endpoint
}

// NewEndpoints wraps the methods of the aggregation-svc service with endpoints.
func NewEndpoints(s Service) *Endpoints {
	return &Endpoints{
		QueryAggregations: NewQueryAggregationsEndpoint(s),
		Readyz:            NewReadyzEndpoint(s),
		Livez:             NewLivezEndpoint(s),
	}
}

// Use applies the given middleware to all the aggregation-svc endpoints.
func (e *Endpoints) Use(m func(goa.Endpoint) goa.Endpoint) {
	e.QueryAggregations = m(e.QueryAggregations)
	e.Readyz = m(e.Readyz)
	e.Livez = m(e.Livez)
}

// NewQueryAggregationsEndpoint returns an endpoint function that calls the
// method "query-aggregations" of service "aggregation-svc".
func NewQueryAggregationsEndpoint(s Service) goa.Endpoint {
	return func(ctx context.Context, req any) (any, error) {
		p := req.(*QueryAggregationsPayload)
		return s.QueryAggregations(ctx, p)
	}
}

// NewReadyzEndpoint returns an endpoint function that calls the method
// "readyz" of service "aggregation-svc".
func NewReadyzEndpoint(s Service) goa.Endpoint {
	return func(ctx context.Context, req any) (any, error) {
		return s.Readyz(ctx)
	}
}

// NewLivezEndpoint returns an endpoint function that calls the method "livez"
// of service "aggregation-svc".
func NewLivezEndpoint(s Service) goa.Endpoint {
	return func(ctx context.Context, req any) (any, error) {
		return s.Livez(ctx)
	}
}
