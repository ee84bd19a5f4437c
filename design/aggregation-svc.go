// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package design

import (
	"goa.design/goa/v3/dsl"
)

const (
	aggregationPkg = "github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/aggregation"
	scalarsPkg     = "github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
)

var _ = dsl.API("lfx-v2-aggregation-service", func() {
	dsl.Title("LFX V2 - Aggregation Service")
	dsl.Description("Run analytic aggregations over indexed resources")
})

var _ = dsl.Service("aggregation-svc", func() {
	dsl.Description("The aggregation service validates aggregation trees and runs them against the search engine.")

	dsl.Error("BadRequest", BadRequestError, "Bad request")
	dsl.Error("InternalServerError", InternalServerError, "Internal server error")
	dsl.Error("ServiceUnavailable", ServiceUnavailableError, "Service unavailable")

	dsl.Method("query-aggregations", func() {
		dsl.Description("Run a list of aggregation trees, optionally restricted by a query, and return their results keyed by name.")

		dsl.Payload(func() {
			dsl.Attribute("index", dsl.String, "Index to aggregate over; defaults to the configured index", func() {
				dsl.Example("resources")
				dsl.MinLength(1)
			})
			dsl.Attribute("query", dsl.MapOf(dsl.String, dsl.Any), "Engine query restricting the aggregated documents", func() {
				dsl.Example(map[string]any{"term": map[string]any{"object_type": "committee"}})
				dsl.Meta("struct:field:type", "*scalars.Map", scalarsPkg)
			})
			dsl.Attribute("aggregations", dsl.ArrayOf(AggregationInput), "Aggregation trees, run in order", func() {
				dsl.MinLength(1)
				dsl.Meta("struct:field:type", "[]*aggregation.Input", aggregationPkg)
			})
			dsl.Required("aggregations")
		})

		dsl.Result(func() {
			dsl.Attribute("aggregations", dsl.MapOf(dsl.String, dsl.Any), "Results keyed by aggregation name", func() {
				dsl.Example(map[string]any{"avg_price": map[string]any{"value": 12.5}})
				dsl.Meta("struct:field:type", "scalars.Map", scalarsPkg)
			})
			dsl.Attribute("total", dsl.Int, "Number of documents matching the query", func() {
				dsl.Example(42)
			})
			dsl.Attribute("took", dsl.Int, "Engine time in milliseconds", func() {
				dsl.Example(3)
			})
			dsl.Required("aggregations", "total", "took")
		})

		dsl.HTTP(func() {
			dsl.POST("/query/aggregations")
			dsl.Response(dsl.StatusOK)
			dsl.Response("BadRequest", dsl.StatusBadRequest)
			dsl.Response("InternalServerError", dsl.StatusInternalServerError)
			dsl.Response("ServiceUnavailable", dsl.StatusServiceUnavailable)
		})
	})

	dsl.Method("readyz", func() {
		dsl.Description("Check if the service is able to take inbound requests.")
		dsl.Meta("swagger:generate", "false")
		dsl.Result(dsl.Bytes, func() {
			dsl.Example("OK")
		})
		dsl.HTTP(func() {
			dsl.GET("/readyz")
			dsl.Response(dsl.StatusOK, func() {
				dsl.ContentType("text/plain")
			})
			dsl.Response("ServiceUnavailable", dsl.StatusServiceUnavailable)
		})
	})

	dsl.Method("livez", func() {
		dsl.Description("Check if the service is alive.")
		dsl.Meta("swagger:generate", "false")
		dsl.Result(dsl.Bytes, func() {
			dsl.Example("OK")
		})
		dsl.HTTP(func() {
			dsl.GET("/livez")
			dsl.Response(dsl.StatusOK, func() {
				dsl.ContentType("text/plain")
			})
		})
	})
})
