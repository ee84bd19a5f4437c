// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"

	goahttp "goa.design/goa/v3/http"
	goa "goa.design/goa/v3/pkg"
)

const (
	// QueryAggregationsPath is the route of the query-aggregations method.
	QueryAggregationsPath = "/query/aggregations"
	// ReadyzPath is the route of the readyz method.
	ReadyzPath = "/readyz"
	// LivezPath is the route of the livez method.
	LivezPath = "/livez"
)

// Server lists the aggregation-svc service endpoint HTTP handlers.
type Server struct {
	Mounts            []*MountPoint
	QueryAggregations http.Handler
	Readyz            http.Handler
	Livez             http.Handler
}

// MountPoint holds information about the mounted endpoints.
type MountPoint struct {
	// Method is the name of the service method served by the mounted HTTP handler.
	Method string
	// Verb is the HTTP method used to match requests to the mounted handler.
	Verb string
	// Pattern is the HTTP request path pattern used to match requests to the
	// mounted handler.
	Pattern string
}

// NewServer instantiates HTTP handlers for all the aggregation-svc service
// endpoints using the provided encoder and decoder. errhandler is called
// whenever a response fails to be encoded.
func NewServer(
	e *Endpoints,
	mux goahttp.Muxer,
	decoder func(*http.Request) goahttp.Decoder,
	encoder func(context.Context, http.ResponseWriter) goahttp.Encoder,
	errhandler func(context.Context, http.ResponseWriter, error),
) *Server {
	return &Server{
		Mounts: []*MountPoint{
			{"QueryAggregations", "POST", QueryAggregationsPath},
			{"Readyz", "GET", ReadyzPath},
			{"Livez", "GET", LivezPath},
		},
		QueryAggregations: newQueryAggregationsHandler(e.QueryAggregations, decoder, encoder, errhandler),
		Readyz:            newTextHandler(e.Readyz, encoder, errhandler),
		Livez:             newTextHandler(e.Livez, encoder, errhandler),
	}
}

// Routes returns the patterns of the mounted endpoints.
func (s *Server) Routes() []string {
	routes := make([]string, 0, len(s.Mounts))
	for _, m := range s.Mounts {
		routes = append(routes, m.Pattern)
	}
	return routes
}

// Mount configures the mux to serve the aggregation-svc endpoints.
func Mount(mux goahttp.Muxer, h *Server) {
	mux.Handle("POST", QueryAggregationsPath, h.QueryAggregations.ServeHTTP)
	mux.Handle("GET", ReadyzPath, h.Readyz.ServeHTTP)
	mux.Handle("GET", LivezPath, h.Livez.ServeHTTP)
}

func newQueryAggregationsHandler(
	endpoint goa.Endpoint,
	decoder func(*http.Request) goahttp.Decoder,
	encoder func(context.Context, http.ResponseWriter) goahttp.Encoder,
	errhandler func(context.Context, http.ResponseWriter, error),
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), goahttp.AcceptTypeKey, r.Header.Get("Accept"))

		payload, err := decodeQueryAggregationsRequest(r, decoder)
		if err != nil {
			encodeError(ctx, w, wrapError(ctx, err), encoder, errhandler)
			return
		}

		res, err := endpoint(ctx, payload)
		if err != nil {
			encodeError(ctx, w, err, encoder, errhandler)
			return
		}

		enc := encoder(ctx, w)
		w.WriteHeader(http.StatusOK)
		if err := enc.Encode(res); err != nil {
			errhandler(ctx, w, err)
		}
	})
}

func decodeQueryAggregationsRequest(r *http.Request, decoder func(*http.Request) goahttp.Decoder) (*QueryAggregationsPayload, error) {
	var payload QueryAggregationsPayload
	if err := decoder(r).Decode(&payload); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewValidation("missing request body")
		}
		return nil, errors.NewParse("failed to decode request body", err)
	}
	if err := validateQueryAggregationsPayload(&payload); err != nil {
		return nil, errors.NewValidation("invalid request body", err)
	}
	return &payload, nil
}

// validateQueryAggregationsPayload runs the attribute validations declared
// on the query-aggregations payload. The rules on aggregation trees are
// checked by the service.
func validateQueryAggregationsPayload(p *QueryAggregationsPayload) (err error) {
	if p.Index != nil {
		if n := utf8.RuneCountInString(*p.Index); n < 1 {
			err = goa.MergeErrors(err, goa.InvalidLengthError("body.index", *p.Index, n, 1, true))
		}
	}
	return err
}

// newTextHandler serves a method whose result is a plain text body. Any
// failure is reported as not ready.
func newTextHandler(
	endpoint goa.Endpoint,
	encoder func(context.Context, http.ResponseWriter) goahttp.Encoder,
	errhandler func(context.Context, http.ResponseWriter, error),
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		res, err := endpoint(ctx, nil)
		if err != nil {
			var unavailable *ServiceUnavailableError
			if !stderrors.As(err, &unavailable) {
				err = &ServiceUnavailableError{Message: err.Error()}
			}
			encodeError(ctx, w, err, encoder, errhandler)
			return
		}

		ctx = context.WithValue(ctx, goahttp.ContentTypeKey, "text/plain")
		enc := encoder(ctx, w)
		w.WriteHeader(http.StatusOK)
		if err := enc.Encode(res); err != nil {
			errhandler(ctx, w, err)
		}
	})
}

// encodeError writes err with the status of its type. Errors that did not go
// through wrapError are reported as internal server errors.
func encodeError(
	ctx context.Context,
	w http.ResponseWriter,
	err error,
	encoder func(context.Context, http.ResponseWriter) goahttp.Encoder,
	errhandler func(context.Context, http.ResponseWriter, error),
) {
	switch err.(type) {
	case *BadRequestError, *ServiceUnavailableError, *InternalServerError:
	default:
		err = &InternalServerError{Message: err.Error()}
	}

	enc := encoder(ctx, w)
	w.WriteHeader(statusCode(err))
	if encErr := enc.Encode(err); encErr != nil {
		errhandler(ctx, w, encErr)
	}
}
