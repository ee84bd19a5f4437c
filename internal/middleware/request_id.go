// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/log"

	"github.com/google/uuid"
)

// requestIDKey is the context key holding the request ID
type requestIDKey struct{}

// RequestIDMiddleware creates a middleware that adds a request ID to the context
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := string(constants.RequestIDHeader)

			// Reuse the caller's request ID so traces span services
			requestID := r.Header.Get(header)
			if requestID == "" {
				requestID = generateRequestID()
			}

			w.Header().Set(header, requestID)

			ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)

			// Every slog record written with this context carries the request ID
			ctx = log.AppendCtx(ctx, slog.String(header, requestID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the request ID stored by RequestIDMiddleware,
// or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// generateRequestID generates a new unique request ID
func generateRequestID() string {
	return uuid.New().String()
}
