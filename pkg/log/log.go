// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

type ctxKey string

const (
	slogFields      ctxKey = "slog_fields"
	logLevelDefault        = slog.LevelDebug

	debug    = "debug"
	info     = "info"
	warn     = "warn"
	errLevel = "error"
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the context handler in front of the derived handler.
func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the context handler in front of the derived handler.
func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	existing, _ := parent.Value(slogFields).([]slog.Attr)

	// Copy so sibling contexts never share a backing array
	attrs := make([]slog.Attr, 0, len(existing)+1)
	attrs = append(attrs, existing...)
	attrs = append(attrs, attr)
	return context.WithValue(parent, slogFields, attrs)
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown or empty values
// fall back to debug.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case debug:
		return slog.LevelDebug
	case info:
		return slog.LevelInfo
	case warn:
		return slog.LevelWarn
	case errLevel:
		return slog.LevelError
	default:
		return logLevelDefault
	}
}

// NewHandler returns the JSON handler used by the service, writing to w and
// carrying the attributes stored with AppendCtx.
func NewHandler(w io.Writer, level slog.Level, addSource bool) slog.Handler {
	return contextHandler{slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	})}
}

// InitStructureLogConfig sets the structured log behavior from LOG_LEVEL and
// LOG_ADD_SOURCE
func InitStructureLogConfig() {
	level := ParseLevel(os.Getenv("LOG_LEVEL"))
	addSource := os.Getenv("LOG_ADD_SOURCE") == "true"

	log.SetFlags(log.Llongfile)
	slog.SetDefault(slog.New(NewHandler(os.Stdout, level, addSource)))

	slog.Info("log config",
		"logLevel", level.String(),
		"LOG_ADD_SOURCE", addSource,
	)
}
