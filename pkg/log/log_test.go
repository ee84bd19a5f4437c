// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug", input: "debug", expected: slog.LevelDebug},
		{name: "info", input: "info", expected: slog.LevelInfo},
		{name: "warn", input: "warn", expected: slog.LevelWarn},
		{name: "error", input: "error", expected: slog.LevelError},
		{name: "upper case", input: "WARN", expected: slog.LevelWarn},
		{name: "empty falls back to debug", input: "", expected: slog.LevelDebug},
		{name: "unknown falls back to debug", input: "verbose", expected: slog.LevelDebug},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertion.Equal(tc.expected, ParseLevel(tc.input))
		})
	}
}

func TestHandlerAddsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo, false))

	ctx := AppendCtx(context.Background(), slog.String("X-REQUEST-ID", "req-1"))
	ctx = AppendCtx(ctx, slog.String("index", "resources"))

	logger.DebugContext(ctx, "filtered out")
	logger.With("component", "test").InfoContext(ctx, "aggregation search")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &record))
	assert.Equal(t, "aggregation search", record["msg"])
	assert.Equal(t, "req-1", record["X-REQUEST-ID"])
	assert.Equal(t, "resources", record["index"])
	assert.Equal(t, "test", record["component"])
}

func TestAppendCtxDoesNotShareAttributes(t *testing.T) {
	parent := AppendCtx(context.Background(), slog.String("a", "1"))
	left := AppendCtx(parent, slog.String("b", "2"))
	right := AppendCtx(parent, slog.String("c", "3"))

	assert.Len(t, parent.Value(slogFields), 1)
	assert.Equal(t, "b", left.Value(slogFields).([]slog.Attr)[1].Key)
	assert.Equal(t, "c", right.Value(slogFields).([]slog.Attr)[1].Key)
}
