// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LogConfig{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	ctx := WithRequestID(context.Background(), "req-1")
	logger.Info(ctx, "ingested", zap.Int("documents", 3))
	logger.Debug(ctx, "hidden")
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "ingested", entry["msg"])
	assert.Equal(t, "req-1", entry["request.id"])
	assert.EqualValues(t, 3, entry["documents"])
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestLogger_Levels(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "warn", Output: &bytes.Buffer{}})
	require.NoError(t, err)

	assert.False(t, logger.Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Enabled(zapcore.ErrorLevel))
}

func TestLogger_NamedAndWith(t *testing.T) {
	tl := NewTestLogger()

	child := tl.Named("ingest").With(zap.String("component", "pipeline"))
	child.Info(context.Background(), "child message")

	entries := tl.FilterMessage("child message").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ingest", entries[0].LoggerName)
	assert.Equal(t, "pipeline", entries[0].ContextMap()["component"])
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
	assert.Nil(t, ContextFields(context.Background()))

	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestIDFromContext(ctx))
}

func TestStandardObserver_StartTiming(t *testing.T) {
	tl := NewTestLogger()
	obs := NewStandardObserver(tl.Logger)

	done := obs.StartTiming(context.Background(), "classifier", "classify", "profile.txt")
	done(true, map[string]interface{}{"type": "profile"})

	failed := obs.StartTiming(context.Background(), "loader", "load", "bad.pdf")
	failed(false, nil)

	tl.AssertLogged(t, zapcore.DebugLevel, "operation completed")
	tl.AssertLogged(t, zapcore.WarnLevel, "operation failed")

	entries := tl.FilterMessage("operation completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "classifier", fields["component"])
	assert.Equal(t, "profile.txt", fields["target"])
	assert.Equal(t, true, fields["success"])
}

func TestStandardObserver_NilLogger(t *testing.T) {
	obs := NewStandardObserver(nil)
	assert.NotPanics(t, func() {
		obs.StartTiming(context.Background(), "c", "op", "")(true, nil)
	})
}
