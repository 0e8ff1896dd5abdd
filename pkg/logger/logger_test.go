package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"PayPalReconciler/pkg/correlation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}

	for raw, expected := range testCases {
		assert.Equal(t, expected, ParseLevel(raw), raw)
	}
}

func TestCorrelationHandler(t *testing.T) {
	// given
	var buf bytes.Buffer
	l := slog.New(NewCorrelationHandler(slog.NewJSONHandler(&buf, nil)))
	ctx := correlation.WithEventID(correlation.WithID(context.Background(), "corr-1"), "WH-1")

	// when
	l.InfoContext(ctx, "dispatched")

	// then
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "corr-1", record["correlation_id"])
	assert.Equal(t, "WH-1", record["paypal_event_id"])
}

func TestCorrelationHandler_NoIDs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewCorrelationHandler(slog.NewJSONHandler(&buf, nil)))

	l.Info("plain")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.NotContains(t, record, "correlation_id")
	assert.NotContains(t, record, "paypal_event_id")
}
