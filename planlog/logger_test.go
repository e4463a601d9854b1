package planlog_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sasplan/fdplanner/planlog"
)

func newObservedLogger(level zapcore.Level) (*planlog.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return planlog.FromCore(core), logs
}

func TestTimedCarriesElapsedAndMemoryFields(t *testing.T) {
	l, logs := newObservedLogger(zapcore.InfoLevel)
	l.Timed().Infow("level completed", "level", 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	entry := entries[0]
	require.Equal(t, "level completed", entry.Message)

	fieldNames := map[string]bool{}
	for _, f := range entry.Context {
		fieldNames[f.Key] = true
	}
	require.True(t, fieldNames["elapsed"])
	require.True(t, fieldNames["peak_memory_kb"])
	require.True(t, fieldNames["level"])
}

func TestTimedSuppressedBelowConfiguredLevel(t *testing.T) {
	l, logs := newObservedLogger(zapcore.InfoLevel)
	l.Timed().Debugw("should not appear")
	require.Len(t, logs.All(), 0)
}

func TestWithAttachesPersistentFields(t *testing.T) {
	l, logs := newObservedLogger(zapcore.InfoLevel)
	scoped := l.With("engine", "best_first")
	scoped.Timed().Infow("step")

	entries := logs.All()
	require.Len(t, entries, 1)
	found := false
	for _, f := range entries[0].Context {
		if f.Key == "engine" && f.String == "best_first" {
			found = true
		}
	}
	require.True(t, found)
}
