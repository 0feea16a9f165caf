package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("unexpected level for %q: got=%s want=%s", raw, got, want)
		}
	}
}

func TestLogger_WritesKeyValueFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).Named("scheduler").With("job_id", "fetch_schedule")

	logger.WarnContext(context.Background(), "job attempt failed", "attempt", 2, "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("unexpected entry count: got=%d want=1", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != "scheduler" {
		t.Fatalf("unexpected logger name: %s", entry.LoggerName)
	}
	fields := entry.ContextMap()
	if fields["job_id"] != "fetch_schedule" {
		t.Fatalf("missing job_id field: %v", fields)
	}
	if fields["attempt"] != int64(2) {
		t.Fatalf("unexpected attempt field: %v", fields["attempt"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", fields["error"])
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("no panic")
	if logger.Named("x") == nil {
		t.Fatalf("expected nop logger from nil receiver")
	}
}

func TestNew_WritesJSONWithBaseFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf, Fields: []any{"service", "esports-sync"}})

	logger.Info("dropped below level")
	logger.Warn("feed degraded", "league_id", "98767991302996019")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("unexpected line count: got=%d want=1", len(lines))
	}
	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["msg"] != "feed degraded" || entry["level"] != "WARN" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["service"] != "esports-sync" || entry["league_id"] != "98767991302996019" {
		t.Fatalf("missing fields: %v", entry)
	}
}

func TestLogger_Enabled(t *testing.T) {
	t.Parallel()

	logger := New(Options{Level: LevelInfo, Output: &bytes.Buffer{}})
	if logger.Enabled(LevelDebug) {
		t.Fatalf("debug should be disabled at info level")
	}
	if !logger.Named("scheduler").Enabled(LevelError) {
		t.Fatalf("error should be enabled at info level")
	}
}
