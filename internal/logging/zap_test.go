package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core))

	ctx := context.Background()
	logger.Info(ctx, "info msg", "k", "v")
	logger.Warn(ctx, "warn msg")
	logger.Error(ctx, "error msg")

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "info msg" || entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if got := entries[0].ContextMap()["k"]; got != "v" {
		t.Fatalf("field not logged: %v", entries[0].ContextMap())
	}
	if entries[1].Level != zapcore.WarnLevel || entries[2].Level != zapcore.ErrorLevel {
		t.Fatalf("unexpected levels: %v %v", entries[1].Level, entries[2].Level)
	}
}

func TestZapLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core)).With("module", "test")

	logger.Info(context.Background(), "msg")

	if got := logs.All()[0].ContextMap()["module"]; got != "test" {
		t.Fatalf("With field missing: %v", logs.All()[0].ContextMap())
	}
}
