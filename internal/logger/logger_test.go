package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTruncateForLog(t *testing.T) {
	if got := TruncateForLog("  hello world  ", 5); got != "hello..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateForLog("short", 10); got != "short" {
		t.Fatalf("expected untouched string, got %q", got)
	}
	if got := TruncateForLog("anything", 0); got != "" {
		t.Fatalf("expected empty string for zero limit, got %q", got)
	}
	if got := TruncateForLog("héllo wörld", 4); got != "héll..." {
		t.Fatalf("expected rune-aware truncation, got %q", got)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("expected no-op logger for nil input")
	}

	core, observed := observer.New(zapcore.InfoLevel)
	l := zap.New(core)
	OrNop(l).Info("kept", zap.String(FieldStage, "extract"))

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ContextMap()[FieldStage] != "extract" {
		t.Fatalf("expected stage field, got %v", entries[0].ContextMap())
	}
}

func TestNewBuildsLogger(t *testing.T) {
	l, err := New(true, true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level enabled")
	}

	l, err = New(false, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level disabled")
	}
}
