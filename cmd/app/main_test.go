package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"lox/internal/diag"
	"lox/internal/history"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		outcome  diag.Outcome
		expected int
	}{
		{diag.Success, ExitOK},
		{diag.SyntaxFailure, ExitDataErr},
		{diag.RuntimeFailure, ExitSoftware},
	}
	for _, tt := range tests {
		if got := exitCode(tt.outcome); got != tt.expected {
			t.Errorf("exitCode(%s) = %d, want %d", tt.outcome, got, tt.expected)
		}
	}
}

func TestLogLevelFromString(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		if got := logLevelFromString(tt.in); got != tt.expected {
			t.Errorf("logLevelFromString(%q) = %v", tt.in, got)
		}
	}
	if logLevelFromString("none") <= slog.LevelError {
		t.Errorf("none must silence error logs")
	}
}

func TestPrintRecentRuns(t *testing.T) {
	ctx := context.Background()
	if got := printRecentRuns(ctx, "", 5); got != ExitUsage {
		t.Errorf("missing dsn: exit = %d, want %d", got, ExitUsage)
	}

	dsn := filepath.Join(t.TempDir(), "runs.db")
	store, err := history.Open(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, history.Run{Source: "main.lox", Outcome: "ok"}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	if got := printRecentRuns(ctx, dsn, 5); got != ExitOK {
		t.Errorf("exit = %d, want %d", got, ExitOK)
	}
	if got := printRecentRuns(ctx, "redis://localhost", 5); got != ExitSoftware {
		t.Errorf("bad dsn: exit = %d, want %d", got, ExitSoftware)
	}
}
