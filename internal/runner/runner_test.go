package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lox/internal/diag"
	"lox/internal/history"
	"lox/internal/util"
)

func newTestRunner(cfg util.Configuration) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cfg.SourceName = "test"
	return New(cfg, &out, &errOut), &out, &errOut
}

func TestRunOutcomes(t *testing.T) {
	tests := []struct {
		input   string
		outcome diag.Outcome
		stdout  string
		stderr  string
	}{
		{"print 1 + 2;", diag.Success, "3\n", ""},
		{"print 1 +;", diag.SyntaxFailure, "", "PARSE ERROR test(1) : at ';': Expect expression."},
		{"print \"ok\"; @", diag.SyntaxFailure, "", "SCAN ERROR test(1) : Unexpected character."},
		{"print \"a\";\nprint x;\nprint \"b\";", diag.RuntimeFailure, "a\n", "RUNTIME ERROR test(2) : Undefined variable 'x'."},
		{"return 1;", diag.SyntaxFailure, "", "Can't return from top-level code."},
	}

	for _, tt := range tests {
		r, out, errOut := newTestRunner(util.DefaultConfiguration())
		got := r.Run(context.Background(), tt.input)
		if got != tt.outcome {
			t.Errorf("%q: outcome = %s, want %s", tt.input, got, tt.outcome)
		}
		if out.String() != tt.stdout {
			t.Errorf("%q: stdout = %q, want %q", tt.input, out.String(), tt.stdout)
		}
		if tt.stderr == "" && errOut.Len() != 0 {
			t.Errorf("%q: unexpected stderr %q", tt.input, errOut.String())
		}
		if !strings.Contains(errOut.String(), tt.stderr) {
			t.Errorf("%q: stderr = %q, want it to contain %q", tt.input, errOut.String(), tt.stderr)
		}
	}
}

func TestRuntimeErrorReportedOnce(t *testing.T) {
	r, _, errOut := newTestRunner(util.DefaultConfiguration())
	r.Run(context.Background(), "fun f() { return nil + 1; }\nf();")
	if n := strings.Count(errOut.String(), "RUNTIME ERROR"); n != 1 {
		t.Errorf("runtime error reported %d times", n)
	}
	if r.Diagnostics().Len() != 1 {
		t.Errorf("expected one diagnostic, got %d", r.Diagnostics().Len())
	}
}

func TestStateSurvivesAcrossRuns(t *testing.T) {
	r, out, _ := newTestRunner(util.DefaultConfiguration())
	ctx := context.Background()

	if got := r.Run(ctx, "var a = 1;"); got != diag.Success {
		t.Fatalf("outcome = %s", got)
	}
	if got := r.Run(ctx, "print nope;"); got != diag.RuntimeFailure {
		t.Fatalf("outcome = %s", got)
	}
	// diagnostics are reset per run
	if got := r.Run(ctx, "print a;"); got != diag.Success {
		t.Fatalf("outcome = %s", got)
	}
	if out.String() != "1\n" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestPrintTokensAndDebugAST(t *testing.T) {
	cfg := util.DefaultConfiguration()
	cfg.PrintTokens = true
	cfg.DebugAST = "json"
	r, out, errOut := newTestRunner(cfg)

	if got := r.Run(context.Background(), "print 1;"); got != diag.Success {
		t.Fatalf("outcome = %s", got)
	}
	if out.String() != "1\n" {
		t.Errorf("stdout = %q", out.String())
	}
	for _, want := range []string{"PRINT print", "NUMBER 1 1", "EOF", "\"statements\""} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut.String())
		}
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lox")
	if err := os.WriteFile(path, []byte("print \"from file\";\nprint 1 < \"x\";"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, out, errOut := newTestRunner(util.DefaultConfiguration())
	got, err := r.RunFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if got != diag.RuntimeFailure {
		t.Errorf("outcome = %s", got)
	}
	if out.String() != "from file\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if !strings.Contains(errOut.String(), path+"(2) : Operands must be numbers.") {
		t.Errorf("stderr = %q", errOut.String())
	}

	if _, err := r.RunFile(context.Background(), filepath.Join(dir, "missing.lox")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestHistoryRecording(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	r, _, _ := newTestRunner(util.DefaultConfiguration())
	r.History = store
	r.Run(ctx, "print 1; print 2;")
	r.Run(ctx, "print missing;")

	runs, err := store.Recent(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Outcome != "runtime-error" || !strings.Contains(runs[0].Diagnostics, "Undefined variable 'missing'.") {
		t.Errorf("unexpected latest run %+v", runs[0])
	}
	if runs[0].Diagnostics != "test(1) : Undefined variable 'missing'." {
		t.Errorf("diagnostics = %q", runs[0].Diagnostics)
	}
	if runs[1].Outcome != "ok" || runs[1].OutputLines != 2 || runs[1].Source != "test" {
		t.Errorf("unexpected first run %+v", runs[1])
	}
}
