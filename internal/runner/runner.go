package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"lox/internal/diag"
	"lox/internal/evaluator"
	"lox/internal/history"
	"lox/internal/lexer"
	"lox/internal/log"
	"lox/internal/object"
	"lox/internal/parser"
	"lox/internal/util"
)

// Runner drives one source unit at a time through scan, parse and
// evaluation. A Runner keeps one evaluator, so successive Run calls share
// the global frame; that is what the REPL relies on.
type Runner struct {
	Config util.Configuration
	// History, when set, receives one row per Run.
	History *history.Store

	eval   *evaluator.Evaluator
	out    *lineCounter
	errOut io.Writer
	sink   *log.Sink
	diags  *diag.Diagnostics
}

func New(cfg util.Configuration, out, errOut io.Writer) *Runner {
	counter := &lineCounter{w: out}
	return &Runner{
		Config: cfg,
		eval:   evaluator.New(counter),
		out:    counter,
		errOut: errOut,
		sink:   log.NewSink(errOut, cfg.Color),
		diags:  diag.New(sourceName(cfg)),
	}
}

func sourceName(cfg util.Configuration) string {
	if cfg.SourceName == "" {
		return "repl"
	}
	return cfg.SourceName
}

// Diagnostics returns what the most recent Run reported.
func (r *Runner) Diagnostics() *diag.Diagnostics {
	return r.diags
}

// RunFile reads path and runs it as one unit. A read failure is returned as
// an error and nothing is executed.
func (r *Runner) RunFile(ctx context.Context, path string) (diag.Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("failed to read source", slog.String("path", path), slog.Any("error", err))
		return diag.SyntaxFailure, fmt.Errorf("could not read %q: %w", path, err)
	}
	r.Config.SourceName = path
	r.diags.Source = path
	return r.Run(ctx, string(data)), nil
}

// Run scans, parses and, when no syntax error was reported, executes
// source. Every diagnostic is written to the error stream before Run
// returns.
func (r *Runner) Run(ctx context.Context, source string) diag.Outcome {
	started := time.Now()
	r.diags.Reset()
	r.out.lines = 0

	tokens := lexer.New(source, r.diags).ScanTokens()
	if r.Config.PrintTokens {
		for _, tok := range tokens {
			fmt.Fprintln(r.errOut, tok.String())
		}
	}

	program := parser.New(tokens, r.diags).ParseProgram()
	slog.Debug("parsed program",
		slog.String("source", r.diags.Source),
		slog.Int("tokens", len(tokens)),
		slog.Int("statements", len(program.Statements)))

	if r.diags.HadSyntaxError() {
		r.finish(ctx, source, started)
		return diag.SyntaxFailure
	}

	if r.Config.DebugAST != "" {
		if err := parser.DumpAST(r.errOut, program, r.Config.DebugAST); err != nil {
			slog.Warn("failed to dump ast", slog.Any("error", err))
		}
	}

	if err := r.eval.Interpret(program); err != nil {
		var rtErr *object.RuntimeError
		if errors.As(err, &rtErr) {
			r.diags.Runtime(rtErr.Token.Line, rtErr.Message)
		} else {
			r.diags.Runtime(0, err.Error())
		}
	}

	r.finish(ctx, source, started)
	return r.diags.Outcome()
}

func (r *Runner) finish(ctx context.Context, source string, started time.Time) {
	r.sink.ReportAll(r.diags, source)
	if r.History == nil {
		return
	}

	_, err := r.History.Record(ctx, history.Run{
		Source:      r.diags.Source,
		StartedAt:   started,
		Outcome:     r.diags.Outcome().String(),
		Diagnostics: r.diags.Summary(),
		OutputLines: r.out.lines,
	})
	if err != nil {
		slog.Warn("failed to record run", slog.Any("error", err))
	}
}

type lineCounter struct {
	w     io.Writer
	lines int
}

func (c *lineCounter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	for _, b := range p[:n] {
		if b == '\n' {
			c.lines++
		}
	}
	return n, err
}
