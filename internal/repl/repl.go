package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"lox/internal/runner"
)

const (
	PROMPT  = ">>> "
	GOODBYE = "Goodbye!"
)

// LineReader is the part of liner.State the loop needs.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Start runs the interactive loop on the terminal, loading and saving line
// history at historyFile when it is not empty.
func Start(ctx context.Context, r *runner.Runner, out io.Writer, historyFile string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(historyFile)
			if err != nil {
				slog.Warn("could not save repl history", slog.String("path", historyFile), slog.Any("error", err))
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	return Loop(ctx, r, ln, out)
}

// Loop feeds one line at a time to r until the reader reports EOF or an
// abort. Errors on a line never end the loop.
func Loop(ctx context.Context, r *runner.Runner, in LineReader, out io.Writer) error {
	fmt.Fprintf(out, "Lox %s\n", r.Config.Version)
	fmt.Fprintln(out, "Press Ctrl+D to exit.")

	for {
		line, err := in.Prompt(PROMPT)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out)
				fmt.Fprintln(out, GOODBYE)
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		in.AppendHistory(line)

		outcome := r.Run(ctx, line)
		slog.Debug("repl line", slog.String("outcome", outcome.String()))
	}
}
