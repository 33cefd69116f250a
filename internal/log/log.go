package log

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"lox/internal/diag"
)

var kindColors = [...]string{
	"\033[33m", // Yellow: scan
	"\033[35m", // Magenta: parse
	"\033[31m", // Red: runtime
}

const (
	dimColor   = "\033[90m"
	resetColor = "\033[0m"
)

// Sink writes diagnostics to the error stream, one block per diagnostic,
// followed by the offending source lines.
type Sink struct {
	out   io.Writer
	color bool
	mu    sync.Mutex
}

// NewSink colors output only when asked to and when out is a terminal.
func NewSink(out io.Writer, color bool) *Sink {
	return &Sink{
		out:   out,
		color: color && isTerminal(out),
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		fi, err := f.Stat()
		if err != nil {
			return false
		}
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func (s *Sink) Report(d diag.Diagnostic, src string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := diag.Render(d, src)
	if s.color {
		color := dimColor
		if int(d.Kind) < len(kindColors) {
			color = kindColors[d.Kind]
		}
		text = color + text + resetColor
	}
	fmt.Fprintln(s.out, text)
}

// ReportAll writes every accumulated diagnostic in the order reported.
func (s *Sink) ReportAll(ds *diag.Diagnostics, src string) {
	for _, d := range ds.Items() {
		s.Report(d, src)
	}
}

// File is an append-only log file that reopens itself on SIGHUP so that
// external rotation works:
//
//	mv lox.log lox.bak && kill -HUP <pid>
type File struct {
	path string
	fh   *os.File
	mu   sync.Mutex
	sigs chan os.Signal
}

func OpenFile(path string) (*File, error) {
	fh, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	f := &File{path: path, fh: fh, sigs: make(chan os.Signal, 1)}
	signal.Notify(f.sigs, syscall.SIGHUP)
	go func() {
		for range f.sigs {
			if err := f.Reopen(); err != nil {
				fmt.Fprintf(os.Stderr, "could not reopen log file: %v\n", err)
			}
		}
	}()
	return f, nil
}

func (f *File) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fh.Write(p)
}

func (f *File) Reopen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_ = f.fh.Close()
	f.fh = fh
	return nil
}

func (f *File) Close() error {
	signal.Stop(f.sigs)
	close(f.sigs)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fh.Close()
}
