package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lox/internal/diag"
)

func TestSinkReport(t *testing.T) {
	src := "var a = 1;\nprint a\nprint b;"
	ds := diag.New("main.lox")
	ds.Parse(3, "at 'print'", "Expect ';' after value.")
	ds.Runtime(1, "Undefined variable 'b'.")

	var buf bytes.Buffer
	sink := NewSink(&buf, true)
	sink.ReportAll(ds, src)

	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("color must be disabled for non-terminal writers")
	}
	expected := []string{
		"PARSE ERROR main.lox(3) : at 'print': Expect ';' after value.",
		"  >    3 | print b;",
		"RUNTIME ERROR main.lox(1) : Undefined variable 'b'.",
		"  >    1 | var a = 1;",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Index(out, "PARSE ERROR") > strings.Index(out, "RUNTIME ERROR") {
		t.Errorf("diagnostics out of order")
	}
}

func TestFileReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lox.log")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.Write([]byte("one\n")); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(path, path+".bak"); err != nil {
		t.Fatal(err)
	}
	if err := f.Reopen(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("two\n")); err != nil {
		t.Fatal(err)
	}

	rotated, _ := os.ReadFile(path + ".bak")
	current, _ := os.ReadFile(path)
	if string(rotated) != "one\n" || string(current) != "two\n" {
		t.Errorf("rotated=%q current=%q", rotated, current)
	}
}
