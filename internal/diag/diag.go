package diag

import (
	"fmt"
	"strings"

	"lox/internal/util"
)

type Kind int

const (
	ScanError Kind = iota
	ParseError
	RuntimeError
)

var kindNames = [...]string{"SCAN ERROR", "PARSE ERROR", "RUNTIME ERROR"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ERROR"
}

// Outcome is everything a driver needs to pick an exit status.
type Outcome int

const (
	Success Outcome = iota
	SyntaxFailure
	RuntimeFailure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "ok"
	case SyntaxFailure:
		return "syntax-error"
	case RuntimeFailure:
		return "runtime-error"
	default:
		return "unknown"
	}
}

type Diagnostic struct {
	Kind    Kind
	Source  string
	Line    int
	Where   string // "at end", "at 'x'" or empty
	Message string
}

func (d Diagnostic) String() string {
	msg := d.Message
	if d.Where != "" {
		msg = d.Where + ": " + msg
	}
	return fmt.Sprintf("%s(%d) : %s", d.Source, d.Line, msg)
}

// Diagnostics accumulates everything reported during one invocation. A fresh
// value (or Reset) is used per script run or per REPL line.
type Diagnostics struct {
	Source string
	items  []Diagnostic
}

func New(source string) *Diagnostics {
	return &Diagnostics{Source: source}
}

func (d *Diagnostics) add(kind Kind, line int, where, message string) {
	d.items = append(d.items, Diagnostic{
		Kind:    kind,
		Source:  d.Source,
		Line:    line,
		Where:   where,
		Message: message,
	})
}

func (d *Diagnostics) Scan(line int, message string) {
	d.add(ScanError, line, "", message)
}

func (d *Diagnostics) Parse(line int, where, message string) {
	d.add(ParseError, line, where, message)
}

func (d *Diagnostics) Runtime(line int, message string) {
	d.add(RuntimeError, line, "", message)
}

func (d *Diagnostics) Items() []Diagnostic {
	return d.items
}

func (d *Diagnostics) Len() int {
	return len(d.items)
}

func (d *Diagnostics) HadSyntaxError() bool {
	for _, it := range d.items {
		if it.Kind == ScanError || it.Kind == ParseError {
			return true
		}
	}
	return false
}

func (d *Diagnostics) HadRuntimeError() bool {
	for _, it := range d.items {
		if it.Kind == RuntimeError {
			return true
		}
	}
	return false
}

func (d *Diagnostics) Outcome() Outcome {
	switch {
	case d.HadSyntaxError():
		return SyntaxFailure
	case d.HadRuntimeError():
		return RuntimeFailure
	default:
		return Success
	}
}

func (d *Diagnostics) Reset() {
	d.items = nil
}

// Render formats one diagnostic followed by the offending source line.
func Render(d Diagnostic, src string) string {
	var out strings.Builder
	out.WriteString(d.Kind.String())
	out.WriteString(" ")
	out.WriteString(d.String())
	if excerpt := util.GetContextLines(src, d.Line); excerpt != "" {
		out.WriteString("\n")
		out.WriteString(excerpt)
	}
	return out.String()
}

// Summary joins every message on its own line, used for history records.
func (d *Diagnostics) Summary() string {
	lines := make([]string, len(d.items))
	for i, it := range d.items {
		lines[i] = it.String()
	}
	return strings.Join(lines, "\n")
}
