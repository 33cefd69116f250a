package diag

import "testing"

func TestRender(t *testing.T) {
	src := "var a = 1;\nvar b = 2;\nprint c;"
	tests := []struct {
		d        Diagnostic
		expected string
	}{
		{
			Diagnostic{Kind: RuntimeError, Source: "main.lox", Line: 3, Message: "Undefined variable 'c'."},
			"RUNTIME ERROR main.lox(3) : Undefined variable 'c'.\n" +
				"       1 | var a = 1;\n" +
				"       2 | var b = 2;\n" +
				"  >    3 | print c;",
		},
		{
			Diagnostic{Kind: ParseError, Source: "main.lox", Line: 1, Where: "at 'var'", Message: "Expect expression."},
			"PARSE ERROR main.lox(1) : at 'var': Expect expression.\n" +
				"  >    1 | var a = 1;",
		},
		{
			Diagnostic{Kind: ScanError, Source: "main.lox", Line: 9, Message: "Unexpected character."},
			"SCAN ERROR main.lox(9) : Unexpected character.",
		},
	}
	for _, tt := range tests {
		if got := Render(tt.d, src); got != tt.expected {
			t.Errorf("Render() =\n%s\nwant:\n%s", got, tt.expected)
		}
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		report   func(d *Diagnostics)
		expected Outcome
	}{
		{func(d *Diagnostics) {}, Success},
		{func(d *Diagnostics) { d.Runtime(2, "boom") }, RuntimeFailure},
		{func(d *Diagnostics) { d.Scan(1, "Unexpected character.") }, SyntaxFailure},
		{func(d *Diagnostics) {
			d.Runtime(2, "boom")
			d.Parse(1, "at end", "Expect ';' after value.")
		}, SyntaxFailure},
	}
	for i, tt := range tests {
		d := New("test")
		tt.report(d)
		if got := d.Outcome(); got != tt.expected {
			t.Errorf("case %d: Outcome() = %s, want %s", i, got, tt.expected)
		}
		d.Reset()
		if d.Len() != 0 || d.Outcome() != Success {
			t.Errorf("case %d: Reset did not clear diagnostics", i)
		}
	}
}

func TestSummary(t *testing.T) {
	d := New("repl")
	d.Parse(1, "at ';'", "Expect expression.")
	d.Runtime(4, "Operands must be numbers.")
	expected := "repl(1) : at ';': Expect expression.\nrepl(4) : Operands must be numbers."
	if got := d.Summary(); got != expected {
		t.Errorf("Summary() = %q", got)
	}
}
