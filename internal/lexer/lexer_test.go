package lexer

import (
	"math"
	"strings"
	"testing"

	"lox/internal/diag"
	"lox/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var five = 5;
var ten = 10.25;

fun add(x, y) {
  print x + y;
}
!-/*5;
5 < 10 > 5 <= 6 >= 7;
if (5 != 10) {} else {}
// comment
10 == 10; // trailing comment
"foobar" "foo bar"
and class false for nil or return super this true while _under`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{token.VAR, "var", 1},
		{token.IDENT, "five", 1},
		{token.ASSIGN, "=", 1},
		{token.NUMBER, "5", 1},
		{token.SEMICOLON, ";", 1},
		{token.VAR, "var", 2},
		{token.IDENT, "ten", 2},
		{token.ASSIGN, "=", 2},
		{token.NUMBER, "10.25", 2},
		{token.SEMICOLON, ";", 2},
		{token.FUNCTION, "fun", 4},
		{token.IDENT, "add", 4},
		{token.LPAREN, "(", 4},
		{token.IDENT, "x", 4},
		{token.COMMA, ",", 4},
		{token.IDENT, "y", 4},
		{token.RPAREN, ")", 4},
		{token.LBRACE, "{", 4},
		{token.PRINT, "print", 5},
		{token.IDENT, "x", 5},
		{token.PLUS, "+", 5},
		{token.IDENT, "y", 5},
		{token.SEMICOLON, ";", 5},
		{token.RBRACE, "}", 6},
		{token.BANG, "!", 7},
		{token.MINUS, "-", 7},
		{token.SLASH, "/", 7},
		{token.ASTERISK, "*", 7},
		{token.NUMBER, "5", 7},
		{token.SEMICOLON, ";", 7},
		{token.NUMBER, "5", 8},
		{token.LT, "<", 8},
		{token.NUMBER, "10", 8},
		{token.GT, ">", 8},
		{token.NUMBER, "5", 8},
		{token.LT_EQ, "<=", 8},
		{token.NUMBER, "6", 8},
		{token.GT_EQ, ">=", 8},
		{token.NUMBER, "7", 8},
		{token.SEMICOLON, ";", 8},
		{token.IF, "if", 9},
		{token.LPAREN, "(", 9},
		{token.NUMBER, "5", 9},
		{token.NOT_EQ, "!=", 9},
		{token.NUMBER, "10", 9},
		{token.RPAREN, ")", 9},
		{token.LBRACE, "{", 9},
		{token.RBRACE, "}", 9},
		{token.ELSE, "else", 9},
		{token.LBRACE, "{", 9},
		{token.RBRACE, "}", 9},
		{token.NUMBER, "10", 11},
		{token.EQ, "==", 11},
		{token.NUMBER, "10", 11},
		{token.SEMICOLON, ";", 11},
		{token.STRING, `"foobar"`, 12},
		{token.STRING, `"foo bar"`, 12},
		{token.AND, "and", 13},
		{token.CLASS, "class", 13},
		{token.FALSE, "false", 13},
		{token.FOR, "for", 13},
		{token.NIL, "nil", 13},
		{token.OR, "or", 13},
		{token.RETURN, "return", 13},
		{token.SUPER, "super", 13},
		{token.THIS, "this", 13},
		{token.TRUE, "true", 13},
		{token.WHILE, "while", 13},
		{token.IDENT, "_under", 13},
		{token.EOF, "", 13},
	}

	diags := diag.New("test")
	tokens := New(input, diags).ScanTokens()
	if diags.Len() != 0 {
		t.Fatalf("unexpected scan errors: %v", diags.Items())
	}
	if len(tokens) != len(tests) {
		t.Fatalf("wrong token count. expected=%d, got=%d", len(tests), len(tokens))
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Lexeme != tt.expectedLiteral {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Lexeme)
		}
		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - line wrong. expected=%d, got=%d",
				i, tt.expectedLine, tok.Line)
		}
	}
}

func TestLiterals(t *testing.T) {
	tokens := New(`12.5 "hi there" 7`, diag.New("test")).ScanTokens()
	if v, ok := tokens[0].Literal.(float64); !ok || v != 12.5 {
		t.Errorf("expected 12.5, got %#v", tokens[0].Literal)
	}
	if v, ok := tokens[1].Literal.(string); !ok || v != "hi there" {
		t.Errorf("expected string payload, got %#v", tokens[1].Literal)
	}
	if v, ok := tokens[2].Literal.(float64); !ok || v != 7 {
		t.Errorf("expected 7, got %#v", tokens[2].Literal)
	}
}

func TestNumberDotRules(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.TokenType
	}{
		{"1.", []token.TokenType{token.NUMBER, token.PERIOD, token.EOF}},
		{".5", []token.TokenType{token.PERIOD, token.NUMBER, token.EOF}},
		{"1.2.3", []token.TokenType{token.NUMBER, token.PERIOD, token.NUMBER, token.EOF}},
	}
	for _, tt := range tests {
		tokens := New(tt.input, diag.New("test")).ScanTokens()
		if len(tokens) != len(tt.expected) {
			t.Fatalf("%q: expected %d tokens, got %v", tt.input, len(tt.expected), tokens)
		}
		for i, typ := range tt.expected {
			if tokens[i].Type != typ {
				t.Errorf("%q: token %d expected %q, got %q", tt.input, i, typ, tokens[i].Type)
			}
		}
	}
}

func TestMultiLineString(t *testing.T) {
	tokens := New("\"a\nb\"\nx", diag.New("test")).ScanTokens()
	if tokens[0].Type != token.STRING || tokens[0].Literal != "a\nb" {
		t.Fatalf("unexpected string token %v", tokens[0])
	}
	if tokens[1].Line != 3 {
		t.Errorf("embedded newline not counted, x on line %d", tokens[1].Line)
	}
}

func TestScanErrors(t *testing.T) {
	diags := diag.New("test")
	tokens := New("var a = 1; @ #\n\"open", diags).ScanTokens()

	items := diags.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 scan errors, got %d: %v", len(items), items)
	}
	for _, want := range []struct {
		line int
		msg  string
	}{{1, "Unexpected character."}, {1, "Unexpected character."}, {2, "Unterminated string."}} {
		found := false
		for _, it := range items {
			if it.Line == want.line && it.Message == want.msg && it.Kind == diag.ScanError {
				found = true
			}
		}
		if !found {
			t.Errorf("missing diagnostic %v in %v", want, items)
		}
	}

	// var a = 1 ; EOF -- the bad characters and the unterminated string produce no tokens
	if len(tokens) != 6 || tokens[len(tokens)-1].Type != token.EOF {
		t.Errorf("unexpected tokens %v", tokens)
	}
	if !diags.HadSyntaxError() {
		t.Errorf("scan errors must count as syntax errors")
	}
}

func TestNonASCIIReportedOncePerCharacter(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"print 1 é 2;", 1},
		{"var π = 3;", 1},
		{"é€", 2},
		{"\xff", 1},
	}
	for _, tt := range tests {
		diags := diag.New("test")
		New(tt.input, diags).ScanTokens()
		if diags.Len() != tt.expected {
			t.Errorf("%q: expected %d scan errors, got %d: %v", tt.input, tt.expected, diags.Len(), diags.Items())
		}
	}
}

func TestHugeNumberLiteral(t *testing.T) {
	diags := diag.New("test")
	src := "1" + strings.Repeat("0", 400)
	tokens := New(src, diags).ScanTokens()
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics %v", diags.Items())
	}
	if len(tokens) != 2 || tokens[0].Type != token.NUMBER {
		t.Fatalf("unexpected tokens %v", tokens)
	}
	if v, ok := tokens[0].Literal.(float64); !ok || !math.IsInf(v, 1) {
		t.Errorf("expected +Inf literal, got %v", tokens[0].Literal)
	}
}
