package lexer

import (
	"errors"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"lox/internal/diag"
	"lox/internal/token"
)

// Lexer turns source text into tokens in a single left-to-right pass.
// Errors are reported to diags and scanning carries on.
type Lexer struct {
	input   string
	start   int // first byte of the lexeme being scanned
	current int // byte about to be consumed
	line    int
	tokens  []token.Token
	diags   *diag.Diagnostics
}

func New(input string, diags *diag.Diagnostics) *Lexer {
	return &Lexer{input: input, line: 1, diags: diags}
}

// ScanTokens scans the whole input. The result always ends with a single EOF token.
func (l *Lexer) ScanTokens() []token.Token {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.tokens = append(l.tokens, token.Token{Type: token.EOF, Lexeme: "", Line: l.line})
	slog.Debug("scanned tokens", slog.Int("count", len(l.tokens)), slog.Int("lines", l.line))
	return l.tokens
}

func (l *Lexer) scanToken() {
	ch := l.readChar()
	switch ch {
	case '(':
		l.addToken(token.LPAREN)
	case ')':
		l.addToken(token.RPAREN)
	case '{':
		l.addToken(token.LBRACE)
	case '}':
		l.addToken(token.RBRACE)
	case ',':
		l.addToken(token.COMMA)
	case '.':
		l.addToken(token.PERIOD)
	case '-':
		l.addToken(token.MINUS)
	case '+':
		l.addToken(token.PLUS)
	case ';':
		l.addToken(token.SEMICOLON)
	case '*':
		l.addToken(token.ASTERISK)
	case '!':
		l.handleCompoundToken(token.BANG, '=', token.NOT_EQ)
	case '=':
		l.handleCompoundToken(token.ASSIGN, '=', token.EQ)
	case '<':
		l.handleCompoundToken(token.LT, '=', token.LT_EQ)
	case '>':
		l.handleCompoundToken(token.GT, '=', token.GT_EQ)
	case '/':
		if l.match('/') {
			l.skipToLineEnd()
		} else {
			l.addToken(token.SLASH)
		}
	case ' ', '\r', '\t':
	case '\n':
		l.line++
	case '"':
		l.readString()
	default:
		switch {
		case isDigit(ch):
			l.readNumber()
		case isLetter(ch):
			l.readIdentifier()
		default:
			// one report per character, not per byte
			_, size := utf8.DecodeRuneInString(l.input[l.start:])
			l.current = l.start + size
			l.diags.Scan(l.line, "Unexpected character.")
		}
	}
}

func (l *Lexer) handleCompoundToken(t token.TokenType, ch1 byte, t1 token.TokenType) {
	if l.match(ch1) {
		l.addToken(t1)
	} else {
		l.addToken(t)
	}
}

func (l *Lexer) skipToLineEnd() {
	for l.peekChar() != '\n' && !l.isAtEnd() {
		l.readChar()
	}
}

// readString consumes through the closing quote. No escape processing.
func (l *Lexer) readString() {
	for l.peekChar() != '"' && !l.isAtEnd() {
		if l.peekChar() == '\n' {
			l.line++
		}
		l.readChar()
	}
	if l.isAtEnd() {
		l.diags.Scan(l.line, "Unterminated string.")
		return
	}
	l.readChar() // the closing "
	l.addLiteral(token.STRING, l.input[l.start+1:l.current-1])
}

// readNumber accepts digits with an optional fraction; "1." and ".5" are not numbers.
func (l *Lexer) readNumber() {
	for isDigit(l.peekChar()) {
		l.readChar()
	}
	if l.peekChar() == '.' && isDigit(l.peekTwoChars()) {
		l.readChar() // consume '.'
		for isDigit(l.peekChar()) {
			l.readChar()
		}
	}
	text := l.input[l.start:l.current]
	// out-of-range literals keep the ±Inf ParseFloat returns
	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		l.diags.Scan(l.line, "Invalid number literal.")
		return
	}
	l.addLiteral(token.NUMBER, value)
}

func (l *Lexer) readIdentifier() {
	for isLetter(l.peekChar()) || isDigit(l.peekChar()) {
		l.readChar()
	}
	l.addToken(token.LookupIdent(l.input[l.start:l.current]))
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.input)
}

func (l *Lexer) readChar() byte {
	ch := l.input[l.current]
	l.current++
	return ch
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.input[l.current] != expected {
		return false
	}
	l.current++
	return true
}

// peekChar returns the next byte without advancing; returns 0 at EOF
func (l *Lexer) peekChar() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.input[l.current]
}

func (l *Lexer) peekTwoChars() byte {
	if l.current+1 >= len(l.input) {
		return 0
	}
	return l.input[l.current+1]
}

func (l *Lexer) addToken(t token.TokenType) {
	l.addLiteral(t, nil)
}

func (l *Lexer) addLiteral(t token.TokenType, literal any) {
	l.tokens = append(l.tokens, token.Token{
		Type:    t,
		Lexeme:  l.input[l.start:l.current],
		Literal: literal,
		Line:    l.line,
	})
}

func isLetter(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
