package token

import "fmt"

type TokenType string

const (
	EOF = "EOF"

	// Single-character tokens
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	COMMA     = ","
	PERIOD    = "."
	MINUS     = "-"
	PLUS      = "+"
	SEMICOLON = ";"
	SLASH     = "/"
	ASTERISK  = "*"

	// One or two character tokens
	BANG   = "!"
	NOT_EQ = "!="
	ASSIGN = "="
	EQ     = "=="
	GT     = ">"
	GT_EQ  = ">="
	LT     = "<"
	LT_EQ  = "<="

	// Literals
	IDENT  = "IDENT"
	STRING = "STRING"
	NUMBER = "NUMBER"

	// Keywords
	AND      = "AND"
	CLASS    = "CLASS"
	ELSE     = "ELSE"
	FALSE    = "FALSE"
	FUNCTION = "FUNCTION"
	FOR      = "FOR"
	IF       = "IF"
	NIL      = "NIL"
	OR       = "OR"
	PRINT    = "PRINT"
	RETURN   = "RETURN"
	SUPER    = "SUPER"
	THIS     = "THIS"
	TRUE     = "TRUE"
	VAR      = "VAR"
	WHILE    = "WHILE"
)

// Token is immutable once scanned. Literal holds a float64 for NUMBER and a
// string for STRING tokens; it is nil for everything else.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

func (t Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}

var keywords = map[string]TokenType{
	// constants
	"nil":   NIL,
	"true":  TRUE,
	"false": FALSE,

	// declarations
	"fun":   FUNCTION,
	"var":   VAR,
	"class": CLASS,
	"this":  THIS,
	"super": SUPER,

	// flow control
	"if":     IF,
	"else":   ELSE,
	"for":    FOR,
	"while":  WHILE,
	"return": RETURN,

	"and":   AND,
	"or":    OR,
	"print": PRINT,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
