package ast

import (
	"bytes"
	"strconv"
	"strings"

	"lox/internal/token"
)

// The base Node interface
type Node interface {
	TokenLiteral() string
	String() string
}

// Expr is closed: only the node types in this package implement it.
type Expr interface {
	Node
	expressionNode()
}

// Stmt is closed: only the node types in this package implement it.
type Stmt interface {
	Node
	statementNode()
}

type Program struct {
	Statements []Stmt
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// Expressions

type Literal struct {
	Token token.Token
	Value any // nil, bool, float64 or string
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Lexeme }
func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return l.Token.Lexeme
	}
}

type Grouping struct {
	Token      token.Token // the ( token
	Expression Expr
}

func (g *Grouping) expressionNode()      {}
func (g *Grouping) TokenLiteral() string { return g.Token.Lexeme }
func (g *Grouping) String() string       { return "(group " + g.Expression.String() + ")" }

type Unary struct {
	Operator token.Token
	Right    Expr
}

func (u *Unary) expressionNode()      {}
func (u *Unary) TokenLiteral() string { return u.Operator.Lexeme }
func (u *Unary) String() string {
	return "(" + u.Operator.Lexeme + " " + u.Right.String() + ")"
}

type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (b *Binary) expressionNode()      {}
func (b *Binary) TokenLiteral() string { return b.Operator.Lexeme }
func (b *Binary) String() string {
	return "(" + b.Operator.Lexeme + " " + b.Left.String() + " " + b.Right.String() + ")"
}

// Logical is kept apart from Binary because its right operand is evaluated lazily.
type Logical struct {
	Left     Expr
	Operator token.Token // and / or
	Right    Expr
}

func (l *Logical) expressionNode()      {}
func (l *Logical) TokenLiteral() string { return l.Operator.Lexeme }
func (l *Logical) String() string {
	return "(" + l.Operator.Lexeme + " " + l.Left.String() + " " + l.Right.String() + ")"
}

type Variable struct {
	Name token.Token
}

func (v *Variable) expressionNode()      {}
func (v *Variable) TokenLiteral() string { return v.Name.Lexeme }
func (v *Variable) String() string       { return v.Name.Lexeme }

type Assign struct {
	Name  token.Token
	Value Expr
}

func (a *Assign) expressionNode()      {}
func (a *Assign) TokenLiteral() string { return a.Name.Lexeme }
func (a *Assign) String() string {
	return "(= " + a.Name.Lexeme + " " + a.Value.String() + ")"
}

type Call struct {
	Callee    Expr
	Paren     token.Token // closing paren, for error lines
	Arguments []Expr
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Paren.Lexeme }
func (c *Call) String() string {
	args := make([]string, 0, len(c.Arguments))
	for _, a := range c.Arguments {
		args = append(args, a.String())
	}
	return "(call " + c.Callee.String() + " " + strings.Join(args, " ") + ")"
}

// Statements

type ExpressionStmt struct {
	Expression Expr
}

func (es *ExpressionStmt) statementNode()       {}
func (es *ExpressionStmt) TokenLiteral() string { return es.Expression.TokenLiteral() }
func (es *ExpressionStmt) String() string       { return es.Expression.String() + ";" }

type PrintStmt struct {
	Token      token.Token // the print token
	Expression Expr
}

func (ps *PrintStmt) statementNode()       {}
func (ps *PrintStmt) TokenLiteral() string { return ps.Token.Lexeme }
func (ps *PrintStmt) String() string       { return "print " + ps.Expression.String() + ";" }

type VarStmt struct {
	Name        token.Token
	Initializer Expr // optional
}

func (vs *VarStmt) statementNode()       {}
func (vs *VarStmt) TokenLiteral() string { return vs.Name.Lexeme }
func (vs *VarStmt) String() string {
	var out bytes.Buffer
	out.WriteString("var " + vs.Name.Lexeme)
	if vs.Initializer != nil {
		out.WriteString(" = ")
		out.WriteString(vs.Initializer.String())
	}
	out.WriteString(";")
	return out.String()
}

type BlockStmt struct {
	Token      token.Token // the { token
	Statements []Stmt
}

func (bs *BlockStmt) statementNode()       {}
func (bs *BlockStmt) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStmt) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

type IfStmt struct {
	Token      token.Token // the if token
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt // optional
}

func (is *IfStmt) statementNode()       {}
func (is *IfStmt) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStmt) String() string {
	var out bytes.Buffer
	out.WriteString("if (" + is.Condition.String() + ") ")
	out.WriteString(is.ThenBranch.String())
	if is.ElseBranch != nil {
		out.WriteString(" else ")
		out.WriteString(is.ElseBranch.String())
	}
	return out.String()
}

type WhileStmt struct {
	Token     token.Token // the while (or desugared for) token
	Condition Expr
	Body      Stmt
}

func (ws *WhileStmt) statementNode()       {}
func (ws *WhileStmt) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStmt) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (fs *FunctionStmt) statementNode()       {}
func (fs *FunctionStmt) TokenLiteral() string { return fs.Name.Lexeme }
func (fs *FunctionStmt) String() string {
	params := make([]string, 0, len(fs.Params))
	for _, p := range fs.Params {
		params = append(params, p.Lexeme)
	}
	var out bytes.Buffer
	out.WriteString("fun " + fs.Name.Lexeme + "(" + strings.Join(params, ", ") + ") { ")
	for _, s := range fs.Body {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

type ReturnStmt struct {
	Keyword token.Token // the return token
	Value   Expr        // optional
}

func (rs *ReturnStmt) statementNode()       {}
func (rs *ReturnStmt) TokenLiteral() string { return rs.Keyword.Lexeme }
func (rs *ReturnStmt) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}
