package parser

import (
	"fmt"
	"log/slog"

	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/token"
)

// MaxArgs caps both parameter and argument lists.
const MaxArgs = 255

// parseError unwinds a declaration after it has been reported; the
// diagnostic itself already lives in the Diagnostics accumulator.
type parseError struct {
	tok token.Token
	msg string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.tok.Line, e.msg)
}

type Parser struct {
	tokens  []token.Token
	current int
	diags   *diag.Diagnostics

	funcDepth int // > 0 while parsing a function body
}

func New(tokens []token.Token, diags *diag.Diagnostics) *Parser {
	return &Parser{tokens: tokens, diags: diags}
}

// ParseProgram parses declarations until EOF. Declarations that fail to parse
// are reported and skipped, so the returned program holds only the ones that
// parsed cleanly.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Stmt{}}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	slog.Debug("parsed program", slog.Int("statements", len(program.Statements)))
	return program
}

func (p *Parser) declaration() ast.Stmt {
	var (
		stmt ast.Stmt
		err  error
	)
	switch {
	case p.match(token.FUNCTION):
		stmt, err = p.parseFunction()
	case p.match(token.VAR):
		stmt, err = p.parseVarDeclaration()
	default:
		stmt, err = p.parseStatement()
	}
	if err != nil {
		slog.Debug("recovering from parse error", slog.Any("error", err))
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) parseFunction() (*ast.FunctionStmt, error) {
	name, err := p.consume(token.IDENT, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LPAREN, "Expect '(' after function name."); err != nil {
		return nil, err
	}
	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= MaxArgs {
				p.addError(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", MaxArgs))
			}
			param, err := p.consume(token.IDENT, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RPAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LBRACE, "Expect '{' before function body."); err != nil {
		return nil, err
	}

	p.funcDepth++
	body, err := p.parseBlock()
	p.funcDepth--
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseVarDeclaration() (*ast.VarStmt, error) {
	name, err := p.consume(token.IDENT, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	stmt := &ast.VarStmt{Name: name}
	if p.match(token.ASSIGN) {
		if stmt.Initializer, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.match(token.FOR):
		return p.parseForStatement()
	case p.match(token.IF):
		return p.parseIfStatement()
	case p.match(token.PRINT):
		return p.parsePrintStatement()
	case p.match(token.RETURN):
		return p.parseReturnStatement()
	case p.match(token.WHILE):
		return p.parseWhileStatement()
	case p.match(token.LBRACE):
		brace := p.previous()
		stmts, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Token: brace, Statements: stmts}, nil
	default:
		return p.parseExpressionStatement()
	}
}

// parseForStatement desugars
//
//	for (init; cond; incr) body
//
// into
//
//	{ init; while (cond) { body; incr; } }
func (p *Parser) parseForStatement() (ast.Stmt, error) {
	forTok := p.previous()
	if _, err := p.consume(token.LPAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		initializer ast.Stmt
		err         error
	)
	switch {
	case p.match(token.SEMICOLON):
	case p.match(token.VAR):
		initializer, err = p.parseVarDeclaration()
	default:
		initializer, err = p.parseExpressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		if condition, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(token.RPAREN) {
		if increment, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RPAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStmt{
			Token:      forTok,
			Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: increment}},
		}
	}
	if condition == nil {
		condition = &ast.Literal{Token: forTok, Value: true}
	}
	var loop ast.Stmt = &ast.WhileStmt{Token: forTok, Condition: condition, Body: body}
	if initializer != nil {
		loop = &ast.BlockStmt{Token: forTok, Statements: []ast.Stmt{initializer, loop}}
	}
	return loop, nil
}

func (p *Parser) parseIfStatement() (ast.Stmt, error) {
	ifTok := p.previous()
	if _, err := p.consume(token.LPAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Token: ifTok, Condition: condition, ThenBranch: thenBranch}
	if p.match(token.ELSE) {
		if stmt.ElseBranch, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parsePrintStatement() (ast.Stmt, error) {
	printTok := p.previous()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Token: printTok, Expression: value}, nil
}

func (p *Parser) parseReturnStatement() (ast.Stmt, error) {
	keyword := p.previous()
	if p.funcDepth == 0 {
		p.addError(keyword, "Can't return from top-level code.")
	}
	stmt := &ast.ReturnStmt{Keyword: keyword}
	if !p.check(token.SEMICOLON) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (ast.Stmt, error) {
	whileTok := p.previous()
	if _, err := p.consume(token.LPAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Token: whileTok, Condition: condition, Body: body}, nil
}

// parseBlock expects the opening brace to be consumed already.
func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	statements := []ast.Stmt{}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(token.RBRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expression: expr}, nil
}
