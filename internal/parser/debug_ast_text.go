package parser

import (
	"fmt"
	"strings"

	"lox/internal/ast"
)

// RenderASTAsText produces an indented, Lox-like rendering of the AST with
// every operator application fully parenthesized. It is meant for checking
// precedence and how for loops were desugared.
func RenderASTAsText(node ast.Node, indent int) string {
	sp := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case nil:
		return "nil"

	case *ast.Program:
		var sb strings.Builder
		for i, s := range n.Statements {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(RenderASTAsText(s, 0))
		}
		return sb.String()

	case *ast.ExpressionStmt:
		return sp + RenderASTAsText(n.Expression, 0) + ";"

	case *ast.PrintStmt:
		return fmt.Sprintf("%sprint %s;", sp, RenderASTAsText(n.Expression, 0))

	case *ast.VarStmt:
		if n.Initializer == nil {
			return fmt.Sprintf("%svar %s;", sp, n.Name.Lexeme)
		}
		return fmt.Sprintf("%svar %s = %s;", sp, n.Name.Lexeme, RenderASTAsText(n.Initializer, 0))

	case *ast.BlockStmt:
		return sp + renderBlock(n.Statements, indent)

	case *ast.IfStmt:
		res := fmt.Sprintf("%sif (%s)\n%s", sp, RenderASTAsText(n.Condition, 0), RenderASTAsText(n.ThenBranch, indent+1))
		if n.ElseBranch != nil {
			res += fmt.Sprintf("\n%selse\n%s", sp, RenderASTAsText(n.ElseBranch, indent+1))
		}
		return res

	case *ast.WhileStmt:
		return fmt.Sprintf("%swhile (%s)\n%s", sp, RenderASTAsText(n.Condition, 0), RenderASTAsText(n.Body, indent+1))

	case *ast.FunctionStmt:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		return fmt.Sprintf("%sfun %s(%s) %s", sp, n.Name.Lexeme, strings.Join(params, ", "), renderBlock(n.Body, indent))

	case *ast.ReturnStmt:
		if n.Value == nil {
			return sp + "return;"
		}
		return fmt.Sprintf("%sreturn %s;", sp, RenderASTAsText(n.Value, 0))

	// Expressions never carry indentation of their own.
	case *ast.Literal:
		if s, ok := n.Value.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		return n.String()
	case *ast.Grouping:
		return "(" + RenderASTAsText(n.Expression, 0) + ")"
	case *ast.Unary:
		return fmt.Sprintf("(%s%s)", n.Operator.Lexeme, RenderASTAsText(n.Right, 0))
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", RenderASTAsText(n.Left, 0), n.Operator.Lexeme, RenderASTAsText(n.Right, 0))
	case *ast.Logical:
		return fmt.Sprintf("(%s %s %s)", RenderASTAsText(n.Left, 0), n.Operator.Lexeme, RenderASTAsText(n.Right, 0))
	case *ast.Variable:
		return n.Name.Lexeme
	case *ast.Assign:
		return fmt.Sprintf("(%s = %s)", n.Name.Lexeme, RenderASTAsText(n.Value, 0))
	case *ast.Call:
		args := make([]string, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = RenderASTAsText(a, 0)
		}
		return fmt.Sprintf("%s(%s)", RenderASTAsText(n.Callee, 0), strings.Join(args, ", "))
	}

	return fmt.Sprintf("%s<unknown %T>", sp, node)
}

// renderBlock writes the braces; the closing one aligns with indent.
func renderBlock(statements []ast.Stmt, indent int) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range statements {
		sb.WriteString(RenderASTAsText(s, indent+1))
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("  ", indent) + "}")
	return sb.String()
}
