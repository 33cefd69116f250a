package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"lox/internal/ast"

	"gopkg.in/yaml.v3"
)

// WalkAST recursively traverses an AST and serializes it into a map structure
// suitable for JSON or YAML output.
func WalkAST(node ast.Node) interface{} {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.Program:
		return map[string]interface{}{
			"type":       "Program",
			"statements": walkStmts(n.Statements),
		}

	// Statements
	case *ast.ExpressionStmt:
		return map[string]interface{}{
			"type":       "ExpressionStmt",
			"expression": WalkAST(n.Expression),
		}
	case *ast.PrintStmt:
		return map[string]interface{}{
			"type":       "PrintStmt",
			"line":       n.Token.Line,
			"expression": WalkAST(n.Expression),
		}
	case *ast.VarStmt:
		return map[string]interface{}{
			"type":        "VarStmt",
			"line":        n.Name.Line,
			"name":        n.Name.Lexeme,
			"initializer": walkOptionalExpr(n.Initializer),
		}
	case *ast.BlockStmt:
		return map[string]interface{}{
			"type":       "BlockStmt",
			"line":       n.Token.Line,
			"statements": walkStmts(n.Statements),
		}
	case *ast.IfStmt:
		return map[string]interface{}{
			"type":       "IfStmt",
			"line":       n.Token.Line,
			"condition":  WalkAST(n.Condition),
			"thenBranch": WalkAST(n.ThenBranch),
			"elseBranch": walkOptionalStmt(n.ElseBranch),
		}
	case *ast.WhileStmt:
		return map[string]interface{}{
			"type":      "WhileStmt",
			"line":      n.Token.Line,
			"condition": WalkAST(n.Condition),
			"body":      WalkAST(n.Body),
		}
	case *ast.FunctionStmt:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		return map[string]interface{}{
			"type":   "FunctionStmt",
			"line":   n.Name.Line,
			"name":   n.Name.Lexeme,
			"params": params,
			"body":   walkStmts(n.Body),
		}
	case *ast.ReturnStmt:
		return map[string]interface{}{
			"type":  "ReturnStmt",
			"line":  n.Keyword.Line,
			"value": walkOptionalExpr(n.Value),
		}

	// Expressions
	case *ast.Literal:
		return map[string]interface{}{
			"type":  "Literal",
			"value": n.Value,
		}
	case *ast.Grouping:
		return map[string]interface{}{
			"type":       "Grouping",
			"expression": WalkAST(n.Expression),
		}
	case *ast.Unary:
		return map[string]interface{}{
			"type":     "Unary",
			"operator": n.Operator.Lexeme,
			"right":    WalkAST(n.Right),
		}
	case *ast.Binary:
		return map[string]interface{}{
			"type":     "Binary",
			"operator": n.Operator.Lexeme,
			"left":     WalkAST(n.Left),
			"right":    WalkAST(n.Right),
		}
	case *ast.Logical:
		return map[string]interface{}{
			"type":     "Logical",
			"operator": n.Operator.Lexeme,
			"left":     WalkAST(n.Left),
			"right":    WalkAST(n.Right),
		}
	case *ast.Variable:
		return map[string]interface{}{
			"type": "Variable",
			"name": n.Name.Lexeme,
		}
	case *ast.Assign:
		return map[string]interface{}{
			"type":  "Assign",
			"name":  n.Name.Lexeme,
			"value": WalkAST(n.Value),
		}
	case *ast.Call:
		args := make([]interface{}, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = WalkAST(a)
		}
		return map[string]interface{}{
			"type":      "Call",
			"line":      n.Paren.Line,
			"callee":    WalkAST(n.Callee),
			"arguments": args,
		}
	}
	return map[string]interface{}{
		"type": fmt.Sprintf("%T", node),
	}
}

func walkStmts(stmts []ast.Stmt) []interface{} {
	out := make([]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = WalkAST(s)
	}
	return out
}

// walkOptionalExpr avoids handing a typed nil to WalkAST.
func walkOptionalExpr(e ast.Expr) interface{} {
	if e == nil {
		return nil
	}
	return WalkAST(e)
}

func walkOptionalStmt(s ast.Stmt) interface{} {
	if s == nil {
		return nil
	}
	return WalkAST(s)
}

// DumpAST writes the program in the requested format: "json", "yaml" or
// "text".
func DumpAST(w io.Writer, program *ast.Program, format string) error {
	tree := WalkAST(program)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		_, err := fmt.Fprintln(w, RenderASTAsText(program, 0))
		return err
	default:
		return fmt.Errorf("unknown AST format %q, expected json, yaml or text", format)
	}
}
