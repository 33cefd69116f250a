package evaluator

import (
	"fmt"
	"io"
	"log/slog"

	"lox/internal/ast"
	"lox/internal/object"
)

type Evaluator struct {
	Globals *object.Environment
	env     *object.Environment // current frame
	out     io.Writer
}

// New creates an evaluator whose print statements write to out. The global
// frame is created here and lives as long as the evaluator, so REPL lines
// share their definitions.
func New(out io.Writer) *Evaluator {
	globals := object.NewEnvironment()
	globals.Define("clock", object.Clock(nil))
	return &Evaluator{
		Globals: globals,
		env:     globals,
		out:     out,
	}
}

func (e *Evaluator) CurrentEnv() *object.Environment {
	return e.env
}

// Interpret executes the statements in order. The first runtime error stops
// execution and is returned; it is never reported twice.
func (e *Evaluator) Interpret(program *ast.Program) error {
	slog.Debug(" ---- begin ----")
	defer slog.Debug(" ---- done ----")

	for _, stmt := range program.Statements {
		if err := e.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) Execute(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := e.Eval(stmt.Expression)
		return err

	case *ast.PrintStmt:
		val, err := e.Eval(stmt.Expression)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.out, val.Inspect())
		return err

	case *ast.VarStmt:
		var val object.Object = object.NIL
		if stmt.Initializer != nil {
			v, err := e.Eval(stmt.Initializer)
			if err != nil {
				return err
			}
			val = v
		}
		e.env.Define(stmt.Name.Lexeme, val)
		return nil

	case *ast.BlockStmt:
		return e.ExecuteBlock(stmt.Statements, object.NewEnclosedEnvironment(e.env))

	case *ast.IfStmt:
		cond, err := e.Eval(stmt.Condition)
		if err != nil {
			return err
		}
		if object.IsTruthy(cond) {
			return e.Execute(stmt.ThenBranch)
		}
		if stmt.ElseBranch != nil {
			return e.Execute(stmt.ElseBranch)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := e.Eval(stmt.Condition)
			if err != nil {
				return err
			}
			if !object.IsTruthy(cond) {
				return nil
			}
			if err := e.Execute(stmt.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		e.env.Define(stmt.Name.Lexeme, &object.Function{Declaration: stmt, Closure: e.env})
		return nil

	case *ast.ReturnStmt:
		var val object.Object = object.NIL
		if stmt.Value != nil {
			v, err := e.Eval(stmt.Value)
			if err != nil {
				return err
			}
			val = v
		}
		return &object.ReturnValue{Value: val}
	}

	return fmt.Errorf("unknown statement type %T", stmt)
}

// ExecuteBlock runs statements in env and restores the previous frame on
// every exit path, errors and returns included.
func (e *Evaluator) ExecuteBlock(statements []ast.Stmt, env *object.Environment) error {
	previous := e.env
	e.env = env
	defer func() { e.env = previous }()

	for _, stmt := range statements {
		if err := e.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}
