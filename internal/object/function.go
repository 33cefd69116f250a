package object

import (
	"errors"
	"time"

	"lox/internal/ast"
)

// Executor runs a statement list in a given frame. The evaluator implements it
// so that user functions can execute their bodies.
type Executor interface {
	ExecuteBlock(statements []ast.Stmt, env *Environment) error
}

type Callable interface {
	Object
	Arity() int
	Call(ex Executor, args []Object) (Object, error)
}

// Function is a user-defined function closing over the frame it was
// declared in.
type Function struct {
	Declaration *ast.FunctionStmt
	Closure     *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return "<fn " + f.Declaration.Name.Lexeme + ">" }
func (f *Function) Arity() int       { return len(f.Declaration.Params) }

func (f *Function) Call(ex Executor, args []Object) (Object, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := ex.ExecuteBlock(f.Declaration.Body, env)
	if err == nil {
		return NIL, nil
	}
	var ret *ReturnValue
	if errors.As(err, &ret) {
		return ret.Value, nil
	}
	return nil, err
}

type NativeFn func(args []Object) (Object, error)

type Native struct {
	Name    string
	NumArgs int
	Fn      NativeFn
}

func (n *Native) Type() ObjectType { return NATIVE_OBJ }
func (n *Native) Inspect() string  { return "<native fn>" }
func (n *Native) Arity() int       { return n.NumArgs }

func (n *Native) Call(_ Executor, args []Object) (Object, error) {
	return n.Fn(args)
}

// Clock returns the wall clock in seconds as a number.
func Clock(now func() time.Time) *Native {
	if now == nil {
		now = time.Now
	}
	return &Native{
		Name:    "clock",
		NumArgs: 0,
		Fn: func(_ []Object) (Object, error) {
			return &Number{Value: float64(now().UnixNano()) / float64(time.Second)}, nil
		},
	}
}
