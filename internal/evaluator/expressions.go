package evaluator

import (
	"fmt"

	"lox/internal/ast"
	"lox/internal/object"
	"lox/internal/token"
)

func (e *Evaluator) Eval(expr ast.Expr) (object.Object, error) {
	switch node := expr.(type) {
	case *ast.Literal:
		return object.FromLiteral(node.Value), nil

	case *ast.Grouping:
		return e.Eval(node.Expression)

	case *ast.Variable:
		return e.env.Get(node.Name)

	case *ast.Assign:
		val, err := e.Eval(node.Value)
		if err != nil {
			return nil, err
		}
		if err := e.env.Assign(node.Name, val); err != nil {
			return nil, err
		}
		return val, nil

	case *ast.Unary:
		right, err := e.Eval(node.Right)
		if err != nil {
			return nil, err
		}
		return e.evalUnaryExpression(node.Operator, right)

	case *ast.Logical:
		return e.evalLogicalExpression(node)

	case *ast.Binary:
		left, err := e.Eval(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.Eval(node.Right)
		if err != nil {
			return nil, err
		}
		return e.evalBinaryExpression(node.Operator, left, right)

	case *ast.Call:
		return e.evalCallExpression(node)
	}

	return nil, fmt.Errorf("unknown expression type %T", expr)
}

func (e *Evaluator) evalUnaryExpression(op token.Token, right object.Object) (object.Object, error) {
	switch op.Type {
	case token.BANG:
		return object.NativeBoolToBooleanObject(!object.IsTruthy(right)), nil
	case token.MINUS:
		n, ok := right.(*object.Number)
		if !ok {
			return nil, object.NewRuntimeError(op, "Operand must be a number.")
		}
		return &object.Number{Value: -n.Value}, nil
	}
	return nil, object.NewRuntimeError(op, "unknown operator: %s", op.Lexeme)
}

// evalLogicalExpression short-circuits and yields the deciding operand itself.
func (e *Evaluator) evalLogicalExpression(node *ast.Logical) (object.Object, error) {
	left, err := e.Eval(node.Left)
	if err != nil {
		return nil, err
	}
	if node.Operator.Type == token.OR {
		if object.IsTruthy(left) {
			return left, nil
		}
	} else if !object.IsTruthy(left) {
		return left, nil
	}
	return e.Eval(node.Right)
}

func (e *Evaluator) evalBinaryExpression(op token.Token, left, right object.Object) (object.Object, error) {
	switch op.Type {
	case token.EQ:
		return object.NativeBoolToBooleanObject(object.Equal(left, right)), nil
	case token.NOT_EQ:
		return object.NativeBoolToBooleanObject(!object.Equal(left, right)), nil
	case token.PLUS:
		return e.evalPlusExpression(op, left, right)
	}

	l, lok := left.(*object.Number)
	r, rok := right.(*object.Number)
	if !lok || !rok {
		return nil, object.NewRuntimeError(op, "Operands must be numbers.")
	}
	return evalNumberInfixExpression(op, l.Value, r.Value)
}

func (e *Evaluator) evalPlusExpression(op token.Token, left, right object.Object) (object.Object, error) {
	switch l := left.(type) {
	case *object.Number:
		if r, ok := right.(*object.Number); ok {
			return &object.Number{Value: l.Value + r.Value}, nil
		}
	case *object.String:
		if r, ok := right.(*object.String); ok {
			return &object.String{Value: l.Value + r.Value}, nil
		}
	}
	return nil, object.NewRuntimeError(op, "Operands must be two numbers or two strings.")
}

// evalNumberInfixExpression follows IEEE-754: division by zero gives ±Inf or NaN.
func evalNumberInfixExpression(op token.Token, l, r float64) (object.Object, error) {
	switch op.Type {
	case token.MINUS:
		return &object.Number{Value: l - r}, nil
	case token.ASTERISK:
		return &object.Number{Value: l * r}, nil
	case token.SLASH:
		return &object.Number{Value: l / r}, nil
	case token.GT:
		return object.NativeBoolToBooleanObject(l > r), nil
	case token.GT_EQ:
		return object.NativeBoolToBooleanObject(l >= r), nil
	case token.LT:
		return object.NativeBoolToBooleanObject(l < r), nil
	case token.LT_EQ:
		return object.NativeBoolToBooleanObject(l <= r), nil
	}
	return nil, object.NewRuntimeError(op, "unknown operator: %s", op.Lexeme)
}

func (e *Evaluator) evalCallExpression(node *ast.Call) (object.Object, error) {
	callee, err := e.Eval(node.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]object.Object, 0, len(node.Arguments))
	for _, arg := range node.Arguments {
		val, err := e.Eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	fn, ok := callee.(object.Callable)
	if !ok {
		return nil, object.NewRuntimeError(node.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, object.NewRuntimeError(node.Paren,
			"Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(e, args)
}
