package object

import (
	"fmt"
	"strconv"

	"lox/internal/token"
)

const (
	NIL_OBJ      = "NIL"
	BOOLEAN_OBJ  = "BOOLEAN"
	NUMBER_OBJ   = "NUMBER"
	STRING_OBJ   = "STRING"
	FUNCTION_OBJ = "FUNCTION"
	NATIVE_OBJ   = "NATIVE"
)

var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type ObjectType string

// Object is the runtime value. The set of implementations is closed:
// Nil, Boolean, Number, String and the Callable kinds in this package.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }

// Inspect prints integral values without a fractional part.
func (n *Number) Inspect() string { return strconv.FormatFloat(n.Value, 'f', -1, 64) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

func NativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// FromLiteral converts a scanned literal payload into a runtime value.
func FromLiteral(v any) Object {
	switch v := v.(type) {
	case nil:
		return NIL
	case bool:
		return NativeBoolToBooleanObject(v)
	case float64:
		return &Number{Value: v}
	case string:
		return &String{Value: v}
	default:
		panic(fmt.Sprintf("unsupported literal %T", v))
	}
}

// IsTruthy: nil and false are falsy, everything else (0 and "" included) is truthy.
func IsTruthy(obj Object) bool {
	switch obj := obj.(type) {
	case *Nil:
		return false
	case *Boolean:
		return obj.Value
	default:
		return true
	}
}

// Equal compares structurally; values of different kinds are never equal and
// callables compare by identity.
func Equal(a, b Object) bool {
	switch a := a.(type) {
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *Boolean:
		bb, ok := b.(*Boolean)
		return ok && a.Value == bb.Value
	case *Number:
		bn, ok := b.(*Number)
		return ok && a.Value == bn.Value
	case *String:
		bs, ok := b.(*String)
		return ok && a.Value == bs.Value
	default:
		return a == b
	}
}

// RuntimeError aborts evaluation of the current top-level run.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Token.Line, e.Message)
}

func NewRuntimeError(tok token.Token, format string, a ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, a...)}
}

// ReturnValue is not a failure: it carries a `return` value up to the
// function call that is executing the body.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Error() string { return "return " + rv.Value.Inspect() }
