package object

import (
	"log/slog"
	"sync/atomic"

	"lox/internal/token"
)

var nextID atomic.Uint64

// Environment is one scope frame. Frames are shared by pointer, so a frame
// captured by a function value stays alive after its block has exited.
type Environment struct {
	ID       uint64
	Bindings map[string]Object
	Outer    *Environment // nil only for the global frame
}

func nextEnvID() uint64 {
	return nextID.Add(1)
}

func NewEnvironment() *Environment {
	return &Environment{
		ID:       nextEnvID(),
		Bindings: make(map[string]Object),
	}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.Outer = outer
	slog.Debug("new env", slog.Uint64("id", env.ID), slog.Uint64("outer", outer.ID))
	return env
}

// Define binds name in this frame only, replacing any earlier binding.
func (e *Environment) Define(name string, val Object) {
	e.Bindings[name] = val
	slog.Debug("binding value",
		slog.String("name", name),
		slog.Any("type", val.Type()),
		slog.Uint64("env", e.ID))
}

func (e *Environment) Get(name token.Token) (Object, error) {
	for env := e; env != nil; env = env.Outer {
		if val, ok := env.Bindings[name.Lexeme]; ok {
			return val, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Assign updates the nearest existing binding; it never creates one.
func (e *Environment) Assign(name token.Token, val Object) error {
	for env := e; env != nil; env = env.Outer {
		if _, ok := env.Bindings[name.Lexeme]; ok {
			env.Bindings[name.Lexeme] = val
			slog.Debug("assigning bound value",
				slog.String("name", name.Lexeme),
				slog.Any("type", val.Type()),
				slog.Uint64("env", env.ID))
			return nil
		}
	}
	return undefinedVariable(name)
}

func (e *Environment) IsGlobal() bool {
	return e.Outer == nil
}

func undefinedVariable(name token.Token) *RuntimeError {
	return NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}
