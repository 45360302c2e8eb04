/*
Package environment implements the lexically nested variable bindings Lox
programs execute against.

The chain-of-maps shape is grounded on go-mix's
scope.Scope (parent pointer, map-per-scope, chain walk on lookup/assign).
The GetAt/AssignAt direct-ancestor-skip operations and the
redeclaration rule (forbidden in any non-global scope, allowed at global)
come from original_source/bootstrap/jlox/Environment.py, adapted into that
shape.
*/
package environment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomix-lang/golox/value"
)

// Environment is one lexical scope: its own bindings plus a link to the
// enclosing scope. A nil Enclosing marks the global scope.
type Environment struct {
	values    map[string]value.Value
	Enclosing *Environment
}

// New creates a child scope of enclosing (nil for a fresh global scope).
func New(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]value.Value), Enclosing: enclosing}
}

// IsGlobal reports whether this is the root of the chain.
func (e *Environment) IsGlobal() bool {
	return e.Enclosing == nil
}

// Define binds name in this scope. Redeclaring a name already bound in a
// non-global scope is a runtime error; the global scope allows it, since
// top-level REPL-style redefinition is common Lox usage and several
// reference test programs depend on it.
func (e *Environment) Define(name string, v value.Value) error {
	if !e.IsGlobal() {
		if _, exists := e.values[name]; exists {
			return fmt.Errorf("already a variable with this name in this scope: %s", name)
		}
	}
	e.values[name] = v
	return nil
}

// RawDefine binds name in this scope without the redeclaration check. Used
// for synthesized bindings the resolver never sees as user declarations:
// `this`, `super`, and the global native functions.
func (e *Environment) RawDefine(name string, v value.Value) {
	e.values[name] = v
}

// Get walks the enclosing chain for name, starting at this scope.
func (e *Environment) Get(name string) (value.Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Get(name)
	}
	return nil, fmt.Errorf("undefined variable '%s'", name)
}

// Assign walks the enclosing chain for name and overwrites its binding
// wherever it is found.
func (e *Environment) Assign(name string, v value.Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = v
		return nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Assign(name, v)
	}
	return fmt.Errorf("undefined variable '%s'", name)
}

// Ancestor walks exactly distance parent links up the chain.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.Enclosing
	}
	return env
}

// GetAt reads name from the scope exactly distance hops up the chain, with
// no further walk. The resolver guarantees this slot exists whenever it has
// recorded distance for the corresponding reference.
func (e *Environment) GetAt(distance int, name string) (value.Value, error) {
	env := e.Ancestor(distance)
	if v, ok := env.values[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("internal error: variable '%s' missing at resolved distance %d", name, distance)
}

// AssignAt writes name in the scope exactly distance hops up the chain.
func (e *Environment) AssignAt(distance int, name string, v value.Value) {
	e.Ancestor(distance).values[name] = v
}

// Dump renders the full scope chain from this environment outward, used by
// the `environment()` native for diagnostics.
func (e *Environment) Dump() string {
	var b strings.Builder
	depth := 0
	for env := e; env != nil; env = env.Enclosing {
		fmt.Fprintf(&b, "%s* scope %d\n", strings.Repeat(" ", depth), depth)
		names := make([]string, 0, len(env.values))
		for name := range env.values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "%s  - %s: %s\n", strings.Repeat(" ", depth), name, value.Stringify(env.values[name]))
		}
		depth++
	}
	return b.String()
}
