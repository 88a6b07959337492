/*
File    : monkey-go/object/environment.go

Environment is Monkey's lexical scope: a name-to-value map plus a link
to the enclosing scope, living directly alongside the values it binds
since Function only needs the AST, never a forward reference to itself.
*/
package object

// Environment is a single lexical scope: a name-to-value map plus an
// optional link to the enclosing scope. Lookups walk outward from the
// innermost scope; bindings are always written into the current scope.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// NewEnvironment creates a root (global) environment with no outer
// scope.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a child scope of outer, used both for
// function call frames and for extending a macro's captured environment
// during expansion.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get walks the scope chain outward looking for name, returning ok=false
// if it is bound nowhere in the chain.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		return e.outer.Get(name)
	}
	return obj, ok
}

// Set binds name to val in the CURRENT scope only. It never writes
// through to an outer scope — Monkey has no assignment operator, only
// `let`, so every binding is a fresh declaration in whichever scope it
// appears.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Has reports whether name is already bound in the CURRENT scope
// (ignoring outer scopes), the check `let` uses to reject redeclaration.
func (e *Environment) Has(name string) bool {
	_, ok := e.store[name]
	return ok
}
