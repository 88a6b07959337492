/*
File    : monkey-go/macro/macro_expansion.go

DefineMacros and ExpandMacros implement Monkey's two-phase macro pass.
Phase A (DefineMacros) walks the top level of a freshly parsed program,
lifts every `let <name> = macro(...) {...};` into a dedicated macro
environment, and strips those statements out of the program entirely —
macros never reach the evaluator. Phase B (ExpandMacros) walks the
remaining tree post-order and replaces every call site bound to a macro
name with the result of evaluating that macro's body against its
parameters bound to Quoted copies of the call's arguments.

Every identifier in the AST is anchored to a token index rather than
carrying its own text, so both phases need the TokenStream the program
was parsed from to resolve names.

ExpandMacros needs to evaluate expressions (to run a macro's body and to
resolve quote/unquote inside it) but the evaluator that does that also
depends on this package's Modify helper for its own quote/unquote
rewriting, so the evaluation step is injected as a callback rather than
imported directly — that is what keeps macro and evaluator from forming
an import cycle.
*/
package macro

import (
	"fmt"

	"github.com/monkeylang/monkey-go/ast"
	"github.com/monkeylang/monkey-go/lexer"
	"github.com/monkeylang/monkey-go/object"
)

// EvalFunc is the evaluator's Eval entry point, injected so this package
// never needs to import the evaluator package directly.
type EvalFunc func(node ast.Node, env *object.Environment) object.Object

// DefineMacros extracts every top-level macro definition from program
// into env and removes those statements from program in place.
func DefineMacros(program *ast.Program, env *object.Environment, ts *lexer.TokenStream) {
	definitions := []int{}

	for i, stmt := range program.Statements {
		if isMacroDefinition(stmt) {
			addMacro(stmt, env, ts)
			definitions = append(definitions, i)
		}
	}

	for i := len(definitions) - 1; i >= 0; i-- {
		idx := definitions[i]
		program.Statements = append(program.Statements[:idx], program.Statements[idx+1:]...)
	}
}

func isMacroDefinition(node ast.Statement) bool {
	letStmt, ok := node.(*ast.LetStatement)
	if !ok {
		return false
	}
	_, ok = letStmt.Value.(*ast.MacroLiteral)
	return ok
}

func addMacro(stmt ast.Statement, env *object.Environment, ts *lexer.TokenStream) {
	letStmt := stmt.(*ast.LetStatement)
	macroLit := letStmt.Value.(*ast.MacroLiteral)

	macro := &object.Macro{
		Parameters: macroLit.Parameters,
		Body:       macroLit.Body,
		Env:        env,
	}

	env.Set(letStmt.Name(ts), macro)
}

// ExpandMacros rewrites every macro call in program with the AST node
// its macro body produces, using eval to run the macro body and quote
// to freeze the call's arguments beforehand.
func ExpandMacros(program ast.Node, env *object.Environment, ts *lexer.TokenStream, eval EvalFunc) ast.Node {
	return Modify(program, func(node ast.Node) ast.Node {
		call, ok := node.(*ast.CallExpression)
		if !ok {
			return node
		}

		ident, ok := call.Function.(*ast.Identifier)
		if !ok {
			return node
		}

		obj, ok := env.Get(ident.Name(ts))
		if !ok {
			return node
		}

		macro, ok := obj.(*object.Macro)
		if !ok {
			return node
		}

		args := quoteArgs(call)
		evalEnv := extendMacroEnv(macro, args, ts)

		evaluated := eval(macro.Body, evalEnv)

		quote, ok := evaluated.(*object.Quote)
		if !ok {
			panic(fmt.Sprintf("we only support returning AST-nodes from macros, got %s", evaluated.GetType()))
		}

		return quote.Node
	})
}

func quoteArgs(call *ast.CallExpression) []*object.Quote {
	args := []*object.Quote{}
	for _, a := range call.Arguments {
		args = append(args, &object.Quote{Node: a})
	}
	return args
}

func extendMacroEnv(macro *object.Macro, args []*object.Quote, ts *lexer.TokenStream) *object.Environment {
	extended := object.NewEnclosedEnvironment(macro.Env)
	for i, param := range macro.Parameters {
		extended.Set(param.Name(ts), args[i])
	}
	return extended
}
