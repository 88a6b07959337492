/*
File    : monkey-go/evaluator/evaluator.go

Package evaluator tree-walks a Monkey AST to a runtime Object. Eval
takes the TokenStream the AST was parsed from alongside the node and
environment, since identifiers, literals and operators are all anchored
to token indices rather than carrying their own text (see ast.Node).

A single recursive Eval over a type switch, short-circuiting on the
first Error or Return it meets — just a node, an environment and the
token view, no extra plumbing.
*/
package evaluator

import (
	"github.com/monkeylang/monkey-go/ast"
	"github.com/monkeylang/monkey-go/lexer"
	"github.com/monkeylang/monkey-go/macro"
	"github.com/monkeylang/monkey-go/object"
)

// Eval evaluates node in env, resolving identifier and literal text
// from ts. It returns an *object.Error (never a Go panic or error
// return) for every runtime failure, letting callers print it exactly
// like any other result.
func Eval(node ast.Node, env *object.Environment, ts *lexer.TokenStream) object.Object {
	switch n := node.(type) {

	case *ast.Program:
		return evalProgram(n, env, ts)

	case *ast.ExpressionStatement:
		return Eval(n.Expression, env, ts)

	case *ast.BlockStatement:
		return evalBlockStatement(n, env, ts)

	case *ast.LetStatement:
		return evalLetStatement(n, env, ts)

	case *ast.ReturnStatement:
		return evalReturnStatement(n, env, ts)

	case *ast.IntegerLiteral:
		return &object.Integer{Value: n.Value}

	case *ast.IntegerResult:
		return &object.Integer{Value: n.Value}

	case *ast.StringLiteral:
		return &object.String{Value: n.Value}

	case *ast.StringResult:
		return &object.String{Value: n.Value}

	case *ast.Boolean:
		return object.NativeBool(n.Value)

	case *ast.BooleanResult:
		return object.NativeBool(n.Value)

	case *ast.Identifier:
		return evalIdentifier(n, env, ts)

	case *ast.PrefixExpression:
		right := Eval(n.Right, env, ts)
		if object.IsError(right) {
			return right
		}
		return evalPrefixExpression(n.Operator, right)

	case *ast.InfixExpression:
		left := Eval(n.Left, env, ts)
		if object.IsError(left) {
			return left
		}
		right := Eval(n.Right, env, ts)
		if object.IsError(right) {
			return right
		}
		return evalInfixExpression(n.Operator, left, right)

	case *ast.IfExpression:
		return evalIfExpression(n, env, ts)

	case *ast.FunctionLiteral:
		return &object.Function{Parameters: n.Parameters, Body: n.Body, Env: env, TS: ts}

	case *ast.CallExpression:
		return evalCallExpression(n, env, ts)

	case *ast.ArrayLiteral:
		elements := evalExpressions(n.Elements, env, ts)
		if len(elements) == 1 && object.IsError(elements[0]) {
			return elements[0]
		}
		return &object.Array{Elements: elements}

	case *ast.HashLiteral:
		return evalHashLiteral(n, env, ts)

	case *ast.IndexExpression:
		return evalIndexExpression(n, env, ts)
	}

	return object.NULL
}

func evalProgram(program *ast.Program, env *object.Environment, ts *lexer.TokenStream) object.Object {
	var result object.Object = object.NULL

	for _, stmt := range program.Statements {
		result = Eval(stmt, env, ts)

		switch result := result.(type) {
		case *object.ReturnValue:
			return result.Value
		case *object.Error:
			return result
		}
	}

	return result
}

func evalBlockStatement(block *ast.BlockStatement, env *object.Environment, ts *lexer.TokenStream) object.Object {
	var result object.Object = object.NULL

	for _, stmt := range block.Statements {
		result = Eval(stmt, env, ts)

		if result != nil {
			rt := result.GetType()
			if rt == object.ReturnValueObj || rt == object.ErrorObj {
				return result
			}
		}
	}

	return result
}

func evalLetStatement(stmt *ast.LetStatement, env *object.Environment, ts *lexer.TokenStream) object.Object {
	name := stmt.Name(ts)
	if env.Has(name) {
		return object.Newf("Symbol already defined: %s", name)
	}

	val := Eval(stmt.Value, env, ts)
	if object.IsError(val) {
		return val
	}

	env.Set(name, val)
	return object.NULL
}

func evalReturnStatement(stmt *ast.ReturnStatement, env *object.Environment, ts *lexer.TokenStream) object.Object {
	if stmt.ReturnValue == nil {
		return wrapReturn(object.NULL)
	}

	val := Eval(stmt.ReturnValue, env, ts)
	if object.IsError(val) {
		return val
	}

	return wrapReturn(val)
}

// wrapReturn shares the preallocated Return atoms for the two boolean
// cases and allocates fresh envelopes for everything else.
func wrapReturn(val object.Object) object.Object {
	if b, ok := val.(*object.Boolean); ok {
		if b.Value {
			return object.ReturnTrue
		}
		return object.ReturnFalse
	}
	return &object.ReturnValue{Value: val}
}

func evalIdentifier(node *ast.Identifier, env *object.Environment, ts *lexer.TokenStream) object.Object {
	name := node.Name(ts)

	if val, ok := env.Get(name); ok {
		return val
	}
	if builtin, ok := builtins[name]; ok {
		return builtin
	}

	return object.Newf("Unknown symbol: %s", name)
}

func evalPrefixExpression(operator lexer.TokenType, right object.Object) object.Object {
	switch operator {
	case lexer.BANG:
		return evalBangOperatorExpression(right)
	case lexer.MINUS:
		return evalMinusPrefixOperatorExpression(right)
	default:
		return object.Newf("Unknown operator: %s%s", operator, right.GetType())
	}
}

// evalBangOperatorExpression treats every value as truthy except
// `false` and `null` — NOT merely "is this a Boolean" — so `!5` is
// `false`; every integer, including 0, is truthy.
func evalBangOperatorExpression(right object.Object) object.Object {
	switch right {
	case object.FALSE, object.NULL:
		return object.TRUE
	default:
		return object.FALSE
	}
}

func evalMinusPrefixOperatorExpression(right object.Object) object.Object {
	intVal, ok := right.(*object.Integer)
	if !ok {
		return object.Newf("Unknown operator: -%s", right.GetType())
	}
	return &object.Integer{Value: -intVal.Value}
}

func evalInfixExpression(operator lexer.TokenType, left, right object.Object) object.Object {
	switch {
	case left.GetType() == object.IntegerObj && right.GetType() == object.IntegerObj:
		return evalIntegerInfixExpression(operator, left.(*object.Integer), right.(*object.Integer))

	case left.GetType() == object.StringObj && right.GetType() == object.StringObj:
		return evalStringInfixExpression(operator, left.(*object.String), right.(*object.String))

	case operator == lexer.EQ:
		return object.NativeBool(left == right)
	case operator == lexer.NOTEQ:
		return object.NativeBool(left != right)

	case left.GetType() != right.GetType():
		return object.Newf("Type mismatch in expression: %s %s %s", left.GetType(), operator, right.GetType())

	default:
		return object.Newf("Unknown operator: %s %s %s", left.GetType(), operator, right.GetType())
	}
}

func evalIntegerInfixExpression(operator lexer.TokenType, left, right *object.Integer) object.Object {
	switch operator {
	case lexer.PLUS:
		return &object.Integer{Value: left.Value + right.Value}
	case lexer.MINUS:
		return &object.Integer{Value: left.Value - right.Value}
	case lexer.ASTERISK:
		return &object.Integer{Value: left.Value * right.Value}
	case lexer.SLASH:
		if right.Value == 0 {
			return object.Newf("Division by zero")
		}
		return &object.Integer{Value: left.Value / right.Value}
	case lexer.LT:
		return object.NativeBool(left.Value < right.Value)
	case lexer.GT:
		return object.NativeBool(left.Value > right.Value)
	case lexer.EQ:
		return object.NativeBool(left.Value == right.Value)
	case lexer.NOTEQ:
		return object.NativeBool(left.Value != right.Value)
	default:
		return object.Newf("Unknown operator: %s %s %s", left.GetType(), operator, right.GetType())
	}
}

func evalStringInfixExpression(operator lexer.TokenType, left, right *object.String) object.Object {
	switch operator {
	case lexer.PLUS:
		return &object.String{Value: left.Value + right.Value}
	case lexer.EQ:
		return object.NativeBool(left.Value == right.Value)
	case lexer.NOTEQ:
		return object.NativeBool(left.Value != right.Value)
	default:
		return object.Newf("Unknown operator: %s %s %s", left.GetType(), operator, right.GetType())
	}
}

func evalIfExpression(ie *ast.IfExpression, env *object.Environment, ts *lexer.TokenStream) object.Object {
	condition := Eval(ie.Condition, env, ts)
	if object.IsError(condition) {
		return condition
	}

	if isTruthy(condition) {
		return Eval(ie.Consequence, env, ts)
	} else if ie.Alternative != nil {
		return Eval(ie.Alternative, env, ts)
	}
	return object.NULL
}

// isTruthy: everything is truthy except `false` and `null` — integers
// (0 included), strings (empty included) and every container are all
// truthy.
func isTruthy(obj object.Object) bool {
	switch obj {
	case object.NULL, object.FALSE:
		return false
	default:
		return true
	}
}

func evalExpressions(exps []ast.Expression, env *object.Environment, ts *lexer.TokenStream) []object.Object {
	var result []object.Object

	for _, e := range exps {
		evaluated := Eval(e, env, ts)
		if object.IsError(evaluated) {
			return []object.Object{evaluated}
		}
		result = append(result, evaluated)
	}

	return result
}

func evalCallExpression(ce *ast.CallExpression, env *object.Environment, ts *lexer.TokenStream) object.Object {
	if ident, ok := ce.Function.(*ast.Identifier); ok && ident.Name(ts) == "quote" {
		if len(ce.Arguments) != 1 {
			return object.Newf("Wrong number of arguments. Got %d arguments, want 1 argument", len(ce.Arguments))
		}
		return quote(ce.Arguments[0], env, ts)
	}

	function := Eval(ce.Function, env, ts)
	if object.IsError(function) {
		return function
	}

	args := evalExpressions(ce.Arguments, env, ts)
	if len(args) == 1 && object.IsError(args[0]) {
		return args[0]
	}

	return applyFunction(function, args)
}

func applyFunction(fn object.Object, args []object.Object) object.Object {
	switch fn := fn.(type) {
	case *object.Function:
		extendedEnv := extendFunctionEnv(fn, args)
		evaluated := Eval(fn.Body, extendedEnv, fn.TS)
		return unwrapReturnValue(evaluated)

	case *object.Builtin:
		return fn.Fn(args...)

	default:
		return object.Newf("Unknown symbol: not a function: %s", fn.GetType())
	}
}

// extendFunctionEnv binds each declared parameter to its matching
// argument. A call with too few arguments binds the missing trailing
// parameters to Null; a call with too many simply ignores the extras.
func extendFunctionEnv(fn *object.Function, args []object.Object) *object.Environment {
	env := object.NewEnclosedEnvironment(fn.Env)

	for i, param := range fn.Parameters {
		paramName := param.Name(fn.TS)
		if i < len(args) {
			env.Set(paramName, args[i])
		} else {
			env.Set(paramName, object.NULL)
		}
	}

	return env
}

func unwrapReturnValue(obj object.Object) object.Object {
	if rv, ok := obj.(*object.ReturnValue); ok {
		return rv.Value
	}
	return obj
}

func evalHashLiteral(node *ast.HashLiteral, env *object.Environment, ts *lexer.TokenStream) object.Object {
	hash := object.NewHash()

	for _, pair := range node.Pairs {
		key := Eval(pair.Key, env, ts)
		if object.IsError(key) {
			return key
		}

		hashable, ok := key.(object.Hashable)
		if !ok {
			return object.Newf("Unusable hash key: %s", key.GetType())
		}

		value := Eval(pair.Value, env, ts)
		if object.IsError(value) {
			return value
		}

		hash.Pairs[hashable.HashKey()] = object.HashPair{Key: key, Value: value}
	}

	return hash
}

func evalIndexExpression(ie *ast.IndexExpression, env *object.Environment, ts *lexer.TokenStream) object.Object {
	left := Eval(ie.Left, env, ts)
	if object.IsError(left) {
		return left
	}
	index := Eval(ie.Index, env, ts)
	if object.IsError(index) {
		return index
	}

	switch {
	case left.GetType() == object.ArrayObj && index.GetType() == object.IntegerObj:
		return evalArrayIndexExpression(left.(*object.Array), index.(*object.Integer))

	case left.GetType() == object.HashObj:
		return evalHashIndexExpression(left.(*object.Hash), index)

	default:
		return object.Newf("Index operator not supported for %s", left.GetType())
	}
}

func evalArrayIndexExpression(array *object.Array, index *object.Integer) object.Object {
	idx := index.Value
	max := int64(len(array.Elements) - 1)

	if idx < 0 || idx > max {
		return object.NULL
	}
	return array.Elements[idx]
}

func evalHashIndexExpression(hash *object.Hash, index object.Object) object.Object {
	key, ok := index.(object.Hashable)
	if !ok {
		return object.Newf("Unusable hash key: %s", index.GetType())
	}

	pair, ok := hash.Pairs[key.HashKey()]
	if !ok {
		return object.NULL
	}
	return pair.Value
}

// quote freezes node, splicing in the evaluated result of every
// unquote(...) call found inside it via macro.Modify.
func quote(node ast.Expression, env *object.Environment, ts *lexer.TokenStream) object.Object {
	modified := macro.Modify(node, func(n ast.Node) ast.Node {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return n
		}
		ident, ok := call.Function.(*ast.Identifier)
		if !ok || ident.Name(ts) != "unquote" || len(call.Arguments) != 1 {
			return n
		}
		return convertObjectToASTNode(Eval(call.Arguments[0], env, ts))
	})

	expr, _ := modified.(ast.Expression)
	return &object.Quote{Node: expr}
}

func convertObjectToASTNode(obj object.Object) ast.Node {
	switch obj := obj.(type) {
	case *object.Integer:
		return &ast.IntegerResult{Value: obj.Value}
	case *object.String:
		return &ast.StringResult{Value: obj.Value}
	case *object.Boolean:
		return &ast.BooleanResult{Value: obj.Value}
	case *object.Quote:
		return obj.Node
	default:
		return &ast.BooleanResult{Value: false}
	}
}
