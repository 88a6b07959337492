/*
File    : monkey-go/macro/modify.go

Modify performs a generic post-order rewrite of an AST: it applies fn to
every child node first, then to the node itself, writing each rewritten
child back into its parent node in place (the input tree is mutated,
not copied). ExpandMacros and the quote/unquote evaluator use it to walk
arbitrary subtrees without duplicating per-node-type traversal logic,
expressed as a single recursive function over the closed ast.Node type
switch rather than a double-dispatch Visitor interface.
*/
package macro

import "github.com/monkeylang/monkey-go/ast"

// ModifierFunc rewrites a single node, returning its replacement (or
// itself, unchanged).
type ModifierFunc func(ast.Node) ast.Node

// Modify walks node post-order, replacing every subtree with fn applied
// to its (already-modified) children, then applies fn to the node
// itself.
func Modify(node ast.Node, fn ModifierFunc) ast.Node {
	switch n := node.(type) {
	case *ast.Program:
		for i, stmt := range n.Statements {
			n.Statements[i], _ = Modify(stmt, fn).(ast.Statement)
		}

	case *ast.ExpressionStatement:
		if n.Expression != nil {
			n.Expression, _ = Modify(n.Expression, fn).(ast.Expression)
		}

	case *ast.BlockStatement:
		for i, stmt := range n.Statements {
			n.Statements[i], _ = Modify(stmt, fn).(ast.Statement)
		}

	case *ast.LetStatement:
		if n.Value != nil {
			n.Value, _ = Modify(n.Value, fn).(ast.Expression)
		}

	case *ast.ReturnStatement:
		if n.ReturnValue != nil {
			n.ReturnValue, _ = Modify(n.ReturnValue, fn).(ast.Expression)
		}

	case *ast.PrefixExpression:
		n.Right, _ = Modify(n.Right, fn).(ast.Expression)

	case *ast.InfixExpression:
		n.Left, _ = Modify(n.Left, fn).(ast.Expression)
		n.Right, _ = Modify(n.Right, fn).(ast.Expression)

	case *ast.IndexExpression:
		n.Left, _ = Modify(n.Left, fn).(ast.Expression)
		n.Index, _ = Modify(n.Index, fn).(ast.Expression)

	case *ast.IfExpression:
		n.Condition, _ = Modify(n.Condition, fn).(ast.Expression)
		n.Consequence, _ = Modify(n.Consequence, fn).(*ast.BlockStatement)
		if n.Alternative != nil {
			n.Alternative, _ = Modify(n.Alternative, fn).(*ast.BlockStatement)
		}

	case *ast.FunctionLiteral:
		for i, p := range n.Parameters {
			n.Parameters[i], _ = Modify(p, fn).(*ast.Identifier)
		}
		n.Body, _ = Modify(n.Body, fn).(*ast.BlockStatement)

	case *ast.ArrayLiteral:
		for i, e := range n.Elements {
			n.Elements[i], _ = Modify(e, fn).(ast.Expression)
		}

	case *ast.HashLiteral:
		newPairs := make([]ast.HashPair, len(n.Pairs))
		for i, pair := range n.Pairs {
			newKey, _ := Modify(pair.Key, fn).(ast.Expression)
			newVal, _ := Modify(pair.Value, fn).(ast.Expression)
			newPairs[i] = ast.HashPair{Key: newKey, Value: newVal}
		}
		n.Pairs = newPairs

	case *ast.CallExpression:
		n.Function, _ = Modify(n.Function, fn).(ast.Expression)
		for i, a := range n.Arguments {
			n.Arguments[i], _ = Modify(a, fn).(ast.Expression)
		}
	}

	return fn(node)
}
