/*
File    : monkey-go/evaluator/builtins.go

The fixed set of built-in functions Monkey programs may call without
any `let` binding of their own: len, first, last, rest, push and puts.
`quote` is also resolvable as an identifier (so passing it around by
name doesn't blow up) but is special-cased in evalCallExpression before
it ever reaches a Builtin's Fn — it needs the unevaluated AST of its
argument, which no Builtin can see.

There is no user-extensible builtin registry; the surface above is
closed and fixed.
*/
package evaluator

import (
	"fmt"

	"github.com/monkeylang/monkey-go/object"
)

var builtins = map[string]*object.Builtin{
	"len":   {Name: "len", Fn: builtinLen},
	"first": {Name: "first", Fn: builtinFirst},
	"last":  {Name: "last", Fn: builtinLast},
	"rest":  {Name: "rest", Fn: builtinRest},
	"push":  {Name: "push", Fn: builtinPush},
	"puts":  {Name: "puts", Fn: builtinPuts},
	"quote": {Name: "quote", Fn: builtinQuoteUnreachable},
}

func argumentCountError(got, want int) *object.Error {
	argWord := "argument"
	if want != 1 {
		argWord = "arguments"
	}
	return object.Newf("Wrong number of arguments. Got %d arguments, want %d %s", got, want, argWord)
}

func builtinLen(args ...object.Object) object.Object {
	if len(args) != 1 {
		return argumentCountError(len(args), 1)
	}

	switch arg := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(len(arg.Value))}
	case *object.Array:
		return &object.Integer{Value: int64(len(arg.Elements))}
	default:
		return object.Newf("`len` not supported for argument")
	}
}

// nullCharacter is the sentinel first/last return for an empty string,
// rather than Null, matching the reference suite's expectation that
// string-shaped builtins always answer with a Character.
var nullCharacter = &object.Character{Value: 0}

func builtinFirst(args ...object.Object) object.Object {
	if len(args) != 1 {
		return argumentCountError(len(args), 1)
	}

	switch arg := args[0].(type) {
	case *object.Array:
		if len(arg.Elements) > 0 {
			return arg.Elements[0]
		}
		return object.NULL
	case *object.String:
		if len(arg.Value) > 0 {
			return &object.Character{Value: arg.Value[0]}
		}
		return nullCharacter
	default:
		return object.Newf("`first` not supported for argument")
	}
}

func builtinLast(args ...object.Object) object.Object {
	if len(args) != 1 {
		return argumentCountError(len(args), 1)
	}

	switch arg := args[0].(type) {
	case *object.Array:
		length := len(arg.Elements)
		if length > 0 {
			return arg.Elements[length-1]
		}
		return object.NULL
	case *object.String:
		length := len(arg.Value)
		if length > 0 {
			return &object.Character{Value: arg.Value[length-1]}
		}
		return nullCharacter
	default:
		return object.Newf("`last` not supported for argument")
	}
}

func builtinRest(args ...object.Object) object.Object {
	if len(args) != 1 {
		return argumentCountError(len(args), 1)
	}

	arr, ok := args[0].(*object.Array)
	if !ok {
		return object.Newf("argument to `rest` must be array")
	}

	length := len(arr.Elements)
	if length == 0 {
		return object.NULL
	}

	newElements := make([]object.Object, length-1)
	copy(newElements, arr.Elements[1:length])
	return &object.Array{Elements: newElements}
}

func builtinPush(args ...object.Object) object.Object {
	if len(args) != 2 {
		return argumentCountError(len(args), 2)
	}

	arr, ok := args[0].(*object.Array)
	if !ok {
		return object.Newf("argument to `push` must be array")
	}

	length := len(arr.Elements)
	newElements := make([]object.Object, length+1)
	copy(newElements, arr.Elements)
	newElements[length] = args[1]
	return &object.Array{Elements: newElements}
}

// builtinPuts prints every argument on its own line using its ToString
// form, then returns Null. That is the form the REPL prints results in,
// except for a Quote, which puts prints as "QUOTE".
func builtinPuts(args ...object.Object) object.Object {
	for _, arg := range args {
		fmt.Println(arg.ToString())
	}
	return object.NULL
}

// builtinQuoteUnreachable backs the "quote" entry in the builtins table
// only so `len(quote)`-style identifier lookups resolve to something
// instead of failing with Unknown symbol; evalCallExpression always
// intercepts an actual `quote(...)` call before Fn would be invoked.
func builtinQuoteUnreachable(args ...object.Object) object.Object {
	return object.Newf("quote must be called directly, it cannot be passed as a value")
}
