package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monkeylang/monkey-go/object"
	"github.com/monkeylang/monkey-go/parser"
)

func testEvalSource(t *testing.T, src string) object.Object {
	t.Helper()
	p := parser.New(src)
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors on %q: %v", src, p.Errors())
	}
	env := object.NewEnvironment()
	return Eval(program, env, p.TokenStream())
}

func TestEvalIntegerExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"5", 5},
		{"10", 10},
		{"-5", -5},
		{"-10", -10},
		{"5 + 5 + 5 + 5 - 10", 10},
		{"2 * 2 * 2 * 2 * 2", 32},
		{"-50 + 100 + -50", 0},
		{"5 * 2 + 10", 20},
		{"5 + 2 * 10", 25},
		{"20 + 2 * -10", 0},
		{"50 / 2 * 2 + 10", 60},
		{"2 * (5 + 10)", 30},
		{"3 * 3 * 3 + 10", 37},
		{"3 * (3 * 3) + 10", 37},
		{"(5 + 10 * 2 + 15 / 3) * 2 + -10", 50},
	}

	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		intObj, ok := result.(*object.Integer)
		assert.True(t, ok, "not an Integer for %q: %s", tt.input, result.Inspect())
		assert.Equal(t, tt.expected, intObj.Value, "input: %s", tt.input)
	}
}

func TestEvalBooleanExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"1 < 2", true},
		{"1 > 2", false},
		{"1 < 1", false},
		{"1 == 1", true},
		{"1 != 1", false},
		{"true == true", true},
		{"false == false", true},
		{"true == false", false},
		{"(1 < 2) == true", true},
		{"(1 < 2) == false", false},
	}

	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		boolObj, ok := result.(*object.Boolean)
		assert.True(t, ok, "not a Boolean for %q", tt.input)
		assert.Equal(t, tt.expected, boolObj.Value, "input: %s", tt.input)
	}
}

func TestZeroIsTruthy(t *testing.T) {
	result := testEvalSource(t, `if (0) { "truthy" } else { "falsy" }`)
	str, ok := result.(*object.String)
	assert.True(t, ok)
	assert.Equal(t, "truthy", str.Value, "0 must be truthy: only false and null are falsy")
}

func TestBangOperator(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"!true", false},
		{"!false", true},
		{"!5", false},
		{"!!true", true},
		{"!!false", false},
		{"!!5", true},
	}
	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		boolObj := result.(*object.Boolean)
		assert.Equal(t, tt.expected, boolObj.Value, "input: %s", tt.input)
	}
}

func TestIfElseExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"if (true) { 10 }", int64(10)},
		{"if (false) { 10 }", nil},
		{"if (1) { 10 }", int64(10)},
		{"if (1 < 2) { 10 }", int64(10)},
		{"if (1 > 2) { 10 }", nil},
		{"if (1 > 2) { 10 } else { 20 }", int64(20)},
		{"if (1 < 2) { 10 } else { 20 }", int64(10)},
	}
	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		if tt.expected == nil {
			_, ok := result.(*object.Null)
			assert.True(t, ok, "input: %s", tt.input)
			continue
		}
		intObj, ok := result.(*object.Integer)
		assert.True(t, ok, "input: %s", tt.input)
		assert.Equal(t, tt.expected, intObj.Value)
	}
}

func TestReturnStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"return 10;", 10},
		{"return 10; 9;", 10},
		{"return 2 * 5; 9;", 10},
		{"9; return 2 * 5; 9;", 10},
		{`
if (10 > 1) {
  if (10 > 1) {
    return 10;
  }
  return 1;
}
`, 10},
	}
	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		intObj, ok := result.(*object.Integer)
		assert.True(t, ok, "input: %s", tt.input)
		assert.Equal(t, tt.expected, intObj.Value)
	}
}

func TestErrorHandling(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5 + true;", "Type mismatch in expression: INTEGER + BOOLEAN"},
		{"5 + true; 5;", "Type mismatch in expression: INTEGER + BOOLEAN"},
		{"-true", "Unknown operator: -BOOLEAN"},
		{"true + false;", "Unknown operator: BOOLEAN + BOOLEAN"},
		{"5; true + false; 5", "Unknown operator: BOOLEAN + BOOLEAN"},
		{"if (10 > 1) { true + false; }", "Unknown operator: BOOLEAN + BOOLEAN"},
		{`
if (10 > 1) {
  if (10 > 1) {
    return true + false;
  }
  return 1;
}
`, "Unknown operator: BOOLEAN + BOOLEAN"},
		{"foobar", "Unknown symbol: foobar"},
		{`"Hello" - "World"`, "Unknown operator: STRING - STRING"},
	}
	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		errObj, ok := result.(*object.Error)
		assert.True(t, ok, "input: %s got %T (%s)", tt.input, result, result.Inspect())
		assert.Equal(t, tt.expected, errObj.Message, "input: %s", tt.input)
	}
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"let a = 5; a;", 5},
		{"let a = 5 * 5; a;", 25},
		{"let a = 5; let b = a; b;", 5},
		{"let a = 5; let b = a; let c = a + b + 5; c;", 15},
	}
	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		intObj, ok := result.(*object.Integer)
		assert.True(t, ok, "input: %s", tt.input)
		assert.Equal(t, tt.expected, intObj.Value)
	}
}

func TestLetRedeclarationIsAnError(t *testing.T) {
	result := testEvalSource(t, "let a = 1; let a = 2; a;")
	errObj, ok := result.(*object.Error)
	assert.True(t, ok)
	assert.Equal(t, "Symbol already defined: a", errObj.Message)
}

func TestFunctionApplication(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"let identity = fn(x) { x; }; identity(5);", 5},
		{"let identity = fn(x) { return x; }; identity(5);", 5},
		{"let double = fn(x) { x * 2; }; double(5);", 10},
		{"let add = fn(x, y) { x + y; }; add(5, 5);", 10},
		{"let add = fn(x, y) { x + y; }; add(5 + 5, add(5, 5));", 20},
		{"fn(x) { x; }(5)", 5},
	}
	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		intObj, ok := result.(*object.Integer)
		assert.True(t, ok, "input: %s", tt.input)
		assert.Equal(t, tt.expected, intObj.Value)
	}
}

func TestMissingArgumentsBindToNull(t *testing.T) {
	result := testEvalSource(t, "let f = fn(x, y) { y; }; f(1);")
	_, ok := result.(*object.Null)
	assert.True(t, ok, "missing trailing argument must bind to Null")
}

func TestExtraArgumentsAreIgnored(t *testing.T) {
	result := testEvalSource(t, "let f = fn(x) { x; }; f(1, 2, 3);")
	intObj, ok := result.(*object.Integer)
	assert.True(t, ok)
	assert.Equal(t, int64(1), intObj.Value)
}

func TestClosures(t *testing.T) {
	result := testEvalSource(t, `
let newAdder = fn(x) {
  fn(y) { x + y };
};
let addTwo = newAdder(2);
addTwo(3);
`)
	intObj, ok := result.(*object.Integer)
	assert.True(t, ok)
	assert.Equal(t, int64(5), intObj.Value)
}

// TestRecursiveFunctionSeesOwnBinding exercises why Environment.Set
// writes into the same backing map a captured closure already holds a
// pointer to: `let factorial = fn(n) {...factorial(n - 1)...};` only
// resolves its own name inside its body because the environment it
// closed over is mutated in place once `factorial` is bound, not copied.
func TestRecursiveFunctionSeesOwnBinding(t *testing.T) {
	result := testEvalSource(t, `
let factorial = fn(n) {
  if (n == 0) {
    1
  } else {
    n * factorial(n - 1)
  }
};
factorial(5);
`)
	intObj, ok := result.(*object.Integer)
	assert.True(t, ok)
	assert.Equal(t, int64(120), intObj.Value)
}

func TestRecursiveFunctionWithoutReturnValueFallsThrough(t *testing.T) {
	result := testEvalSource(t, `
let counter = fn(x) {
  if (x > 100) {
    return true;
  } else {
    counter(x + 1);
  }
};
counter(0);
`)
	boolObj, ok := result.(*object.Boolean)
	assert.True(t, ok)
	assert.Equal(t, true, boolObj.Value)
}

func TestStringLiteral(t *testing.T) {
	result := testEvalSource(t, `"Hello World!"`)
	str, ok := result.(*object.String)
	assert.True(t, ok)
	assert.Equal(t, "Hello World!", str.Value)
}

func TestStringConcatenation(t *testing.T) {
	result := testEvalSource(t, `"Hello" + " " + "World!"`)
	str, ok := result.(*object.String)
	assert.True(t, ok)
	assert.Equal(t, "Hello World!", str.Value)
}

func TestBuiltinFunctions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{`len("")`, int64(0)},
		{`len("four")`, int64(4)},
		{`len("hello world")`, int64(11)},
		{`len(1)`, "`len` not supported for argument"},
		{`len("one", "two")`, "Wrong number of arguments. Got 2 arguments, want 1 argument"},
		{`len([1, 2, 3])`, int64(3)},
		{`len([])`, int64(0)},
		{`first([1, 2, 3])`, int64(1)},
		{`first([])`, nil},
		{`last([1, 2, 3])`, int64(3)},
		{`last([])`, nil},
		{`rest([1, 2, 3])`, []int64{2, 3}},
		{`rest([])`, nil},
		{`push([1, 2], 3)`, []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		switch expected := tt.expected.(type) {
		case int64:
			intObj, ok := result.(*object.Integer)
			assert.True(t, ok, "input: %s", tt.input)
			assert.Equal(t, expected, intObj.Value)
		case nil:
			_, ok := result.(*object.Null)
			assert.True(t, ok, "input: %s", tt.input)
		case string:
			errObj, ok := result.(*object.Error)
			assert.True(t, ok, "input: %s", tt.input)
			assert.Equal(t, expected, errObj.Message)
		case []int64:
			arr, ok := result.(*object.Array)
			assert.True(t, ok, "input: %s", tt.input)
			assert.Len(t, arr.Elements, len(expected))
			for i, v := range expected {
				assert.Equal(t, v, arr.Elements[i].(*object.Integer).Value)
			}
		}
	}
}

func TestFirstLastOnEmptyStringReturnsNullCharacter(t *testing.T) {
	first := testEvalSource(t, `first("")`)
	c, ok := first.(*object.Character)
	assert.True(t, ok)
	assert.Equal(t, byte(0), c.Value)

	last := testEvalSource(t, `last("")`)
	c, ok = last.(*object.Character)
	assert.True(t, ok)
	assert.Equal(t, byte(0), c.Value)
}

func TestArrayLiterals(t *testing.T) {
	result := testEvalSource(t, "[1, 2 * 2, 3 + 3]")
	arr, ok := result.(*object.Array)
	assert.True(t, ok)
	assert.Len(t, arr.Elements, 3)
	assert.Equal(t, int64(1), arr.Elements[0].(*object.Integer).Value)
	assert.Equal(t, int64(4), arr.Elements[1].(*object.Integer).Value)
	assert.Equal(t, int64(6), arr.Elements[2].(*object.Integer).Value)
}

func TestArrayIndexExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"[1, 2, 3][0]", int64(1)},
		{"[1, 2, 3][1]", int64(2)},
		{"[1, 2, 3][2]", int64(3)},
		{"let i = 0; [1][i];", int64(1)},
		{"[1, 2, 3][1 + 1];", int64(3)},
		{"let myArray = [1, 2, 3]; myArray[2];", int64(3)},
		{"let myArray = [1, 2, 3]; myArray[0] + myArray[1] + myArray[2];", int64(6)},
		{"[1, 2, 3][3]", nil},
		{"[1, 2, 3][-1]", nil},
	}
	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		if tt.expected == nil {
			_, ok := result.(*object.Null)
			assert.True(t, ok, "input: %s", tt.input)
			continue
		}
		intObj := result.(*object.Integer)
		assert.Equal(t, tt.expected, intObj.Value)
	}
}

func TestHashLiterals(t *testing.T) {
	result := testEvalSource(t, `
let two = "two";
{
  "one": 10 - 9,
  two: 1 + 1,
  "thr" + "ee": 6 / 2,
  4: 4,
  true: 5,
  false: 6
}
`)
	hash, ok := result.(*object.Hash)
	assert.True(t, ok)
	assert.Len(t, hash.Pairs, 6)
}

func TestHashIndexExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{`{"foo": 5}["foo"]`, int64(5)},
		{`{"foo": 5}["bar"]`, nil},
		{`let key = "foo"; {"foo": 5}[key]`, int64(5)},
		{`{}["foo"]`, nil},
		{`{5: 5}[5]`, int64(5)},
		{`{true: 5}[true]`, int64(5)},
		{`{false: 5}[false]`, int64(5)},
	}
	for _, tt := range tests {
		result := testEvalSource(t, tt.input)
		if tt.expected == nil {
			_, ok := result.(*object.Null)
			assert.True(t, ok, "input: %s", tt.input)
			continue
		}
		intObj := result.(*object.Integer)
		assert.Equal(t, tt.expected, intObj.Value)
	}
}

func TestQuoteReturnsUnevaluatedNode(t *testing.T) {
	p := parser.New(`quote(5 + 8)`)
	program := p.ParseProgram()
	assert.Empty(t, p.Errors())

	result := Eval(program, object.NewEnvironment(), p.TokenStream())
	q, ok := result.(*object.Quote)
	assert.True(t, ok)
	assert.NotNil(t, q.Node)
	assert.Equal(t, "(5 + 8)", q.Node.Show(p.TokenStream()))
}

func TestQuoteUnquote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"quote(unquote(4 + 4))", "8"},
		{"quote(unquote(4 + 4) + 4)", "(8 + 4)"},
		{"let foobar = 8; quote(foobar)", "foobar"},
		{"let foobar = 8; quote(unquote(foobar))", "8"},
		{"quote(unquote(true))", "true"},
		{"quote(unquote(true == false))", "false"},
		{"quote(unquote(quote(4 + 4)))", "(4 + 4)"},
	}
	for _, tt := range tests {
		p := parser.New(tt.input)
		program := p.ParseProgram()
		assert.Empty(t, p.Errors())

		result := Eval(program, object.NewEnvironment(), p.TokenStream())
		q, ok := result.(*object.Quote)
		assert.True(t, ok, "input: %s", tt.input)
		assert.Equal(t, tt.expected, q.Node.Show(p.TokenStream()), "input: %s", tt.input)
	}
}

func TestQuoteWithUnquoteExpressionArgument(t *testing.T) {
	p := parser.New(`quote(unquote(1 + 2) + unquote(3 + 4))`)
	program := p.ParseProgram()
	assert.Empty(t, p.Errors())

	result := Eval(program, object.NewEnvironment(), p.TokenStream())
	q := result.(*object.Quote)
	assert.Equal(t, "(3 + 7)", q.Node.Show(p.TokenStream()))
}
