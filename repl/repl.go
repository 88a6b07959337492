/*
File    : monkey-go/repl/repl.go

Package repl implements the Read-Eval-Print Loop for the Monkey
interpreter: reading one line at a time, lexing, parsing, expanding
macros, evaluating, and printing the result with colored feedback.

A readline-driven loop with a configurable banner/separator/prompt,
per-line panic recovery, and an optional startup file loaded once before
the first prompt.
*/
package repl

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/monkeylang/monkey-go/ast"
	"github.com/monkeylang/monkey-go/evaluator"
	"github.com/monkeylang/monkey-go/lexer"
	"github.com/monkeylang/monkey-go/macro"
	"github.com/monkeylang/monkey-go/object"
	"github.com/monkeylang/monkey-go/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the REPL's fixed display configuration.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	// RCFile, if non-empty, names a YAML startup file of `let` bindings
	// preloaded into the global environment before the first prompt.
	RCFile string
}

// NewRepl builds a Repl with the given display configuration.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo prints the startup banner, version line and basic
// usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Monkey!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// rcFile is the shape of an optional .monkeyrc.yaml startup file: a flat
// list of statements evaluated, in order, into the global environment
// before the first prompt is shown.
type rcFile struct {
	Prelude []string `yaml:"prelude"`
}

// loadRC reads r.RCFile (if set and present) and evaluates each prelude
// statement into env. A missing file is not an error; a malformed one
// is reported and skipped.
func (r *Repl) loadRC(writer io.Writer, env, macroEnv *object.Environment) {
	if r.RCFile == "" {
		return
	}

	path := r.RCFile
	if !filepath.IsAbs(path) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, r.RCFile)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var rc rcFile
	if err := yaml.Unmarshal(data, &rc); err != nil {
		redColor.Fprintf(writer, "[RC ERROR] %v\n", err)
		return
	}

	for _, stmt := range rc.Prelude {
		evalLine(writer, stmt, env, macroEnv)
	}
}

// Start runs the REPL main loop until the user exits.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	env := object.NewEnvironment()
	macroEnv := object.NewEnvironment()
	r.loadRC(writer, env, macroEnv)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.executeWithRecovery(writer, line, env, macroEnv)
	}
}

// executeWithRecovery parses, macro-expands and evaluates one line,
// recovering from any panic (the macro pass panics if a macro returns
// a non-AST value) so a single bad line never kills the session.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, env, macroEnv *object.Environment) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	evalLine(writer, line, env, macroEnv)
}

// evalLine runs one source line through the full lex/parse/macro/eval
// pipeline and prints its result.
func evalLine(writer io.Writer, line string, env, macroEnv *object.Environment) {
	p := parser.New(line)
	program := p.ParseProgram()
	ts := p.TokenStream()

	if len(p.Errors()) > 0 {
		for _, msg := range p.Errors() {
			redColor.Fprintf(writer, "%s\n", msg)
		}
		return
	}

	macro.DefineMacros(program, macroEnv, ts)

	expandFn := func(node ast.Node, e *object.Environment) object.Object {
		return evaluator.Eval(node, e, ts)
	}
	expanded := macro.ExpandMacros(program, macroEnv, ts, expandFn).(*ast.Program)

	result := evaluator.Eval(expanded, env, ts)
	printResult(writer, result, ts)
}

// printResult renders every value through ToString, except Quote, which
// needs the token stream to recover its canonical text and so is
// rendered via Show directly rather than through the plain Object
// interface.
func printResult(writer io.Writer, result object.Object, ts *lexer.TokenStream) {
	if result == nil {
		return
	}
	if quote, ok := result.(*object.Quote); ok {
		yellowColor.Fprintf(writer, "%s\n", quote.Node.Show(ts))
		return
	}
	if result.GetType() == object.ErrorObj {
		redColor.Fprintf(writer, "%s\n", result.ToString())
		return
	}
	if result.GetType() == object.NullObj {
		return
	}
	yellowColor.Fprintf(writer, "%s\n", result.ToString())
}
