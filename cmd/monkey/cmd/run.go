/*
File    : monkey-go/cmd/monkey/cmd/run.go

Reads a file, parses it, strips and expands macro definitions, then
evaluates the result, reporting parse errors without evaluating.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/monkeylang/monkey-go/ast"
	"github.com/monkeylang/monkey-go/evaluator"
	"github.com/monkeylang/monkey-go/macro"
	"github.com/monkeylang/monkey-go/object"
	"github.com/monkeylang/monkey-go/parser"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Monkey source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFile(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	p := parser.New(string(content))
	program := p.ParseProgram()
	ts := p.TokenStream()

	if len(p.Errors()) > 0 {
		for _, msg := range p.Errors() {
			fmt.Fprintln(os.Stderr, msg)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	env := object.NewEnvironment()
	macroEnv := object.NewEnvironment()

	macro.DefineMacros(program, macroEnv, ts)
	expandFn := func(node ast.Node, e *object.Environment) object.Object {
		return evaluator.Eval(node, e, ts)
	}
	expanded := macro.ExpandMacros(program, macroEnv, ts, expandFn).(*ast.Program)

	result := evaluator.Eval(expanded, env, ts)

	if result != nil {
		switch {
		case result.GetType() == object.ErrorObj:
			fmt.Fprintln(os.Stderr, result.ToString())
			return fmt.Errorf("execution failed")
		case result.GetType() == object.QuoteObj:
			quote := result.(*object.Quote)
			fmt.Println(quote.Node.Show(ts))
		case result.GetType() != object.NullObj:
			fmt.Println(result.ToString())
		}
	}

	return nil
}
