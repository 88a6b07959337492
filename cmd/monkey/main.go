/*
File    : monkey-go/cmd/monkey/main.go

Command monkey is the Monkey interpreter's command-line entry point,
with repl/run/version subcommands.
*/
package main

import (
	"fmt"
	"os"

	"github.com/monkeylang/monkey-go/cmd/monkey/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
