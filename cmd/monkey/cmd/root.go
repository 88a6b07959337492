/*
File    : monkey-go/cmd/monkey/cmd/root.go

A single root cobra command with a Version string, a shared
exitWithError helper, and subcommands registered from their own files'
init().
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "monkey",
	Short: "Monkey language interpreter",
	Long: `monkey is a tree-walking interpreter for the Monkey programming
language: integers, strings, booleans, arrays, hashes, first-class
functions with closures, and a quote/unquote macro system.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
