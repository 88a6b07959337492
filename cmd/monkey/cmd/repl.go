package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/monkeylang/monkey-go/repl"
)

var rcFile string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Monkey session",
	Run: func(cmd *cobra.Command, args []string) {
		r := repl.NewRepl(
			banner,
			Version,
			"monkeylang",
			"----------------------------------------",
			"MIT",
			"monkey >> ",
		)
		r.RCFile = rcFile
		r.Start(os.Stdin, os.Stdout)
	},
}

const banner = `
   __  __             _
  |  \/  | ___  _ __  | | _____ _   _
  | |\/| |/ _ \| '_ \ | |/ / _ \ | | |
  | |  | | (_) | | | ||   <  __/ |_| |
  |_|  |_|\___/|_| |_||_|\_\___|\__, |
                                |___/
`

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVar(&rcFile, "rcfile", ".monkeyrc.yaml", "YAML startup file of prelude statements, resolved relative to $HOME")
}
