// Copyright © 2025 The tinysexpr authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shack/tinysexpr/repl"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive reader loop",
	Long: `Start an interactive loop that reads s-expressions and echoes their
canonical form.

Multi-line expressions are supported; the prompt changes while a list is
open.  Line editing and in-session command history are provided via
readline.  Use Ctrl-D to exit.

Example session:
  tinysexpr> (a b
             (c d))
  (a b (c d))
  tinysexpr> "hello\nworld"
  hello
  world`,
	Run: func(cmd *cobra.Command, args []string) {
		err := repl.Run(filepath.Base(os.Args[0]) + "> ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
