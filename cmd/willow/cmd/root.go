package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "willow",
	Short: "Willow is a tree-walking interpreter for the Willow scripting language",
	Long: `Willow is a small, dynamically-typed imperative scripting language.

This binary scans, parses, statically resolves, and interprets Willow
source: run a script file, drop into an interactive REPL, or dump the
tokens/AST a piece of source produces for inspection.`,
}

// Execute runs the root command, exiting the process on a CLI-usage
// error. The script exit codes (65 for a static error, 70 for a
// runtime error) come from the subcommand itself, which calls os.Exit
// directly, so Execute does not return in those cases.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored diagnostics")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(astCmd)
}
