package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/willow-lang/willow/internal/interp"
	"github.com/willow-lang/willow/internal/parser"
	"github.com/willow-lang/willow/internal/report"
	"github.com/willow-lang/willow/internal/resolver"
	"github.com/willow-lang/willow/internal/scanner"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a Willow source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

// runFile runs a script end to end with the conventional sysexits-style
// contract: 0 on a clean run, 65 if scanning/parsing/resolving reported
// an error (the program never ran), 70 if evaluation hit a runtime
// error partway through.
func runFile(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")

	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	rep := report.New(os.Stderr)
	rep.NoColor = noColor

	toks := scanner.New(src, rep).Scan()
	stmts := parser.New(toks, rep).Parse()
	if rep.HadError() {
		os.Exit(65)
	}

	locals := resolver.New(rep).Resolve(stmts)
	if rep.HadError() {
		os.Exit(65)
	}

	in := interp.New(os.Stdout, rep, false)
	in.Resolve(locals)
	in.Interpret(stmts)
	if rep.HadRuntimeError() {
		os.Exit(70)
	}

	return nil
}
