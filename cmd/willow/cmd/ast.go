package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/willow-lang/willow/internal/parser"
	"github.com/willow-lang/willow/internal/report"
	"github.com/willow-lang/willow/internal/scanner"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Print the parsed syntax tree for a file, each top-level statement starting on a new line",
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func runAST(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	rep := report.New(os.Stderr)
	toks := scanner.New(src, rep).Scan()
	stmts := parser.New(toks, rep).Parse()
	for _, stmt := range stmts {
		fmt.Println(stmt.String())
	}
	if rep.HadError() {
		os.Exit(65)
	}
	return nil
}
