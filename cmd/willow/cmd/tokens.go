package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/willow-lang/willow/internal/report"
	"github.com/willow-lang/willow/internal/scanner"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream the scanner produces for a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	rep := report.New(os.Stderr)
	for _, tok := range scanner.New(src, rep).Scan() {
		fmt.Println(tok.String())
	}
	if rep.HadError() {
		os.Exit(65)
	}
	return nil
}
