package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/willow-lang/willow/internal/interp"
	"github.com/willow-lang/willow/internal/parser"
	"github.com/willow-lang/willow/internal/report"
	"github.com/willow-lang/willow/internal/resolver"
	"github.com/willow-lang/willow/internal/scanner"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Willow session",
	RunE:  runRepl,
}

// ReplConfig groups the cosmetic bits of a REPL session, so runRepl
// and its tests don't hardcode prompt strings inline.
type ReplConfig struct {
	Banner             string
	Prompt             string
	ContinuationPrompt string
}

func DefaultReplConfig() ReplConfig {
	return ReplConfig{
		Banner:             "Willow REPL - Ctrl+D to exit\n",
		Prompt:             "willow> ",
		ContinuationPrompt: "     .. ",
	}
}

var bannerColor = color.New(color.FgGreen, color.Bold)

func runRepl(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")
	cfg := DefaultReplConfig()

	if noColor {
		fmt.Fprint(os.Stdout, cfg.Banner)
	} else {
		bannerColor.Fprint(os.Stdout, cfg.Banner)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	session(rl, os.Stdout, cfg, noColor)
	return nil
}

// session drives one REPL loop: read a (possibly multi-line) chunk,
// run it, print its diagnostics and auto-printed expression results,
// repeat. State persists across chunks by reusing one Interpreter and
// Reporter for the whole session, the way a REPL needs top-level
// bindings to survive from line to line.
func session(rl *readline.Instance, out io.Writer, cfg ReplConfig, noColor bool) {
	rep := report.New(out)
	rep.NoColor = noColor
	in := interp.New(out, rep, true)

	var pending strings.Builder
	prompt := cfg.Prompt

	for {
		rl.SetPrompt(prompt)
		line, err := rl.Readline()
		if err != nil { // io.EOF (Ctrl+D) or readline.ErrInterrupt (Ctrl+C)
			return
		}

		pending.WriteString(line)
		pending.WriteString("\n")

		if unbalancedBraces(pending.String()) {
			prompt = cfg.ContinuationPrompt
			continue
		}

		src := pending.String()
		pending.Reset()
		prompt = cfg.Prompt

		if strings.TrimSpace(src) == "" {
			continue
		}

		rl.SaveHistory(strings.TrimRight(src, "\n"))
		runChunk(in, rep, src, out, noColor)
	}
}

var panicColor = color.New(color.FgRed, color.Bold)

// runChunk scans, parses, resolves, and interprets one REPL chunk.
// A recover() wraps the whole pass so a panic deep in the interpreter
// (a bug, not a reported error) prints and lets the session continue
// instead of taking the whole REPL down with it.
func runChunk(in *interp.Interpreter, rep *report.Reporter, src string, out io.Writer, noColor bool) {
	defer func() {
		if r := recover(); r != nil {
			if noColor {
				fmt.Fprintf(out, "panic: %v\n", r)
			} else {
				panicColor.Fprintf(out, "panic: %v\n", r)
			}
		}
	}()

	rep.Reset()

	toks := scanner.New([]byte(src), rep).Scan()
	stmts := parser.New(toks, rep).Parse()
	if rep.HadError() {
		return
	}

	locals := resolver.New(rep).Resolve(stmts)
	if rep.HadError() {
		return
	}

	in.Resolve(locals)
	in.Interpret(stmts)
}

// unbalancedBraces reports whether src has more `{` than `}`, the
// REPL's signal to keep reading lines instead of trying to run a
// statement that isn't finished yet.
func unbalancedBraces(src string) bool {
	depth := 0
	for _, r := range src {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth > 0
}
