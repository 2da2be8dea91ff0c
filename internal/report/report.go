// Package report implements the interpreter's diagnostic sink: a
// (line, message) callback that records user-facing errors and tracks
// whether scanning/parsing/resolving or evaluation failed, so a driver
// can decide exit codes and whether to run at all.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
)

// Reporter accumulates diagnostics for one scan+parse+resolve+evaluate
// pass. Unlike a package-level "had error" global, it is a value a
// driver can create fresh per REPL line, so one bad line doesn't wedge
// the session.
type Reporter struct {
	out           io.Writer
	hadError      bool
	hadRuntime    bool
	NoColor       bool
	staticErrors  []string
	runtimeErrors []string
}

// New creates a Reporter that writes diagnostics to out.
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Reset clears accumulated error state so the Reporter can be reused
// across REPL iterations.
func (r *Reporter) Reset() {
	r.hadError = false
	r.hadRuntime = false
	r.staticErrors = nil
	r.runtimeErrors = nil
}

// Report records a scan/parse/resolve-time diagnostic at the given
// line and flips HadError.
func (r *Reporter) Report(line int, message string) {
	r.hadError = true
	msg := fmt.Sprintf("[line %d] Error: %s", line, message)
	r.staticErrors = append(r.staticErrors, msg)
	r.print(msg)
}

// ReportAt is like Report but includes the offending lexeme, producing
// the "Error at 'X'" phrasing used for most parse/resolve diagnostics.
func (r *Reporter) ReportAt(line int, where, message string) {
	r.hadError = true
	msg := fmt.Sprintf("[line %d] Error at '%s': %s", line, where, message)
	r.staticErrors = append(r.staticErrors, msg)
	r.print(msg)
}

// RuntimeError records a runtime diagnostic and flips HadRuntimeError.
func (r *Reporter) RuntimeError(line int, message string) {
	r.hadRuntime = true
	msg := fmt.Sprintf("%s\n[line %d]", message, line)
	r.runtimeErrors = append(r.runtimeErrors, msg)
	r.print(msg)
}

func (r *Reporter) print(msg string) {
	if r.out == nil {
		return
	}
	if r.NoColor {
		fmt.Fprintln(r.out, msg)
		return
	}
	errorColor.Fprintln(r.out, msg)
}

// HadError reports whether any scan/parse/resolve diagnostic was
// recorded since the last Reset.
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError reports whether any runtime diagnostic was recorded
// since the last Reset.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntime }

// StaticErrors returns the accumulated parse/resolve diagnostics.
func (r *Reporter) StaticErrors() []string { return r.staticErrors }

// RuntimeErrors returns the accumulated runtime diagnostics.
func (r *Reporter) RuntimeErrors() []string { return r.runtimeErrors }
