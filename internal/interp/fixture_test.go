package interp_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willow-lang/willow/internal/interp"
	"github.com/willow-lang/willow/internal/parser"
	"github.com/willow-lang/willow/internal/report"
	"github.com/willow-lang/willow/internal/resolver"
	"github.com/willow-lang/willow/internal/scanner"
)

// runSource runs src through the whole pipeline (scan, parse, resolve,
// interpret) and returns its stdout, whether a static (scan/parse/
// resolve) error was reported, and whether a runtime error was.
func runSource(src string) (output string, hadStaticError, hadRuntimeError bool) {
	var diag bytes.Buffer
	rep := report.New(&diag)

	toks := scanner.New([]byte(src), rep).Scan()
	stmts := parser.New(toks, rep).Parse()
	if rep.HadError() {
		return "", true, false
	}

	locals := resolver.New(rep).Resolve(stmts)
	if rep.HadError() {
		return "", true, false
	}

	var out bytes.Buffer
	in := interp.New(&out, rep, false)
	in.Resolve(locals)
	in.Interpret(stmts)

	return out.String(), rep.HadError(), rep.HadRuntimeError()
}

// TestClosureOverShadowedBinding pins down that a closure captures the
// binding live at definition time, not a same-named local that the
// calling function declares later.
func TestClosureOverShadowedBinding(t *testing.T) {
	output, hadStatic, hadRuntime := runSource(`
		var a = "global";
		fun show() { print a; }

		fun outer() {
			show();
			var a = "block";
			show();
		}
		outer();
	`)
	require.False(t, hadStatic)
	require.False(t, hadRuntime)
	snaps.MatchSnapshot(t, "closure_over_shadowed_binding", output)
}

// TestForLoopWithBreak pins down that break, nested in an if inside
// the desugared for-loop's body, ends the loop on the iteration where
// it runs, so only the iterations before it print.
func TestForLoopWithBreak(t *testing.T) {
	output, hadStatic, hadRuntime := runSource(`
		for (var i = 0; i < 10; i = i + 1) {
			if (i == 3) break;
			print i;
		}
	`)
	require.False(t, hadStatic)
	require.False(t, hadRuntime)
	assert.Equal(t, "0\n1\n2\n", output)
	snaps.MatchSnapshot(t, "for_loop_with_break", output)
}

// TestRecursionFib10 pins down that recursive calls each get a fresh
// call frame, so fib(10) == 55.
func TestRecursionFib10(t *testing.T) {
	output, hadStatic, hadRuntime := runSource(`
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	require.False(t, hadStatic)
	require.False(t, hadRuntime)
	assert.Equal(t, "55\n", output)
}

// TestShortCircuitReturnsOperandValue pins down that `and`/`or` return
// one of their operand's actual values, not a coerced boolean.
func TestShortCircuitReturnsOperandValue(t *testing.T) {
	output, hadStatic, hadRuntime := runSource(`
		print nil or "fallback";
		print "first" and "second";
		print false and "unreached";
	`)
	require.False(t, hadStatic)
	require.False(t, hadRuntime)
	assert.Equal(t, "fallback\nsecond\nfalse\n", output)
}

// TestTernaryNesting pins down that a chained ternary's else-branch
// itself recurses, so the middle candidate is skipped entirely.
func TestTernaryNesting(t *testing.T) {
	output, hadStatic, hadRuntime := runSource(`
		print true ? 1 : false ? 2 : 3;
		print false ? 1 : false ? 2 : 3;
	`)
	require.False(t, hadStatic)
	require.False(t, hadRuntime)
	assert.Equal(t, "1\n3\n", output)
}

// TestRuntimeErrorReporting pins down that a type-mismatched binary
// operation is caught at evaluation time, reported, and halts the
// program (the driver turns HadRuntimeError into exit code 70).
func TestRuntimeErrorReporting(t *testing.T) {
	output, hadStatic, hadRuntime := runSource(`
		print "not a number" - 1;
		print "unreached";
	`)
	require.False(t, hadStatic)
	require.True(t, hadRuntime)
	assert.Equal(t, "", output, "evaluation halts before the print statement runs")
}

func TestClockIsCallableWithNoArgs(t *testing.T) {
	output, hadStatic, hadRuntime := runSource(`
		var t = clock();
		print t > 0;
	`)
	require.False(t, hadStatic)
	require.False(t, hadRuntime)
	assert.Equal(t, "true\n", output)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, hadStatic, hadRuntime := runSource(`print missing;`)
	require.False(t, hadStatic)
	assert.True(t, hadRuntime)
}

func TestCallingANonCallableIsRuntimeError(t *testing.T) {
	_, hadStatic, hadRuntime := runSource(`
		var x = 1;
		x();
	`)
	require.False(t, hadStatic)
	assert.True(t, hadRuntime)
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, hadStatic, hadRuntime := runSource(`
		fun needsTwo(a, b) { return a + b; }
		needsTwo(1);
	`)
	require.False(t, hadStatic)
	assert.True(t, hadRuntime)
}
