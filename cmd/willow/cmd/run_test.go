package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunCommandSuccessPath exercises `willow run <file>` end to end
// for a script that doesn't hit a static or runtime error, since the
// error paths call os.Exit and can't be exercised in-process.
func TestRunCommandSuccessPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.wl")
	require.NoError(t, os.WriteFile(path, []byte(`
		fun greet(name) { return "hi " + name; }
		print greet("willow");
	`), 0o644))

	stdout := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"run", path})
		require.NoError(t, rootCmd.Execute())
	})

	assert.Equal(t, "hi willow\n", stdout)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}
