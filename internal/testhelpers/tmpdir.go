package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TmpDir returns a temporary directory with symlinks evaluated
func TmpDir(tb testing.TB) string {
	tb.Helper()

	var err error
	tmpDir := tb.TempDir()

	// On some systems `/tmp` can be a symlink
	tmpDir, err = filepath.EvalSymlinks(tmpDir)
	require.NoError(tb, err)

	return tmpDir
}

// StaticDir creates `static/foo` containing "Foobar" in a temporary directory
// and returns the path of `static`
func StaticDir(tb testing.TB) string {
	tb.Helper()

	staticDir := filepath.Join(TmpDir(tb), "static")
	require.NoError(tb, os.Mkdir(staticDir, 0755))
	require.NoError(tb, os.WriteFile(filepath.Join(staticDir, "foo"), []byte("Foobar"), 0644))

	return staticDir
}
