package local

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var localVFS = &VFS{}

func tmpDir(t *testing.T) string {
	var err error
	tmpDir := t.TempDir()

	// On some systems `/tmp` can be a symlink
	tmpDir, err = filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err)

	return tmpDir
}

func TestVFSStat(t *testing.T) {
	// create structure as:
	// /tmp/dir: directory
	// /tmp/file: file
	// /tmp/file_link: symlink to `file`
	tmpDir := tmpDir(t)

	dirPath := filepath.Join(tmpDir, "dir")
	require.NoError(t, os.Mkdir(dirPath, 0755))

	filePath := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(filePath, []byte("content"), 0644))

	require.NoError(t, os.Symlink("file", filepath.Join(tmpDir, "file_link")))

	tests := map[string]struct {
		path        string
		expectedDir bool
		expectedErr error
	}{
		"a directory": {
			path:        "dir",
			expectedDir: true,
		},
		"a file": {
			path: "file",
		},
		"a symlink to file is followed": {
			path: "file_link",
		},
		"a non-existing file": {
			path:        "not-existing",
			expectedErr: fs.ErrNotExist,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			fi, err := localVFS.Stat(context.Background(), filepath.Join(tmpDir, test.path))

			if test.expectedErr != nil {
				require.ErrorIs(t, err, test.expectedErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.expectedDir, fi.IsDir())
			require.Equal(t, !test.expectedDir, fi.Mode().IsRegular())
		})
	}
}

func TestVFSOpen(t *testing.T) {
	tmpDir := tmpDir(t)

	filePath := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(filePath, []byte("content"), 0644))

	f, err := localVFS.Open(context.Background(), filePath)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "content", string(data))

	_, err = localVFS.Open(context.Background(), filepath.Join(tmpDir, "missing"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestVFSCancelledContext(t *testing.T) {
	tmpDir := tmpDir(t)

	filePath := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(filePath, []byte("content"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := localVFS.Stat(ctx, filePath)
	require.ErrorIs(t, err, context.Canceled)

	_, err = localVFS.Open(ctx, filePath)
	require.ErrorIs(t, err, context.Canceled)
}
