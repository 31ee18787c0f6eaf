package local

import (
	"context"
	"os"

	"gitlab.com/tachyons/servedir/internal/vfs"
)

// VFS reads from the local disk. Paths are used as given: it is up to the
// caller to keep them inside the directory it serves.
type VFS struct{}

func (localFs VFS) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(path)
}

func (localFs VFS) Open(ctx context.Context, path string) (vfs.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Open(path)
}

func (localFs VFS) Name() string {
	return "local"
}
