package vfs

import (
	"context"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	"gitlab.com/tachyons/servedir/metrics"
)

//go:generate mockgen -source=vfs.go -destination=mock/vfs_mock.go -package=mock

// VFS abstracts the filesystem operations a directory server needs: an
// existence query and a streamed read.
type VFS interface {
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	Open(ctx context.Context, path string) (File, error)
	Name() string
}

// Instrumented wraps fs so that every operation is counted and trace-logged.
func Instrumented(fs VFS) VFS {
	return &instrumentedVFS{fs: fs}
}

type instrumentedVFS struct {
	fs VFS
}

func (i *instrumentedVFS) increment(operation string, err error) {
	metrics.VFSOperations.WithLabelValues(i.fs.Name(), operation, strconv.FormatBool(err == nil)).Inc()
}

func (i *instrumentedVFS) log(ctx context.Context) *log.Entry {
	return log.WithContext(ctx).WithField("vfs", i.fs.Name())
}

func (i *instrumentedVFS) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	fi, err := i.fs.Stat(ctx, path)
	i.increment("Stat", err)

	i.log(ctx).
		WithField("path", path).
		WithError(err).
		Traceln("Stat call")

	return fi, err
}

func (i *instrumentedVFS) Open(ctx context.Context, path string) (File, error) {
	f, err := i.fs.Open(ctx, path)
	i.increment("Open", err)

	i.log(ctx).
		WithField("path", path).
		WithError(err).
		Traceln("Open call")

	return f, err
}

func (i *instrumentedVFS) Name() string {
	return i.fs.Name()
}
