// Package servedir maps request paths onto files below a base directory.
//
// Request paths are resolved lexically. A path that resolves outside of the
// base directory is rejected before the filesystem is touched. Existence is
// checked before the file is opened; the gap between the two is an accepted
// time-of-check/time-of-use race, and a file vanishing in between surfaces
// as an error from Handle.
package servedir

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gitlab.com/tachyons/servedir/internal/logging"
	"gitlab.com/tachyons/servedir/internal/serving"
	"gitlab.com/tachyons/servedir/internal/vfs"
	"gitlab.com/tachyons/servedir/internal/vfs/local"
	"gitlab.com/tachyons/servedir/metrics"
)

const (
	outcomeServed    = "served"
	outcomeForbidden = "forbidden"
	outcomeNotFound  = "not_found"
	outcomeError     = "error"
)

var defaultVFS = vfs.Instrumented(local.VFS{})

// Server serves the files below dir to requests mounted under prefix.
// It holds no mutable state and is safe for concurrent use.
type Server struct {
	prefix       string
	dir          string
	base         location
	strictPrefix bool
	vfs          vfs.VFS
}

// Option configures a Server
type Option func(*Server)

// WithVFS replaces the filesystem files are read from
func WithVFS(fs vfs.VFS) Option {
	return func(s *Server) {
		s.vfs = fs
	}
}

// WithStrictPrefix makes requests whose path does not start with the prefix
// answer 404. By default such paths are resolved as if the prefix was
// already stripped.
func WithStrictPrefix(strict bool) Option {
	return func(s *Server) {
		s.strictPrefix = strict
	}
}

// New creates a Server. Nothing is validated here: dir does not need to
// exist until a request is handled.
func New(prefix, dir string, opts ...Option) *Server {
	s := &Server{
		prefix: prefix,
		dir:    dir,
		base:   parseLocation(dir),
		vfs:    defaultVFS,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Prefix returns the URL prefix the server is mounted under
func (s *Server) Prefix() string {
	return s.prefix
}

// Dir returns the directory files are served from
func (s *Server) Dir() string {
	return s.dir
}

// Handle answers 403 for paths resolving outside of the base directory, 404
// for paths naming nothing or something other than a regular file, and 200
// with the file as body otherwise. The caller must close the returned
// Response.
func (s *Server) Handle(r *http.Request) (*serving.Response, error) {
	requestPath, ok := s.relativePath(r.URL.Path)
	if !ok {
		logging.LogRequest(r).WithField("prefix", s.prefix).Warn("Request path outside of prefix")
		return s.respond(outcomeNotFound, http.StatusNotFound), nil
	}

	resolved := s.base.resolve(requestPath)
	logger := logging.LogRequest(r).WithField("file_path", resolved.String())
	logger.Info("Requested file")

	if !resolved.within(s.base) {
		logger.WithField("dir", s.dir).Warn("Unauthorized attempt to read file")
		return s.respond(outcomeForbidden, http.StatusForbidden), nil
	}

	ctx := r.Context()
	fullPath := resolved.String()

	fi, err := s.vfs.Stat(ctx, fullPath)
	if err != nil {
		if isCancelled(err) {
			metrics.ServeDirRequests.WithLabelValues(outcomeError).Inc()
			return nil, fmt.Errorf("checking %q: %w", fullPath, err)
		}

		logger.WithError(err).Warn("File not found")
		return s.respond(outcomeNotFound, http.StatusNotFound), nil
	}

	if !fi.Mode().IsRegular() {
		logger.WithField("mode", fi.Mode().String()).Warn("File not found")
		return s.respond(outcomeNotFound, http.StatusNotFound), nil
	}

	file, err := s.vfs.Open(ctx, fullPath)
	if err != nil {
		metrics.ServeDirRequests.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("opening %q: %w", fullPath, err)
	}

	metrics.ServeDirFileSize.Observe(float64(fi.Size()))
	metrics.ServeDirRequests.WithLabelValues(outcomeServed).Inc()

	return &serving.Response{Status: http.StatusOK, Body: file}, nil
}

// ServeHTTP serves the file through serving.HTTPHandler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serving.HTTPHandler(s).ServeHTTP(w, r)
}

// relativePath strips the prefix and any leading slashes from urlPath.
// It only returns false in strict mode, when urlPath lacks the prefix.
func (s *Server) relativePath(urlPath string) (string, bool) {
	path := strings.TrimPrefix(urlPath, s.prefix)
	if s.strictPrefix && s.prefix != "" && path == urlPath {
		return "", false
	}

	return strings.TrimLeft(path, "/"), true
}

func (s *Server) respond(outcome string, status int) *serving.Response {
	metrics.ServeDirRequests.WithLabelValues(outcome).Inc()

	return serving.NewResponse(status)
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
