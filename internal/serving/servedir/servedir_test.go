package servedir

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"gitlab.com/tachyons/servedir/internal/serving"
	"gitlab.com/tachyons/servedir/internal/testhelpers"
	"gitlab.com/tachyons/servedir/internal/vfs/mock"
)

func serveDir(t *testing.T, opts ...Option) *Server {
	t.Helper()

	return New("/static/", testhelpers.StaticDir(t), opts...)
}

func request(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "http://localhost/"+path, nil)
}

func handle(t *testing.T, s *Server, path string) (int, string) {
	t.Helper()

	resp, err := s.Handle(request(path))
	require.NoError(t, err)
	defer resp.Close()

	if resp.Body == nil {
		return resp.Status, ""
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.Status, string(body)
}

func TestHandle(t *testing.T) {
	s := serveDir(t)

	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "css", "site.css"), []byte("body {}"), 0644))

	tests := map[string]struct {
		path           string
		expectedStatus int
		expectedBody   string
	}{
		"ok": {
			path:           "static/foo",
			expectedStatus: http.StatusOK,
			expectedBody:   "Foobar",
		},
		"not found": {
			path:           "static/bar",
			expectedStatus: http.StatusNotFound,
		},
		"traversal": {
			path:           "static/../../etc/passwd",
			expectedStatus: http.StatusForbidden,
		},
		"deep traversal": {
			path:           "static/../../../../../../../../etc/passwd",
			expectedStatus: http.StatusForbidden,
		},
		"redundant dot": {
			path:           "static/./foo",
			expectedStatus: http.StatusOK,
			expectedBody:   "Foobar",
		},
		"consecutive slashes": {
			path:           "static//foo",
			expectedStatus: http.StatusOK,
			expectedBody:   "Foobar",
		},
		"nested file": {
			path:           "static/css/site.css",
			expectedStatus: http.StatusOK,
			expectedBody:   "body {}",
		},
		"dot dot staying inside": {
			path:           "static/css/../foo",
			expectedStatus: http.StatusOK,
			expectedBody:   "Foobar",
		},
		"directory": {
			path:           "static/css",
			expectedStatus: http.StatusNotFound,
		},
		"base directory": {
			path:           "static/",
			expectedStatus: http.StatusNotFound,
		},
		"missing prefix is passed through": {
			path:           "foo",
			expectedStatus: http.StatusOK,
			expectedBody:   "Foobar",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			status, body := handle(t, s, tt.path)

			require.Equal(t, tt.expectedStatus, status)
			require.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestHandleIsIdempotent(t *testing.T) {
	s := serveDir(t)

	for _, path := range []string{"static/foo", "static/bar", "static/../../etc/passwd"} {
		firstStatus, firstBody := handle(t, s, path)

		for i := 0; i < 3; i++ {
			status, body := handle(t, s, path)
			require.Equal(t, firstStatus, status, path)
			require.Equal(t, firstBody, body, path)
		}
	}
}

func TestHandleSiblingDirectoryIsForbidden(t *testing.T) {
	s := serveDir(t)

	evilDir := s.Dir() + "-evil"
	require.NoError(t, os.Mkdir(evilDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(evilDir, "secret"), []byte("secret"), 0644))

	status, body := handle(t, s, "static/../static-evil/secret")
	require.Equal(t, http.StatusForbidden, status)
	require.Empty(t, body)
}

func TestHandleForbiddenNeverTouchesFilesystem(t *testing.T) {
	mockCtrl := gomock.NewController(t)

	// no expectations: any call to the mock fails the test
	mockVFS := mock.NewMockVFS(mockCtrl)

	s := New("/static/", "/srv/static", WithVFS(mockVFS))

	for _, path := range []string{
		"static/../../etc/passwd",
		"static/..",
		"static/../static-evil/foo",
		"static/../../../../../../../../../../etc/shadow",
	} {
		status, _ := handle(t, s, path)
		require.Equal(t, http.StatusForbidden, status, path)
	}
}

func TestHandleChecksExistenceBeforeOpening(t *testing.T) {
	staticDir := testhelpers.StaticDir(t)
	fooPath := filepath.Join(staticDir, "foo")

	fi, err := os.Stat(fooPath)
	require.NoError(t, err)

	mockCtrl := gomock.NewController(t)
	mockVFS := mock.NewMockVFS(mockCtrl)

	f, err := os.Open(fooPath)
	require.NoError(t, err)

	gomock.InOrder(
		mockVFS.EXPECT().Stat(gomock.Any(), fooPath).Return(fi, nil).Times(1),
		mockVFS.EXPECT().Open(gomock.Any(), fooPath).Return(f, nil).Times(1),
	)

	s := New("/static/", staticDir, WithVFS(mockVFS))

	status, body := handle(t, s, "static/foo")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Foobar", body)
}

func TestHandleNotFoundDoesNotOpen(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	mockVFS := mock.NewMockVFS(mockCtrl)

	mockVFS.EXPECT().Stat(gomock.Any(), filepath.FromSlash("/srv/static/bar")).Return(nil, fs.ErrNotExist).Times(1)

	s := New("/static/", "/srv/static", WithVFS(mockVFS))

	status, _ := handle(t, s, "static/bar")
	require.Equal(t, http.StatusNotFound, status)
}

func TestHandleOpenFailureIsReturned(t *testing.T) {
	staticDir := testhelpers.StaticDir(t)
	fooPath := filepath.Join(staticDir, "foo")

	fi, err := os.Stat(fooPath)
	require.NoError(t, err)

	mockCtrl := gomock.NewController(t)
	mockVFS := mock.NewMockVFS(mockCtrl)

	// the file vanished between the existence check and the open
	mockVFS.EXPECT().Stat(gomock.Any(), fooPath).Return(fi, nil)
	mockVFS.EXPECT().Open(gomock.Any(), fooPath).Return(nil, fs.ErrNotExist)

	s := New("/static/", staticDir, WithVFS(mockVFS))

	resp, err := s.Handle(request("static/foo"))
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Nil(t, resp)
}

func TestHandleCancelledRequest(t *testing.T) {
	s := serveDir(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := s.Handle(request("static/foo").WithContext(ctx))
	require.True(t, errors.Is(err, context.Canceled))
	require.Nil(t, resp)
}

func TestHandleStrictPrefix(t *testing.T) {
	s := serveDir(t, WithStrictPrefix(true))

	status, body := handle(t, s, "static/foo")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Foobar", body)

	status, _ = handle(t, s, "foo")
	require.Equal(t, http.StatusNotFound, status)

	status, _ = handle(t, s, "other/foo")
	require.Equal(t, http.StatusNotFound, status)
}

func TestHandleDoesNotRequireDirAtConstruction(t *testing.T) {
	dir := filepath.Join(testhelpers.TmpDir(t), "later")
	s := New("/static/", dir)

	status, _ := handle(t, s, "static/foo")
	require.Equal(t, http.StatusNotFound, status)

	require.NoError(t, os.Mkdir(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo"), []byte("Foobar"), 0644))

	status, body := handle(t, s, "static/foo")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Foobar", body)
}

func TestHandleLogs(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	s := serveDir(t)

	handle(t, s, "static/foo")
	testhelpers.AssertLogLevel(t, "Requested file", logrus.InfoLevel, hook.AllEntries())

	hook.Reset()
	handle(t, s, "static/../../etc/passwd")
	testhelpers.AssertLogLevel(t, "Unauthorized attempt to read file", logrus.WarnLevel, hook.AllEntries())

	hook.Reset()
	handle(t, s, "static/bar")
	testhelpers.AssertLogLevel(t, "File not found", logrus.WarnLevel, hook.AllEntries())
}

func TestServeHTTP(t *testing.T) {
	s := serveDir(t)

	require.HTTPStatusCode(t, s.ServeHTTP, http.MethodGet, "/static/foo", nil, http.StatusOK)
	require.HTTPBodyContains(t, s.ServeHTTP, http.MethodGet, "/static/foo", nil, "Foobar")
	require.HTTPStatusCode(t, s.ServeHTTP, http.MethodGet, "/static/bar", nil, http.StatusNotFound)
	require.HTTPStatusCode(t, s.ServeHTTP, http.MethodGet, "/static/../../etc/passwd", nil, http.StatusForbidden)
}

var _ serving.Handler = (*Server)(nil)
