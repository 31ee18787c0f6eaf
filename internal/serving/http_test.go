package serving

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"gitlab.com/tachyons/servedir/internal/testhelpers"
)

type handlerFunc func(r *http.Request) (*Response, error)

func (f handlerFunc) Handle(r *http.Request) (*Response, error) {
	return f(r)
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device error")
}

func TestHTTPHandlerWritesBody(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader("Foobar")}
	handler := HTTPHandler(handlerFunc(func(*http.Request) (*Response, error) {
		return &Response{Status: http.StatusOK, Body: body}, nil
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/foo", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Foobar", w.Body.String())
	require.True(t, body.closed)
}

func TestHTTPHandlerHeadHasNoBody(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader("Foobar")}
	handler := HTTPHandler(handlerFunc(func(*http.Request) (*Response, error) {
		return &Response{Status: http.StatusOK, Body: body}, nil
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/static/foo", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())
	require.True(t, body.closed)
}

func TestHTTPHandlerErrorPages(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound} {
		handler := HTTPHandler(handlerFunc(func(*http.Request) (*Response, error) {
			return NewResponse(status), nil
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/foo", nil))

		require.Equal(t, status, w.Code)
		require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	}
}

func TestHTTPHandlerFailure(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	handler := HTTPHandler(handlerFunc(func(*http.Request) (*Response, error) {
		return nil, errors.New("permission denied")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/foo", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	testhelpers.AssertLogContains(t, "failed to serve request", hook.AllEntries())
}

func TestHTTPHandlerReadFailure(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	body := &trackingBody{Reader: failingReader{}}
	handler := HTTPHandler(handlerFunc(func(*http.Request) (*Response, error) {
		return &Response{Status: http.StatusOK, Body: body}, nil
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/foo", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, body.closed)
	testhelpers.AssertLogContains(t, "failed to stream file", hook.AllEntries())
}

func TestHTTPHandlerCancelledWhileStreaming(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	body := &trackingBody{Reader: strings.NewReader(strings.Repeat("x", 1<<20))}
	handler := HTTPHandler(handlerFunc(func(*http.Request) (*Response, error) {
		cancel()
		return &Response{Status: http.StatusOK, Body: body}, nil
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/foo", nil).WithContext(ctx))

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())
	require.True(t, body.closed)
}

func TestContextReader(t *testing.T) {
	r := &contextReader{ctx: context.Background(), r: strings.NewReader("Foobar")}

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "Foobar", string(data))

	r = &contextReader{ctx: context.Background(), r: failingReader{}}
	_, err = r.Read(make([]byte, 8))
	require.EqualError(t, err, "an error occurred while trying to read vfs.File content: device error")
}
