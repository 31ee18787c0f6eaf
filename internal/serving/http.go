package serving

import (
	"context"
	"errors"
	"io"
	"net/http"

	"gitlab.com/tachyons/servedir/internal/errortracking"
	"gitlab.com/tachyons/servedir/internal/httperrors"
	"gitlab.com/tachyons/servedir/internal/logging"
	"gitlab.com/tachyons/servedir/internal/vfs"
)

// HTTPHandler adapts h to net/http. Failures of h surface as a 500 error
// page; bodiless responses get the error page matching their status.
func HTTPHandler(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.Handle(r)
		if err != nil {
			if r.Context().Err() != nil {
				logging.LogRequest(r).WithError(err).Debug("request cancelled before serving")
				return
			}

			httperrors.Serve500WithRequest(w, r, "failed to serve request", err)
			return
		}
		defer resp.Close()

		writeResponse(w, r, resp)
	})
}

func writeResponse(w http.ResponseWriter, r *http.Request, resp *Response) {
	if resp.Body == nil {
		httperrors.ServeStatus(w, resp.Status)
		return
	}

	w.WriteHeader(resp.Status)

	if r.Method == http.MethodHead {
		return
	}

	_, err := io.Copy(w, &contextReader{ctx: r.Context(), r: resp.Body})
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logging.LogRequest(r).WithError(err).Debug("request cancelled while streaming")
	case errors.Is(err, &vfs.ReadError{}):
		logging.LogRequest(r).WithError(err).Error("failed to stream file")
		errortracking.CaptureErrWithReqAndStackTrace(err, r)
	default:
		logging.LogRequest(r).WithError(err).Debug("failed to write response")
	}
}

// contextReader stops reading as soon as ctx is done and marks errors of the
// underlying reader as read errors.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	n, err := c.r.Read(p)
	if err != nil && err != io.EOF {
		return n, vfs.NewReadError(err)
	}

	return n, err
}
