package serving

import (
	"net/http"

	"gitlab.com/tachyons/servedir/internal/vfs"
)

// Handler resolves a request into a Response. An error is returned only
// when the request could not be answered at all; the caller decides the
// status it surfaces to the client.
type Handler interface {
	Handle(r *http.Request) (*Response, error)
}

// Response is a status code with an optional streamed body
type Response struct {
	Status int
	Body   vfs.File
}

// NewResponse creates a Response without a body
func NewResponse(status int) *Response {
	return &Response{Status: status}
}

// Close releases the body, if any
func (r *Response) Close() error {
	if r.Body == nil {
		return nil
	}

	return r.Body.Close()
}
