package request

import (
	"context"
	"net"
	"net/http"
)

type ctxKey string

const (
	ctxMountKey ctxKey = "mount"

	headerXForwardedProto = "X-Forwarded-Proto"
)

// WithMount saves the prefix of the mount serving the request in the request's context
func WithMount(r *http.Request, prefix string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, ctxMountKey, prefix)

	return r.WithContext(ctx)
}

// GetMount extracts the mount prefix from the request's context. It returns
// an empty string for requests no mount has claimed.
func GetMount(r *http.Request) string {
	prefix, _ := r.Context().Value(ctxMountKey).(string)
	return prefix
}

// IsHTTPS reports whether the request reached us, or the proxy in front of us, over TLS
func IsHTTPS(r *http.Request) bool {
	return r.TLS != nil || r.URL.Scheme == "https" || r.Header.Get(headerXForwardedProto) == "https"
}

// GetHostWithoutPort returns a host without the port. The host(:port) comes
// from a Host: header if it is provided, otherwise it is a server name.
func GetHostWithoutPort(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.Host)
	if err != nil {
		return r.Host
	}

	return host
}

// GetRemoteAddrWithoutPort strips the port from the r.RemoteAddr
func GetRemoteAddrWithoutPort(r *http.Request) string {
	remoteAddr, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return remoteAddr
}
