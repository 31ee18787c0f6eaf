package errortracking

import (
	"net/http"

	"gitlab.com/gitlab-org/labkit/errortracking"
)

// Initialize sets up Sentry reporting. An empty dsn leaves reporting disabled.
func Initialize(dsn, environment, version string) error {
	if dsn == "" {
		return nil
	}

	return errortracking.Initialize(
		errortracking.WithSentryDSN(dsn),
		errortracking.WithVersion(version),
		errortracking.WithLoggerName("servedir"),
		errortracking.WithSentryEnvironment(environment),
	)
}

// WithField alias to avoid importing labkit/errortracking in internal packages
func WithField(key, value string) errortracking.CaptureOption {
	return errortracking.WithField(key, value)
}

// CaptureErrWithReqAndStackTrace calls labkit's errortracking function and attaches the request, stack trace and any additional fields
func CaptureErrWithReqAndStackTrace(err error, r *http.Request, fields ...errortracking.CaptureOption) {
	opts := append(
		fields,
		errortracking.WithContext(r.Context()),
		errortracking.WithRequest(r),
		errortracking.WithStackTrace(),
	)

	errortracking.Capture(err, opts...)
}

// CaptureErrWithStackTrace calls labkit's errortracking function and attaches the stack trace and any additional fields
func CaptureErrWithStackTrace(err error, fields ...errortracking.CaptureOption) {
	opts := append(
		fields,
		errortracking.WithStackTrace(),
	)

	errortracking.Capture(err, opts...)
}
