package config

import (
	"time"

	"github.com/namsral/flag"
)

var (
	strictPrefix   = flag.Bool("strict-prefix", false, "Answer 404 to requests whose path does not start with the prefix of the mount serving them")
	statusPath     = flag.String("status-path", "", "The url path for a status page, e.g., /-/healthcheck")
	metricsAddress = flag.String("metrics-address", "", "The address to listen on for metrics requests")
	sentryDSN      = flag.String("sentry-dsn", "", "The address for sending sentry crash reporting to")
	sentryEnv      = flag.String("sentry-environment", "", "The environment for sentry crash reporting")
	logFormat      = flag.String("log-format", "json", "The log output format: 'text' or 'json'")
	logVerbose     = flag.Bool("log-verbose", false, "Verbose logging")

	propagateCorrelationID = flag.Bool("propagate-correlation-id", false, "Reuse existing Correlation-ID from the incoming request header `X-Request-ID` if present")

	rateLimitSourceIP      = flag.Float64("rate-limit-source-ip", 0.0, "Rate limit HTTP requests per second from a single IP, 0 means is disabled")
	rateLimitSourceIPBurst = flag.Int("rate-limit-source-ip-burst", 100, "Rate limit HTTP requests from a single IP, maximum burst allowed per second")

	maxURILength = flag.Int("max-uri-length", 1024, "Limit the length of URI, 0 for unlimited.")

	maxConns = flag.Int("max-conns", 0, "Limit on the number of concurrent connections to the HTTP or proxy listeners, 0 for no limit")

	// HTTP server timeouts
	serverReadTimeout       = flag.Duration("server-read-timeout", 5*time.Second, "ReadTimeout is the maximum duration for reading the entire request, including the body. A zero or negative value means there will be no timeout.")
	serverReadHeaderTimeout = flag.Duration("server-read-header-timeout", time.Second, "ReadHeaderTimeout is the amount of time allowed to read request headers. A zero or negative value means there will be no timeout.")
	serverWriteTimeout      = flag.Duration("server-write-timeout", 0, "WriteTimeout is the maximum duration before timing out writes of the response. A zero or negative value means there will be no timeout.")
	serverShutdownTimeout   = flag.Duration("server-shutdown-timeout", 30*time.Second, "Server shutdown timeout")

	useHTTP2                   = flag.Bool("use-http2", true, "Enable cleartext HTTP/2 (h2c) support")
	disableCrossOriginRequests = flag.Bool("disable-cross-origin-requests", false, "Disable cross-origin requests")

	showVersion = flag.Bool("version", false, "Show version")

	// See initFlags()
	mounts        = MultiStringFlag{separator: ","}
	header        = MultiStringFlag{separator: ";;"}
	listenHTTP    = MultiStringFlag{separator: ","}
	listenProxy   = MultiStringFlag{separator: ","}
	listenProxyv2 = MultiStringFlag{separator: ","}
)

// initFlags will be called from LoadConfig
func initFlags() {
	flag.Var(&mounts, "mount", "The URL prefix and the directory served under it, as prefix=dir, e.g. /static/=./public")
	flag.Var(&header, "header", "The additional http header(s) that should be sent to the client, e.g. 'X-Frame-Options: DENY'")
	flag.Var(&listenHTTP, "listen-http", "The address(es) to listen on for HTTP requests")
	flag.Var(&listenProxy, "listen-proxy", "The address(es) to listen on for proxy requests")
	flag.Var(&listenProxyv2, "listen-proxyv2", "The address(es) to listen on for PROXYv2 requests (https://www.haproxy.org/download/1.8/doc/proxy-protocol.txt)")

	// read from -config=/path/to/servedir-config
	flag.String(flag.DefaultConfigFlagname, "", "path to config file")

	flag.Parse()
}
