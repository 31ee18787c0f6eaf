package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/namsral/flag"
	log "github.com/sirupsen/logrus"

	"gitlab.com/tachyons/servedir/internal/customheaders"
)

// Config stores all the config options of the daemon.
type Config struct {
	General   General
	Listeners Listeners
	Server    Server
	RateLimit RateLimit
	Log       Log
	Sentry    Sentry
}

// General groups settings that are general to the daemon and can not
// be categorized under other head.
type General struct {
	Mounts         []Mount
	StrictPrefix   bool
	StatusPath     string
	MaxConns       int
	MaxURILength   int
	CustomHeaders  http.Header
	MetricsAddress string
	HTTP2          bool

	DisableCrossOriginRequests bool
	PropagateCorrelationID     bool

	ShowVersion bool
}

// Mount is a directory served under a URL prefix
type Mount struct {
	Prefix string
	Dir    string
}

// Listeners groups the addresses to listen on
type Listeners struct {
	HTTP    []string
	Proxy   []string
	ProxyV2 []string
}

// Server groups the HTTP server timeouts
type Server struct {
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
}

// RateLimit groups settings related to the source IP rate limiter
type RateLimit struct {
	SourceIPLimitPerSecond float64
	SourceIPBurst          int
}

// Log groups settings related to configuring logging
type Log struct {
	Format  string
	Verbose bool
}

// Sentry groups settings related to configuring Sentry
type Sentry struct {
	DSN         string
	Environment string
}

func parseMounts(values []string) ([]Mount, error) {
	result := make([]Mount, 0, len(values))

	for _, value := range values {
		parts := strings.SplitN(value, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMount, value)
		}

		result = append(result, Mount{Prefix: parts[0], Dir: parts[1]})
	}

	return result, nil
}

func loadConfig() (*Config, error) {
	config := &Config{
		General: General{
			StrictPrefix:               *strictPrefix,
			StatusPath:                 *statusPath,
			MaxConns:                   *maxConns,
			MaxURILength:               *maxURILength,
			MetricsAddress:             *metricsAddress,
			HTTP2:                      *useHTTP2,
			DisableCrossOriginRequests: *disableCrossOriginRequests,
			PropagateCorrelationID:     *propagateCorrelationID,
			ShowVersion:                *showVersion,
		},
		Listeners: Listeners{
			HTTP:    listenHTTP.Split(),
			Proxy:   listenProxy.Split(),
			ProxyV2: listenProxyv2.Split(),
		},
		Server: Server{
			ReadTimeout:       *serverReadTimeout,
			ReadHeaderTimeout: *serverReadHeaderTimeout,
			WriteTimeout:      *serverWriteTimeout,
			ShutdownTimeout:   *serverShutdownTimeout,
		},
		RateLimit: RateLimit{
			SourceIPLimitPerSecond: *rateLimitSourceIP,
			SourceIPBurst:          *rateLimitSourceIPBurst,
		},
		Log: Log{
			Format:  *logFormat,
			Verbose: *logVerbose,
		},
		Sentry: Sentry{
			DSN:         *sentryDSN,
			Environment: *sentryEnv,
		},
	}

	// -version needs nothing else to be configured
	if config.General.ShowVersion {
		return config, nil
	}

	var err error
	if config.General.Mounts, err = parseMounts(mounts.Split()); err != nil {
		return nil, err
	}

	if config.General.CustomHeaders, err = customheaders.ParseHeaderString(header.Split()); err != nil {
		return nil, fmt.Errorf("unable to parse header: %w", err)
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LogConfig logs the configuration the daemon starts with
func LogConfig(config *Config) {
	log.WithFields(log.Fields{
		"default-config-filename":       flag.DefaultConfigFlagname,
		"disable-cross-origin-requests": config.General.DisableCrossOriginRequests,
		"header":                        config.General.CustomHeaders,
		"listen-http":                   config.Listeners.HTTP,
		"listen-proxy":                  config.Listeners.Proxy,
		"listen-proxyv2":                config.Listeners.ProxyV2,
		"log-format":                    config.Log.Format,
		"log-verbose":                   config.Log.Verbose,
		"max-conns":                     config.General.MaxConns,
		"max-uri-length":                config.General.MaxURILength,
		"metrics-address":               config.General.MetricsAddress,
		"mount":                         config.General.Mounts,
		"propagate-correlation-id":      config.General.PropagateCorrelationID,
		"rate-limit-source-ip":          config.RateLimit.SourceIPLimitPerSecond,
		"rate-limit-source-ip-burst":    config.RateLimit.SourceIPBurst,
		"server-read-timeout":           config.Server.ReadTimeout,
		"server-read-header-timeout":    config.Server.ReadHeaderTimeout,
		"server-write-timeout":          config.Server.WriteTimeout,
		"server-shutdown-timeout":       config.Server.ShutdownTimeout,
		"status-path":                   config.General.StatusPath,
		"strict-prefix":                 config.General.StrictPrefix,
		"use-http2":                     config.General.HTTP2,
	}).Debug("Start daemon with configuration")
}

// LoadConfig parses configuration settings passed as command line arguments or
// via config file, and populates a Config object with those values
func LoadConfig() (*Config, error) {
	initFlags()

	return loadConfig()
}
