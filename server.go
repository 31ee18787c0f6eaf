package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	proxyproto "github.com/pires/go-proxyproto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"gitlab.com/tachyons/servedir/internal/healthcheck"
	"gitlab.com/tachyons/servedir/internal/netutil"
	"gitlab.com/tachyons/servedir/metrics"
)

type listenerType string

const (
	listenerHTTP    listenerType = "http"
	listenerProxy   listenerType = "proxy"
	listenerProxyV2 listenerType = "proxyv2"
	listenerMetrics listenerType = "metrics"
)

type server struct {
	typ      listenerType
	listener net.Listener
	srv      *http.Server
}

func (s *server) serve() error {
	log.WithFields(log.Fields{
		"listener": s.listener.Addr().String(),
		"type":     s.typ,
	}).Info("Serving")

	if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s listener %s: %w", s.typ, s.listener.Addr(), err)
	}

	return nil
}

func (a *theApp) newServer(typ listenerType, l net.Listener, handler http.Handler) *server {
	if a.config.General.HTTP2 && typ != listenerMetrics {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	return &server{
		typ:      typ,
		listener: l,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       a.config.Server.ReadTimeout,
			ReadHeaderTimeout: a.config.Server.ReadHeaderTimeout,
			WriteTimeout:      a.config.Server.WriteTimeout,
		},
	}
}

// listen opens every configured listener. Nothing is left open on error.
func (a *theApp) listen(handler http.Handler) (servers []*server, err error) {
	defer func() {
		if err != nil {
			for _, s := range servers {
				s.listener.Close()
			}
			servers = nil
		}
	}()

	var limiter *netutil.Limiter
	if a.config.General.MaxConns > 0 {
		limiter = netutil.NewLimiter(
			a.config.General.MaxConns,
			metrics.LimitListenerMaxConns,
			metrics.LimitListenerConcurrentConns,
			metrics.LimitListenerWaitingConns,
		)
	}

	open := func(typ listenerType, addr string, handler http.Handler) error {
		l, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}

		if limiter != nil {
			l = limiter.Listen(l)
		}

		if typ == listenerProxyV2 {
			l = &proxyproto.Listener{
				Listener: l,
				Policy: func(upstream net.Addr) (proxyproto.Policy, error) {
					return proxyproto.REQUIRE, nil
				},
			}
		}

		log.WithFields(log.Fields{
			"listener": addr,
			"type":     typ,
		}).Debug("Set up listener")

		servers = append(servers, a.newServer(typ, l, handler))

		return nil
	}

	for _, addr := range a.config.Listeners.HTTP {
		if err := open(listenerHTTP, addr, handler); err != nil {
			return servers, err
		}
	}

	// the proxy in front sets X-Forwarded-For, X-Real-IP and X-Forwarded-Proto
	for _, addr := range a.config.Listeners.Proxy {
		if err := open(listenerProxy, addr, ghandlers.ProxyHeaders(handler)); err != nil {
			return servers, err
		}
	}

	for _, addr := range a.config.Listeners.ProxyV2 {
		if err := open(listenerProxyV2, addr, handler); err != nil {
			return servers, err
		}
	}

	if a.config.General.MetricsAddress != "" {
		l, err := net.Listen("tcp", a.config.General.MetricsAddress)
		if err != nil {
			return servers, fmt.Errorf("failed to listen on %s: %w", a.config.General.MetricsAddress, err)
		}

		servers = append(servers, a.newServer(listenerMetrics, l, a.metricsHandler()))
	}

	return servers, nil
}

func (a *theApp) metricsHandler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())

	if a.config.General.StatusPath != "" {
		r.Handle(a.config.General.StatusPath, healthcheck.Handler())
	}

	return r
}

// serve runs servers until ctx is done or one of them fails, then shuts all
// of them down within the configured shutdown timeout
func (a *theApp) serve(ctx context.Context, servers []*server) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, s := range servers {
		s := s
		g.Go(s.serve)
	}

	g.Go(func() error {
		<-ctx.Done()

		return a.shutdown(servers)
	})

	return g.Wait()
}

func (a *theApp) shutdown(servers []*server) error {
	log.WithField("timeout", a.config.Server.ShutdownTimeout).Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	var result *multierror.Error
	for _, s := range servers {
		if err := s.srv.Shutdown(ctx); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s listener %s: %w", s.typ, s.listener.Addr(), err))
		}
	}

	return result.ErrorOrNil()
}
