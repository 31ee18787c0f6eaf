package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"gitlab.com/gitlab-org/labkit/correlation"
	labmetrics "gitlab.com/gitlab-org/labkit/metrics"

	"gitlab.com/tachyons/servedir/internal/config"
	"gitlab.com/tachyons/servedir/internal/customheaders"
	"gitlab.com/tachyons/servedir/internal/handlers"
	"gitlab.com/tachyons/servedir/internal/healthcheck"
	"gitlab.com/tachyons/servedir/internal/logging"
	"gitlab.com/tachyons/servedir/internal/rejectmethods"
	"gitlab.com/tachyons/servedir/internal/router"
	"gitlab.com/tachyons/servedir/internal/serving/servedir"
	"gitlab.com/tachyons/servedir/internal/urilimiter"
)

// registered once per process
var metricsMiddleware = labmetrics.NewHandlerFactory(labmetrics.WithNamespace("servedir"))

type theApp struct {
	config *config.Config
}

// mounts returns the configured mounts, longest prefix first so that a
// nested mount wins over the one containing it
func (a *theApp) mounts() []config.Mount {
	mounts := make([]config.Mount, len(a.config.General.Mounts))
	copy(mounts, a.config.General.Mounts)

	sort.SliceStable(mounts, func(i, j int) bool {
		return len(mounts[i].Prefix) > len(mounts[j].Prefix)
	})

	return mounts
}

func (a *theApp) router() *router.Router {
	r := router.NewRouter()

	for _, mount := range a.mounts() {
		r.Mount(mount.Prefix, servedir.New(
			mount.Prefix,
			mount.Dir,
			servedir.WithStrictPrefix(a.config.General.StrictPrefix),
		))
	}

	return r
}

// buildHandlerPipeline returns the handler serving every app listener. The
// middlewares run in reverse order of wrapping.
func (a *theApp) buildHandlerPipeline() (http.Handler, error) {
	var handler http.Handler = a.router()
	handler = handlers.CorsHandler(&a.config.General, handler)
	handler = handlers.Ratelimiter(handler, &a.config.RateLimit)
	handler = customheaders.NewMiddleware(handler, a.config.General.CustomHeaders)
	handler = metricsMiddleware(handler)

	handler, err := logging.BasicAccessLogger(handler, a.config.Log.Format)
	if err != nil {
		return nil, err
	}

	correlationOpts := []correlation.InboundHandlerOption{
		correlation.WithSetResponseHeader(),
	}
	if a.config.General.PropagateCorrelationID {
		correlationOpts = append(correlationOpts, correlation.WithPropagation())
	}
	handler = correlation.InjectCorrelationID(handler, correlationOpts...)

	if a.config.General.StatusPath != "" {
		handler = healthcheck.NewMiddleware(handler, a.config.General.StatusPath)
	}

	handler = urilimiter.NewMiddleware(handler, a.config.General.MaxURILength)
	handler = rejectmethods.NewMiddleware(handler)
	handler = handlers.Recovery(handler)

	return handler, nil
}

// Run serves every configured listener until ctx is done or one of them fails
func (a *theApp) Run(ctx context.Context) error {
	handler, err := a.buildHandlerPipeline()
	if err != nil {
		return err
	}

	servers, err := a.listen(handler)
	if err != nil {
		return err
	}

	return a.serve(ctx, servers)
}

func runApp(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &theApp{config: cfg}

	return a.Run(ctx)
}
