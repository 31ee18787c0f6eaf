package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/tachyons/servedir/internal/httperrors"
	"gitlab.com/tachyons/servedir/internal/request"
)

type middleware = func(http.Handler) http.Handler

// Router mounts handlers under URL path prefixes
type Router struct {
	mux                *mux.Router
	defaultMiddlewares []middleware
}

// NewRouter creates a new Router. The given middlewares are executed in the given order
// for every mounted handler.
func NewRouter(middlewares ...middleware) *Router {
	m := mux.NewRouter()
	// paths reach the mounted handlers as requested, dot segments included
	m.SkipClean(true)
	m.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httperrors.Serve404(w)
	})

	return &Router{
		mux:                m,
		defaultMiddlewares: middlewares,
	}
}

// Mount registers handler for GET and HEAD requests whose path starts with prefix.
// The optional middlewares are executed in the given order, wrapping the given handler.
// Routes are matched in registration order.
func (s *Router) Mount(prefix string, handler http.Handler, middlewares ...middleware) {
	ms := make([]middleware, 0, len(s.defaultMiddlewares)+len(middlewares)+1)
	ms = append(ms, withMount(prefix))
	ms = append(ms, s.defaultMiddlewares...)
	ms = append(ms, middlewares...)

	for i := len(ms) - 1; i >= 0; i-- {
		handler = ms[i](handler)
	}

	s.mux.PathPrefix(prefix).Methods(http.MethodGet, http.MethodHead).Handler(handler)
}

func (s *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func withMount(prefix string) middleware {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler.ServeHTTP(w, request.WithMount(r, prefix))
		})
	}
}
